package domain

// KPIBlock carries the headline numbers for the analytics dashboard. Every
// value is sanitized to a finite number before the response is returned.
type KPIBlock struct {
	Revenue            float64 `json:"revenue"`
	NetProfit          float64 `json:"net_profit"`
	NetMargin          float64 `json:"net_margin"`
	Orders             int     `json:"orders"`
	AOV                float64 `json:"aov"`
	HealthScore        float64 `json:"health_score"`
	LowStockAlerts     int     `json:"low_stock_alerts"`
	InventoryValuation float64 `json:"inventory_valuation"`
	DeadStockValue     float64 `json:"dead_stock_value"`
	TurnoverRate       float64 `json:"turnover_rate"`
}

// TrendPoint is a single bucket in a time-grouped chart (week or month).
type TrendPoint struct {
	Period string  `json:"name"`
	Value  float64 `json:"value"`
}

// ProductSales is one bar in the top-products chart.
type ProductSales struct {
	Name    string  `json:"name"`
	Units   float64 `json:"units"`
	Revenue float64 `json:"revenue"`
}

// CategoryValue is one slice of the category distribution pie.
type CategoryValue struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// InventoryLevel is one bar of the inventory-levels chart.
type InventoryLevel struct {
	Name    string  `json:"name"`
	Stock   float64 `json:"stock"`
	Reorder float64 `json:"reorder"`
}

// Transaction is one row of the recent-transactions table.
type Transaction struct {
	Date     string  `json:"date"`
	ItemID   string  `json:"item_id"`
	Quantity float64 `json:"quantity"`
	Revenue  float64 `json:"revenue"`
}

// ABCBreakdown is the aggregate-only result of ABC classification: item
// counts per revenue tier, never per-item grades.
type ABCBreakdown struct {
	A int `json:"a"`
	B int `json:"b"`
	C int `json:"c"`
}

// ChartBlock groups all chart payloads of the dashboard response.
type ChartBlock struct {
	SalesTrend           []TrendPoint     `json:"sales_trend"`
	ProfitTrend          []TrendPoint     `json:"profit_trend"`
	InventoryLevels      []InventoryLevel `json:"inventory_levels"`
	TopProducts          []ProductSales   `json:"top_products"`
	RecentTransactions   []Transaction    `json:"recent_transactions"`
	CategoryDistribution []CategoryValue  `json:"category_distribution"`
	ABCAnalysis          ABCBreakdown     `json:"abc_analysis"`
}

// StockoutForecast flags an item expected to run out within 30 days.
type StockoutForecast struct {
	ItemID   string  `json:"item_id"`
	Name     string  `json:"name"`
	Stock    float64 `json:"stock"`
	Velocity float64 `json:"velocity"`
	DaysLeft int     `json:"days_left"`
	Demo     bool    `json:"demo,omitempty"`
}

// DeadStockEntry is an item holding stock with zero sales in the window.
type DeadStockEntry struct {
	ItemID string  `json:"item_id"`
	Name   string  `json:"name"`
	Stock  float64 `json:"stock"`
	Value  float64 `json:"value"`
	Demo   bool    `json:"demo,omitempty"`
}

// RestockRecommendation is a suggested purchase order line.
type RestockRecommendation struct {
	ItemID   string  `json:"item_id"`
	Name     string  `json:"name"`
	Stock    float64 `json:"stock"`
	OrderQty int     `json:"order_qty"`
	Urgency  string  `json:"urgency"`
	Reason   string  `json:"reason"`
	Demo     bool    `json:"demo,omitempty"`
}

// DebugInfo records which files and columns fed the computation. Diagnostic
// only; the dashboard contract never depends on it.
type DebugInfo struct {
	SalesFile     string            `json:"sales_file,omitempty"`
	InventoryFile string            `json:"inventory_file,omitempty"`
	SalesColumns  map[string]string `json:"sales_columns,omitempty"`
	InvColumns    map[string]string `json:"inventory_columns,omitempty"`
	WindowDays    int               `json:"window_days"`
	Error         string            `json:"error,omitempty"`
}

// DashboardResponse is the full analytics payload. The request never fails:
// missing or unusable data degrades to a default-shaped response.
type DashboardResponse struct {
	KPIs             KPIBlock                `json:"kpis"`
	Charts           ChartBlock              `json:"charts"`
	StockoutForecast []StockoutForecast      `json:"stockout_forecast"`
	DeadStock        []DeadStockEntry        `json:"dead_stock"`
	SmartRestock     []RestockRecommendation `json:"smart_restock"`
	TurnoverRate     float64                 `json:"turnover_rate"`
	DebugInfo        DebugInfo               `json:"debug_info"`
}
