package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/biznexus-ai/backend/internal/analytics"
	"github.com/biznexus-ai/backend/internal/dataset"
	"github.com/biznexus-ai/backend/internal/domain"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

const defaultWindowDays = 365

// DashboardService recomputes the full analytics dashboard from the files
// currently in the data directory. It holds no analytic state between
// requests: every call re-reads, re-resolves, and re-derives everything.
type DashboardService struct {
	dataDir string
}

func NewDashboardService(dataDir string) *DashboardService {
	return &DashboardService{dataDir: dataDir}
}

// GetDashboard computes the dashboard for the given lookback window. It
// never fails the request: missing files, unresolved columns, and malformed
// cells all degrade to zeros, defaults, or tagged demo rows, and an
// unexpected panic anywhere in the pipeline is converted into the same
// default-shaped response with the error recorded in debug_info.
func (s *DashboardService) GetDashboard(ctx context.Context, windowDays int) (resp *domain.DashboardResponse) {
	if windowDays <= 0 {
		windowDays = defaultWindowDays
	}

	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("dashboard computation panicked")
			resp = defaultResponse(windowDays)
			resp.DebugInfo.Error = fmt.Sprintf("internal error: %v", r)
		}
	}()

	salesFile, invFile := s.classifyFiles()

	var salesRaw, invRaw *dataset.Table
	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		salesRaw = loadOrEmpty(salesFile, dataset.EmptySales)
		return nil
	})
	g.Go(func() error {
		invRaw = loadOrEmpty(invFile, dataset.EmptyInventory)
		return nil
	})
	_ = g.Wait()

	now := time.Now()

	sales := dataset.Normalize(salesRaw)
	salesMap := dataset.Resolve(sales.Columns)
	if salesMap.Has(dataset.RoleDate) {
		dataset.ParseDates(sales, salesMap.Column(dataset.RoleDate))
		sales = dataset.FilterWindow(sales, windowDays, now)
	}

	inv := dataset.Normalize(invRaw)
	invMap := dataset.Resolve(inv.Columns)

	idx := analytics.BuildSalesIndex(sales, salesMap)
	items := analytics.InventoryItems(inv, invMap)
	forecast := analytics.Forecast(items, idx, windowDays)

	resp = &domain.DashboardResponse{
		KPIs:             analytics.ComputeKPIs(idx, items, forecast.DeadStockValue),
		Charts:           analytics.BuildCharts(sales, salesMap, idx, items, analytics.GroupWeekly(windowDays)),
		StockoutForecast: forecast.Stockouts,
		DeadStock:        forecast.DeadStock,
		SmartRestock:     forecast.Restock,
		DebugInfo: domain.DebugInfo{
			SalesFile:     baseName(salesFile),
			InventoryFile: baseName(invFile),
			SalesColumns:  salesMap.Describe(),
			InvColumns:    invMap.Describe(),
			WindowDays:    windowDays,
		},
	}
	resp.TurnoverRate = resp.KPIs.TurnoverRate

	// Demo fallback at the boundary only: empty risk lists are replaced by
	// clearly tagged placeholders so the dashboard always has something to
	// render, but only when there was inventory to analyze at all.
	if len(items) > 0 {
		if len(resp.SmartRestock) == 0 {
			resp.SmartRestock = analytics.DemoRestock()
		}
		if len(resp.DeadStock) == 0 {
			resp.DeadStock = analytics.DemoDeadStock()
		}
	}

	ensureNonNilLists(resp)
	return resp
}

// classifyFiles scans the data directory and picks the first sales-like and
// first inventory-like file. Sales is checked before inventory, and later
// files of an already-claimed category are ignored.
func (s *DashboardService) classifyFiles() (salesFile, invFile string) {
	entries, err := os.ReadDir(s.dataDir)
	if err != nil {
		log.Warn().Err(err).Str("dir", s.dataDir).Msg("data directory unreadable")
		return "", ""
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	for _, name := range names {
		path := filepath.Join(s.dataDir, name)
		raw, err := dataset.Load(path)
		if err != nil {
			log.Warn().Err(err).Str("file", name).Msg("skipping unreadable data file")
			continue
		}
		headers := dataset.Normalize(raw).Columns

		switch dataset.Classify(headers) {
		case dataset.KindSales:
			if salesFile == "" {
				salesFile = path
			}
		case dataset.KindInventory:
			if invFile == "" {
				invFile = path
			}
		}
	}
	return salesFile, invFile
}

func baseName(path string) string {
	if path == "" {
		return ""
	}
	return filepath.Base(path)
}

func loadOrEmpty(path string, empty func() *dataset.Table) *dataset.Table {
	if path == "" {
		return empty()
	}
	t, err := dataset.Load(path)
	if err != nil {
		log.Warn().Err(err).Str("file", path).Msg("treating unreadable file as empty dataset")
		return empty()
	}
	return t
}

func defaultResponse(windowDays int) *domain.DashboardResponse {
	resp := &domain.DashboardResponse{
		KPIs:      domain.KPIBlock{HealthScore: 100},
		DebugInfo: domain.DebugInfo{WindowDays: windowDays},
	}
	ensureNonNilLists(resp)
	return resp
}

// ensureNonNilLists keeps the JSON contract stable: empty lists serialize
// as [] rather than null.
func ensureNonNilLists(resp *domain.DashboardResponse) {
	if resp.StockoutForecast == nil {
		resp.StockoutForecast = []domain.StockoutForecast{}
	}
	if resp.DeadStock == nil {
		resp.DeadStock = []domain.DeadStockEntry{}
	}
	if resp.SmartRestock == nil {
		resp.SmartRestock = []domain.RestockRecommendation{}
	}
	if resp.Charts.SalesTrend == nil {
		resp.Charts.SalesTrend = []domain.TrendPoint{}
	}
	if resp.Charts.ProfitTrend == nil {
		resp.Charts.ProfitTrend = []domain.TrendPoint{}
	}
	if resp.Charts.InventoryLevels == nil {
		resp.Charts.InventoryLevels = []domain.InventoryLevel{}
	}
	if resp.Charts.TopProducts == nil {
		resp.Charts.TopProducts = []domain.ProductSales{}
	}
	if resp.Charts.RecentTransactions == nil {
		resp.Charts.RecentTransactions = []domain.Transaction{}
	}
	if resp.Charts.CategoryDistribution == nil {
		resp.Charts.CategoryDistribution = []domain.CategoryValue{}
	}
}
