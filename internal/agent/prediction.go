package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/biznexus-ai/backend/internal/analytics"
	"github.com/biznexus-ai/backend/internal/dataset"
	"github.com/biznexus-ai/backend/internal/domain"
)

const predictionAgentName = "Prediction Agent"

const predictionInstruction = "You are a financial forecasting analyst for a small business. " +
	"Given baseline figures and a hypothetical change in marketing spend, " +
	"operating expenses or pricing, project the impact on revenue and profit. " +
	"Show the arithmetic step by step, state your assumptions explicitly, " +
	"and finish with a one-line verdict on whether the scenario is worth pursuing."

// PredictionAgent runs what-if scenarios against a baseline summary
// instead of raw rows, so the model reasons about deltas not data entry.
type PredictionAgent struct {
	data dataContext
}

func NewPredictionAgent(dataDir string) *PredictionAgent {
	return &PredictionAgent{data: dataContext{dataDir: dataDir}}
}

func (a *PredictionAgent) Name() string { return predictionAgentName }

func (a *PredictionAgent) SystemInstruction() string { return predictionInstruction }

func (a *PredictionAgent) Context(ctx context.Context) string {
	var b strings.Builder
	b.WriteString("Baseline business figures:\n")

	sales := a.data.loadKind(dataset.KindSales)
	var salesMapping dataset.Mapping
	if sales != nil {
		salesMapping = dataset.Resolve(sales.Columns)
	}
	// An empty index when no sales file exists, so valuation still works.
	idx := analytics.BuildSalesIndex(sales, salesMapping)
	if sales != nil {
		fmt.Fprintf(&b, "- Total revenue: %.2f across %d orders\n", idx.TotalRevenue, idx.Orders)
		if idx.HasProfit {
			fmt.Fprintf(&b, "- Total profit: %.2f\n", idx.TotalProfit)
		}
	}

	inv := a.data.loadKind(dataset.KindInventory)
	if inv != nil {
		m := dataset.Resolve(inv.Columns)
		items := analytics.InventoryItems(inv, m)
		fmt.Fprintf(&b, "- Inventory: %d items, valuation %.2f\n", len(items), analytics.Valuation(items, idx))
	}

	if sales == nil && inv == nil {
		b.WriteString("- No data uploaded. Use typical small-business assumptions and say so.\n")
	}
	return b.String()
}

// ScenarioQuery turns structured what-if inputs into the simulation prompt.
func ScenarioQuery(req domain.ScenarioRequest) string {
	return fmt.Sprintf(
		"Simulate this Scenario: change marketing spend by %+.1f%%, operating expenses by %+.1f%%, and prices by %+.1f%%. "+
			"Project the new monthly revenue and profit against the baseline.",
		req.MarketingChange, req.OpexChange, req.PriceChange,
	)
}
