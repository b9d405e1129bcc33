package agent

import (
	"context"

	"github.com/biznexus-ai/backend/internal/dataset"
)

const salesAgentName = "Sales Agent"

const salesInstruction = "You are a sharp sales analyst for a small business. " +
	"You study transaction history to surface revenue trends, top and bottom " +
	"performers, seasonality and average order value. Quantify every claim " +
	"with figures from the data and keep recommendations commercially practical."

// SalesAgent answers revenue and transaction questions from the current
// sales file.
type SalesAgent struct {
	data dataContext
}

func NewSalesAgent(dataDir string) *SalesAgent {
	return &SalesAgent{data: dataContext{dataDir: dataDir}}
}

func (a *SalesAgent) Name() string { return salesAgentName }

func (a *SalesAgent) SystemInstruction() string { return salesInstruction }

func (a *SalesAgent) Context(ctx context.Context) string {
	t := a.data.loadKind(dataset.KindSales)
	if t == nil {
		return "No sales data has been uploaded yet. Tell the user to upload a sales file to get specific analysis."
	}
	return formatTable(t, "Recent Sales Data")
}
