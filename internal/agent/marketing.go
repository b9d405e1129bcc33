package agent

import (
	"context"
	"strings"

	"github.com/biznexus-ai/backend/internal/dataset"
)

const marketingAgentName = "Marketing Agent"

const marketingInstruction = "You are a pragmatic marketing strategist for a small business. " +
	"You use sales and inventory data to propose campaigns, promotions and " +
	"pricing moves that clear slow stock and amplify what already sells. " +
	"Prefer low-cost tactics and tie every idea back to a specific product " +
	"or category in the data."

// MarketingAgent sees both sales and inventory so it can pair promotions
// with what is actually on the shelf.
type MarketingAgent struct {
	data dataContext
}

func NewMarketingAgent(dataDir string) *MarketingAgent {
	return &MarketingAgent{data: dataContext{dataDir: dataDir}}
}

func (a *MarketingAgent) Name() string { return marketingAgentName }

func (a *MarketingAgent) SystemInstruction() string { return marketingInstruction }

func (a *MarketingAgent) Context(ctx context.Context) string {
	var b strings.Builder
	if sales := a.data.loadKind(dataset.KindSales); sales != nil {
		b.WriteString(formatTable(sales, "Sales Data"))
	}
	if inv := a.data.loadKind(dataset.KindInventory); inv != nil {
		b.WriteString(formatTable(inv, "Inventory Data"))
	}
	if b.Len() == 0 {
		return "No business data has been uploaded yet. Give general marketing guidance for a small business."
	}
	return b.String()
}
