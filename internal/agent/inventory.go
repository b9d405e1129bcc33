package agent

import (
	"context"

	"github.com/biznexus-ai/backend/internal/dataset"
)

const inventoryAgentName = "Inventory Agent"

const inventoryInstruction = "You are an expert inventory manager for a small business. " +
	"You analyze stock levels, reorder points and supplier lead times. " +
	"Flag items at risk of stockout, call out dead stock tying up capital, " +
	"and recommend concrete reorder quantities. Be precise with numbers and " +
	"always ground advice in the data provided."

// InventoryAgent answers stock, reorder and supplier questions from the
// current inventory file.
type InventoryAgent struct {
	data dataContext
}

func NewInventoryAgent(dataDir string) *InventoryAgent {
	return &InventoryAgent{data: dataContext{dataDir: dataDir}}
}

func (a *InventoryAgent) Name() string { return inventoryAgentName }

func (a *InventoryAgent) SystemInstruction() string { return inventoryInstruction }

func (a *InventoryAgent) Context(ctx context.Context) string {
	t := a.data.loadKind(dataset.KindInventory)
	if t == nil {
		return "No inventory data has been uploaded yet. Tell the user to upload an inventory file to get specific advice."
	}
	return formatTable(t, "Current Inventory Data")
}
