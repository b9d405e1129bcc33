package agent

import (
	"context"
	"path/filepath"
	"strings"
)

const generalAgentName = "General Agent"

const generalInstruction = "You are a trusted business advisor for a small business owner. " +
	"You give clear, balanced answers that connect sales, inventory and cash " +
	"flow. When the user asks about stored data, consult the table schema " +
	"provided and describe what can be answered from it. Keep the tone warm " +
	"and jargon-free."

// SchemaDescriber exposes the stored-table schema for prompt grounding.
type SchemaDescriber interface {
	SchemaInfo(ctx context.Context) (string, error)
}

// GeneralAgent handles everything the specialists do not, with a view of
// the uploaded files and the SQL store schema.
type GeneralAgent struct {
	data  dataContext
	store SchemaDescriber
}

func NewGeneralAgent(dataDir string, store SchemaDescriber) *GeneralAgent {
	return &GeneralAgent{data: dataContext{dataDir: dataDir}, store: store}
}

func (a *GeneralAgent) Name() string { return generalAgentName }

func (a *GeneralAgent) SystemInstruction() string { return generalInstruction }

func (a *GeneralAgent) Context(ctx context.Context) string {
	var b strings.Builder

	if files, err := listDataFiles(a.data.dataDir); err == nil && len(files) > 0 {
		b.WriteString("Uploaded files:")
		for _, f := range files {
			b.WriteString(" ")
			b.WriteString(filepath.Base(f))
		}
		b.WriteString("\n")
	}

	if a.store != nil {
		if schema, err := a.store.SchemaInfo(ctx); err == nil && schema != "" {
			b.WriteString("\n")
			b.WriteString(schema)
		}
	}

	if t := a.data.loadAny(); t != nil {
		b.WriteString(formatTable(t, "Sample of Business Data"))
	}

	if b.Len() == 0 {
		return "No business data is available yet. Answer from general small-business knowledge."
	}
	return b.String()
}
