package agent

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/biznexus-ai/backend/internal/dataset"
	"github.com/biznexus-ai/backend/internal/domain"
	"github.com/rs/zerolog/log"
)

// maxContextRows caps how many data rows are rendered into a prompt.
const maxContextRows = 50

// maxHistoryTurns bounds how much chat history is replayed into the prompt.
const maxHistoryTurns = 6

// actionsSuffix is appended for every agent except prediction so responses
// end with concrete next steps and follow-up suggestions.
const actionsSuffix = "\n\nIMPORTANT: At the very end of your response, you MUST provide a section titled " +
	"'### 🛠 Recommended Actions' with 2-3 specific, actionable steps based on the data. " +
	"ALSO, provide 3 suggested follow-up questions in a hidden JSON block format: " +
	"```json suggestions [\"Question 1\", \"Question 2\"]```"

// Completer is the opaque text-completion collaborator.
type Completer interface {
	Generate(ctx context.Context, system, prompt string) (string, error)
}

// Agent is one role-specific assistant persona.
type Agent interface {
	Name() string
	Context(ctx context.Context) string
	SystemInstruction() string
}

// Runner executes a query against an agent: context plus instruction plus
// history plus question, through the completion service.
type Runner struct {
	llm Completer
}

func NewRunner(llm Completer) *Runner {
	return &Runner{llm: llm}
}

// Analyze never returns an error: LLM failures become an error-shaped
// response attributed to the agent, matching the chat contract.
func (r *Runner) Analyze(ctx context.Context, a Agent, query string, history []domain.ChatTurn) domain.QueryResponse {
	var prompt strings.Builder
	prompt.WriteString(a.Context(ctx))

	if len(history) > maxHistoryTurns {
		history = history[len(history)-maxHistoryTurns:]
	}
	for _, turn := range history {
		fmt.Fprintf(&prompt, "\n%s: %s", turn.Role, turn.Content)
	}

	fmt.Fprintf(&prompt, "\n\nUser Question: %s", query)
	if a.Name() != predictionAgentName {
		prompt.WriteString(actionsSuffix)
	}

	text, err := r.llm.Generate(ctx, a.SystemInstruction(), prompt.String())
	if err != nil {
		log.Warn().Err(err).Str("agent", a.Name()).Msg("completion failed")
		return domain.QueryResponse{
			Response: fmt.Sprintf("Error: %s", err),
			Agent:    a.Name() + " (Error)",
		}
	}

	return domain.QueryResponse{Response: text, Agent: a.Name()}
}

// dataContext gives agents defensive access to the session data files.
type dataContext struct {
	dataDir string
}

// loadKind loads the first file of the requested kind, or nil.
func (d dataContext) loadKind(kind dataset.Kind) *dataset.Table {
	files, err := listDataFiles(d.dataDir)
	if err != nil {
		return nil
	}
	for _, path := range files {
		raw, err := dataset.Load(path)
		if err != nil {
			continue
		}
		t := dataset.Normalize(raw)
		if dataset.Classify(t.Columns) == kind {
			return t
		}
	}
	return nil
}

// loadAny returns the first loadable table regardless of kind.
func (d dataContext) loadAny() *dataset.Table {
	files, err := listDataFiles(d.dataDir)
	if err != nil {
		return nil
	}
	for _, path := range files {
		raw, err := dataset.Load(path)
		if err != nil {
			continue
		}
		return dataset.Normalize(raw)
	}
	return nil
}

// listDataFiles returns the loadable files in dir in name order.
func listDataFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".csv", ".xlsx", ".json":
			out = append(out, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(out)
	return out, nil
}

// formatTable renders a table for prompt inclusion, bounded to keep token
// usage sane.
func formatTable(t *dataset.Table, title string) string {
	if t == nil || t.Len() == 0 {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "\n%s:\n", title)
	b.WriteString(strings.Join(t.Columns, " | "))
	b.WriteString("\n")

	n := t.Len()
	if n > maxContextRows {
		n = maxContextRows
	}
	for i := 0; i < n; i++ {
		b.WriteString(strings.Join(t.Rows[i], " | "))
		b.WriteString("\n")
	}
	if t.Len() > n {
		fmt.Fprintf(&b, "... (%d more rows)\n", t.Len()-n)
	}
	return b.String()
}
