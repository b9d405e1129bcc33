package domain

// ChatTurn is one prior exchange forwarded by the client.
type ChatTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// QueryRequest is the body of POST /api/analyze.
type QueryRequest struct {
	Query   string     `json:"query" binding:"required"`
	History []ChatTurn `json:"history"`
}

// QueryResponse is what every agent returns. Suggestions are optional
// follow-up questions surfaced in the chat UI.
type QueryResponse struct {
	Response    string   `json:"response"`
	Agent       string   `json:"agent"`
	Suggestions []string `json:"suggestions,omitempty"`
}

// ScenarioRequest is the body of POST /api/whatif. Values are percentage
// deltas applied to the current business baseline.
type ScenarioRequest struct {
	MarketingChange float64 `json:"marketing_change"`
	OpexChange      float64 `json:"opex_change"`
	PriceChange     float64 `json:"price_change"`
}
