package domain

// Event is a calendar entry stored in the JSON event store.
type Event struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Start string `json:"start"`
	Type  string `json:"type"`
}
