package chat

// PageContext is a snapshot of the UI's current table state, passed along
// with a chat request so the model can ground answers in what the user is
// looking at.
type PageContext struct {
	TotalCount     int                      `json:"totalCount"`
	CurrentFilters map[string]interface{}   `json:"currentFilters"`
	CurrentSort    map[string]interface{}   `json:"currentSort"`
	VisibleData    []map[string]interface{} `json:"visibleData"`
}
