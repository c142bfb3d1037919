package handler

// ErrorResponse is the JSON envelope of every error the portal itself
// produces. Backend errors are passed through in their own shape.
type ErrorResponse struct {
	Error string `json:"error"`
}

// nonNil keeps empty collections rendering as [] instead of null.
func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
