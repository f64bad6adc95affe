package types

// ApiError is the wire envelope used by every endpoint, success or failure.
type ApiError struct {
	Done    bool   `json:"done"`
	Reason  string `json:"reason"`
	Context string `json:"context,omitempty" description:"Extra context for the error, usually the failing sub-check"`
}

// Done wraps a success reason in the wire envelope
func Done(reason string) ApiError {
	return ApiError{Done: true, Reason: reason}
}

// Paged result common
type PagedResult[T any] struct {
	Count   uint64 `json:"count"`
	PerPage uint64 `json:"per_page"`
	Results T      `json:"results"`
}
