package query

// Pagination is the offset page block
type Pagination struct {
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
}

// OffsetPage is one page of an offset listing
type OffsetPage[T any] struct {
	Data       []T        `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// CursorPage is one page of a cursor listing
// NextCursor is nil when no further records exist
type CursorPage[T any] struct {
	Data       []T     `json:"data"`
	NextCursor *string `json:"nextCursor"`
}

// nonNil keeps empty pages serializing as [] rather than null
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
