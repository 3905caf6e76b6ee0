package models

// Sort directions accepted by PageRequest.
const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

// CustomerFilter narrows a customer search. Empty fields match everything.
type CustomerFilter struct {
	Name   string
	Email  string `mask:"email"`
	Mobile string `mask:"mobile"`
}

// PageRequest selects one page of results. Page is zero-based.
type PageRequest struct {
	Page      int
	Size      int
	SortBy    string
	Direction string
}

// Offset returns the number of rows to skip.
func (p PageRequest) Offset() int {
	return p.Page * p.Size
}

// Page is one page of results. Content elements are masked individually.
type Page[T any] struct {
	Content       []T   `json:"content" mask:"nested"`
	Page          int   `json:"page"`
	Size          int   `json:"size"`
	TotalElements int64 `json:"total_elements"`
	TotalPages    int   `json:"total_pages"`
}

// NewPage builds a page, computing the page count from total.
func NewPage[T any](content []T, req PageRequest, total int64) *Page[T] {
	pages := 0
	if req.Size > 0 {
		pages = int((total + int64(req.Size) - 1) / int64(req.Size))
	}
	if content == nil {
		content = []T{}
	}
	return &Page[T]{
		Content:       content,
		Page:          req.Page,
		Size:          req.Size,
		TotalElements: total,
		TotalPages:    pages,
	}
}
