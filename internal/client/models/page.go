package models

// Page is one page of a paginated list response.
type Page[T any] struct {
	Items    []T  `json:"items"`
	Total    int  `json:"total"`
	Page     int  `json:"page"`
	PageSize int  `json:"page_size"`
	HasMore  bool `json:"has_more"`
}

// Pagination is the metadata part of a Page as kept by the stores.
type Pagination struct {
	Page     int
	PageSize int
	Total    int
	HasMore  bool
}

// Meta returns the pagination metadata of p.
func (p Page[T]) Meta() Pagination {
	return Pagination{Page: p.Page, PageSize: p.PageSize, Total: p.Total, HasMore: p.HasMore}
}
