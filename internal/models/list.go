package models

// ListQuery is the effective query a list page sends to the backend.
type ListQuery struct {
	Page     int               `json:"page"`
	PageSize int               `json:"page_size"`
	Search   string            `json:"search,omitempty"`
	Filters  map[string]string `json:"filters,omitempty"`
}

// HasFilters reports whether any filter value is non-empty.
func (q ListQuery) HasFilters() bool {
	for _, v := range q.Filters {
		if v != "" {
			return true
		}
	}
	return false
}

// Page is one server page of normalized items.
type Page[T any] struct {
	Items       []T `json:"items"`
	CurrentPage int `json:"current_page"`
	TotalPages  int `json:"total_pages"`
	TotalItems  int `json:"total_items"`
}

// Clamp enforces 1 <= CurrentPage <= TotalPages and len(Items) <= pageSize.
func (p *Page[T]) Clamp(pageSize int) {
	if p.Items == nil {
		p.Items = []T{}
	}
	if pageSize > 0 && len(p.Items) > pageSize {
		p.Items = p.Items[:pageSize]
	}
	if p.TotalItems < len(p.Items) {
		p.TotalItems = len(p.Items)
	}
	if p.TotalPages < 1 {
		p.TotalPages = 1
		if pageSize > 0 && p.TotalItems > pageSize {
			p.TotalPages = (p.TotalItems + pageSize - 1) / pageSize
		}
	}
	if p.CurrentPage < 1 {
		p.CurrentPage = 1
	}
	if p.CurrentPage > p.TotalPages {
		p.CurrentPage = p.TotalPages
	}
}
