package types

type SortItem struct {
	Field string `json:"field"`
	Order string `json:"order"`
}

// Filter - параметры списка, общие для всех репозиториев CRM API.
type Filter struct {
	Search         string
	Sort           []SortItem
	Filter         map[string]interface{}
	Limit          int
	Offset         int
	Page           int
	WithPagination bool
}

// NewPageFilter нормализует page/limit и считает offset.
func NewPageFilter(page, limit int) Filter {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	return Filter{
		Page:           page,
		Limit:          limit,
		Offset:         (page - 1) * limit,
		Filter:         map[string]interface{}{},
		WithPagination: true,
	}
}
