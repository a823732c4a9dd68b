package dto

import "crm-console/pkg/types"

// PageDTO - {page, limit} списков пользователей, ролей и прав.
type PageDTO struct {
	Page  int `json:"page" validate:"omitempty,gte=1"`
	Limit int `json:"limit" validate:"omitempty,gte=1,lte=100"`
}

// PageFilterDTO - тело вида {"filterData": {"page": 1, "limit": 10}}.
type PageFilterDTO struct {
	FilterData PageDTO `json:"filterData"`
}

func (p PageDTO) ToFilter() types.Filter {
	return types.NewPageFilter(p.Page, p.Limit)
}

// ListResult - страница списка вместе с общим количеством записей.
type ListResult[T any] struct {
	Items []T
	Total uint64
	Page  int
	Limit int
}
