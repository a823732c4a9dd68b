// Package query holds the filter, sort and pagination parameters of one
// resource list. All operations are pure: they return a new State.
package query

import "maps"

type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

const DefaultLimit = 10

var AllowedLimits = []int{5, 10, 20, 50, 100}

func IsAllowedLimit(n int) bool {
	for _, l := range AllowedLimits {
		if l == n {
			return true
		}
	}
	return false
}

type SortField struct {
	Field string    `json:"field"`
	Order Direction `json:"order"`
}

// State - параметры запроса списка. Sort содержит не больше одного поля.
type State struct {
	Search       string         `json:"search"`
	StatusFilter string         `json:"statusFilter"`
	Sort         []SortField    `json:"sort"`
	Page         int            `json:"page"`
	Limit        int            `json:"limit"`
	Filters      map[string]any `json:"filters,omitempty"`
}

func New() State {
	return State{Page: 1, Limit: DefaultLimit}
}

// Clone копирует срезы и карты, чтобы снимок не разделял память с оригиналом.
func (s State) Clone() State {
	out := s
	if s.Sort != nil {
		out.Sort = append([]SortField(nil), s.Sort...)
	}
	if s.Filters != nil {
		out.Filters = maps.Clone(s.Filters)
	}
	return out
}

func (s State) SetSearch(text string) State {
	out := s.Clone()
	out.Search = text
	out.Page = 1
	return out
}

func (s State) SetStatusFilter(status string) State {
	out := s.Clone()
	out.StatusFilter = status
	out.Page = 1
	return out
}

// SetFilter задаёт фильтр по равенству; nil или "" удаляет его.
func (s State) SetFilter(name string, value any) State {
	out := s.Clone()
	if isEmpty(value) {
		delete(out.Filters, name)
		if len(out.Filters) == 0 {
			out.Filters = nil
		}
	} else {
		if out.Filters == nil {
			out.Filters = map[string]any{}
		}
		out.Filters[name] = value
	}
	out.Page = 1
	return out
}

func isEmpty(v any) bool {
	if v == nil {
		return true
	}
	if s, ok := v.(string); ok && s == "" {
		return true
	}
	return false
}

// ToggleSort: unset -> asc -> desc -> unset. Новое поле заменяет предыдущее.
func (s State) ToggleSort(field string) State {
	out := s.Clone()
	out.Page = 1

	if len(out.Sort) == 0 || out.Sort[0].Field != field {
		out.Sort = []SortField{{Field: field, Order: Asc}}
		return out
	}
	if out.Sort[0].Order == Asc {
		out.Sort = []SortField{{Field: field, Order: Desc}}
		return out
	}
	out.Sort = nil
	return out
}

// SetPage меняет только страницу. Значения меньше 1 становятся 1.
func (s State) SetPage(n int) State {
	out := s.Clone()
	if n < 1 {
		n = 1
	}
	out.Page = n
	return out
}

// SetLimit: недопустимый размер страницы заменяется на DefaultLimit.
func (s State) SetLimit(n int) State {
	out := s.Clone()
	if !IsAllowedLimit(n) {
		n = DefaultLimit
	}
	out.Limit = n
	out.Page = 1
	return out
}

// Clear сбрасывает поиск, фильтры и сортировку. Размер страницы сохраняется.
func (s State) Clear() State {
	limit := s.Limit
	if !IsAllowedLimit(limit) {
		limit = DefaultLimit
	}
	return State{Page: 1, Limit: limit}
}

// SortFor возвращает направление сортировки по полю, "" если поле не активно.
func (s State) SortFor(field string) Direction {
	if len(s.Sort) == 1 && s.Sort[0].Field == field {
		return s.Sort[0].Order
	}
	return ""
}
