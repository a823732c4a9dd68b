package listing

// Page - нормализованный ответ списочного эндпоинта.
// TotalPages == 0 означает, что сервер не сообщил число страниц.
type Page[T any] struct {
	Rows       []T
	TotalPages int
	Summary    any
}

// ResultSet - то, что видит презентационный слой.
type ResultSet[T any] struct {
	Rows       []T    `json:"rows"`
	Page       int    `json:"page"`
	Limit      int    `json:"limit"`
	TotalPages int    `json:"totalPages"`
	Loading    bool   `json:"loading"`
	Error      string `json:"error,omitempty"`
	Summary    any    `json:"summary,omitempty"`
}

func (r ResultSet[T]) clone() ResultSet[T] {
	out := r
	out.Rows = append(make([]T, 0, len(r.Rows)), r.Rows...)
	return out
}

// DeriveTotalPages: значение сервера, если оно есть; иначе неполная страница
// считается последней, а полная обещает ещё одну.
func DeriveTotalPages(reported, rowCount, page, limit int) int {
	if reported > 0 {
		return reported
	}
	if page < 1 {
		page = 1
	}
	if rowCount < limit {
		return page
	}
	return page + 1
}
