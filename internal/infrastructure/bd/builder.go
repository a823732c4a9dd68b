package db

import (
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"crm-console/pkg/types"
)

// Psql - построитель запросов с плейсхолдерами $1, $2 ...
var Psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// ApplyFilters добавляет условия равенства по разрешённым полям.
// Значение со списком через запятую превращается в IN.
func ApplyFilters(builder sq.SelectBuilder, filter types.Filter, allowedMap map[string]string) sq.SelectBuilder {
	for jsonField, val := range filter.Filter {
		dbCol, ok := allowedMap[jsonField]
		if !ok || isBlank(val) {
			continue
		}

		if s, ok := val.(string); ok && strings.Contains(s, ",") {
			builder = builder.Where(sq.Eq{dbCol: strings.Split(s, ",")})
		} else {
			builder = builder.Where(sq.Eq{dbCol: val})
		}
	}
	return builder
}

// ApplySearch ищет подстроку без учёта регистра сразу по нескольким колонкам.
func ApplySearch(builder sq.SelectBuilder, search string, columns []string) sq.SelectBuilder {
	search = strings.TrimSpace(search)
	if search == "" || len(columns) == 0 {
		return builder
	}
	or := sq.Or{}
	for _, col := range columns {
		or = append(or, sq.ILike{col: "%" + search + "%"})
	}
	return builder.Where(or)
}

// ApplyListParams - сортировка в порядке элементов Sort и пагинация.
// Неизвестные поля сортировки молча пропускаются; defaultOrder используется,
// если не осталось ни одного поля.
func ApplyListParams(builder sq.SelectBuilder, filter types.Filter, allowedMap map[string]string, defaultOrder string) sq.SelectBuilder {
	ordered := false
	for _, item := range filter.Sort {
		dbCol, ok := allowedMap[item.Field]
		if !ok {
			continue
		}
		sqlDir := "ASC"
		if strings.EqualFold(item.Order, "desc") {
			sqlDir = "DESC"
		}
		builder = builder.OrderBy(fmt.Sprintf("%s %s", dbCol, sqlDir))
		ordered = true
	}
	if !ordered && defaultOrder != "" {
		builder = builder.OrderBy(defaultOrder)
	}

	if filter.WithPagination {
		if filter.Limit > 0 {
			builder = builder.Limit(uint64(filter.Limit))
		}
		if filter.Offset >= 0 {
			builder = builder.Offset(uint64(filter.Offset))
		}
	}

	return builder
}

func isBlank(val interface{}) bool {
	switch v := val.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(v) == ""
	case int:
		return v == 0
	}
	return false
}
