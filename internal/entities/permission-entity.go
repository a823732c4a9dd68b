package entities

import "crm-console/pkg/types"

// Permission разрешает вызов маршрута RoutePath (например "/sales/lead-list").
type Permission struct {
	ID        int    `db:"id"`
	Name      string `db:"name"`
	RoutePath string `db:"route_path"`

	types.BaseEntity
}
