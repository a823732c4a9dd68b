package entities

// RolePermission - связь роли и права. Удаление связи только снимает IsActive.
type RolePermission struct {
	ID           int    `db:"id"`
	RoleID       int    `db:"role_id"`
	PermissionID int    `db:"permission_id"`
	IsActive     bool   `db:"is_active"`
	Name         string `db:"permission_name"`
	RoutePath    string `db:"permission_route_path"`
}
