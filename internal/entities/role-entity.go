package entities

import "crm-console/pkg/types"

const (
	RoleAdmin = "Admin"
	RoleAgent = "Agent"
)

type Role struct {
	ID   int    `db:"id"`
	Name string `db:"name"`

	types.BaseEntity
}
