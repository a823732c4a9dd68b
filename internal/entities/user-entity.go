package entities

import "crm-console/pkg/types"

type User struct {
	ID       int    `db:"id"`
	Name     string `db:"name"`
	Email    string `db:"email"`
	Password string `db:"password"`
	RoleID   int    `db:"role_id"`
	RoleName string `db:"role_name"`

	MustChangePassword bool `db:"must_change_password"`

	types.BaseEntity
	types.SoftDelete
}

func (u *User) IsAdmin() bool { return u.RoleName == RoleAdmin }
