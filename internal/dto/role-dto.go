package dto

type RoleIDDTO struct {
	RoleID int `json:"roleId" validate:"required,gt=0"`
}

type RoleFormDTO struct {
	RoleName string `json:"roleName" validate:"required,max=100"`
}

type CreateRoleDTO struct {
	FormData RoleFormDTO `json:"formData"`
}

type UpdateRoleDTO struct {
	RoleID   int    `json:"roleId" validate:"required,gt=0"`
	RoleName string `json:"roleName" validate:"required,max=100"`
}

// RoleRefDTO - {role_Id}: удаление роли и список её прав.
type RoleRefDTO struct {
	RoleID int `json:"role_Id" validate:"required,gt=0"`
}

type RolePermissionFormDTO struct {
	RoleID       int `json:"roleId" validate:"required,gt=0"`
	PermissionID int `json:"permissionId" validate:"required,gt=0"`
}

type AddRolePermissionDTO struct {
	FormData RolePermissionFormDTO `json:"formData"`
}

// DeleteRolePermissionDTO: rolePermissionId - id права внутри роли; isActive всегда 0.
type DeleteRolePermissionDTO struct {
	RoleID           int `json:"role_Id" validate:"required,gt=0"`
	RolePermissionID int `json:"rolePermissionId" validate:"required,gt=0"`
	IsActive         int `json:"isActive" validate:"eq=0"`
}

type RoleDTO struct {
	ID   int    `json:"role_Id"`
	Name string `json:"role_Name"`
}

type RolePermissionDTO struct {
	RoleID       int    `json:"role_Id"`
	PermissionID int    `json:"permission_Id"`
	Name         string `json:"permission_Name"`
	RoutePath    string `json:"permission_Route_Path"`
}
