package dto

type PermissionIDDTO struct {
	PermissionID int `json:"permission_Id" validate:"required,gt=0"`
}

type PermissionFormDTO struct {
	Name      string `json:"permission_Name" validate:"required,max=150"`
	RoutePath string `json:"permission_Route_Path" validate:"required,startswith=/,max=255"`
}

type UpdatePermissionDTO struct {
	PermissionID int `json:"permission_Id" validate:"required,gt=0"`
	PermissionFormDTO
}

type PermissionDTO struct {
	ID        int    `json:"permission_Id"`
	Name      string `json:"permission_Name"`
	RoutePath string `json:"permission_Route_Path"`
}
