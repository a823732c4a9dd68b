package dto

type UserIDDTO struct {
	UserID int `json:"userId" validate:"required,gt=0"`
}

type UserFormDTO struct {
	UserName             string `json:"userName" validate:"required,max=150"`
	UserEmail            string `json:"userEmail" validate:"required,email,max=255"`
	Password             string `json:"userPassword" validate:"required,strong_password"`
	PasswordConfirmation string `json:"userPassword_confirmation" validate:"required,eqfield=Password"`
	RoleID               int    `json:"roleId" validate:"required,gt=0"`
}

type CreateUserDTO struct {
	FormData UserFormDTO `json:"formData"`
}

type UpdateUserDTO struct {
	UserID    int    `json:"user_Id" validate:"required,gt=0"`
	UserName  string `json:"userName" validate:"required,max=150"`
	UserEmail string `json:"userEmail" validate:"required,email,max=255"`
	RoleID    int    `json:"roleId" validate:"required,gt=0"`
}

type DeleteUserDTO struct {
	UserID int `json:"user_Id" validate:"required,gt=0"`
}

type AgentListDTO struct {
	Role string `json:"role" validate:"required,oneof=Agent Admin Both"`
}

type UserDTO struct {
	ID       int    `json:"user_Id"`
	Name     string `json:"user_Name"`
	Email    string `json:"user_Email"`
	RoleID   int    `json:"role_Id"`
	RoleName string `json:"role_Name"`
}

type AgentOptionDTO struct {
	ID    int    `json:"user_Id"`
	Name  string `json:"user_Name"`
	Email string `json:"user_Email"`
	Role  string `json:"user_Role"`
}
