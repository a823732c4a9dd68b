package dto

type LoginDTO struct {
	Email    string `json:"user_Email" validate:"required,email"`
	Password string `json:"user_Password" validate:"required"`
}

type ChangePasswordDTO struct {
	OldPassword        string `json:"oldPassword" validate:"required"`
	NewPassword        string `json:"newPassword" validate:"required,strong_password,nefield=OldPassword"`
	ConfirmNewPassword string `json:"confirmNewPassword" validate:"required,eqfield=NewPassword"`
}

type SetDefaultPasswordDTO struct {
	UserID int `json:"userId" validate:"required,gt=0"`
}

type LoginResponseDTO struct {
	Token string `json:"token"`
}

// LoginResult - токен и признак обязательной смены пароля.
type LoginResult struct {
	Token              string
	MustChangePassword bool
}
