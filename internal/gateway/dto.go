package gateway

import "crm-console/internal/crmclient"

type LoginDTO struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type ChangePasswordDTO struct {
	OldPassword     string `json:"oldPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,strong_password,nefield=OldPassword"`
	ConfirmPassword string `json:"confirmNewPassword" validate:"required,eqfield=NewPassword"`
}

type SearchDTO struct {
	Value string `json:"value" validate:"max=255"`
}

type StatusFilterDTO struct {
	Status string `json:"status" validate:"max=100"`
}

type FilterDTO struct {
	Name  string `json:"name" validate:"required"`
	Value any    `json:"value"`
}

type SortDTO struct {
	Field string `json:"field" validate:"required,max=100"`
}

type PageDTO struct {
	Page int `json:"page"`
}

type LimitDTO struct {
	Limit int `json:"limit" validate:"page_size"`
}

type StatusDraftDTO struct {
	Status  string `json:"status" validate:"required"`
	Comment string `json:"comment" validate:"max=500"`
}

type FormOpenDTO struct {
	Mode string `json:"mode" validate:"required,oneof=create edit"`
	ID   int    `json:"id" validate:"required_if=Mode edit"`
}

type LeadFormDTO struct {
	Title            string `json:"lead_Title" validate:"required,max=255"`
	Description      string `json:"lead_Description"`
	Source           string `json:"lead_Source"`
	ContactName      string `json:"lead_Contact_Name" validate:"required,max=255"`
	ContactEmail     string `json:"lead_Contact_Email" validate:"omitempty,email"`
	ContactPhone     string `json:"lead_Contact_Phone" validate:"omitempty,phone"`
	Status           string `json:"lead_Status"`
	AssignedTo       int    `json:"lead_Assigned_To"`
	AddressHouse     string `json:"lead_Address_House"`
	AddressStreet    string `json:"lead_Address_Street"`
	AddressCity      string `json:"lead_Address_City"`
	AddressPostcode  string `json:"lead_Address_Postcode"`
	AddressCountry   string `json:"lead_Address_Country"`
	AddressLatitude  string `json:"lead_Address_Latitude" validate:"omitempty,latitude"`
	AddressLongitude string `json:"lead_Address_Longitude" validate:"omitempty,longitude"`
	Note             string `json:"lead_Note"`
}

func (d LeadFormDTO) toForm() crmclient.LeadForm {
	return crmclient.LeadForm{
		Title:            d.Title,
		Description:      d.Description,
		Source:           d.Source,
		ContactName:      d.ContactName,
		ContactEmail:     d.ContactEmail,
		ContactPhone:     d.ContactPhone,
		Status:           d.Status,
		AssignedTo:       d.AssignedTo,
		AddressHouse:     d.AddressHouse,
		AddressStreet:    d.AddressStreet,
		AddressCity:      d.AddressCity,
		AddressPostcode:  d.AddressPostcode,
		AddressCountry:   d.AddressCountry,
		AddressLatitude:  d.AddressLatitude,
		AddressLongitude: d.AddressLongitude,
		Note:             d.Note,
	}
}

type CreateUserDTO struct {
	UserName             string `json:"userName" validate:"required,max=255"`
	UserEmail            string `json:"userEmail" validate:"required,email"`
	Password             string `json:"userPassword" validate:"required,strong_password"`
	PasswordConfirmation string `json:"userPassword_confirmation" validate:"required,eqfield=Password"`
	RoleID               int    `json:"roleId" validate:"required,gt=0"`
}

func (d CreateUserDTO) toForm() crmclient.UserForm {
	return crmclient.UserForm{
		UserName:             d.UserName,
		UserEmail:            d.UserEmail,
		Password:             d.Password,
		PasswordConfirmation: d.PasswordConfirmation,
		RoleID:               d.RoleID,
	}
}

type UpdateUserDTO struct {
	UserName  string `json:"userName" validate:"required,max=255"`
	UserEmail string `json:"userEmail" validate:"required,email"`
	RoleID    int    `json:"roleId" validate:"required,gt=0"`
}

func (d UpdateUserDTO) toForm() crmclient.UserForm {
	return crmclient.UserForm{UserName: d.UserName, UserEmail: d.UserEmail, RoleID: d.RoleID}
}

type RoleDTO struct {
	RoleName string `json:"roleName" validate:"required,max=100"`
}

type RolePermissionDTO struct {
	PermissionID int `json:"permissionId" validate:"required,gt=0"`
}

type PermissionDTO struct {
	Name      string `json:"permission_Name" validate:"required,max=255"`
	RoutePath string `json:"permission_Route_Path" validate:"required,startswith=/"`
}

func (d PermissionDTO) toForm() crmclient.PermissionForm {
	return crmclient.PermissionForm{Name: d.Name, RoutePath: d.RoutePath}
}
