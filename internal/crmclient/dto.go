package crmclient

import "crm-console/pkg/types"

// Lead - строка списка лидов и, вместе с Tracker, детальная запись.
type Lead struct {
	ID               types.LooseInt    `json:"lead_Id"`
	Index            types.LooseInt    `json:"index,omitempty"`
	Title            string            `json:"lead_Title"`
	Description      string            `json:"lead_Description"`
	Source           string            `json:"lead_Source"`
	ContactName      string            `json:"lead_Contact_Name"`
	ContactEmail     string            `json:"lead_Contact_Email"`
	ContactPhone     string            `json:"lead_Contact_Phone"`
	Status           string            `json:"lead_Status"`
	AssignedTo       types.LooseInt    `json:"lead_Assigned_To"`
	AssignedToName   string            `json:"lead_Assigned_To_Name"`
	CreatedByName    string            `json:"lead_Created_By_Name"`
	UpdatedByName    string            `json:"lead_Updated_By_Name"`
	AddressHouse     string            `json:"lead_Address_House"`
	AddressStreet    string            `json:"lead_Address_Street"`
	AddressCity      string            `json:"lead_Address_City"`
	AddressPostcode  string            `json:"lead_Address_Postcode"`
	AddressCountry   string            `json:"lead_Address_Country"`
	AddressLatitude  types.LooseString `json:"lead_Address_Latitude"`
	AddressLongitude types.LooseString `json:"lead_Address_Longitude"`
	Note             string            `json:"lead_Note"`
	CreatedAt        string            `json:"created_at"`
	Tracker          []TrackerEvent    `json:"tracker,omitempty"`
}

// TrackerEvent - запись истории смены статуса. Порядок задаёт сервер.
type TrackerEvent struct {
	ID        types.LooseInt `json:"id"`
	OldStatus string         `json:"oldStatus"`
	NewStatus string         `json:"newStatus"`
	ChangedBy string         `json:"changedBy"`
	Comment   string         `json:"comment"`
	Remarks   string         `json:"remarks"`
	CreatedAt string         `json:"created_at"`
}

type LeadStatus struct {
	ID   types.LooseInt `json:"lead_status_Id"`
	Name string         `json:"lead_status_Name"`
}

// LeadForm - поля формы создания и редактирования лида.
type LeadForm struct {
	Title            string `json:"lead_Title"`
	Description      string `json:"lead_Description"`
	Source           string `json:"lead_Source"`
	ContactName      string `json:"lead_Contact_Name"`
	ContactEmail     string `json:"lead_Contact_Email"`
	ContactPhone     string `json:"lead_Contact_Phone"`
	Status           string `json:"lead_Status,omitempty"`
	AssignedTo       int    `json:"lead_Assigned_To,omitempty"`
	AddressHouse     string `json:"lead_Address_House"`
	AddressStreet    string `json:"lead_Address_Street"`
	AddressCity      string `json:"lead_Address_City"`
	AddressPostcode  string `json:"lead_Address_Postcode"`
	AddressCountry   string `json:"lead_Address_Country"`
	AddressLatitude  string `json:"lead_Address_Latitude,omitempty"`
	AddressLongitude string `json:"lead_Address_Longitude,omitempty"`
	Note             string `json:"lead_Note"`
}

// StatusChange - тело смены статуса лида.
type StatusChange struct {
	LeadID   int    `json:"lead_Id"`
	Status   string `json:"lead_Status"`
	StatusID int    `json:"lead_status_Id"`
	Comment  string `json:"comment"`
}

type AssignedLead struct {
	ID             types.LooseInt `json:"lead_Id"`
	Title          string         `json:"lead_Title"`
	ContactName    string         `json:"lead_Contact_Name"`
	ContactEmail   string         `json:"lead_Contact_Email"`
	Status         string         `json:"lead_Status"`
	AssignedTo     types.LooseInt `json:"lead_Assigned_To"`
	AssignedToName string         `json:"lead_Assigned_To_Name"`
	CreatedBy      types.LooseInt `json:"lead_Created_By"`
	CreatedByName  string         `json:"lead_Created_By_Name"`
	CreatedAt      string         `json:"created_at"`
}

type User struct {
	ID       types.LooseInt `json:"user_Id"`
	Name     string         `json:"user_Name"`
	Email    string         `json:"user_Email"`
	RoleID   types.LooseInt `json:"role_Id"`
	RoleName string         `json:"role_Name"`
}

type UserForm struct {
	UserName             string `json:"userName"`
	UserEmail            string `json:"userEmail"`
	Password             string `json:"userPassword,omitempty"`
	PasswordConfirmation string `json:"userPassword_confirmation,omitempty"`
	RoleID               int    `json:"roleId"`
}

// AgentOption - элемент выпадающего списка агентов/админов.
type AgentOption struct {
	ID    types.LooseInt `json:"user_Id"`
	Name  string         `json:"user_Name"`
	Email string         `json:"user_Email"`
	Role  string         `json:"user_Role"`
}

type Role struct {
	ID   types.LooseInt `json:"role_Id"`
	Name string         `json:"role_Name"`
}

type RolePermission struct {
	RoleID       types.LooseInt `json:"role_Id"`
	PermissionID types.LooseInt `json:"permission_Id"`
	Name         string         `json:"permission_Name,omitempty"`
	RoutePath    string         `json:"permission_Route_Path,omitempty"`
}

type Permission struct {
	ID        types.LooseInt `json:"permission_Id"`
	Name      string         `json:"permission_Name"`
	RoutePath string         `json:"permission_Route_Path"`
}

type PermissionForm struct {
	Name      string `json:"permission_Name"`
	RoutePath string `json:"permission_Route_Path"`
}

type AgentReport struct {
	UserID    types.LooseInt `json:"user_Id"`
	UserName  string         `json:"user_Name"`
	UserEmail string         `json:"user_Email"`
	Total     int            `json:"total"`
	Pending   int            `json:"pending"`
	Working   int            `json:"working"`
	Completed int            `json:"completed"`
}

type ReportOverall struct {
	Total     int `json:"total"`
	Pending   int `json:"pending"`
	Working   int `json:"working"`
	Completed int `json:"completed"`
}

type LoginResult struct {
	Token string
	// MustChangePassword - сервер вернул страницу принудительной смены пароля.
	MustChangePassword bool
	RedirectPage       string
}
