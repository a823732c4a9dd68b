package dto

import "crm-console/pkg/types"

type LeadFilterDataDTO struct {
	Search string           `json:"search" validate:"max=200"`
	Sort   []types.SortItem `json:"sort" validate:"dive"`
	Page   int              `json:"page" validate:"omitempty,gte=1"`
	Limit  int              `json:"limit" validate:"omitempty,gte=1,lte=100"`
	Status string           `json:"lead_Status"`
}

type LeadListDTO struct {
	FilterData LeadFilterDataDTO `json:"filterData"`
}

type LeadIDDTO struct {
	LeadID int `json:"lead_Id" validate:"required,gt=0"`
}

// LeadFormDTO - поля формы лида. Координаты приходят строками.
type LeadFormDTO struct {
	Title            string `json:"lead_Title" validate:"required,max=255"`
	Description      string `json:"lead_Description" validate:"max=5000"`
	Source           string `json:"lead_Source" validate:"max=100"`
	ContactName      string `json:"lead_Contact_Name" validate:"required,max=150"`
	ContactEmail     string `json:"lead_Contact_Email" validate:"omitempty,email,max=255"`
	ContactPhone     string `json:"lead_Contact_Phone" validate:"omitempty,phone"`
	Status           string `json:"lead_Status"`
	AssignedTo       int    `json:"lead_Assigned_To" validate:"omitempty,gt=0"`
	AddressHouse     string `json:"lead_Address_House" validate:"max=50"`
	AddressStreet    string `json:"lead_Address_Street" validate:"max=255"`
	AddressCity      string `json:"lead_Address_City" validate:"max=100"`
	AddressPostcode  string `json:"lead_Address_Postcode" validate:"max=20"`
	AddressCountry   string `json:"lead_Address_Country" validate:"max=100"`
	AddressLatitude  string `json:"lead_Address_Latitude" validate:"omitempty,latitude"`
	AddressLongitude string `json:"lead_Address_Longitude" validate:"omitempty,longitude"`
	Note             string `json:"lead_Note" validate:"max=5000"`
}

type CreateLeadDTO struct {
	FormData LeadFormDTO `json:"formData"`
}

// UpdateLeadDTO обслуживает и редактирование, и смену статуса:
// непустой lead_status_Id означает смену статуса.
type UpdateLeadDTO struct {
	LeadID   int    `json:"lead_Id" validate:"required,gt=0"`
	StatusID int    `json:"lead_status_Id" validate:"omitempty,gt=0"`
	Comment  string `json:"comment" validate:"max=500"`

	LeadFormDTO `validate:"-"`
}

func (d UpdateLeadDTO) IsStatusChange() bool { return d.StatusID > 0 }

type StatusChangeDTO struct {
	LeadID   int
	StatusID int
	Comment  string
}

type LeadStatusDTO struct {
	ID   int    `json:"lead_status_Id"`
	Name string `json:"lead_status_Name"`
}

type TrackerEventDTO struct {
	ID        int    `json:"id"`
	OldStatus string `json:"oldStatus"`
	NewStatus string `json:"newStatus"`
	ChangedBy string `json:"changedBy"`
	Comment   string `json:"comment"`
	Remarks   string `json:"remarks"`
	CreatedAt string `json:"created_at"`
}

type LeadDTO struct {
	ID               int               `json:"lead_Id"`
	Index            int               `json:"index,omitempty"`
	Title            string            `json:"lead_Title"`
	Description      string            `json:"lead_Description"`
	Source           string            `json:"lead_Source"`
	ContactName      string            `json:"lead_Contact_Name"`
	ContactEmail     string            `json:"lead_Contact_Email"`
	ContactPhone     string            `json:"lead_Contact_Phone"`
	Status           string            `json:"lead_Status"`
	AssignedTo       *int              `json:"lead_Assigned_To"`
	AssignedToName   string            `json:"lead_Assigned_To_Name"`
	CreatedBy        int               `json:"lead_Created_By"`
	CreatedByName    string            `json:"lead_Created_By_Name"`
	UpdatedByName    string            `json:"lead_Updated_By_Name"`
	AddressHouse     string            `json:"lead_Address_House"`
	AddressStreet    string            `json:"lead_Address_Street"`
	AddressCity      string            `json:"lead_Address_City"`
	AddressPostcode  string            `json:"lead_Address_Postcode"`
	AddressCountry   string            `json:"lead_Address_Country"`
	AddressLatitude  *string           `json:"lead_Address_Latitude"`
	AddressLongitude *string           `json:"lead_Address_Longitude"`
	Note             string            `json:"lead_Note"`
	CreatedAt        string            `json:"created_at"`
	Tracker          []TrackerEventDTO `json:"tracker,omitempty"`
}

type AssignedFilterDTO struct {
	AssignedTo types.LooseInt `json:"lead_Assigned_To"`
	CreatedBy  types.LooseInt `json:"lead_Created_By"`
	Status     string         `json:"lead_Status"`
}

type AssignedListDTO struct {
	Page   int               `json:"page" validate:"omitempty,gte=1"`
	Limit  int               `json:"limit" validate:"omitempty,gte=1,lte=100"`
	Filter AssignedFilterDTO `json:"filter"`
	Sort   []types.SortItem  `json:"sort"`
}
