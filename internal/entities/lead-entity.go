package entities

import (
	"github.com/aarondl/null/v8"

	"crm-console/pkg/types"
)

type Lead struct {
	ID           int    `db:"id"`
	Title        string `db:"title"`
	Description  string `db:"description"`
	Source       string `db:"source"`
	ContactName  string `db:"contact_name"`
	ContactEmail string `db:"contact_email"`
	ContactPhone string `db:"contact_phone"`

	StatusID   int    `db:"status_id"`
	StatusName string `db:"status_name"`

	AssignedTo     null.Int    `db:"assigned_to"`
	AssignedToName null.String `db:"assigned_to_name"`
	CreatedBy      int         `db:"created_by"`
	CreatedByName  string      `db:"created_by_name"`
	UpdatedBy      null.Int    `db:"updated_by"`
	UpdatedByName  null.String `db:"updated_by_name"`

	AddressHouse     string      `db:"address_house"`
	AddressStreet    string      `db:"address_street"`
	AddressCity      string      `db:"address_city"`
	AddressPostcode  string      `db:"address_postcode"`
	AddressCountry   string      `db:"address_country"`
	AddressLatitude  null.String `db:"address_latitude"`
	AddressLongitude null.String `db:"address_longitude"`
	Note             string      `db:"note"`

	types.BaseEntity
	types.SoftDelete
}
