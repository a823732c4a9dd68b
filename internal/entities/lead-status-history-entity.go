package entities

import (
	"time"

	"github.com/aarondl/null/v8"
)

// LeadStatusHistory - запись трекера. OldStatusID пуст у записи о создании лида.
type LeadStatusHistory struct {
	ID            int         `db:"id"`
	LeadID        int         `db:"lead_id"`
	OldStatusID   null.Int    `db:"old_status_id"`
	OldStatusName null.String `db:"old_status_name"`
	NewStatusID   int         `db:"new_status_id"`
	NewStatusName string      `db:"new_status_name"`
	ChangedBy     int         `db:"changed_by"`
	ChangedByName string      `db:"changed_by_name"`
	Comment       string      `db:"comment"`
	Remarks       string      `db:"remarks"`
	CreatedAt     time.Time   `db:"created_at"`
}
