package entities

const (
	StatusPending   = "Pending"
	StatusWorking   = "Working"
	StatusCompleted = "Completed"
)

type LeadStatus struct {
	ID   int    `db:"id"`
	Name string `db:"name"`
}
