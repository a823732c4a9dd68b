package entities

// AgentReportRow - число лидов агента по статусам.
type AgentReportRow struct {
	UserID    int    `db:"user_id"`
	UserName  string `db:"user_name"`
	UserEmail string `db:"user_email"`
	Total     int    `db:"total"`
	Pending   int    `db:"pending"`
	Working   int    `db:"working"`
	Completed int    `db:"completed"`
}

type ReportTotals struct {
	Total     int `db:"total"`
	Pending   int `db:"pending"`
	Working   int `db:"working"`
	Completed int `db:"completed"`
}
