package dto

type ReportRequestDTO struct {
	Page  int `json:"page" validate:"omitempty,gte=1"`
	Limit int `json:"limit" validate:"omitempty,gte=1,lte=100"`
}

type AgentReportDTO struct {
	UserID    int    `json:"user_Id"`
	UserName  string `json:"user_Name"`
	UserEmail string `json:"user_Email"`
	Total     int    `json:"total"`
	Pending   int    `json:"pending"`
	Working   int    `json:"working"`
	Completed int    `json:"completed"`
}

type ReportOverallDTO struct {
	Total     int `json:"total"`
	Pending   int `json:"pending"`
	Working   int `json:"working"`
	Completed int `json:"completed"`
}

type ReportDTO struct {
	Agents  []AgentReportDTO `json:"agents"`
	Overall ReportOverallDTO `json:"overall"`
}
