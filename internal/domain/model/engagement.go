package model

// EngagementRecord is one historical audit engagement with its observed effort.
type EngagementRecord struct {
	ClientIndustry string     `json:"client_industry"`
	ClientSize     Size       `json:"client_size"`
	Complexity     Complexity `json:"complexity"`
	PrevIssues     int        `json:"prev_issues"`
	HoursSpent     float64    `json:"hours_spent"`
}
