package model

// RankedStaff is one roster entry with its fitness score and 1-based rank.
type RankedStaff struct {
	Rank                  int      `json:"rank"`
	StaffID               string   `json:"staff_id"`
	Name                  string   `json:"name"`
	Level                 Level    `json:"level"`
	Skills                []string `json:"skills"`
	AvailableHoursPerWeek float64  `json:"available_hours_per_week"`
	Score                 float64  `json:"score"`
}

// Result is the outcome of one estimation request. It is built fresh for
// every request and never shared.
type Result struct {
	EstimatedHours   float64       `json:"estimated_hours"`
	BaseWeeks        int           `json:"base_weeks"`
	AddDelay         int           `json:"add_delay"`
	RecommendedWeeks int           `json:"recommended_weeks"`
	StaffRanking     []RankedStaff `json:"staff_ranking"`
	SuggestedTeam    []RankedStaff `json:"suggested_team"`
	ScenarioNote     string        `json:"scenario_note"`
}
