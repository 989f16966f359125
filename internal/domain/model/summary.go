package model

// ReferenceSummary describes the loaded snapshot and the planning assumptions
// requests are evaluated under.
type ReferenceSummary struct {
	Industries        []string `json:"industries"`
	Sizes             []string `json:"sizes"`
	Complexities      []string `json:"complexities"`
	Engagements       int      `json:"engagements"`
	Staff             int      `json:"staff"`
	RequiredSkills    []string `json:"required_skills"`
	TeamSize          int      `json:"team_size"`
	BaselineStaff     int      `json:"baseline_staff"`
	HoursPerStaffWeek float64  `json:"hours_per_staff_week"`
}

// Coefficient is one fitted regression weight.
type Coefficient struct {
	Feature string  `json:"feature"`
	Value   float64 `json:"value"`
}

// ModelSummary lists the fitted weights, intercept first.
type ModelSummary struct {
	Coefficients []Coefficient `json:"coefficients"`
	TrainedOn    int           `json:"trained_on"`
}
