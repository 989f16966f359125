package model

import (
	"slices"
	"strings"
)

// SkillSeparator delimits skills in the stored roster representation.
const SkillSeparator = ","

// StaffRecord is one member of the available roster.
type StaffRecord struct {
	StaffID               string   `json:"staff_id"`
	Name                  string   `json:"name"`
	Level                 Level    `json:"level"`
	Skills                []string `json:"skills"`
	AvailableHoursPerWeek float64  `json:"available_hours_per_week"`
}

// HasSkill reports whether the member lists skill. Matching is exact.
func (s StaffRecord) HasSkill(skill string) bool {
	return slices.Contains(s.Skills, skill)
}

// clone returns a copy that shares no backing arrays with s.
func (s StaffRecord) clone() StaffRecord {
	s.Skills = slices.Clone(s.Skills)
	return s
}

// ParseSkills splits a delimited skill list, trimming whitespace around each
// entry and dropping empty ones.
func ParseSkills(raw string) []string {
	parts := strings.Split(raw, SkillSeparator)
	skills := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			skills = append(skills, p)
		}
	}
	return skills
}

// JoinSkills renders skills back into the stored representation.
func JoinSkills(skills []string) string {
	return strings.Join(skills, SkillSeparator+" ")
}
