// Package scoring computes a heuristic fitness score for each staff member.
package scoring

import (
	"slices"
	"strings"

	"github.com/okian/auditplan/internal/domain/model"
)

// Default scoring configuration constants.
const (
	defaultSkillWeight        = 2.0
	defaultAvailabilityHours  = 40.0
	defaultRequiredSkillAudit = "Audit"
)

// Option applies a configuration option to the Scorer.
type Option func(*Scorer)

// WithRequiredSkills replaces the skills an engagement requires.
// Blank entries are dropped; an empty list leaves the default in place.
func WithRequiredSkills(skills []string) Option {
	return func(s *Scorer) {
		cleaned := make([]string, 0, len(skills))
		for _, sk := range skills {
			if sk = strings.TrimSpace(sk); sk != "" {
				cleaned = append(cleaned, sk)
			}
		}
		if len(cleaned) > 0 {
			s.requiredSkills = cleaned
		}
	}
}

// WithSkillWeight sets the multiplier applied to the matched skill count.
func WithSkillWeight(weight float64) Option {
	return func(s *Scorer) {
		if weight > 0 {
			s.skillWeight = weight
		}
	}
}

// WithAvailabilityBaseline sets the weekly hours that count as full availability.
func WithAvailabilityBaseline(hours float64) Option {
	return func(s *Scorer) {
		if hours > 0 {
			s.availabilityHours = hours
		}
	}
}

// Result is the score breakdown for one staff member.
type Result struct {
	Staff      model.StaffRecord
	SkillScore float64
	LevelScore float64
	AvailScore float64
	Score      float64
}

// Scorer scores staff records. It holds no per-call state.
type Scorer struct {
	requiredSkills    []string
	skillWeight       float64
	availabilityHours float64
}

// NewScorer creates a Scorer requiring "Audit" with weight 2 and a 40h baseline.
func NewScorer(opts ...Option) *Scorer {
	s := &Scorer{
		requiredSkills:    []string{defaultRequiredSkillAudit},
		skillWeight:       defaultSkillWeight,
		availabilityHours: defaultAvailabilityHours,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// RequiredSkills returns the skills matched against each roster entry.
func (s *Scorer) RequiredSkills() []string {
	return slices.Clone(s.requiredSkills)
}

// Score computes skill*weight + level + availability/baseline.
// Availability is not capped, so overtime raises the score.
func (s *Scorer) Score(staff model.StaffRecord) Result {
	matched := 0
	for _, req := range s.requiredSkills {
		if staff.HasSkill(req) {
			matched++
		}
	}

	skill := float64(matched)
	level := float64(staff.Level.Weight())
	avail := staff.AvailableHoursPerWeek / s.availabilityHours

	return Result{
		Staff:      staff,
		SkillScore: skill,
		LevelScore: level,
		AvailScore: avail,
		Score:      skill*s.skillWeight + level + avail,
	}
}

// ScoreAll scores every member, preserving roster order.
func (s *Scorer) ScoreAll(roster []model.StaffRecord) []Result {
	out := make([]Result, len(roster))
	for i, staff := range roster {
		out[i] = s.Score(staff)
	}
	return out
}
