// Package timeline converts an hour estimate into a project duration.
package timeline

import (
	"fmt"
	"math"

	"github.com/okian/auditplan/internal/domain/model"
)

// Baseline staffing assumption.
const (
	DefaultBaselineStaff     = 4
	DefaultHoursPerStaffWeek = 30.0
	minWeeks                 = 1
)

// DelayNote is the advisory attached when the engagement is extended.
const DelayNote = "AI Suggestion: re-check staff availability; consider moving a Senior from a low-risk engagement or hire temporary Associate."

// Plan is the derived duration for one estimate.
type Plan struct {
	BaseWeeks  int
	AddDelay   int
	TotalWeeks int
}

// Option applies a configuration option to the Deriver.
type Option func(*Deriver)

// WithBaselineStaff sets the number of staff assumed to work the engagement.
func WithBaselineStaff(n int) Option {
	return func(d *Deriver) {
		if n > 0 {
			d.staff = n
		}
	}
}

// WithHoursPerStaffWeek sets the weekly hours each baseline staff member contributes.
func WithHoursPerStaffWeek(h float64) Option {
	return func(d *Deriver) {
		if h > 0 {
			d.hoursPerStaff = h
		}
	}
}

// Deriver turns estimated hours into whole weeks.
type Deriver struct {
	staff         int
	hoursPerStaff float64
}

// New creates a Deriver with the 4 x 30h baseline unless overridden.
func New(opts ...Option) *Deriver {
	d := &Deriver{
		staff:         DefaultBaselineStaff,
		hoursPerStaff: DefaultHoursPerStaffWeek,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// BaselineStaff returns the assumed head count.
func (d *Deriver) BaselineStaff() int { return d.staff }

// HoursPerStaffWeek returns the assumed weekly hours per staff member.
func (d *Deriver) HoursPerStaffWeek() float64 { return d.hoursPerStaff }

// WeeklyCapacity returns the team's hours per week.
func (d *Deriver) WeeklyCapacity() float64 {
	return float64(d.staff) * d.hoursPerStaff
}

// BaseWeeks returns max(1, round(hours / capacity)). Halves round to even.
// Negative or non-finite estimates collapse to the one-week floor.
func (d *Deriver) BaseWeeks(hours float64) int {
	w := math.RoundToEven(hours / d.WeeklyCapacity())
	if math.IsNaN(w) || w < minWeeks {
		return minWeeks
	}
	if w > math.MaxInt32 {
		return math.MaxInt32
	}
	return int(w)
}

// Plan derives the base duration and extends it by addDelay whole weeks.
func (d *Deriver) Plan(hours float64, addDelay int) (Plan, error) {
	if addDelay < 0 {
		return Plan{}, fmt.Errorf("add_delay %d must be non-negative: %w", addDelay, model.ErrInvalidInput)
	}
	base := d.BaseWeeks(hours)
	return Plan{BaseWeeks: base, AddDelay: addDelay, TotalWeeks: base + addDelay}, nil
}

// Note returns the scenario advisory for a plan.
func (d *Deriver) Note(addDelay int) string {
	if addDelay > 0 {
		return DelayNote
	}
	return fmt.Sprintf("Duration assumes baseline staffing of %d people at %g hrs/week.", d.staff, d.hoursPerStaff)
}
