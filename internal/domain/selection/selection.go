// Package selection ranks scored staff and picks the suggested core team.
package selection

import (
	"slices"
	"sort"

	"github.com/okian/auditplan/internal/domain/model"
	"github.com/okian/auditplan/internal/domain/scoring"
)

// DefaultTeamSize is the number of staff proposed as the core team.
const DefaultTeamSize = 4

// Rank orders results by score, highest first. Ties keep roster order.
// Ranks are 1-based. An empty input yields an empty, non-nil ranking.
func Rank(results []scoring.Result) []model.RankedStaff {
	ordered := slices.Clone(results)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Score > ordered[j].Score
	})

	ranking := make([]model.RankedStaff, len(ordered))
	for i, r := range ordered {
		ranking[i] = model.RankedStaff{
			Rank:                  i + 1,
			StaffID:               r.Staff.StaffID,
			Name:                  r.Staff.Name,
			Level:                 r.Staff.Level,
			Skills:                slices.Clone(r.Staff.Skills),
			AvailableHoursPerWeek: r.Staff.AvailableHoursPerWeek,
			Score:                 r.Score,
		}
	}
	return ranking
}

// Top returns the first n entries of ranking, or all of them when the roster
// is shorter. The returned slice is a copy.
func Top(ranking []model.RankedStaff, n int) []model.RankedStaff {
	n = max(0, min(n, len(ranking)))
	return Clone(ranking[:n])
}

// Clone deep-copies a ranking so callers can hand it out safely.
func Clone(ranking []model.RankedStaff) []model.RankedStaff {
	out := make([]model.RankedStaff, len(ranking))
	for i, r := range ranking {
		r.Skills = slices.Clone(r.Skills)
		out[i] = r
	}
	return out
}

// Find returns the ranked entry for staffID.
func Find(ranking []model.RankedStaff, staffID string) (model.RankedStaff, bool) {
	for _, r := range ranking {
		if r.StaffID == staffID {
			r.Skills = slices.Clone(r.Skills)
			return r, true
		}
	}
	return model.RankedStaff{}, false
}
