package model

import (
	"slices"
	"sort"
)

// Reference is the read-only snapshot of historical engagements and the staff
// roster that every request is evaluated against. Accessors return copies.
type Reference struct {
	engagements []EngagementRecord
	staff       []StaffRecord
	industries  []string
}

// NewReference snapshots the given collections. The industry list is the
// sorted set of distinct industries observed in engagements.
func NewReference(engagements []EngagementRecord, staff []StaffRecord) *Reference {
	ref := &Reference{
		engagements: slices.Clone(engagements),
		staff:       make([]StaffRecord, len(staff)),
	}
	for i, s := range staff {
		ref.staff[i] = s.clone()
	}

	seen := make(map[string]struct{}, len(engagements))
	for _, e := range engagements {
		if _, ok := seen[e.ClientIndustry]; ok {
			continue
		}
		seen[e.ClientIndustry] = struct{}{}
		ref.industries = append(ref.industries, e.ClientIndustry)
	}
	sort.Strings(ref.industries)
	return ref
}

// Engagements returns a copy of the historical records in load order.
func (r *Reference) Engagements() []EngagementRecord {
	return slices.Clone(r.engagements)
}

// Staff returns a copy of the roster in load order.
func (r *Reference) Staff() []StaffRecord {
	out := make([]StaffRecord, len(r.staff))
	for i, s := range r.staff {
		out[i] = s.clone()
	}
	return out
}

// Industries returns the sorted distinct industries. The position of an
// industry in this list is its encoded feature value.
func (r *Reference) Industries() []string {
	return slices.Clone(r.industries)
}

// EngagementCount returns the number of historical records.
func (r *Reference) EngagementCount() int { return len(r.engagements) }

// StaffCount returns the roster size.
func (r *Reference) StaffCount() int { return len(r.staff) }
