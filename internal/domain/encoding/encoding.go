// Package encoding turns categorical engagement attributes into the numeric
// feature vectors consumed by the regression estimator.
//
// The same Encoder is used for the training matrix and for every prediction,
// so the two can never disagree on a category's index.
package encoding

import (
	"fmt"
	"slices"
	"sort"

	"github.com/okian/auditplan/internal/domain/model"
)

// FeatureCount is the length of every encoded vector:
// industry, size, complexity, prev_issues.
const FeatureCount = 4

// FeatureNames labels the positions of an encoded vector.
var FeatureNames = [FeatureCount]string{"industry", "client_size", "complexity", "prev_issues"}

// Encoder holds the industry-to-index mapping derived from history.
type Encoder struct {
	industries []string
	index      map[string]int
}

// New builds an Encoder over the given industries. The list is deduplicated
// and sorted so the mapping does not depend on caller ordering.
func New(industries []string) *Encoder {
	sorted := slices.Clone(industries)
	sort.Strings(sorted)
	sorted = slices.Compact(sorted)

	idx := make(map[string]int, len(sorted))
	for i, name := range sorted {
		idx[name] = i
	}
	return &Encoder{industries: sorted, index: idx}
}

// FromReference builds an Encoder over the industries of a reference snapshot.
func FromReference(ref *model.Reference) *Encoder {
	return New(ref.Industries())
}

// Industries returns the mapping in index order.
func (e *Encoder) Industries() []string {
	return slices.Clone(e.industries)
}

// IndustryIndex returns the position of industry in the sorted mapping.
func (e *Encoder) IndustryIndex(industry string) (int, error) {
	i, ok := e.index[industry]
	if !ok {
		return 0, fmt.Errorf("industry %q not seen in history: %w", industry, model.ErrUnknownCategory)
	}
	return i, nil
}

// Encode produces [industry_index, size_index, complexity_index, prev_issues].
func (e *Encoder) Encode(industry string, size model.Size, complexity model.Complexity, prevIssues int) ([]float64, error) {
	ind, err := e.IndustryIndex(industry)
	if err != nil {
		return nil, err
	}
	sz, err := size.Index()
	if err != nil {
		return nil, err
	}
	cx, err := complexity.Index()
	if err != nil {
		return nil, err
	}
	if prevIssues < 0 {
		return nil, fmt.Errorf("prev_issues %d must be non-negative: %w", prevIssues, model.ErrInvalidInput)
	}
	return []float64{float64(ind), float64(sz), float64(cx), float64(prevIssues)}, nil
}

// EncodeRecord encodes a historical engagement.
func (e *Encoder) EncodeRecord(r model.EngagementRecord) ([]float64, error) {
	return e.Encode(r.ClientIndustry, r.ClientSize, r.Complexity, r.PrevIssues)
}

// EncodeRequest encodes a new engagement request.
func (e *Encoder) EncodeRequest(r model.Request) ([]float64, error) {
	return e.Encode(r.Industry, r.Size, r.Complexity, r.PrevIssues)
}

// DesignMatrix encodes every record into a feature row and collects the
// observed hours as the target vector.
func (e *Encoder) DesignMatrix(records []model.EngagementRecord) ([][]float64, []float64, error) {
	x := make([][]float64, 0, len(records))
	y := make([]float64, 0, len(records))
	for i, r := range records {
		row, err := e.EncodeRecord(r)
		if err != nil {
			return nil, nil, fmt.Errorf("record %d: %w", i, err)
		}
		x = append(x, row)
		y = append(y, r.HoursSpent)
	}
	return x, y, nil
}
