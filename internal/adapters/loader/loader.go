// Package loader reads the historical engagements and the staff roster into
// an immutable model.Reference.
//
// Sources:
//   - FileSource reads .csv, .xlsx, .yaml and .yml files chosen by extension.
//   - SQLiteSource reads the engagements and staff tables of a SQLite database.
//
// Every failure wraps model.ErrDataLoad with the file and row that caused it.
package loader

import (
	"context"
	"fmt"
	"time"

	"github.com/okian/auditplan/internal/domain/model"
	"github.com/okian/auditplan/pkg/logger"
	"github.com/okian/auditplan/pkg/metrics"
)

// Source yields the two reference collections in load order.
type Source interface {
	Engagements(ctx context.Context) ([]model.EngagementRecord, error)
	Staff(ctx context.Context) ([]model.StaffRecord, error)
}

// Option configures Load.
type Option func(*options)

type options struct {
	log logger.Logger
}

// WithLogger sets the logger used to report the loaded snapshot.
func WithLogger(l logger.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}

// Load reads both collections from src and snapshots them. An empty history
// or a roster with repeated staff ids is rejected.
func Load(ctx context.Context, src Source, opts ...Option) (*model.Reference, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if o.log == nil {
		o.log = logger.Default()
	}
	start := time.Now()

	engagements, err := src.Engagements(ctx)
	if err != nil {
		return nil, err
	}
	if len(engagements) == 0 {
		return nil, fmt.Errorf("engagement history is empty: %w", model.ErrDataLoad)
	}

	staff, err := src.Staff(ctx)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]int, len(staff))
	for i, s := range staff {
		if prev, ok := seen[s.StaffID]; ok {
			return nil, fmt.Errorf("staff id %q repeated at rows %d and %d: %w", s.StaffID, prev+1, i+1, model.ErrDataLoad)
		}
		seen[s.StaffID] = i
	}

	ref := model.NewReference(engagements, staff)

	elapsed := time.Since(start)
	metrics.RecordReferenceLoad(float64(elapsed.Nanoseconds()) / 1e6)
	metrics.UpdateReference(ref.EngagementCount(), ref.StaffCount(), len(ref.Industries()))
	o.log.Info(ctx, "reference data loaded",
		logger.Int("engagements", ref.EngagementCount()),
		logger.Int("staff", ref.StaffCount()),
		logger.Strings("industries", ref.Industries()),
		logger.Float64("duration_ms", float64(elapsed.Microseconds())/1000),
	)
	return ref, nil
}
