// Package service provides the core estimation service that implements
// the dependencies required by the HTTP API and the CLI.
package service

import (
	"context"
	"fmt"
	"math"
	"slices"
	"time"

	"github.com/okian/auditplan/internal/domain/encoding"
	"github.com/okian/auditplan/internal/domain/model"
	"github.com/okian/auditplan/internal/domain/regression"
	"github.com/okian/auditplan/internal/domain/scoring"
	"github.com/okian/auditplan/internal/domain/selection"
	"github.com/okian/auditplan/internal/domain/timeline"
	"github.com/okian/auditplan/pkg/logger"
	"github.com/okian/auditplan/pkg/metrics"
)

// Service evaluates estimation requests against one immutable reference
// snapshot. The model is fitted and the roster ranked once in New, so the
// Service holds no mutable state and is safe for concurrent use.
type Service struct {
	ref      *model.Reference
	encoder  *encoding.Encoder
	model    *regression.Model
	deriver  *timeline.Deriver
	scorer   *scoring.Scorer
	ranking  []model.RankedStaff
	teamSize int

	scoringOpts  []scoring.Option
	timelineOpts []timeline.Option

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithRequiredSkills sets the skills every engagement needs.
func WithRequiredSkills(skills []string) Option {
	return func(s *Service) {
		s.scoringOpts = append(s.scoringOpts, scoring.WithRequiredSkills(skills))
	}
}

// WithSkillWeight sets the multiplier applied to the matched skill count.
func WithSkillWeight(weight float64) Option {
	return func(s *Service) {
		s.scoringOpts = append(s.scoringOpts, scoring.WithSkillWeight(weight))
	}
}

// WithAvailabilityBaseline sets the weekly hours that score 1.0 availability.
func WithAvailabilityBaseline(hours float64) Option {
	return func(s *Service) {
		s.scoringOpts = append(s.scoringOpts, scoring.WithAvailabilityBaseline(hours))
	}
}

// WithTeamSize sets how many top-ranked staff form the suggested team.
func WithTeamSize(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.teamSize = n
		}
	}
}

// WithBaselineStaff sets the head count used to turn hours into weeks.
func WithBaselineStaff(n int) Option {
	return func(s *Service) {
		s.timelineOpts = append(s.timelineOpts, timeline.WithBaselineStaff(n))
	}
}

// WithHoursPerStaffWeek sets the weekly hours each baseline staff member works.
func WithHoursPerStaffWeek(h float64) Option {
	return func(s *Service) {
		s.timelineOpts = append(s.timelineOpts, timeline.WithHoursPerStaffWeek(h))
	}
}

// New fits the estimator on the reference history and ranks the roster.
func New(ctx context.Context, ref *model.Reference, opts ...Option) (*Service, error) {
	if ref == nil {
		return nil, fmt.Errorf("reference snapshot is nil: %w", model.ErrDataLoad)
	}

	s := &Service{
		ref:      ref,
		teamSize: selection.DefaultTeamSize,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Default()
	}

	s.encoder = encoding.FromReference(ref)
	x, y, err := s.encoder.DesignMatrix(ref.Engagements())
	if err != nil {
		return nil, fmt.Errorf("encode history: %w", err)
	}
	s.model, err = regression.Fit(x, y)
	if err != nil {
		return nil, fmt.Errorf("fit estimator: %w", err)
	}

	s.deriver = timeline.New(s.timelineOpts...)
	s.scorer = scoring.NewScorer(s.scoringOpts...)
	s.ranking = selection.Rank(s.scorer.ScoreAll(ref.Staff()))

	s.logger.Info(ctx, "estimation service ready",
		logger.Int("engagements", ref.EngagementCount()),
		logger.Int("staff", ref.StaffCount()),
		logger.Any("coefficients", s.model.Coefficients()),
		logger.Strings("requiredSkills", s.scorer.RequiredSkills()),
		logger.Int("teamSize", s.teamSize),
	)
	return s, nil
}

// Estimate runs the full pipeline for one request. Validation happens before
// any computation and a failed request yields no partial result.
func (s *Service) Estimate(ctx context.Context, raw model.RawRequest) (model.Result, error) {
	start := time.Now()

	req, err := raw.Parse()
	if err != nil {
		return model.Result{}, s.reject(ctx, raw, err)
	}
	features, err := s.encoder.EncodeRequest(req)
	if err != nil {
		return model.Result{}, s.reject(ctx, raw, err)
	}
	hours, err := s.model.Predict(features)
	if err != nil {
		return model.Result{}, s.reject(ctx, raw, err)
	}
	plan, err := s.deriver.Plan(hours, req.AddDelay)
	if err != nil {
		return model.Result{}, s.reject(ctx, raw, err)
	}

	res := model.Result{
		EstimatedHours:   roundHours(hours),
		BaseWeeks:        plan.BaseWeeks,
		AddDelay:         plan.AddDelay,
		RecommendedWeeks: plan.TotalWeeks,
		StaffRanking:     selection.Clone(s.ranking),
		SuggestedTeam:    selection.Top(s.ranking, s.teamSize),
		ScenarioNote:     s.deriver.Note(plan.AddDelay),
	}

	metrics.RecordEstimate(float64(time.Since(start).Microseconds())/1000, hours, res.RecommendedWeeks)
	if hours < 0 {
		s.logger.Warn(ctx, "negative hours estimate",
			logger.String("industry", req.Industry),
			logger.Float64("hours", hours),
		)
	}
	s.logger.Debug(ctx, "estimate computed",
		logger.String("industry", req.Industry),
		logger.String("size", req.Size.String()),
		logger.String("complexity", req.Complexity.String()),
		logger.Int("prevIssues", req.PrevIssues),
		logger.Float64("hours", res.EstimatedHours),
		logger.Int("weeks", res.RecommendedWeeks),
	)
	return res, nil
}

func (s *Service) reject(ctx context.Context, raw model.RawRequest, err error) error {
	code := model.ErrorCode(err)
	metrics.RecordEstimateError(code)
	s.logger.Debug(ctx, "estimate rejected",
		logger.String("industry", raw.Industry),
		logger.String("code", code),
		logger.Error(err),
	)
	return err
}

// roundHours rounds to two decimals for presentation. Weeks are derived from
// the unrounded value.
func roundHours(h float64) float64 {
	return math.Round(h*100) / 100
}

// Ranking returns the top limit entries of the staff ranking. A non-positive
// limit returns the whole roster.
func (s *Service) Ranking(_ context.Context, limit int) []model.RankedStaff {
	if limit <= 0 {
		return selection.Clone(s.ranking)
	}
	return selection.Top(s.ranking, limit)
}

// StaffRank returns the ranking entry of one staff member.
func (s *Service) StaffRank(_ context.Context, staffID string) (model.RankedStaff, error) {
	entry, ok := selection.Find(s.ranking, staffID)
	if !ok {
		return model.RankedStaff{}, fmt.Errorf("staff %q: %w", staffID, model.ErrStaffNotFound)
	}
	return entry, nil
}

// Summary describes the reference snapshot and planning assumptions.
func (s *Service) Summary(_ context.Context) model.ReferenceSummary {
	sizes := make([]string, len(model.Sizes))
	for i, v := range model.Sizes {
		sizes[i] = v.String()
	}
	complexities := make([]string, len(model.Complexities))
	for i, v := range model.Complexities {
		complexities[i] = v.String()
	}
	return model.ReferenceSummary{
		Industries:        s.encoder.Industries(),
		Sizes:             sizes,
		Complexities:      complexities,
		Engagements:       s.ref.EngagementCount(),
		Staff:             s.ref.StaffCount(),
		RequiredSkills:    s.scorer.RequiredSkills(),
		TeamSize:          s.teamSize,
		BaselineStaff:     s.deriver.BaselineStaff(),
		HoursPerStaffWeek: s.deriver.HoursPerStaffWeek(),
	}
}

// Model returns the fitted coefficients labelled by feature, intercept first.
func (s *Service) Model(_ context.Context) model.ModelSummary {
	theta := s.model.Coefficients()
	names := slices.Concat([]string{"intercept"}, encoding.FeatureNames[:])
	coeffs := make([]model.Coefficient, len(theta))
	for i, v := range theta {
		coeffs[i] = model.Coefficient{Feature: names[i], Value: v}
	}
	return model.ModelSummary{Coefficients: coeffs, TrainedOn: s.ref.EngagementCount()}
}
