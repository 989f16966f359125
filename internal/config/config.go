// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New(ctx) initializer to build a Config with defaults.
// - All functions accept context.Context as the first parameter.
// - Validation failures wrap ErrInvalidConfig.
package config

import (
	"context"
	"fmt"
	"slices"
	"strings"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// EngagementsPath and StaffPath locate the reference files (.csv, .xlsx, .yaml).
	EngagementsPath string `koanf:"engagements_path"`
	StaffPath       string `koanf:"staff_path"`

	// SQLitePath, when set, loads both collections from a SQLite database
	// instead of the file paths.
	SQLitePath string `koanf:"sqlite_path"`

	// RequiredSkills lists the skills every engagement needs.
	RequiredSkills []string `koanf:"required_skills"`

	// SkillWeight multiplies the matched skill count in the staff score.
	SkillWeight float64 `koanf:"skill_weight"`

	// AvailabilityBaselineHours is the weekly availability that scores 1.0.
	AvailabilityBaselineHours float64 `koanf:"availability_baseline_hours"`

	// TeamSize is the number of staff proposed as the core team.
	TeamSize int `koanf:"team_size"`

	// BaselineStaff and HoursPerStaffWeek define the weekly throughput used to
	// turn hours into weeks.
	BaselineStaff     int     `koanf:"baseline_staff"`
	HoursPerStaffWeek float64 `koanf:"hours_per_staff_week"`

	// MaxRankingLimit caps GET /staff/ranking?limit.
	MaxRankingLimit int `koanf:"max_ranking_limit"`

	// Metrics settings. Labels are "key=value" pairs attached to every series;
	// latency buckets are in milliseconds and must increase.
	MetricsEnabled          bool      `koanf:"metrics_enabled"`
	MetricsNamespace        string    `koanf:"metrics_namespace"`
	MetricsSubsystem        string    `koanf:"metrics_subsystem"`
	MetricsLabels           []string  `koanf:"metrics_labels"`
	MetricsLatencyBucketsMs []float64 `koanf:"metrics_latency_buckets_ms"`
}

// New creates a Config populated with defaults. Context is accepted first to
// satisfy the project-wide convention.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:                  "info",
		LogFormat:                 "text",
		Addr:                      ":9080",
		EngagementsPath:           "data/engagements_sample.csv",
		StaffPath:                 "data/staff_sample.csv",
		RequiredSkills:            []string{"Audit"},
		SkillWeight:               2,
		AvailabilityBaselineHours: 40,
		TeamSize:                  4,
		BaselineStaff:             4,
		HoursPerStaffWeek:         30,
		MaxRankingLimit:           100,
		MetricsEnabled:            true,
		MetricsNamespace:          "auditplan",
		MetricsSubsystem:          "estimator",
	}
}

// Validate checks the invariants the rest of the process relies on.
func (c *Config) Validate(_ context.Context) error {
	switch {
	case strings.TrimSpace(c.Addr) == "":
		return fmt.Errorf("addr must not be empty: %w", ErrInvalidConfig)
	case c.SQLitePath == "" && (c.EngagementsPath == "" || c.StaffPath == ""):
		return fmt.Errorf("engagements_path and staff_path are required without sqlite_path: %w", ErrInvalidConfig)
	case c.TeamSize < 1:
		return fmt.Errorf("team_size must be positive, got %d: %w", c.TeamSize, ErrInvalidConfig)
	case c.BaselineStaff < 1:
		return fmt.Errorf("baseline_staff must be positive, got %d: %w", c.BaselineStaff, ErrInvalidConfig)
	case c.HoursPerStaffWeek <= 0:
		return fmt.Errorf("hours_per_staff_week must be positive, got %g: %w", c.HoursPerStaffWeek, ErrInvalidConfig)
	case c.AvailabilityBaselineHours <= 0:
		return fmt.Errorf("availability_baseline_hours must be positive, got %g: %w", c.AvailabilityBaselineHours, ErrInvalidConfig)
	case c.SkillWeight < 0:
		return fmt.Errorf("skill_weight must not be negative, got %g: %w", c.SkillWeight, ErrInvalidConfig)
	case c.MaxRankingLimit < 1:
		return fmt.Errorf("max_ranking_limit must be positive, got %d: %w", c.MaxRankingLimit, ErrInvalidConfig)
	case !slices.IsSorted(c.MetricsLatencyBucketsMs) || len(slices.Compact(slices.Clone(c.MetricsLatencyBucketsMs))) != len(c.MetricsLatencyBucketsMs):
		return fmt.Errorf("metrics_latency_buckets_ms must be strictly increasing: %w", ErrInvalidConfig)
	}
	if _, err := c.MetricsLabelMap(); err != nil {
		return err
	}
	return nil
}

// MetricsLabelMap parses MetricsLabels into constant labels.
func (c *Config) MetricsLabelMap() (map[string]string, error) {
	labels := make(map[string]string, len(c.MetricsLabels))
	for _, pair := range c.MetricsLabels {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("metrics_labels entry %q is not key=value: %w", pair, ErrInvalidConfig)
		}
		labels[key] = strings.TrimSpace(value)
	}
	return labels, nil
}
