package service

import (
	"context"

	"github.com/okian/auditplan/internal/adapters/loader"
	"github.com/okian/auditplan/internal/config"
	"github.com/okian/auditplan/pkg/logger"
)

// OptionsFromConfig maps configuration onto service options.
func OptionsFromConfig(cfg *config.Config) []Option {
	return []Option{
		WithRequiredSkills(cfg.RequiredSkills),
		WithSkillWeight(cfg.SkillWeight),
		WithAvailabilityBaseline(cfg.AvailabilityBaselineHours),
		WithTeamSize(cfg.TeamSize),
		WithBaselineStaff(cfg.BaselineStaff),
		WithHoursPerStaffWeek(cfg.HoursPerStaffWeek),
	}
}

// Bootstrap loads the reference data named by cfg and builds a Service over
// it. A SQLite path takes precedence over the file paths.
func Bootstrap(ctx context.Context, cfg *config.Config, log logger.Logger) (*Service, error) {
	var src loader.Source
	if cfg.SQLitePath != "" {
		db, err := loader.OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		defer db.Close()
		src = db
	} else {
		src = loader.NewFileSource(cfg.EngagementsPath, cfg.StaffPath)
	}

	ref, err := loader.Load(ctx, src, loader.WithLogger(log))
	if err != nil {
		return nil, err
	}
	return New(ctx, ref, append(OptionsFromConfig(cfg), WithLogger(log))...)
}
