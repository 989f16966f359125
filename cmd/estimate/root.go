package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	app "github.com/okian/auditplan/internal/app"
	"github.com/okian/auditplan/internal/config"
	"github.com/okian/auditplan/internal/domain/model"
	"github.com/okian/auditplan/pkg/logger"
)

var errUsage = errors.New("usage")

type rootOptions struct {
	addDelay    int
	engagements string
	staff       string
	sqlite      string
	teamSize    int
	compact     bool
	logLevel    string
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "estimate <industry> <size> <complexity> <prev_issues>",
		Short: "Estimate hours, duration and core team for an audit engagement",
		Long: "Fits a linear model on historical engagements, estimates the hours of a new one, " +
			"derives a duration in weeks and ranks the staff roster. The result is printed as JSON.",
		Example: "  estimate Retail Medium High 2 --add-delay 1",
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) != 4 {
				return fmt.Errorf("%w: expected 4 arguments, got %d", errUsage, len(args))
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEstimate(cmd, opts, args, stdout, stderr)
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %w", errUsage, err)
	})

	f := cmd.Flags()
	f.IntVar(&opts.addDelay, "add-delay", 0, "Extra weeks to add to the base duration")
	f.StringVar(&opts.engagements, "engagements", "", "Historical engagements file (.csv, .xlsx, .yaml)")
	f.StringVar(&opts.staff, "staff", "", "Staff roster file (.csv, .xlsx, .yaml)")
	f.StringVar(&opts.sqlite, "sqlite", "", "SQLite database with engagements and staff tables")
	f.IntVar(&opts.teamSize, "team-size", 0, "Size of the suggested core team")
	f.BoolVar(&opts.compact, "compact", false, "Print JSON on a single line")
	f.StringVar(&opts.logLevel, "log-level", "warn", "Log level written to stderr (debug, info, warn, error)")
	return cmd
}

func runEstimate(cmd *cobra.Command, opts *rootOptions, args []string, stdout, stderr io.Writer) error {
	ctx := cmd.Context()

	prevIssues, err := strconv.Atoi(args[3])
	if err != nil {
		return fmt.Errorf("prev_issues %q is not an integer: %w", args[3], model.ErrInvalidInput)
	}

	if err := logger.InitWithWriter(stderr, logger.FormatJSON); err != nil {
		return err
	}
	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}
	applyFlags(cmd, cfg, opts)
	if err := cfg.Validate(ctx); err != nil {
		return err
	}
	if err := logger.SetLevelString(opts.logLevel); err != nil {
		return fmt.Errorf("%w: %w", errUsage, err)
	}

	svc, err := app.Bootstrap(ctx, cfg, logger.Named("estimate"))
	if err != nil {
		return err
	}

	res, err := svc.Estimate(ctx, model.RawRequest{
		Industry:   args[0],
		Size:       args[1],
		Complexity: args[2],
		PrevIssues: prevIssues,
		AddDelay:   opts.addDelay,
	})
	if err != nil {
		return err
	}

	enc := json.NewEncoder(stdout)
	if !opts.compact {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(res)
}

// applyFlags lets explicit flags override file and env configuration.
func applyFlags(cmd *cobra.Command, cfg *config.Config, opts *rootOptions) {
	flags := cmd.Flags()
	if flags.Changed("engagements") {
		cfg.EngagementsPath = opts.engagements
	}
	if flags.Changed("staff") {
		cfg.StaffPath = opts.staff
	}
	if flags.Changed("sqlite") {
		cfg.SQLitePath = opts.sqlite
	}
	if flags.Changed("team-size") {
		cfg.TeamSize = opts.teamSize
	}
}
