package main

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/fastygo/jobboard/internal/app"
	"github.com/fastygo/jobboard/internal/config"
	pgInfra "github.com/fastygo/jobboard/internal/infrastructure/postgres"
	"github.com/fastygo/jobboard/pkg/logger"
	"github.com/fastygo/jobboard/repository"
	dashboardUC "github.com/fastygo/jobboard/usecase/dashboard"
)

// openStorage is swapped out in tests.
var openStorage = func(ctx context.Context, cfg *config.Config, log *zap.Logger) (*app.Storage, error) {
	return app.OpenStorage(ctx, cfg, clockwork.NewRealClock(), log)
}

type cliEnv struct {
	cfg    *config.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	env := &cliEnv{}

	root := &cobra.Command{
		Use:   "jobboardctl",
		Short: "Operator tooling for the job board service",
		Long: `jobboardctl runs maintenance tasks against the job board storage.

Examples:
  jobboardctl migrate                      # Apply pending SQL migrations
  jobboardctl jobs                         # List every posting with its status
  jobboardctl jobs --employer <id>         # List one employer's postings
  jobboardctl dashboard --employer <id>    # Show an employer's dashboard counts`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			log, err := logger.New(logger.Config{
				Level:    cfg.Logger.Level,
				Encoding: "console",
				Output:   zapcore.AddSync(cmd.ErrOrStderr()),
			})
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			env.cfg = cfg
			env.logger = log
			return nil
		},
	}

	root.AddCommand(newMigrateCmd(env), newJobsCmd(env), newDashboardCmd(env))
	return root
}

func newMigrateCmd(env *cliEnv) *cobra.Command {
	var path string
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending PostgreSQL migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			if path == "" {
				path = env.cfg.Migrations.Path
			}
			if err := pgInfra.Migrate(env.cfg.Database.URL, path, env.logger); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
			return nil
		},
	}
	cmd.Flags().StringVar(&path, "path", "", "Migrations directory (defaults to MIGRATIONS_PATH)")
	return cmd
}

func newJobsCmd(env *cliEnv) *cobra.Command {
	var employerID string
	cmd := &cobra.Command{
		Use:   "jobs",
		Short: "List job postings with their open or closed status",
		RunE: func(cmd *cobra.Command, args []string) error {
			storage, err := openStorage(cmd.Context(), env.cfg, env.logger)
			if err != nil {
				return err
			}
			defer storage.Close(env.logger)

			jobs, err := storage.Jobs.List(cmd.Context(), repository.JobFilter{EmployerID: employerID})
			if err != nil {
				return fmt.Errorf("list jobs: %w", err)
			}

			now := time.Now()
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTITLE\tEMPLOYER\tTYPE\tDEADLINE\tSTATUS")
			for i := range jobs {
				job := &jobs[i]
				job.Annotate(now)
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
					job.ID,
					job.Title,
					job.EmployerName,
					job.EmploymentType,
					job.ApplicationDeadline.UTC().Format(time.RFC3339),
					job.Status,
				)
			}
			return w.Flush()
		},
	}
	cmd.Flags().StringVar(&employerID, "employer", "", "Only list postings owned by this employer")
	return cmd
}

func newDashboardCmd(env *cliEnv) *cobra.Command {
	var employerID string
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show application counts for an employer",
		RunE: func(cmd *cobra.Command, args []string) error {
			storage, err := openStorage(cmd.Context(), env.cfg, env.logger)
			if err != nil {
				return err
			}
			defer storage.Close(env.logger)

			user, err := storage.Users.GetByID(cmd.Context(), employerID)
			if err != nil {
				return fmt.Errorf("lookup employer: %w", err)
			}

			uc := dashboardUC.New(storage.Dashboard, storage.Activity, env.logger)
			stats, err := uc.EmployerDashboard(cmd.Context(), user.Principal())
			if err != nil {
				return err
			}
			return printDashboard(cmd.OutOrStdout(), user.Email, stats.Jobs, stats.Applications, stats.Accepted, stats.Rejected)
		},
	}
	cmd.Flags().StringVar(&employerID, "employer", "", "Employer account id")
	_ = cmd.MarkFlagRequired("employer")
	return cmd
}

func printDashboard(out io.Writer, email string, jobs, applications, accepted, rejected int) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Employer:\t%s\n", email)
	fmt.Fprintf(w, "Jobs:\t%d\n", jobs)
	fmt.Fprintf(w, "Applications:\t%d\n", applications)
	fmt.Fprintf(w, "Accepted:\t%d\n", accepted)
	fmt.Fprintf(w, "Rejected:\t%d\n", rejected)
	return w.Flush()
}
