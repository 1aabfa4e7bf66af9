// Package main runs the action item reminder sweep and the daily digest,
// either once from a scheduler or as a Lambda behind a scheduled
// EventBridge rule.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/johnquangdev/meetingmind/internal/bootstrap"
	"github.com/johnquangdev/meetingmind/internal/domain/entities"
	"github.com/johnquangdev/meetingmind/internal/usecase/reminder"
	"github.com/johnquangdev/meetingmind/pkg/config"
	"github.com/johnquangdev/meetingmind/pkg/jobcontext"
)

const jobType = "reminder"

// App holds configuration and the dependencies of one process
type App struct {
	cfg    *config.Config
	logger *zap.Logger
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logger, err := bootstrap.NewLogger(cfg.Server.Environment)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	app := &App{cfg: cfg, logger: logger}

	if os.Getenv("AWS_LAMBDA_RUNTIME_API") != "" {
		lambda.Start(app.handler)
		return
	}

	if err := app.rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func (a *App) rootCmd() *cobra.Command {
	var date string

	root := &cobra.Command{
		Use:          "reminder",
		Short:        "Send reminders for overdue and due-soon action items",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runOnce(cmd, date)
		},
	}

	run := &cobra.Command{
		Use:   "run",
		Short: "Sweep completed meetings once and publish digests",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runOnce(cmd, date)
		},
	}
	root.PersistentFlags().StringVar(&date, "date", "", "evaluate deadlines as of this UTC date (YYYY-MM-DD)")

	digest := &cobra.Command{
		Use:   "digest",
		Short: "Send each user a daily summary of their open action items",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.digestOnce(cmd, date)
		},
	}

	purge := &cobra.Command{
		Use:   "purge-expired",
		Short: "Delete demo meetings past their time-to-live",
		Long:  "Delete demo meetings past their time-to-live. Only needed on stores without native record expiry.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.purgeExpired(cmd.Context())
		},
	}

	root.AddCommand(run, digest, purge)
	return root
}

// handler is the Lambda entry point for scheduled invocations. Events from
// a rule whose name ends in daily-digest send digests; any other rule sweeps.
func (a *App) handler(ctx context.Context, ev events.CloudWatchEvent) (interface{}, error) {
	a.logger.Info("reminder.invoked",
		zap.String("event_id", ev.ID),
		zap.String("source", ev.Source),
		zap.Strings("resources", ev.Resources),
		zap.Time("event_time", ev.Time),
	)
	if isDigestRule(ev.Resources) {
		return a.digest(ctx, nil)
	}
	return a.sweep(ctx, nil)
}

func isDigestRule(resources []string) bool {
	for _, r := range resources {
		if strings.HasSuffix(r, "daily-digest") {
			return true
		}
	}
	return false
}

// parseClock pins the clock to a UTC date when --date is set
func parseClock(date string) (func() time.Time, error) {
	if date == "" {
		return nil, nil
	}
	day, err := time.Parse(entities.DeadlineLayout, date)
	if err != nil {
		return nil, fmt.Errorf("invalid --date %q: %w", date, err)
	}
	return func() time.Time { return day }, nil
}

func (a *App) runOnce(cmd *cobra.Command, date string) error {
	clock, err := parseClock(date)
	if err != nil {
		return err
	}
	report, err := a.sweep(cmd.Context(), clock)
	if err != nil {
		return err
	}
	return writeReport(cmd, report)
}

func (a *App) digestOnce(cmd *cobra.Command, date string) error {
	clock, err := parseClock(date)
	if err != nil {
		return err
	}
	report, err := a.digest(cmd.Context(), clock)
	if err != nil {
		return err
	}
	return writeReport(cmd, report)
}

func writeReport(cmd *cobra.Command, report interface{}) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

// sweep runs one reminder pass inside a job context bounded by
// REMINDER_TIMEOUT
func (a *App) sweep(parent context.Context, clock func() time.Time) (*reminder.Report, error) {
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := jobcontext.JobBegin(parent, jobType, a.cfg.Reminder.Timeout)
	defer cancel()

	meta := jobcontext.GetJobMetadata(ctx)
	logger := a.logger.With(zap.String("job_id", meta.JobID.String()), zap.String("job_type", meta.JobType))

	stores, err := bootstrap.OpenStores(ctx, a.cfg, logger)
	if err != nil {
		return nil, err
	}
	defer stores.Close()

	notifications, err := bootstrap.OpenNotifications(a.cfg, logger)
	if err != nil {
		return nil, err
	}
	defer notifications.Close()

	svc := reminder.NewService(
		stores.Meetings,
		notifications.Channel,
		notifications.Ledger,
		reminder.Config{
			LeadDays:          a.cfg.Reminder.LeadDays,
			Dedupe:            a.cfg.Reminder.Dedupe,
			DedupeTTL:         a.cfg.Reminder.DedupeTTL,
			PublishMaxElapsed: a.cfg.Reminder.PublishMaxElapsed,
		},
		logger,
	)
	if clock != nil {
		svc.WithClock(clock)
	}

	var report *reminder.Report
	err = jobcontext.JobEnd(ctx, func(ctx context.Context) error {
		var runErr error
		report, runErr = svc.Run(ctx)
		return runErr
	})
	if err != nil {
		logger.Error("reminder.run.failed", zap.Error(err))
		return nil, err
	}

	logger.Info("reminder.run.completed",
		zap.String("date", report.Date),
		zap.Int("meetings_scanned", report.MeetingsScanned),
		zap.Int("sent", report.Sent),
		zap.Int("failed", report.Failed),
		zap.Int("skipped", report.Skipped),
		zap.Duration("elapsed", jobcontext.GetJobMetadata(ctx).Elapsed),
	)
	return report, nil
}

// digest sends the per-user daily summaries inside a job context
func (a *App) digest(parent context.Context, clock func() time.Time) (*reminder.DigestReport, error) {
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := jobcontext.JobBegin(parent, "daily-digest", a.cfg.Reminder.Timeout)
	defer cancel()

	meta := jobcontext.GetJobMetadata(ctx)
	logger := a.logger.With(zap.String("job_id", meta.JobID.String()), zap.String("job_type", meta.JobType))

	stores, err := bootstrap.OpenStores(ctx, a.cfg, logger)
	if err != nil {
		return nil, err
	}
	defer stores.Close()

	notifications, err := bootstrap.OpenNotifications(a.cfg, logger)
	if err != nil {
		return nil, err
	}
	defer notifications.Close()

	svc := reminder.NewDigestService(
		stores.Meetings,
		notifications.Direct,
		reminder.Config{PublishMaxElapsed: a.cfg.Reminder.PublishMaxElapsed},
		logger,
	)
	if clock != nil {
		svc.WithClock(clock)
	}

	var report *reminder.DigestReport
	err = jobcontext.JobEnd(ctx, func(ctx context.Context) error {
		var runErr error
		report, runErr = svc.Run(ctx)
		return runErr
	})
	if err != nil {
		logger.Error("digest.run.failed", zap.Error(err))
		return nil, err
	}

	logger.Info("digest.run.completed",
		zap.String("date", report.Date),
		zap.Int("users", report.Users),
		zap.Int("sent", report.Sent),
		zap.Int("failed", report.Failed),
		zap.Int("skipped", report.Skipped),
		zap.Duration("elapsed", jobcontext.GetJobMetadata(ctx).Elapsed),
	)
	return report, nil
}

func (a *App) purgeExpired(parent context.Context) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := jobcontext.JobBegin(parent, "purge-expired", a.cfg.Reminder.Timeout)
	defer cancel()

	stores, err := bootstrap.OpenStores(ctx, a.cfg, a.logger)
	if err != nil {
		return err
	}
	defer stores.Close()

	purger, ok := stores.Purger()
	if !ok {
		a.logger.Info("store expires records natively; nothing to purge", zap.String("store", a.cfg.Store.Backend))
		return nil
	}

	return jobcontext.JobEnd(ctx, func(ctx context.Context) error {
		n, err := purger.DeleteExpired(ctx, time.Now().UTC())
		if err != nil {
			return err
		}
		a.logger.Info("meetings.expired.purged", zap.Int64("count", n))
		return nil
	})
}
