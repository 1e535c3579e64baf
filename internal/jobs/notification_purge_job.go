package jobs

import (
	"context"
	"time"

	"fooddelivery/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// DefaultPurgeSchedule runs the purge every night at 03:00.
const DefaultPurgeSchedule = "0 0 3 * * *"

// NotificationPurgeJob removes read notifications older than the retention
// period on a cron schedule (with seconds).
type NotificationPurgeJob struct {
	handler   commands.PurgeReadNotificationsCommandHandler
	retention time.Duration
	schedule  string
	cron      *cron.Cron
	logger    *zap.Logger
}

func NewNotificationPurgeJob(
	handler commands.PurgeReadNotificationsCommandHandler,
	schedule string,
	retention time.Duration,
	logger *zap.Logger,
) *NotificationPurgeJob {
	if schedule == "" {
		schedule = DefaultPurgeSchedule
	}
	return &NotificationPurgeJob{
		handler:   handler,
		retention: retention,
		schedule:  schedule,
		cron:      cron.New(cron.WithSeconds()),
		logger:    logger.Named("notification_purge_job"),
	}
}

func (j *NotificationPurgeJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() { j.Run(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("notification purge job started",
		zap.String("schedule", j.schedule), zap.Duration("retention", j.retention))
	return nil
}

// Run performs one purge. Failures are logged; the next tick tries again.
func (j *NotificationPurgeJob) Run(ctx context.Context) {
	command, err := commands.NewPurgeReadNotificationsCommand(j.retention)
	if err != nil {
		j.logger.Error("notification purge job misconfigured", zap.Error(err))
		return
	}

	removed, err := j.handler.Handle(ctx, command)
	if err != nil {
		j.logger.Error("notification purge job failed", zap.Error(err))
		return
	}
	j.logger.Info("read notifications purged", zap.Int64("removed", removed))
}

// Stop waits for a running purge to finish.
func (j *NotificationPurgeJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("notification purge job stopped")
}
