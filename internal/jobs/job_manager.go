package jobs

import (
	"context"
	"fmt"
)

// Subscriber is a long-running listener such as the live channel relay.
type Subscriber interface {
	Start(ctx context.Context) error
	Stop()
}

// JobManager starts and stops the background work of the service.
type JobManager struct {
	purgeJob *NotificationPurgeJob
	relay    Subscriber
}

// NewJobManager accepts a nil relay when live events stay on this instance.
func NewJobManager(purgeJob *NotificationPurgeJob, relay Subscriber) *JobManager {
	return &JobManager{purgeJob: purgeJob, relay: relay}
}

// StartAll starts every job. Nothing is left running when it fails.
func (jm *JobManager) StartAll(ctx context.Context) error {
	if jm.relay != nil {
		if err := jm.relay.Start(ctx); err != nil {
			return fmt.Errorf("failed to start live channel relay: %w", err)
		}
	}

	if err := jm.purgeJob.Start(); err != nil {
		if jm.relay != nil {
			jm.relay.Stop()
		}
		return fmt.Errorf("failed to start notification purge job: %w", err)
	}

	return nil
}

func (jm *JobManager) StopAll() {
	jm.purgeJob.Stop()
	if jm.relay != nil {
		jm.relay.Stop()
	}
}
