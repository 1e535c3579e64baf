package jobs_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/notification"
	"fooddelivery/internal/jobs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type MockNotificationRepository struct{ mock.Mock }

func (m *MockNotificationRepository) Add(ctx context.Context, n *notification.Notification) error {
	return m.Called(ctx, n).Error(0)
}

func (m *MockNotificationRepository) MarkRead(ctx context.Context, recipientID, id kernel.UUID) error {
	return m.Called(ctx, recipientID, id).Error(0)
}

func (m *MockNotificationRepository) MarkAllRead(ctx context.Context, recipientID kernel.UUID) (int64, error) {
	args := m.Called(ctx, recipientID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNotificationRepository) DeleteReadBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

type MockSubscriber struct{ mock.Mock }

func (m *MockSubscriber) Start(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockSubscriber) Stop() {
	m.Called()
}

func newPurgeJob(repo *MockNotificationRepository, schedule string) (*jobs.NotificationPurgeJob, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.InfoLevel)
	handler := commands.NewPurgeReadNotificationsCommandHandler(repo)
	return jobs.NewNotificationPurgeJob(handler, schedule, 24*time.Hour, zap.New(core)), logs
}

func TestNotificationPurgeJob_Run(t *testing.T) {
	t.Run("logs how many were removed", func(t *testing.T) {
		repo := &MockNotificationRepository{}
		repo.On("DeleteReadBefore", mock.Anything, mock.AnythingOfType("time.Time")).Return(int64(3), nil).Once()
		job, logs := newPurgeJob(repo, "")

		job.Run(t.Context())

		entries := logs.FilterMessage("read notifications purged").All()
		require.Len(t, entries, 1)
		assert.Equal(t, int64(3), entries[0].ContextMap()["removed"])
		repo.AssertExpectations(t)
	})

	t.Run("failures are logged", func(t *testing.T) {
		repo := &MockNotificationRepository{}
		repo.On("DeleteReadBefore", mock.Anything, mock.Anything).Return(int64(0), errors.New("db down")).Once()
		job, logs := newPurgeJob(repo, "")

		job.Run(t.Context())

		assert.Equal(t, 1, logs.FilterMessage("notification purge job failed").Len())
	})
}

func TestJobManager_StartAll(t *testing.T) {
	t.Run("starts relay then purge job", func(t *testing.T) {
		relay := &MockSubscriber{}
		relay.On("Start", mock.Anything).Return(nil).Once()
		relay.On("Stop").Return().Once()
		job, _ := newPurgeJob(&MockNotificationRepository{}, "")
		manager := jobs.NewJobManager(job, relay)

		require.NoError(t, manager.StartAll(t.Context()))
		manager.StopAll()

		relay.AssertExpectations(t)
	})

	t.Run("invalid schedule stops the relay", func(t *testing.T) {
		relay := &MockSubscriber{}
		relay.On("Start", mock.Anything).Return(nil).Once()
		relay.On("Stop").Return().Once()
		job, _ := newPurgeJob(&MockNotificationRepository{}, "not a schedule")
		manager := jobs.NewJobManager(job, relay)

		err := manager.StartAll(t.Context())

		require.ErrorContains(t, err, "notification purge job")
		relay.AssertExpectations(t)
	})

	t.Run("relay failure starts nothing", func(t *testing.T) {
		relay := &MockSubscriber{}
		relay.On("Start", mock.Anything).Return(errors.New("redis unreachable")).Once()
		job, _ := newPurgeJob(&MockNotificationRepository{}, "")
		manager := jobs.NewJobManager(job, relay)

		err := manager.StartAll(t.Context())

		require.ErrorContains(t, err, "redis unreachable")
		relay.AssertNotCalled(t, "Stop")
	})

	t.Run("without relay", func(t *testing.T) {
		job, _ := newPurgeJob(&MockNotificationRepository{}, "")
		manager := jobs.NewJobManager(job, nil)

		require.NoError(t, manager.StartAll(t.Context()))
		manager.StopAll()
	})
}
