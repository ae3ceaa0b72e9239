package jobs

import (
	"context"

	"agrimarket/internal/core/ports"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// relayBatchSize bounds how many staged events one tick hands to the
// notifier.
const relayBatchSize = 100

// NotificationRelayJob drains the transactional outbox on a schedule and
// publishes staged status-change events. An event is marked published only
// after the notifier accepted it, so failures are retried on the next tick.
type NotificationRelayJob struct {
	outbox   ports.OutboxRepository
	notifier ports.Notifier
	cron     *cron.Cron
	logger   *zap.Logger
}

// NewNotificationRelayJob creates a relay job over the given outbox and
// notifier.
func NewNotificationRelayJob(
	outbox ports.OutboxRepository,
	notifier ports.Notifier,
	logger *zap.Logger,
) *NotificationRelayJob {
	return &NotificationRelayJob{
		outbox:   outbox,
		notifier: notifier,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With(zap.String("component", "notification_relay_job")),
	}
}

// Start begins the relay job, draining the outbox every five seconds.
func (j *NotificationRelayJob) Start() error {
	_, err := j.cron.AddFunc("*/5 * * * * *", func() {
		j.relay(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("notification relay job started")
	return nil
}

// Stop stops the relay job.
func (j *NotificationRelayJob) Stop() {
	j.cron.Stop()
	j.logger.Info("notification relay job stopped")
}

func (j *NotificationRelayJob) relay(ctx context.Context) {
	messages, err := j.outbox.ListUnpublished(ctx, relayBatchSize)
	if err != nil {
		j.logger.Error("listing unpublished events failed", zap.Error(err))
		return
	}

	for _, msg := range messages {
		if err = j.notifier.NotifyStatusChanged(ctx, msg.Event); err != nil {
			// Leave the event staged; the next tick retries it. Stop the
			// batch so ordering per order is preserved.
			j.logger.Warn("notification delivery failed",
				zap.String("order_id", msg.Event.OrderID.String()),
				zap.Error(err))
			return
		}

		if err = j.outbox.MarkPublished(ctx, msg.ID); err != nil {
			j.logger.Error("marking event published failed",
				zap.String("order_id", msg.Event.OrderID.String()),
				zap.Error(err))
			return
		}
	}
}
