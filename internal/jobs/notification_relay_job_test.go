package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"agrimarket/internal/core/domain/model/kernel"
	"agrimarket/internal/core/domain/model/order"
	"agrimarket/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"go.uber.org/zap/zaptest"
)

type MockOutboxRepository struct{ mock.Mock }

func (m *MockOutboxRepository) Add(ctx context.Context, event order.StatusChangedEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockOutboxRepository) ListUnpublished(ctx context.Context, limit int) ([]ports.OutboxMessage, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ports.OutboxMessage), args.Error(1)
}

func (m *MockOutboxRepository) MarkPublished(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockNotifier struct{ mock.Mock }

func (m *MockNotifier) NotifyStatusChanged(ctx context.Context, event order.StatusChangedEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func makeMessage() ports.OutboxMessage {
	return ports.OutboxMessage{
		ID: kernel.NewUUID(),
		Event: order.StatusChangedEvent{
			OrderID:        kernel.NewUUID(),
			BuyerID:        kernel.NewUUID(),
			DeliveryMethod: order.MethodParcel,
			From:           order.StatusPending,
			To:             order.StatusPacked,
			OccurredAt:     time.Now().UTC(),
		},
	}
}

func TestNotificationRelayJob_Relay_PublishesAndMarks(t *testing.T) {
	ctx := context.Background()
	msg1 := makeMessage()
	msg2 := makeMessage()

	outbox := new(MockOutboxRepository)
	notifier := new(MockNotifier)
	mock.InOrder(
		outbox.On("ListUnpublished", ctx, relayBatchSize).
			Return([]ports.OutboxMessage{msg1, msg2}, nil).Once(),
		notifier.On("NotifyStatusChanged", ctx, msg1.Event).Return(nil).Once(),
		outbox.On("MarkPublished", ctx, msg1.ID).Return(nil).Once(),
		notifier.On("NotifyStatusChanged", ctx, msg2.Event).Return(nil).Once(),
		outbox.On("MarkPublished", ctx, msg2.ID).Return(nil).Once(),
	)

	job := NewNotificationRelayJob(outbox, notifier, zaptest.NewLogger(t))
	job.relay(ctx)

	outbox.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestNotificationRelayJob_Relay_StopsBatchOnDeliveryFailure(t *testing.T) {
	ctx := context.Background()
	msg1 := makeMessage()
	msg2 := makeMessage()

	outbox := new(MockOutboxRepository)
	notifier := new(MockNotifier)
	mock.InOrder(
		outbox.On("ListUnpublished", ctx, relayBatchSize).
			Return([]ports.OutboxMessage{msg1, msg2}, nil).Once(),
		notifier.On("NotifyStatusChanged", ctx, msg1.Event).
			Return(errors.New("broker unavailable")).Once(),
	)

	job := NewNotificationRelayJob(outbox, notifier, zaptest.NewLogger(t))
	job.relay(ctx)

	// msg1 stays staged for the next tick; msg2 was never attempted.
	outbox.AssertNotCalled(t, "MarkPublished", mock.Anything, mock.Anything)
	notifier.AssertNumberOfCalls(t, "NotifyStatusChanged", 1)
	outbox.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestNotificationRelayJob_Relay_EmptyOutboxIsQuiet(t *testing.T) {
	ctx := context.Background()

	outbox := new(MockOutboxRepository)
	notifier := new(MockNotifier)
	outbox.On("ListUnpublished", ctx, relayBatchSize).
		Return([]ports.OutboxMessage{}, nil).Once()

	job := NewNotificationRelayJob(outbox, notifier, zaptest.NewLogger(t))
	job.relay(ctx)

	notifier.AssertNotCalled(t, "NotifyStatusChanged", mock.Anything, mock.Anything)
	outbox.AssertExpectations(t)
}
