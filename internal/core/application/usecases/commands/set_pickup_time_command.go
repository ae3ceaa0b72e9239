package commands

import (
	"errors"
	"time"

	"agrimarket/internal/core/domain/model/kernel"
	"agrimarket/internal/core/domain/model/order"
	"agrimarket/internal/pkg/errs"
	"agrimarket/internal/pkg/guard"
)

// SetPickupTimeCommand records when a self-pickup order will be ready for
// collection.
//
//nolint:recvcheck //using for validation
type SetPickupTimeCommand struct {
	orderID    kernel.UUID
	actor      order.Actor
	pickupTime time.Time

	guard guard.ConstructorGuard
}

// NewSetPickupTimeCommand creates a validated command to set an order's
// pickup time.
func NewSetPickupTimeCommand(
	orderID kernel.UUID,
	actor order.Actor,
	pickupTime time.Time,
) (SetPickupTimeCommand, error) {
	var timeErr error
	if pickupTime.IsZero() {
		timeErr = errs.NewValueIsRequiredError("pickupTime")
	}

	if err := errors.Join(
		orderID.Validate(),
		actor.Validate(),
		timeErr,
	); err != nil {
		return SetPickupTimeCommand{}, err
	}

	return SetPickupTimeCommand{
		orderID:    orderID,
		actor:      actor,
		pickupTime: pickupTime.UTC(),

		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate checks that the command was created through its constructor.
func (c SetPickupTimeCommand) Validate() error {
	return c.guard.Validate(errs.NewValueIsRequiredError("SetPickupTimeCommand"))
}

// OrderID returns the target order's identifier.
func (c SetPickupTimeCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Actor returns who is setting the pickup time.
func (c SetPickupTimeCommand) Actor() order.Actor {
	return c.actor
}

// PickupTime returns the scheduled pickup time in UTC.
func (c SetPickupTimeCommand) PickupTime() time.Time {
	return c.pickupTime
}
