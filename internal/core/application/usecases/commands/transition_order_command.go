package commands

import (
	"errors"

	"agrimarket/internal/core/domain/model/kernel"
	"agrimarket/internal/core/domain/model/order"
	"agrimarket/internal/pkg/errs"
	"agrimarket/internal/pkg/guard"
)

// TransitionOrderCommand moves an order to a new fulfillment status on behalf
// of an authenticated actor. The aggregate decides whether the actor and the
// transition are allowed.
//
//nolint:recvcheck //using for validation
type TransitionOrderCommand struct {
	orderID kernel.UUID
	actor   order.Actor
	to      order.Status

	guard guard.ConstructorGuard
}

// NewTransitionOrderCommand creates a validated command to change an order's
// status.
func NewTransitionOrderCommand(
	orderID kernel.UUID,
	actor order.Actor,
	to order.Status,
) (TransitionOrderCommand, error) {
	if err := errors.Join(
		orderID.Validate(),
		actor.Validate(),
		to.Validate(),
	); err != nil {
		return TransitionOrderCommand{}, err
	}

	return TransitionOrderCommand{
		orderID: orderID,
		actor:   actor,
		to:      to,

		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate checks that the command was created through its constructor.
func (c TransitionOrderCommand) Validate() error {
	return c.guard.Validate(errs.NewValueIsRequiredError("TransitionOrderCommand"))
}

// OrderID returns the target order's identifier.
func (c TransitionOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Actor returns who is requesting the transition.
func (c TransitionOrderCommand) Actor() order.Actor {
	return c.actor
}

// To returns the requested target status.
func (c TransitionOrderCommand) To() order.Status {
	return c.to
}
