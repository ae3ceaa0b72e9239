package commands

import (
	"errors"
	"fmt"

	"agrimarket/internal/core/domain/model/kernel"
	"agrimarket/internal/core/domain/model/order"
	"agrimarket/internal/pkg/errs"
	"agrimarket/internal/pkg/guard"
)

// SetTrackingLinkCommand records the carrier tracking link for a parcel
// order.
//
//nolint:recvcheck //using for validation
type SetTrackingLinkCommand struct {
	orderID      kernel.UUID
	actor        order.Actor
	trackingLink string

	guard guard.ConstructorGuard
}

// NewSetTrackingLinkCommand creates a validated command to set an order's
// tracking link.
func NewSetTrackingLinkCommand(
	orderID kernel.UUID,
	actor order.Actor,
	trackingLink string,
) (SetTrackingLinkCommand, error) {
	var linkErr error
	if trackingLink == "" {
		linkErr = errs.NewValueIsRequiredError("trackingLink")
	} else if len(trackingLink) > order.MaxTrackingLinkLength {
		linkErr = errs.NewValueIsInvalidErrorWithCause("trackingLink",
			fmt.Errorf("tracking link exceeds %d characters", order.MaxTrackingLinkLength))
	}

	if err := errors.Join(
		orderID.Validate(),
		actor.Validate(),
		linkErr,
	); err != nil {
		return SetTrackingLinkCommand{}, err
	}

	return SetTrackingLinkCommand{
		orderID:      orderID,
		actor:        actor,
		trackingLink: trackingLink,

		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate checks that the command was created through its constructor.
func (c SetTrackingLinkCommand) Validate() error {
	return c.guard.Validate(errs.NewValueIsRequiredError("SetTrackingLinkCommand"))
}

// OrderID returns the target order's identifier.
func (c SetTrackingLinkCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Actor returns who is setting the tracking link.
func (c SetTrackingLinkCommand) Actor() order.Actor {
	return c.actor
}

// TrackingLink returns the carrier tracking link.
func (c SetTrackingLinkCommand) TrackingLink() string {
	return c.trackingLink
}
