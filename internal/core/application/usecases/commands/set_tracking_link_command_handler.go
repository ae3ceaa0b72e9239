package commands

import (
	"context"
)

// SetTrackingLinkCommandHandler persists a tracking link on a parcel order.
// The aggregate enforces who may set it and in which state.
type SetTrackingLinkCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewSetTrackingLinkCommandHandler creates a handler for tracking link updates.
func NewSetTrackingLinkCommandHandler(uowFactory OrderUoWFactory) SetTrackingLinkCommandHandler {
	return SetTrackingLinkCommandHandler{uowFactory: uowFactory}
}

// Handle processes the tracking link command.
func (h *SetTrackingLinkCommandHandler) Handle(ctx context.Context, cmd SetTrackingLinkCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = o.SetTrackingLink(cmd.Actor(), cmd.TrackingLink()); err != nil {
		return err
	}

	if err = uow.OrderRepository().UpdateDeliveryDetails(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
