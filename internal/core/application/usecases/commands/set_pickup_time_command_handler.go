package commands

import (
	"context"
)

// SetPickupTimeCommandHandler persists a pickup time on a self-pickup order.
// The aggregate enforces who may set it and in which state.
type SetPickupTimeCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewSetPickupTimeCommandHandler creates a handler for pickup time updates.
func NewSetPickupTimeCommandHandler(uowFactory OrderUoWFactory) SetPickupTimeCommandHandler {
	return SetPickupTimeCommandHandler{uowFactory: uowFactory}
}

// Handle processes the pickup time command.
func (h *SetPickupTimeCommandHandler) Handle(ctx context.Context, cmd SetPickupTimeCommand) error {
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

	if err = o.SetPickupTime(cmd.Actor(), cmd.PickupTime()); err != nil {
		return err
	}

	if err = uow.OrderRepository().UpdateDeliveryDetails(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
