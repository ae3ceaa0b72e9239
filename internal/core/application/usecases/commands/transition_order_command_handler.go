package commands

import (
	"context"

	"agrimarket/internal/core/domain/model/kernel"
	"agrimarket/internal/core/domain/model/order"
)

// TransitionOrderCommandHandler applies a fulfillment status transition. The
// status write is a compare-and-set against the status the order had when it
// was loaded, cancellation restocks every line, and the notification event is
// staged in the same transaction.
type TransitionOrderCommandHandler struct {
	uowFactory FulfillmentUoWFactory
}

// NewTransitionOrderCommandHandler creates a handler for status transitions.
func NewTransitionOrderCommandHandler(uowFactory FulfillmentUoWFactory) TransitionOrderCommandHandler {
	return TransitionOrderCommandHandler{uowFactory: uowFactory}
}

// Handle processes the transition command. A request for the status the order
// already has is a no-op: nothing is written and no event is staged.
func (h *TransitionOrderCommandHandler) Handle(ctx context.Context, cmd TransitionOrderCommand) error {
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

	from := o.Status()
	if err = o.TransitionTo(cmd.Actor(), cmd.To()); err != nil {
		return err
	}

	if o.Status() == from {
		return nil
	}

	if o.Status() == order.StatusCancelled {
		if err = h.restock(ctx, uow, o); err != nil {
			return err
		}
	}

	if err = uow.OrderRepository().UpdateStatus(ctx, o, from); err != nil {
		return err
	}

	if err = uow.OutboxRepository().Add(ctx, order.NewStatusChangedEvent(o, from)); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// restock returns every line's quantity to its product. Products are locked
// before the write so a concurrent checkout sees either the full restock or
// none of it.
func (h *TransitionOrderCommandHandler) restock(ctx context.Context, uow FulfillmentUoW, o *order.Order) error {
	productIDs := make([]kernel.UUID, 0, len(o.Lines()))
	for _, line := range o.Lines() {
		productIDs = append(productIDs, line.ProductID())
	}

	catalog, err := uow.ProductRepository().GetForUpdate(ctx, productIDs)
	if err != nil {
		return err
	}

	for _, line := range o.Lines() {
		p, ok := catalog[line.ProductID()]
		if !ok {
			// The product was removed from the catalog after the order was
			// placed. Its stock no longer exists to restore.
			continue
		}

		if err = p.Restock(line.Quantity()); err != nil {
			return err
		}

		if err = uow.ProductRepository().UpdateStock(ctx, p); err != nil {
			return err
		}
	}

	return nil
}
