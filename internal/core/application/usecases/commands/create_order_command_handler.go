package commands

import (
	"context"

	"agrimarket/internal/core/domain/model/kernel"
	"agrimarket/internal/core/domain/model/order"
	"agrimarket/internal/core/domain/services"
)

// CreateOrderCommandHandler drives the atomic order commit: assemble the
// request, lock the products it references, re-validate every line against
// live state, reserve stock and insert the order — all in one transaction.
// Two buyers racing for the last unit serialize on the product row locks, so
// exactly one of them commits.
type CreateOrderCommandHandler struct {
	uowFactory CheckoutUoWFactory
	assembler  services.CheckoutAssembler
	validator  services.OrderValidator
}

// NewCreateOrderCommandHandler creates a handler for order creation.
func NewCreateOrderCommandHandler(
	uowFactory CheckoutUoWFactory,
	assembler services.CheckoutAssembler,
	validator services.OrderValidator,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		assembler:  assembler,
		validator:  validator,
	}
}

// Handle processes the order creation command. Either the full effect —
// decremented stock plus a Pending order — becomes visible, or none of it.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	req, err := h.assembler.Assemble(
		cmd.Cart(),
		cmd.DeliveryProfile(),
		cmd.DeliveryMethod(),
		cmd.PaymentMethod(),
	)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	productIDs := make([]kernel.UUID, 0, len(req.Lines()))
	for _, line := range req.Lines() {
		productIDs = append(productIDs, line.ProductID())
	}

	catalog, err := uow.ProductRepository().GetForUpdate(ctx, productIDs)
	if err != nil {
		return err
	}

	lines, _, err := h.validator.Validate(req, catalog)
	if err != nil {
		return err
	}

	for _, line := range lines {
		p := catalog[line.ProductID()]
		if err = p.Reserve(line.Quantity()); err != nil {
			return err
		}
		if err = uow.ProductRepository().UpdateStock(ctx, p); err != nil {
			return err
		}
	}

	newOrder, err := order.NewOrder(
		cmd.OrderID(),
		req.BuyerID(),
		lines,
		req.DeliveryProfile(),
		req.DeliveryMethod(),
		req.PaymentMethod(),
	)
	if err != nil {
		return err
	}

	if err = uow.OrderRepository().Add(ctx, newOrder); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
