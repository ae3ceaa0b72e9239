package commands_test

import (
	"testing"

	"agrimarket/internal/core/application/usecases/commands"
	"agrimarket/internal/core/domain/model/kernel"
	"agrimarket/internal/core/domain/model/order"
	"agrimarket/internal/core/domain/model/product"
	"agrimarket/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestTransitionOrderCommandHandler_Handle_SellerPacks(t *testing.T) {
	ctx := t.Context()
	buyerID := kernel.NewUUID()
	productID := kernel.NewUUID()
	sellerID := kernel.NewUUID()
	o := makePendingOrder(t, buyerID, productID, sellerID, order.MethodParcel)

	actor, err := order.NewActor(sellerID, order.RoleSeller)
	require.NoError(t, err)
	cmd, err := commands.NewTransitionOrderCommand(o.ID(), actor, order.StatusPacked)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	outboxRepo := new(MockOutboxRepository)
	uow := new(MockFulfillmentUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", mock.Anything, o.ID()).Return(o, nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("UpdateStatus", mock.Anything, o, order.StatusPending).Return(nil).Once(),
		uow.On("OutboxRepository").Return(outboxRepo).Once(),
		outboxRepo.On("Add", mock.Anything, mock.AnythingOfType("order.StatusChangedEvent")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockFulfillmentUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewTransitionOrderCommandHandler(factory)
	err = h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.Equal(t, order.StatusPacked, o.Status())
	orderRepo.AssertExpectations(t)
	outboxRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestTransitionOrderCommandHandler_Handle_BuyerCancelRestocks(t *testing.T) {
	ctx := t.Context()
	buyerID := kernel.NewUUID()
	productID := kernel.NewUUID()
	sellerID := kernel.NewUUID()
	o := makePendingOrder(t, buyerID, productID, sellerID, order.MethodParcel)

	actor, err := order.NewActor(buyerID, order.RoleBuyer)
	require.NoError(t, err)
	cmd, err := commands.NewTransitionOrderCommand(o.ID(), actor, order.StatusCancelled)
	require.NoError(t, err)

	catalog := map[kernel.UUID]*product.Product{
		productID: makeProduct(t, productID, sellerID, 25, 6),
	}

	orderRepo := new(MockOrderRepository)
	productRepo := new(MockProductRepository)
	outboxRepo := new(MockOutboxRepository)
	uow := new(MockFulfillmentUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", mock.Anything, o.ID()).Return(o, nil).Once(),
		uow.On("ProductRepository").Return(productRepo).Once(),
		productRepo.On("GetForUpdate", mock.Anything, []kernel.UUID{productID}).Return(catalog, nil).Once(),
		uow.On("ProductRepository").Return(productRepo).Once(),
		productRepo.On("UpdateStock", mock.Anything, mock.AnythingOfType("*product.Product")).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("UpdateStatus", mock.Anything, o, order.StatusPending).Return(nil).Once(),
		uow.On("OutboxRepository").Return(outboxRepo).Once(),
		outboxRepo.On("Add", mock.Anything, mock.AnythingOfType("order.StatusChangedEvent")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockFulfillmentUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewTransitionOrderCommandHandler(factory)
	err = h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.Equal(t, order.StatusCancelled, o.Status())

	// The order's 4 units went back on top of the remaining 6.
	require.InDelta(t, 10, catalog[productID].Stock(), 0.0001)
	orderRepo.AssertExpectations(t)
	productRepo.AssertExpectations(t)
	outboxRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestTransitionOrderCommandHandler_Handle_SameStatusIsNoOp(t *testing.T) {
	ctx := t.Context()
	buyerID := kernel.NewUUID()
	productID := kernel.NewUUID()
	sellerID := kernel.NewUUID()
	o := makePendingOrder(t, buyerID, productID, sellerID, order.MethodParcel)

	actor, err := order.NewActor(sellerID, order.RoleSeller)
	require.NoError(t, err)
	cmd, err := commands.NewTransitionOrderCommand(o.ID(), actor, order.StatusPending)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockFulfillmentUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", mock.Anything, o.ID()).Return(o, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockFulfillmentUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewTransitionOrderCommandHandler(factory)
	err = h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.Equal(t, order.StatusPending, o.Status())
	orderRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
	factory.AssertExpectations(t)
}

func TestTransitionOrderCommandHandler_Handle_BuyerCannotPack(t *testing.T) {
	ctx := t.Context()
	buyerID := kernel.NewUUID()
	o := makePendingOrder(t, buyerID, kernel.NewUUID(), kernel.NewUUID(), order.MethodParcel)

	actor, err := order.NewActor(buyerID, order.RoleBuyer)
	require.NoError(t, err)
	cmd, err := commands.NewTransitionOrderCommand(o.ID(), actor, order.StatusPacked)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockFulfillmentUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", mock.Anything, o.ID()).Return(o, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockFulfillmentUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewTransitionOrderCommandHandler(factory)
	err = h.Handle(ctx, cmd)
	require.Error(t, err)
	require.ErrorIs(t, err, order.ErrForbidden)
	require.Equal(t, order.StatusPending, o.Status())
}

func TestTransitionOrderCommandHandler_Handle_ConflictPropagates(t *testing.T) {
	ctx := t.Context()
	buyerID := kernel.NewUUID()
	productID := kernel.NewUUID()
	sellerID := kernel.NewUUID()
	o := makePendingOrder(t, buyerID, productID, sellerID, order.MethodParcel)

	actor, err := order.NewActor(sellerID, order.RoleSeller)
	require.NoError(t, err)
	cmd, err := commands.NewTransitionOrderCommand(o.ID(), actor, order.StatusPacked)
	require.NoError(t, err)

	conflict := errs.NewConflictError("order", o.ID().String())

	orderRepo := new(MockOrderRepository)
	uow := new(MockFulfillmentUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", mock.Anything, o.ID()).Return(o, nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("UpdateStatus", mock.Anything, o, order.StatusPending).Return(conflict).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockFulfillmentUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewTransitionOrderCommandHandler(factory)
	err = h.Handle(ctx, cmd)
	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrConflict)
}
