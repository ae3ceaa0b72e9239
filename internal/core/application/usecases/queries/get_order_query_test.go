package queries_test

import (
	"testing"

	"agrimarket/internal/core/application/usecases/queries"
	"agrimarket/internal/core/domain/model/kernel"
	"agrimarket/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetOrderQuery_ValidInput(t *testing.T) {
	orderID := kernel.NewUUID()
	actor, err := order.NewActor(kernel.NewUUID(), order.RoleBuyer)
	require.NoError(t, err)

	q, err := queries.NewGetOrderQuery(orderID, actor)
	require.NoError(t, err)
	assert.Equal(t, orderID, q.OrderID())
	assert.Equal(t, actor, q.Actor())
	assert.NoError(t, q.Validate())
}

func TestNewGetOrderQuery_InvalidOrderID(t *testing.T) {
	actor, err := order.NewActor(kernel.NewUUID(), order.RoleBuyer)
	require.NoError(t, err)

	_, err = queries.NewGetOrderQuery(kernel.UUID{}, actor)
	require.Error(t, err)
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestNewGetOrderQuery_InvalidActor(t *testing.T) {
	_, err := queries.NewGetOrderQuery(kernel.NewUUID(), order.Actor{})
	require.Error(t, err)
}

func TestGetOrderQuery_NotConstructed(t *testing.T) {
	q := queries.GetOrderQuery{}
	require.Error(t, q.Validate())
}
