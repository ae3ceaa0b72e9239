package commands_test

import (
	"testing"
	"time"

	"agrimarket/internal/core/application/usecases/commands"
	"agrimarket/internal/core/domain/model/kernel"
	"agrimarket/internal/core/domain/model/order"
	"agrimarket/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSetPickupTimeCommand_ValidInput(t *testing.T) {
	orderID := kernel.NewUUID()
	actor, err := order.NewActor(kernel.NewUUID(), order.RoleSeller)
	require.NoError(t, err)
	ts := time.Date(2026, 9, 14, 10, 0, 0, 0, time.UTC)

	cmd, err := commands.NewSetPickupTimeCommand(orderID, actor, ts)
	require.NoError(t, err)
	assert.Equal(t, orderID, cmd.OrderID())
	assert.Equal(t, actor, cmd.Actor())
	assert.Equal(t, ts, cmd.PickupTime())
	assert.NoError(t, cmd.Validate())
}

func TestNewSetPickupTimeCommand_ZeroTime(t *testing.T) {
	actor, err := order.NewActor(kernel.NewUUID(), order.RoleSeller)
	require.NoError(t, err)

	_, err = commands.NewSetPickupTimeCommand(kernel.NewUUID(), actor, time.Time{})
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestNewSetPickupTimeCommand_InvalidOrderID(t *testing.T) {
	actor, err := order.NewActor(kernel.NewUUID(), order.RoleSeller)
	require.NoError(t, err)

	_, err = commands.NewSetPickupTimeCommand(kernel.UUID{}, actor, time.Now())
	require.Error(t, err)
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestSetPickupTimeCommand_NotConstructed(t *testing.T) {
	cmd := commands.SetPickupTimeCommand{}
	require.Error(t, cmd.Validate())
}
