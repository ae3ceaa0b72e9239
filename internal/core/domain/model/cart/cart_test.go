package cart_test

import (
	"testing"

	"agrimarket/internal/core/domain/model/cart"
	"agrimarket/internal/core/domain/model/kernel"
	"agrimarket/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLine(t *testing.T) {
	productID := kernel.NewUUID()

	t.Run("should create valid line", func(t *testing.T) {
		line, err := cart.NewLine(productID, "Tomatoes", 25, 4, "https://img.example/tomatoes.jpg")

		require.NoError(t, err)
		require.NoError(t, line.Validate())
		assert.True(t, line.ProductID().IsEqual(productID))
		assert.Equal(t, "Tomatoes", line.Name())
		assert.InDelta(t, 25.0, line.Price(), 0.001)
		assert.InDelta(t, 4.0, line.Quantity(), 0.001)
	})

	t.Run("image URL is optional", func(t *testing.T) {
		line, err := cart.NewLine(productID, "Tomatoes", 25, 4, "")

		require.NoError(t, err)
		assert.Empty(t, line.ImageURL())
	})

	t.Run("should allow fractional quantities", func(t *testing.T) {
		line, err := cart.NewLine(productID, "Onions", 18, 2.5, "")

		require.NoError(t, err)
		assert.InDelta(t, 2.5, line.Quantity(), 0.001)
	})

	t.Run("should fail with invalid product UUID", func(t *testing.T) {
		var invalidID kernel.UUID

		_, err := cart.NewLine(invalidID, "Tomatoes", 25, 4, "")

		assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	})

	t.Run("should fail with empty name", func(t *testing.T) {
		_, err := cart.NewLine(productID, "", 25, 4, "")

		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should fail with non-positive price or quantity", func(t *testing.T) {
		_, err := cart.NewLine(productID, "Tomatoes", 0, 4, "")
		assert.Error(t, err)

		_, err = cart.NewLine(productID, "Tomatoes", 25, -1, "")
		assert.Error(t, err)
	})

	t.Run("zero value does not validate", func(t *testing.T) {
		var line cart.Line

		assert.ErrorIs(t, line.Validate(), cart.ErrLineIsNotConstructed)
	})
}

func TestNewCart(t *testing.T) {
	buyerID := kernel.NewUUID()

	t.Run("should create cart with lines", func(t *testing.T) {
		line, err := cart.NewLine(kernel.NewUUID(), "Tomatoes", 25, 4, "")
		require.NoError(t, err)

		c, err := cart.NewCart(buyerID, []cart.Line{line})

		require.NoError(t, err)
		require.NoError(t, c.Validate())
		assert.True(t, c.BuyerID().IsEqual(buyerID))
		assert.Len(t, c.Lines(), 1)
		assert.False(t, c.IsEmpty())
	})

	t.Run("an empty cart is constructible", func(t *testing.T) {
		c, err := cart.NewCart(buyerID, nil)

		require.NoError(t, err)
		assert.True(t, c.IsEmpty())
	})

	t.Run("should reject duplicate products", func(t *testing.T) {
		productID := kernel.NewUUID()
		first, err := cart.NewLine(productID, "Tomatoes", 25, 4, "")
		require.NoError(t, err)
		second, err := cart.NewLine(productID, "Tomatoes", 25, 2, "")
		require.NoError(t, err)

		_, err = cart.NewCart(buyerID, []cart.Line{first, second})

		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject unconstructed lines", func(t *testing.T) {
		var line cart.Line

		_, err := cart.NewCart(buyerID, []cart.Line{line})

		assert.ErrorIs(t, err, cart.ErrLineIsNotConstructed)
	})

	t.Run("should fail with invalid buyer UUID", func(t *testing.T) {
		var invalidID kernel.UUID

		_, err := cart.NewCart(invalidID, nil)

		assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	})

	t.Run("zero value does not validate", func(t *testing.T) {
		var c cart.Cart

		assert.ErrorIs(t, c.Validate(), cart.ErrCartIsNotConstructed)
	})
}
