//go:build unit

package item_test

import (
	"testing"

	"storefront/internal/domain/item"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewItem(t *testing.T) {
	price, err := item.NewMoney(500)
	require.NoError(t, err)

	t.Run("valid item", func(t *testing.T) {
		it, err := item.NewItem("Keyboard", price, 10)
		require.NoError(t, err)
		assert.Equal(t, "Keyboard", it.DisplayName())
		assert.Equal(t, 10, it.AvailableQuantity())
	})

	t.Run("empty display name", func(t *testing.T) {
		_, err := item.NewItem("", price, 10)
		require.ErrorIs(t, err, item.ErrEmptyDisplayName)
	})

	t.Run("negative quantity", func(t *testing.T) {
		_, err := item.NewItem("Keyboard", price, -1)
		require.ErrorIs(t, err, item.ErrNegativeQuantity)
	})

	t.Run("zero quantity is allowed", func(t *testing.T) {
		it, err := item.NewItem("Keyboard", price, 0)
		require.NoError(t, err)
		assert.Equal(t, 0, it.AvailableQuantity())
	})
}

func TestMoney(t *testing.T) {
	t.Run("negative cents rejected", func(t *testing.T) {
		_, err := item.NewMoney(-1)
		require.ErrorIs(t, err, item.ErrNegativePrice)
	})

	t.Run("multiply by quantity", func(t *testing.T) {
		price, err := item.NewMoney(500)
		require.NoError(t, err)
		qty, err := item.NewQuantity(2)
		require.NoError(t, err)

		assert.Equal(t, int64(1000), price.MulQuantity(qty).Cents())
	})
}

func TestQuantity(t *testing.T) {
	t.Run("positive OK", func(t *testing.T) {
		q, err := item.NewQuantity(1)
		require.NoError(t, err)
		assert.Equal(t, 1, q.Int())
	})

	t.Run("zero rejected", func(t *testing.T) {
		_, err := item.NewQuantity(0)
		require.ErrorIs(t, err, item.ErrInvalidQuantity)
	})

	t.Run("negative rejected", func(t *testing.T) {
		_, err := item.NewQuantity(-3)
		require.ErrorIs(t, err, item.ErrInvalidQuantity)
	})
}

func TestCanFulfill(t *testing.T) {
	price, err := item.NewMoney(500)
	require.NoError(t, err)
	it, err := item.NewItem("Keyboard", price, 2)
	require.NoError(t, err)

	two, _ := item.NewQuantity(2)
	three, _ := item.NewQuantity(3)

	assert.True(t, it.CanFulfill(two))
	assert.False(t, it.CanFulfill(three))
}
