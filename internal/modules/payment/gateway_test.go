package payment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCardGateway(t *testing.T) {
	ctx := context.Background()
	gw := NewCardGateway("sk_test_x", "sandbox")

	t.Run("create and confirm", func(t *testing.T) {
		ref, err := gw.CreateIntent(ctx, 150.0, "eur")
		require.NoError(t, err)
		assert.Contains(t, ref, "pi_")

		res, err := gw.Confirm(ctx, ref)
		require.NoError(t, err)
		assert.Equal(t, StatusConfirmed, res.Status)
		assert.Equal(t, 150.0, res.Amount)
		assert.Equal(t, "EUR", res.Currency)
	})

	t.Run("sandbox decline amount", func(t *testing.T) {
		ref, err := gw.CreateIntent(ctx, 42.13, "eur")
		require.NoError(t, err)

		res, err := gw.Confirm(ctx, ref)
		require.NoError(t, err)
		assert.Equal(t, StatusDeclined, res.Status)
	})

	t.Run("unknown intent", func(t *testing.T) {
		_, err := gw.Confirm(ctx, "pi_nonexistent")
		assert.Error(t, err)
	})

	t.Run("rejects non-positive amount", func(t *testing.T) {
		_, err := gw.CreateIntent(ctx, 0, "eur")
		assert.Error(t, err)
	})
}
