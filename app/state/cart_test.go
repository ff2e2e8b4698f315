package state_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/ameya/app/repositories"
	"github.com/shashiranjanraj/ameya/app/state"
)

func newCart(t *testing.T) *state.CartContext {
	t.Helper()
	return state.NewCartContext(
		repositories.NewCartRepository(),
		repositories.NewProductRepository(),
	)
}

func TestCartTotalsFollowLines(t *testing.T) {
	setupDB(t)
	seedProduct(t, "gummy-002", 150)
	seedProduct(t, "gummy-001", 280)
	cart := newCart(t)

	require.NoError(t, cart.Add("gummy-002", 2))
	require.NoError(t, cart.Add("gummy-001", 1))

	st := cart.State()
	assert.Equal(t, 3, st.TotalItems)
	assert.Equal(t, 2*150+280, st.TotalAmount)
}

func TestCartAddMergesIntoOneLine(t *testing.T) {
	setupDB(t)
	seedProduct(t, "gummy-001", 280)
	cart := newCart(t)

	require.NoError(t, cart.Add("gummy-001", 1))
	require.NoError(t, cart.Add("gummy-001", 2))

	st := cart.State()
	require.Len(t, st.Items, 1)
	assert.Equal(t, 3, st.Items[0].Quantity)
	assert.Equal(t, 3*280, st.TotalAmount)
}

func TestCartUpdateQuantityZeroRemovesLine(t *testing.T) {
	setupDB(t)
	seedProduct(t, "gummy-001", 280)
	cart := newCart(t)

	require.NoError(t, cart.Add("gummy-001", 2))
	require.NoError(t, cart.UpdateQuantity("gummy-001", 0))

	st := cart.State()
	assert.Empty(t, st.Items)
	assert.Zero(t, st.TotalAmount)

	// The removal is durable, not just a cache patch.
	require.NoError(t, cart.Load())
	assert.Empty(t, cart.State().Items)
}

func TestCartUpdateQuantityPatchesTotals(t *testing.T) {
	setupDB(t)
	seedProduct(t, "gummy-001", 280)
	cart := newCart(t)

	require.NoError(t, cart.Add("gummy-001", 1))
	require.NoError(t, cart.UpdateQuantity("gummy-001", 5))

	st := cart.State()
	assert.Equal(t, 5, st.TotalItems)
	assert.Equal(t, 5*280, st.TotalAmount)
}

func TestCartDeletedProductGoesStale(t *testing.T) {
	setupDB(t)
	seedProduct(t, "gummy-001", 280)
	seedProduct(t, "candy-001", 200)
	cart := newCart(t)

	require.NoError(t, cart.Add("gummy-001", 2))
	require.NoError(t, cart.Add("candy-001", 1))

	products := repositories.NewProductRepository()
	require.NoError(t, products.Delete("gummy-001"))
	require.NoError(t, cart.Load())

	st := cart.State()
	require.Len(t, st.Items, 2)

	var stale, live int
	for _, line := range st.Items {
		if line.Stale {
			stale++
			assert.Nil(t, line.Product)
		} else {
			live++
		}
	}
	assert.Equal(t, 1, stale)
	assert.Equal(t, 1, live)

	// Stale lines price at 0; the live line still counts.
	assert.Equal(t, 3, st.TotalItems)
	assert.Equal(t, 200, st.TotalAmount)
}

func TestCartClear(t *testing.T) {
	setupDB(t)
	seedProduct(t, "gummy-001", 280)
	cart := newCart(t)

	require.NoError(t, cart.Add("gummy-001", 2))
	require.NoError(t, cart.Clear())

	st := cart.State()
	assert.Empty(t, st.Items)
	assert.Zero(t, st.TotalItems)
}

func TestCartStateIsACopy(t *testing.T) {
	setupDB(t)
	seedProduct(t, "gummy-001", 280)
	cart := newCart(t)

	require.NoError(t, cart.Add("gummy-001", 2))

	st := cart.State()
	st.Items[0].Quantity = 99

	assert.Equal(t, 2, cart.State().Items[0].Quantity)
}
