package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vapeonx/storefront/models"
	"github.com/vapeonx/storefront/session"
)

func pod() *models.CartProduct {
	return &models.CartProduct{Name: "Pod", Price: 100, Stock: 5}
}

func TestCartStore_GetEmpty(t *testing.T) {
	s := NewCartStore(nil)

	cart, err := s.Get(context.Background(), session.NewMemoryStore(nil))
	require.NoError(t, err)
	assert.NotNil(t, cart.Items)
	assert.Empty(t, cart.Items)
}

func TestCartStore_GetCorruptValue(t *testing.T) {
	s := NewCartStore(nil)

	cart, err := s.Get(context.Background(), rawStore(CartKey, "{not json"))
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
}

func TestCartStore_BackendFailure(t *testing.T) {
	s := NewCartStore(nil)

	_, err := s.Get(context.Background(), failingStore{})
	require.Error(t, err)
	assert.ErrorIs(t, err, errBackendDown)
	assert.False(t, IsBadRequest(err))
	assert.False(t, IsNotFound(err))
}

func TestCartStore_AddScenario(t *testing.T) {
	s := NewCartStore(nil)
	kv := session.NewMemoryStore(nil)
	ctx := context.Background()

	cart, err := s.Add(ctx, kv, pod(), 2)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].Quantity)
	assert.Equal(t, "Pod", cart.Items[0].ID, "id defaults to the name")
	assert.Equal(t, models.PlaceholderImage, cart.Items[0].Img)
	assert.Equal(t, 200.0, models.Subtotal(cart.Items))

	_, err = s.Add(ctx, kv, pod(), 4)
	assert.ErrorIs(t, err, ErrStockExceeded)
	assert.Equal(t, MsgStockExceeded, Message(err, ""))

	cart, err = s.Update(ctx, kv, "Pod", 5)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 5, cart.Items[0].Quantity)

	stored, err := s.Get(ctx, kv)
	require.NoError(t, err)
	assert.Equal(t, cart, stored)
}

func TestCartStore_AddMatchesByIDThenName(t *testing.T) {
	s := NewCartStore(nil)
	kv := session.NewMemoryStore(nil)
	ctx := context.Background()

	p := &models.CartProduct{ID: "mm-1", Name: "Geek Bar", Price: 449.99, Stock: 10, Img: "/GeekBar.jpg"}
	_, err := s.Add(ctx, kv, p, 1)
	require.NoError(t, err)

	renamed := *p
	renamed.Name = "Geek Bar DF6000"
	cart, err := s.Add(ctx, kv, &renamed, 2)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 3, cart.Items[0].Quantity)

	byName := &models.CartProduct{Name: "Geek Bar", Stock: 10}
	cart, err = s.Add(ctx, kv, byName, 1)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 4, cart.Items[0].Quantity)
}

func TestCartStore_AddValidation(t *testing.T) {
	s := NewCartStore(nil)
	kv := session.NewMemoryStore(nil)
	ctx := context.Background()

	tests := []struct {
		name     string
		product  *models.CartProduct
		quantity int
		want     error
	}{
		{"nil product", nil, 1, ErrInvalidInput},
		{"missing name", &models.CartProduct{ID: "x", Stock: 3}, 1, ErrInvalidInput},
		{"zero quantity", pod(), 0, ErrInvalidInput},
		{"negative quantity", pod(), -1, ErrInvalidInput},
		{"new line over stock", pod(), 6, ErrStockExceeded},
		{"no stock", &models.CartProduct{Name: "Ghost"}, 1, ErrStockExceeded},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Add(ctx, kv, tt.product, tt.quantity)
			assert.ErrorIs(t, err, tt.want)
			assert.True(t, IsBadRequest(err))
		})
	}

	cart, err := s.Get(ctx, kv)
	require.NoError(t, err)
	assert.Empty(t, cart.Items, "rejected adds are not persisted")
}

func TestCartStore_Update(t *testing.T) {
	s := NewCartStore(nil)
	kv := session.NewMemoryStore(nil)
	ctx := context.Background()

	_, err := s.Add(ctx, kv, pod(), 1)
	require.NoError(t, err)

	_, err = s.Update(ctx, kv, "", 1)
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Equal(t, MsgInvalidItem, Message(err, ""))

	_, err = s.Update(ctx, kv, "Pod", 0)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = s.Update(ctx, kv, "Missing", 1)
	assert.ErrorIs(t, err, ErrItemNotFound)
	assert.True(t, IsNotFound(err))
	assert.Equal(t, MsgItemNotFound, Message(err, ""))

	_, err = s.Update(ctx, kv, "Pod", 6)
	assert.ErrorIs(t, err, ErrStockExceeded)
}

func TestCartStore_Remove(t *testing.T) {
	s := NewCartStore(nil)
	ctx := context.Background()

	// The second line has no id; it is addressed by its name.
	kv := rawStore(CartKey, `{"items":[`+
		`{"id":"a","name":"Alpha","price":1,"stock":9,"quantity":1,"img":""},`+
		`{"id":"","name":"Beta","price":2,"stock":9,"quantity":1,"img":""},`+
		`{"id":"c","name":"Beta","price":3,"stock":9,"quantity":1,"img":""}]}`)

	cart, err := s.Remove(ctx, kv, "Beta")
	require.NoError(t, err)
	require.Len(t, cart.Items, 2)
	assert.Equal(t, "a", cart.Items[0].ID)
	assert.Equal(t, "c", cart.Items[1].ID, "a line with an id is not removed by its name")

	cart, err = s.Remove(ctx, kv, "nothing-here")
	require.NoError(t, err)
	assert.Len(t, cart.Items, 2)

	_, err = s.Remove(ctx, kv, "")
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Equal(t, MsgInvalidItemID, Message(err, ""))
}

func TestCartStore_Clear(t *testing.T) {
	s := NewCartStore(nil)
	kv := session.NewMemoryStore(nil)
	ctx := context.Background()

	_, err := s.Add(ctx, kv, pod(), 3)
	require.NoError(t, err)

	cart, err := s.Clear(ctx, kv)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)

	raw, ok, err := kv.Get(ctx, CartKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.JSONEq(t, `{"items":[]}`, raw)
}

func TestCartStore_SaveFailure(t *testing.T) {
	s := NewCartStore(nil)
	_, err := s.Clear(context.Background(), failingStore{})
	assert.ErrorIs(t, err, errBackendDown)
	assert.Equal(t, "fallback", Message(err, "fallback"))
}
