package memory

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xenking/best-buy/internal/domain/order"
)

func newOrder(id string) *order.Order {
	return &order.Order{
		ID: id,
		Lines: []order.Line{
			{ProductName: "Windows License", Quantity: 2, Subtotal: decimal.NewFromInt(250)},
		},
		Total:     decimal.NewFromInt(250),
		CreatedAt: time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC),
	}
}

func TestOrderRepository_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	repo := NewOrderRepository()

	require.NoError(t, repo.Create(ctx, newOrder("o1")))

	got, err := repo.Get(ctx, "o1")
	require.NoError(t, err)
	assert.Equal(t, "o1", got.ID)
	assert.True(t, decimal.NewFromInt(250).Equal(got.Total))
	require.Len(t, got.Lines, 1)
	assert.Equal(t, "Windows License", got.Lines[0].ProductName)
}

func TestOrderRepository_GetMissing(t *testing.T) {
	repo := NewOrderRepository()

	_, err := repo.Get(context.Background(), "nope")
	require.ErrorIs(t, err, order.ErrNotFound)
}

func TestOrderRepository_DuplicateID(t *testing.T) {
	ctx := context.Background()
	repo := NewOrderRepository()

	require.NoError(t, repo.Create(ctx, newOrder("o1")))
	err := repo.Create(ctx, newOrder("o1"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate id")
}

func TestOrderRepository_NilOrder(t *testing.T) {
	require.Error(t, NewOrderRepository().Create(context.Background(), nil))
}

func TestOrderRepository_ListPreservesCreationOrder(t *testing.T) {
	ctx := context.Background()
	repo := NewOrderRepository()

	for _, id := range []string{"b", "a", "c"} {
		require.NoError(t, repo.Create(ctx, newOrder(id)))
	}

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "b", list[0].ID)
	assert.Equal(t, "a", list[1].ID)
	assert.Equal(t, "c", list[2].ID)
}

func TestOrderRepository_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewOrderRepository()

	o := newOrder("o1")
	require.NoError(t, repo.Create(ctx, o))
	o.Lines[0].Quantity = 99

	got, err := repo.Get(ctx, "o1")
	require.NoError(t, err)
	assert.Equal(t, 2, got.Lines[0].Quantity)

	got.Lines[0].Quantity = 42
	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, list[0].Lines[0].Quantity)
}
