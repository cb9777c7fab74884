package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erazemk/cenik/internal/db"
)

func TestCreateAndGetItem(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	item, err := CreateItem(ctx, database, "Laptop", "Dell XPS 15", 999.99)
	require.NoError(t, err)
	require.NotNil(t, item)
	assert.NotZero(t, item.ID)
	assert.Equal(t, "Laptop", item.Name)
	assert.Equal(t, "Dell XPS 15", item.Description)
	assert.InDelta(t, 999.99, item.Price, 1e-9)

	got, err := GetItem(ctx, database, item.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, item, got)
}

func TestCreateItemEmptyDescription(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	item, err := CreateItem(ctx, database, "Pen", "", 1.00)
	require.NoError(t, err)
	assert.Equal(t, "", item.Description)
}

func TestCreateDuplicateName(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	_, err := CreateItem(ctx, database, "Widget", "", 5.00)
	require.NoError(t, err)

	// Same name in different case must be rejected.
	_, err = CreateItem(ctx, database, "WIDGET", "", 6.00)
	require.ErrorIs(t, err, ErrDuplicateName)

	items, err := ListItems(ctx, database)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Widget", items[0].Name)
}

func TestListItems(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	names := []string{"Pen", "Notebook", "Backpack"}
	for _, name := range names {
		_, err := CreateItem(ctx, database, name, "", 1.00)
		require.NoError(t, err)
	}

	items, err := ListItems(ctx, database)
	require.NoError(t, err)
	require.Len(t, items, len(names))
	for i, item := range items {
		assert.Equal(t, names[i], item.Name)
	}

	// A second list without intervening mutations returns the same result.
	again, err := ListItems(ctx, database)
	require.NoError(t, err)
	assert.Equal(t, items, again)
}

func TestGetItemAbsent(t *testing.T) {
	database := db.NewTestDB(t)

	item, err := GetItem(context.Background(), database, 12345)
	require.NoError(t, err)
	assert.Nil(t, item)
}

func TestUpdateItem(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	item, err := CreateItem(ctx, database, "Chair", "Wooden", 25.00)
	require.NoError(t, err)

	updated, err := UpdateItem(ctx, database, item.ID, "Armchair", "Upholstered", 79.50)
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, item.ID, updated.ID)
	assert.Equal(t, "Armchair", updated.Name)
	assert.Equal(t, "Upholstered", updated.Description)
	assert.InDelta(t, 79.50, updated.Price, 1e-9)
}

func TestUpdateItemAbsent(t *testing.T) {
	database := db.NewTestDB(t)

	updated, err := UpdateItem(context.Background(), database, 12345, "Ghost", "", 1.00)
	require.NoError(t, err)
	assert.Nil(t, updated)
}

func TestDeleteItem(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	item, err := CreateItem(ctx, database, "Delete Me", "", 2.00)
	require.NoError(t, err)

	deleted, err := DeleteItem(ctx, database, item.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	got, err := GetItem(ctx, database, item.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestDeleteItemAbsent(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	_, err := CreateItem(ctx, database, "Keep Me", "", 2.00)
	require.NoError(t, err)

	deleted, err := DeleteItem(ctx, database, 12345)
	require.NoError(t, err)
	assert.False(t, deleted)

	items, err := ListItems(ctx, database)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestApplyDiscount(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	_, err := CreateItem(ctx, database, "Desk", "", 100.00)
	require.NoError(t, err)
	_, err = CreateItem(ctx, database, "Lamp", "", 50.00)
	require.NoError(t, err)

	count, err := ApplyDiscount(ctx, database, 10.0)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	items, err := ListItems(ctx, database)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.InDelta(t, 90.00, items[0].Price, 1e-9)
	assert.InDelta(t, 45.00, items[1].Price, 1e-9)
}

func TestApplyDiscountZeroPercent(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	_, err := CreateItem(ctx, database, "Desk", "", 100.00)
	require.NoError(t, err)
	_, err = CreateItem(ctx, database, "Lamp", "", 50.00)
	require.NoError(t, err)

	count, err := ApplyDiscount(ctx, database, 0.0)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	items, err := ListItems(ctx, database)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.InDelta(t, 100.00, items[0].Price, 1e-9)
	assert.InDelta(t, 50.00, items[1].Price, 1e-9)
}

func TestApplyDiscountRounding(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	_, err := CreateItem(ctx, database, "Mug", "", 19.99)
	require.NoError(t, err)

	// 19.99 * 0.85 = 16.9915, which must round to 16.99.
	count, err := ApplyDiscount(ctx, database, 15.0)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	items, err := ListItems(ctx, database)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.InDelta(t, 16.99, items[0].Price, 1e-9)
}

func TestApplyBulkDiscount(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	_, err := CreateItem(ctx, database, "Desk", "", 100.00)
	require.NoError(t, err)
	_, err = CreateItem(ctx, database, "Lamp", "", 50.00)
	require.NoError(t, err)

	// Only the item above the threshold is discounted.
	count, err := ApplyBulkDiscount(ctx, database, 60.0, 10.0)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	items, err := ListItems(ctx, database)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.InDelta(t, 90.00, items[0].Price, 1e-9)
	assert.InDelta(t, 50.00, items[1].Price, 1e-9)
}

func TestSearchItems(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	_, err := CreateItem(ctx, database, "Blue Pen", "", 1.00)
	require.NoError(t, err)
	_, err = CreateItem(ctx, database, "Red Pencil", "", 1.50)
	require.NoError(t, err)
	_, err = CreateItem(ctx, database, "Notebook", "", 3.00)
	require.NoError(t, err)

	items, err := SearchItems(ctx, database, "pen")
	require.NoError(t, err)
	require.Len(t, items, 2)

	items, err = SearchItems(ctx, database, "NOTE")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Notebook", items[0].Name)

	items, err = SearchItems(ctx, database, "missing")
	require.NoError(t, err)
	assert.Empty(t, items)
}
