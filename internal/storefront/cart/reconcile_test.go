package cart

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/qkart/storefront/internal/storefront/model"
	"github.com/stretchr/testify/assert"
)

var catalog = []model.Product{
	{ID: "KCRwjF7lN97HnEaY", Name: "iPhone XR", Category: "Phones", Cost: 100, Rating: 4, Image: "xr.jpg"},
	{ID: "BW0jAAeDJmlZCF8i", Name: "Basketball", Category: "Sports", Cost: 48, Rating: 5, Image: "ball.jpg"},
	{ID: "upLK9JbQ4rMhTwt4", Name: "Tan Leatherette Weekender Duffle", Category: "Fashion", Cost: 150, Rating: 4.5, Image: "duffle.jpg"},
}

func TestReconcileNilAndEmpty(t *testing.T) {
	assert.Nil(t, Reconcile(nil, catalog))

	empty := Reconcile([]model.CartEntry{}, catalog)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestReconcilePreservesOrderAndMergesDisplayFields(t *testing.T) {
	entries := []model.CartEntry{
		{ProductID: "upLK9JbQ4rMhTwt4", Quantity: 1},
		{ProductID: "KCRwjF7lN97HnEaY", Quantity: 3},
		{ProductID: "BW0jAAeDJmlZCF8i", Quantity: 0},
	}

	got := Reconcile(entries, catalog)

	want := []model.CartLineItem{
		{ProductID: "upLK9JbQ4rMhTwt4", Quantity: 1, Name: "Tan Leatherette Weekender Duffle", Category: "Fashion", Cost: 150, Rating: 4.5, Image: "duffle.jpg"},
		{ProductID: "KCRwjF7lN97HnEaY", Quantity: 3, Name: "iPhone XR", Category: "Phones", Cost: 100, Rating: 4, Image: "xr.jpg"},
		{ProductID: "BW0jAAeDJmlZCF8i", Quantity: 0, Name: "Basketball", Category: "Sports", Cost: 48, Rating: 5, Image: "ball.jpg"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Reconcile() mismatch (-want +got):\n%s", diff)
	}
}

func TestReconcileDropsOrphans(t *testing.T) {
	entries := []model.CartEntry{
		{ProductID: "deleted-product", Quantity: 2},
		{ProductID: "BW0jAAeDJmlZCF8i", Quantity: 1},
	}

	items, orphans := ReconcileReport(entries, catalog)

	assert.Equal(t, []string{"deleted-product"}, orphans)
	assert.Len(t, items, 1)
	assert.Equal(t, "BW0jAAeDJmlZCF8i", items[0].ProductID)
	assert.Equal(t, "Basketball", items[0].Name)
}

func TestTotals(t *testing.T) {
	assert.Equal(t, int64(0), TotalValue(nil))
	assert.Equal(t, int64(0), TotalValue([]model.CartLineItem{}))
	assert.Equal(t, 0, TotalItemCount(nil))

	items := []model.CartLineItem{
		{Cost: 10, Quantity: 2},
		{Cost: 5, Quantity: 3},
	}
	assert.Equal(t, int64(35), TotalValue(items))
	assert.Equal(t, 5, TotalItemCount(items))
}

func TestSummarizeAndVisible(t *testing.T) {
	items := []model.CartLineItem{
		{ProductID: "a", Cost: 100, Quantity: 2},
		{ProductID: "b", Cost: 48, Quantity: 0},
		{ProductID: "c", Cost: 150, Quantity: 1},
	}

	assert.Equal(t, model.OrderSummary{Products: 3, Subtotal: 350, Shipping: 0, Total: 350}, Summarize(items))

	visible := Visible(items)
	assert.Len(t, visible, 2)
	assert.Equal(t, "c", visible[1].ProductID)
}
