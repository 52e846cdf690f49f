package cart

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"

	errx "github.com/qkart/storefront/internal/core/error"
	"github.com/qkart/storefront/internal/storefront/model"
	"github.com/qkart/storefront/internal/storefront/notify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type upsertCall struct {
	token     string
	productID string
	qty       int
}

type fakeService struct {
	mu       sync.Mutex
	entries  []model.CartEntry
	err      error
	getCalls int
	upserts  []upsertCall
}

func (f *fakeService) GetCart(ctx context.Context, token string) ([]model.CartEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.getCalls++
	if f.err != nil {
		return nil, f.err
	}
	return f.entries, nil
}

func (f *fakeService) UpsertCartItem(ctx context.Context, token, productID string, qty int) ([]model.CartEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.upserts = append(f.upserts, upsertCall{token: token, productID: productID, qty: qty})
	if f.err != nil {
		return nil, f.err
	}
	next := make([]model.CartEntry, 0, len(f.entries)+1)
	found := false
	for _, e := range f.entries {
		if e.ProductID == productID {
			found = true
			if qty == 0 {
				continue
			}
			e.Quantity = qty
		}
		next = append(next, e)
	}
	if !found && qty > 0 {
		next = append(next, model.CartEntry{ProductID: productID, Quantity: qty})
	}
	f.entries = next
	return next, nil
}

var loggedIn = &model.Session{Token: "t", Username: "crio.do", Balance: 5000}

func TestUpdateQuantityRequiresSession(t *testing.T) {
	svc := &fakeService{}
	rec := &notify.Recorder{}
	m := NewMutator(svc, rec)
	current := []model.CartLineItem{{ProductID: "KCRwjF7lN97HnEaY", Quantity: 1}}

	for _, sess := range []*model.Session{nil, {}} {
		got, err := m.UpdateQuantity(context.Background(), sess, current, catalog, "BW0jAAeDJmlZCF8i", 1, UpdateOptions{})
		assert.Equal(t, errx.KindUnauthorized, errx.KindOf(err))
		assert.Equal(t, current, got)
	}

	assert.Empty(t, svc.upserts)
	last, ok := rec.Last()
	require.True(t, ok)
	assert.Equal(t, notify.Notification{Variant: notify.Warning, Message: LoginRequiredMessage}, last)
}

func TestUpdateQuantityPreventDuplicate(t *testing.T) {
	svc := &fakeService{entries: []model.CartEntry{{ProductID: "KCRwjF7lN97HnEaY", Quantity: 1}}}
	rec := &notify.Recorder{}
	m := NewMutator(svc, rec)
	current := Reconcile(svc.entries, catalog)

	got, err := m.UpdateQuantity(context.Background(), loggedIn, current, catalog, "KCRwjF7lN97HnEaY", 1, UpdateOptions{PreventDuplicate: true})

	assert.Equal(t, errx.KindConflict, errx.KindOf(err))
	assert.Equal(t, current, got)
	assert.Empty(t, svc.upserts)
	assert.Equal(t, []notify.Notification{{Variant: notify.Warning, Message: DuplicateItemMessage}}, rec.All())
}

func TestUpdateQuantityInCartControlsBypassDuplicateCheck(t *testing.T) {
	svc := &fakeService{entries: []model.CartEntry{{ProductID: "KCRwjF7lN97HnEaY", Quantity: 1}}}
	m := NewMutator(svc, &notify.Recorder{})
	current := Reconcile(svc.entries, catalog)

	got, err := m.UpdateQuantity(context.Background(), loggedIn, current, catalog, "KCRwjF7lN97HnEaY", 2, UpdateOptions{})

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 2, got[0].Quantity)
	assert.Equal(t, int64(100), got[0].Cost)
	assert.Equal(t, []upsertCall{{token: "t", productID: "KCRwjF7lN97HnEaY", qty: 2}}, svc.upserts)
}

func TestUpdateQuantityZeroRemoves(t *testing.T) {
	svc := &fakeService{entries: []model.CartEntry{
		{ProductID: "KCRwjF7lN97HnEaY", Quantity: 1},
		{ProductID: "BW0jAAeDJmlZCF8i", Quantity: 2},
	}}
	m := NewMutator(svc, &notify.Recorder{})

	got, err := m.UpdateQuantity(context.Background(), loggedIn, Reconcile(svc.entries, catalog), catalog, "KCRwjF7lN97HnEaY", 0, UpdateOptions{})

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "BW0jAAeDJmlZCF8i", got[0].ProductID)
}

func TestUpdateQuantityRejectsNegative(t *testing.T) {
	svc := &fakeService{}
	m := NewMutator(svc, &notify.Recorder{})

	_, err := m.UpdateQuantity(context.Background(), loggedIn, nil, catalog, "KCRwjF7lN97HnEaY", -1, UpdateOptions{})

	assert.Equal(t, errx.KindValidation, errx.KindOf(err))
	assert.Empty(t, svc.upserts)
}

func TestUpdateQuantityFailureLeavesStateUnchanged(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		message string
	}{
		{
			name:    "server message surfaced verbatim",
			err:     errx.FromStatus(http.StatusNotFound, "Product doesn't exist"),
			message: "Product doesn't exist",
		},
		{
			name:    "network failure gets generic message",
			err:     errx.Connectivity(errors.New("connection refused")),
			message: CartFetchMessage,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeService{err: tt.err}
			rec := &notify.Recorder{}
			m := NewMutator(svc, rec)
			current := []model.CartLineItem{{ProductID: "KCRwjF7lN97HnEaY", Quantity: 1, Cost: 100}}

			got, err := m.UpdateQuantity(context.Background(), loggedIn, current, catalog, "nope", 1, UpdateOptions{})

			require.Error(t, err)
			assert.Equal(t, current, got)
			assert.Len(t, svc.upserts, 1)
			last, _ := rec.Last()
			assert.Equal(t, notify.Error, last.Variant)
			assert.Equal(t, tt.message, last.Message)
		})
	}
}

func TestLoad(t *testing.T) {
	svc := &fakeService{entries: []model.CartEntry{{ProductID: "BW0jAAeDJmlZCF8i", Quantity: 3}}}
	m := NewMutator(svc, &notify.Recorder{})

	items, err := m.Load(context.Background(), nil, catalog)
	require.NoError(t, err)
	assert.Nil(t, items)
	assert.Zero(t, svc.getCalls)

	items, err = m.Load(context.Background(), loggedIn, catalog)
	require.NoError(t, err)
	assert.Equal(t, int64(144), TotalValue(items))
}
