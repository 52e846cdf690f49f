package cart

import (
	"context"

	errx "github.com/qkart/storefront/internal/core/error"
	"github.com/qkart/storefront/internal/storefront/model"
	"github.com/qkart/storefront/internal/storefront/notify"
	logx "github.com/qkart/storefront/pkg/logger"
)

const (
	LoginRequiredMessage = "Login to add an item to the cart"
	DuplicateItemMessage = "Item already in cart. Use the cart sidebar to update quantity or remove item."
	NegativeQtyMessage   = "Quantity cannot be negative"
	CartFetchMessage     = "Could not fetch cart details. Check that the backend is running, reachable and returns valid JSON."
)

// Service is the server-held cart.
type Service interface {
	GetCart(ctx context.Context, token string) ([]model.CartEntry, error)
	UpsertCartItem(ctx context.Context, token, productID string, qty int) ([]model.CartEntry, error)
}

type UpdateOptions struct {
	// PreventDuplicate refuses the update when the product is already in the cart.
	// Set by "Add to Cart"; the in-cart +/- controls leave it off.
	PreventDuplicate bool
}

// Mutator applies quantity changes to the server cart and re-derives line items from
// the server's answer. It never patches local state optimistically.
type Mutator struct {
	svc      Service
	notifier notify.Notifier
}

func NewMutator(svc Service, notifier notify.Notifier) *Mutator {
	if notifier == nil {
		notifier = notify.LogNotifier{}
	}
	return &Mutator{svc: svc, notifier: notifier}
}

// Fetch returns the raw server cart for sess. Without an active session it returns
// nil and makes no request.
func (m *Mutator) Fetch(ctx context.Context, sess *model.Session) ([]model.CartEntry, error) {
	if !sess.Active() {
		return nil, nil
	}
	entries, err := m.svc.GetCart(ctx, sess.Token)
	if err != nil {
		logx.Error().Err(err).Msg("failed to fetch cart")
		m.surface(err, CartFetchMessage)
		return nil, err
	}
	return entries, nil
}

// Load is Fetch followed by Reconcile against catalog.
func (m *Mutator) Load(ctx context.Context, sess *model.Session, catalog []model.Product) ([]model.CartLineItem, error) {
	entries, err := m.Fetch(ctx, sess)
	if err != nil {
		return nil, err
	}
	return Reconcile(entries, catalog), nil
}

// UpdateQuantity sets productID to qty in the server cart and returns the new items.
// On refusal or failure it returns current unchanged together with the error.
func (m *Mutator) UpdateQuantity(
	ctx context.Context,
	sess *model.Session,
	current []model.CartLineItem,
	catalog []model.Product,
	productID string,
	qty int,
	opts UpdateOptions,
) ([]model.CartLineItem, error) {
	if !sess.Active() {
		m.notifier.Notify(notify.Warning, LoginRequiredMessage)
		return current, errx.Unauthorized(LoginRequiredMessage)
	}

	if opts.PreventDuplicate && model.ContainsProduct(current, productID) {
		m.notifier.Notify(notify.Warning, DuplicateItemMessage)
		return current, errx.Conflict(DuplicateItemMessage)
	}

	if qty < 0 {
		m.notifier.Notify(notify.Warning, NegativeQtyMessage)
		return current, errx.Validation(NegativeQtyMessage)
	}

	entries, err := m.svc.UpsertCartItem(ctx, sess.Token, productID, qty)
	if err != nil {
		logx.Error().Err(err).Str("product_id", productID).Int("qty", qty).Msg("cart update failed")
		m.surface(err, CartFetchMessage)
		return current, err
	}

	return Reconcile(entries, catalog), nil
}

// surface shows the server's own message when it sent one, otherwise the generic
// connectivity message.
func (m *Mutator) surface(err error, generic string) {
	if errx.IsKind(err, errx.KindConnectivity) || errx.IsKind(err, errx.KindInternal) {
		m.notifier.Notify(notify.Error, generic)
		return
	}
	m.notifier.Notify(notify.Error, errx.MessageOf(err, generic))
}
