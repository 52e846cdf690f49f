package app

import (
	"context"
	"sync"
	"time"

	errx "github.com/qkart/storefront/internal/core/error"
	"github.com/qkart/storefront/internal/storefront/api"
	"github.com/qkart/storefront/internal/storefront/cart"
	"github.com/qkart/storefront/internal/storefront/catalog"
	"github.com/qkart/storefront/internal/storefront/model"
	"github.com/qkart/storefront/internal/storefront/notify"
	"github.com/qkart/storefront/internal/storefront/search"
	"github.com/qkart/storefront/internal/storefront/session"
	logx "github.com/qkart/storefront/pkg/logger"
	"golang.org/x/sync/errgroup"
)

// View is the screen the storefront is showing.
type View string

const (
	ViewHome     View = "home"
	ViewLogin    View = "login"
	ViewRegister View = "register"
	ViewCheckout View = "checkout"
)

const (
	CheckoutLoginMessage = "Login to proceed to checkout"
	EmptyCartMessage     = "Cart is empty. Add more items to the cart to checkout."
	NotInCartMessage     = "Item is not in the cart"
)

// State is the storefront view-model. It is replaced as a whole after every
// successful operation and never patched in place, so a Snapshot can be read freely.
type State struct {
	View     View
	Query    string
	Products []model.Product
	Filtered []model.Product
	// Items is nil when there is no cart to show (logged out or cart not loaded).
	Items   []model.CartLineItem
	Loading bool
	Session model.Session
}

type Dependencies struct {
	Catalog  catalog.Service
	Cart     cart.Service
	Auth     session.AuthService
	Sessions model.SessionRepository
	Notifier notify.Notifier
	Debounce time.Duration
}

// Store orchestrates catalog loading, search, cart mutation and the session.
type Store struct {
	catalog  *catalog.Fetcher
	mutator  *cart.Mutator
	sessions *session.Manager
	debounce *search.Debouncer
	notifier notify.Notifier

	mu        sync.Mutex
	state     State
	listeners []func(State)
}

func New(deps Dependencies) *Store {
	n := deps.Notifier
	if n == nil {
		n = notify.LogNotifier{}
	}
	return &Store{
		catalog:  catalog.NewFetcher(deps.Catalog, n),
		mutator:  cart.NewMutator(deps.Cart, n),
		sessions: session.NewManager(deps.Auth, deps.Sessions, n),
		debounce: search.NewDebouncer(deps.Debounce),
		notifier: n,
		state:    State{View: ViewHome},
	}
}

// NewWithClient wires every remote dependency to one API client.
func NewWithClient(c *api.Client, sessions model.SessionRepository, notifier notify.Notifier, debounce time.Duration) *Store {
	return New(Dependencies{
		Catalog:  c,
		Cart:     c,
		Auth:     c,
		Sessions: sessions,
		Notifier: notifier,
		Debounce: debounce,
	})
}

// Snapshot returns the current state.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// OnChange registers fn to be called with the new state after every change.
func (s *Store) OnChange(fn func(State)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// Close cancels any pending or running search.
func (s *Store) Close() {
	s.debounce.Stop()
}

func (s *Store) update(fn func(st *State)) State {
	s.mu.Lock()
	fn(&s.state)
	st := s.state
	listeners := make([]func(State), len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.Unlock()

	for _, l := range listeners {
		l(st)
	}
	return st
}

// Mount restores the session, then loads the catalog and the raw cart concurrently
// and reconciles them. Failures are already surfaced to the user; the first one is
// returned.
func (s *Store) Mount(ctx context.Context) error {
	sess, err := s.sessions.Current(ctx)
	if err != nil {
		logx.Warn().Err(err).Msg("could not restore session; continuing logged out")
	}

	s.update(func(st *State) {
		st.Loading = true
		st.Session = *sess
	})

	var (
		products []model.Product
		entries  []model.CartEntry
	)
	var g errgroup.Group
	g.Go(func() error {
		var err error
		products, err = s.catalog.Load(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		entries, err = s.mutator.Fetch(ctx, sess)
		return err
	})
	loadErr := g.Wait()

	var items []model.CartLineItem
	if products != nil {
		items = cart.Reconcile(entries, products)
	}

	s.update(func(st *State) {
		st.Loading = false
		st.View = ViewHome
		st.Products = products
		st.Filtered = products
		st.Items = items
	})
	return loadErr
}

// Search runs a search immediately and applies the result.
func (s *Store) Search(ctx context.Context, text string) error {
	st := s.update(func(st *State) { st.Query = text })
	out, err := s.catalog.Search(ctx, text, st.Products, st.Filtered)
	s.update(func(st *State) { st.Filtered = out })
	return err
}

// SearchInput records a keystroke. The search runs once input has been quiet for the
// debounce period, and a result is only applied if no newer keystroke arrived.
func (s *Store) SearchInput(ctx context.Context, text string) {
	s.update(func(st *State) { st.Query = text })

	s.debounce.Trigger(ctx, func(ctx context.Context) {
		st := s.Snapshot()
		out, err := s.catalog.Search(ctx, text, st.Products, st.Filtered)
		if ctx.Err() != nil {
			logx.Debug().Str("text", text).Msg("discarding superseded search result")
			return
		}
		if err != nil {
			logx.Debug().Err(err).Str("text", text).Msg("search finished with error")
		}
		s.applySearch(ctx, out)
	})
}

// applySearch re-checks ctx under the state lock so a search superseded while its
// response was in flight never overwrites a newer result.
func (s *Store) applySearch(ctx context.Context, out []model.Product) {
	s.update(func(st *State) {
		if ctx.Err() == nil {
			st.Filtered = out
		}
	})
}

// AddToCart adds one unit of productID from the catalog grid. It refuses products
// already in the cart.
func (s *Store) AddToCart(ctx context.Context, productID string) error {
	return s.mutate(ctx, productID, func([]model.CartLineItem) (int, error) { return 1, nil }, cart.UpdateOptions{PreventDuplicate: true})
}

// SetQuantity sets productID to qty; 0 removes it.
func (s *Store) SetQuantity(ctx context.Context, productID string, qty int) error {
	return s.mutate(ctx, productID, func([]model.CartLineItem) (int, error) { return qty, nil }, cart.UpdateOptions{})
}

// Increment is the cart's "+" control.
func (s *Store) Increment(ctx context.Context, productID string) error {
	return s.mutate(ctx, productID, func(items []model.CartLineItem) (int, error) {
		q, err := quantityOf(items, productID)
		return q + 1, err
	}, cart.UpdateOptions{})
}

// Decrement is the cart's "-" control. At quantity 1 it removes the item.
func (s *Store) Decrement(ctx context.Context, productID string) error {
	return s.mutate(ctx, productID, func(items []model.CartLineItem) (int, error) {
		q, err := quantityOf(items, productID)
		return q - 1, err
	}, cart.UpdateOptions{})
}

func quantityOf(items []model.CartLineItem, productID string) (int, error) {
	for _, it := range items {
		if it.ProductID == productID {
			return it.Quantity, nil
		}
	}
	return 0, errx.New(errx.KindNotFound, 0, NotInCartMessage, nil)
}

func (s *Store) mutate(ctx context.Context, productID string, qtyFn func([]model.CartLineItem) (int, error), opts cart.UpdateOptions) error {
	st := s.Snapshot()
	sess := st.Session

	qty, err := qtyFn(st.Items)
	if err != nil && sess.Active() {
		s.notifier.Notify(notify.Warning, errx.MessageOf(err, NotInCartMessage))
		return err
	}

	items, err := s.mutator.UpdateQuantity(ctx, &sess, st.Items, st.Products, productID, qty, opts)
	if err != nil {
		return err
	}
	s.update(func(st *State) { st.Items = items })
	return nil
}

// Login authenticates, creates the session, reloads the cart and goes home.
func (s *Store) Login(ctx context.Context, creds model.Credentials) error {
	sess, err := s.sessions.Login(ctx, creds)
	if err != nil {
		return err
	}
	s.update(func(st *State) {
		st.Session = *sess
		st.View = ViewHome
	})
	return s.refreshCart(ctx)
}

// Register creates an account and moves to the login view.
func (s *Store) Register(ctx context.Context, form model.Registration) error {
	if err := s.sessions.Register(ctx, form); err != nil {
		return err
	}
	s.update(func(st *State) { st.View = ViewLogin })
	return nil
}

// Logout destroys the session and forgets the cart.
func (s *Store) Logout(ctx context.Context) error {
	if err := s.sessions.Destroy(ctx); err != nil {
		return err
	}
	s.update(func(st *State) {
		st.Session = model.Session{}
		st.Items = nil
		st.View = ViewHome
	})
	return nil
}

// Checkout moves to the checkout view and returns the read-only order summary.
func (s *Store) Checkout(ctx context.Context) (model.OrderSummary, error) {
	st := s.Snapshot()
	if !st.Session.Active() {
		s.notifier.Notify(notify.Warning, CheckoutLoginMessage)
		return model.OrderSummary{}, errx.Unauthorized(CheckoutLoginMessage)
	}
	if len(cart.Visible(st.Items)) == 0 {
		s.notifier.Notify(notify.Warning, EmptyCartMessage)
		return model.OrderSummary{}, errx.Validation(EmptyCartMessage)
	}
	s.update(func(st *State) { st.View = ViewCheckout })
	return cart.Summarize(st.Items), nil
}

// Navigate switches view without side effects.
func (s *Store) Navigate(v View) {
	s.update(func(st *State) { st.View = v })
}

func (s *Store) refreshCart(ctx context.Context) error {
	st := s.Snapshot()
	items, err := s.mutator.Load(ctx, &st.Session, st.Products)
	if err != nil {
		return err
	}
	s.update(func(st *State) { st.Items = items })
	return nil
}
