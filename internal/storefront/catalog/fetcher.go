package catalog

import (
	"context"
	"strings"

	errx "github.com/qkart/storefront/internal/core/error"
	"github.com/qkart/storefront/internal/storefront/model"
	"github.com/qkart/storefront/internal/storefront/notify"
	logx "github.com/qkart/storefront/pkg/logger"
)

const (
	ProductsFetchMessage = "Could not fetch products. Check that the backend is running, reachable and returns valid JSON."
	SearchFailedMessage  = "Could not search products. Check that the backend is running, reachable and returns valid JSON."
)

// Service is the remote product catalog.
type Service interface {
	ListProducts(ctx context.Context) ([]model.Product, error)
	SearchProducts(ctx context.Context, text string) ([]model.Product, error)
}

type Fetcher struct {
	svc      Service
	notifier notify.Notifier
}

func NewFetcher(svc Service, notifier notify.Notifier) *Fetcher {
	if notifier == nil {
		notifier = notify.LogNotifier{}
	}
	return &Fetcher{svc: svc, notifier: notifier}
}

// Load returns the full catalog. Failures are surfaced to the user and yield nil.
func (f *Fetcher) Load(ctx context.Context) ([]model.Product, error) {
	products, err := f.svc.ListProducts(ctx)
	if err != nil {
		logx.Error().Err(err).Msg("failed to load products")
		if errx.IsKind(err, errx.KindServer) {
			f.notifier.Notify(notify.Error, errx.MessageOf(err, ProductsFetchMessage))
		} else {
			f.notifier.Notify(notify.Error, ProductsFetchMessage)
		}
		return nil, err
	}
	if products == nil {
		products = []model.Product{}
	}
	return products, nil
}

// Search returns the list to display after searching for text.
//
//   - no match (404): an empty list
//   - server error: the unfiltered catalog, with a warning
//   - anything else: current, untouched, with a warning
//
// Blank text shows the whole catalog without a request.
func (f *Fetcher) Search(ctx context.Context, text string, all, current []model.Product) ([]model.Product, error) {
	if strings.TrimSpace(text) == "" {
		return all, nil
	}

	products, err := f.svc.SearchProducts(ctx, text)
	if err == nil {
		if products == nil {
			products = []model.Product{}
		}
		return products, nil
	}

	switch errx.KindOf(err) {
	case errx.KindNotFound:
		return []model.Product{}, nil
	case errx.KindServer:
		f.notifier.Notify(notify.Warning, errx.MessageOf(err, SearchFailedMessage))
		return all, err
	default:
		if ctx.Err() != nil {
			// Superseded by a newer search; nothing to tell the user.
			return current, err
		}
		logx.Warn().Err(err).Str("text", text).Msg("product search failed")
		f.notifier.Notify(notify.Warning, SearchFailedMessage)
		return current, err
	}
}

// Filter matches products locally by name or category, case-insensitively.
// Used when the list is already in memory and a round trip is not wanted.
func Filter(products []model.Product, text string) []model.Product {
	q := strings.ToLower(strings.TrimSpace(text))
	if q == "" {
		return products
	}
	out := make([]model.Product, 0, len(products))
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name), q) || strings.Contains(strings.ToLower(p.Category), q) {
			out = append(out, p)
		}
	}
	return out
}
