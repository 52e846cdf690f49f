package cart

import (
	"github.com/qkart/storefront/internal/storefront/model"
	logx "github.com/qkart/storefront/pkg/logger"
)

// Reconcile merges raw cart entries with the catalog into line items.
//
// A nil entries slice means there is no cart to show and yields nil; an empty one
// yields an empty, non-nil slice. Entries whose product is missing from the catalog
// are dropped.
func Reconcile(entries []model.CartEntry, products []model.Product) []model.CartLineItem {
	items, _ := ReconcileReport(entries, products)
	return items
}

// ReconcileReport is Reconcile that also returns the ids of dropped entries.
func ReconcileReport(entries []model.CartEntry, products []model.Product) ([]model.CartLineItem, []string) {
	if entries == nil {
		return nil, nil
	}

	byID := make(map[string]model.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	items := make([]model.CartLineItem, 0, len(entries))
	var orphans []string
	for _, e := range entries {
		p, ok := byID[e.ProductID]
		if !ok {
			orphans = append(orphans, e.ProductID)
			continue
		}
		items = append(items, lineItem(e, p))
	}

	if len(orphans) > 0 {
		logx.Warn().Strs("product_ids", orphans).Msg("cart references products missing from the catalog; dropping them")
	}
	return items, orphans
}

// lineItem takes identity and quantity from the entry and display fields from the
// product.
func lineItem(e model.CartEntry, p model.Product) model.CartLineItem {
	return model.CartLineItem{
		ProductID: e.ProductID,
		Quantity:  e.Quantity,
		Name:      p.Name,
		Category:  p.Category,
		Cost:      p.Cost,
		Rating:    p.Rating,
		Image:     p.Image,
	}
}
