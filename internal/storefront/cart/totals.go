package cart

import "github.com/qkart/storefront/internal/storefront/model"

// TotalValue sums cost * quantity over items.
func TotalValue(items []model.CartLineItem) int64 {
	var total int64
	for _, it := range items {
		total += it.Subtotal()
	}
	return total
}

// TotalItemCount sums quantities over items.
func TotalItemCount(items []model.CartLineItem) int {
	total := 0
	for _, it := range items {
		total += it.Quantity
	}
	return total
}

// Visible returns the items the cart view renders; zero-quantity rows are hidden.
func Visible(items []model.CartLineItem) []model.CartLineItem {
	out := make([]model.CartLineItem, 0, len(items))
	for _, it := range items {
		if it.Quantity > 0 {
			out = append(out, it)
		}
	}
	return out
}

// Summarize builds the checkout breakdown. Shipping is free.
func Summarize(items []model.CartLineItem) model.OrderSummary {
	subtotal := TotalValue(items)
	return model.OrderSummary{
		Products: TotalItemCount(items),
		Subtotal: subtotal,
		Shipping: 0,
		Total:    subtotal,
	}
}
