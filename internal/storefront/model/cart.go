package model

// CartEntry is the server-held cart row. The server keeps one entry per product.
type CartEntry struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"qty"`
}

// CartLineItem is a CartEntry merged with the display fields of its Product.
// It is derived, never stored.
type CartLineItem struct {
	ProductID string
	Quantity  int
	Name      string
	Category  string
	Cost      int64
	Rating    float64
	Image     string
}

// Subtotal is cost times quantity for this line.
func (i CartLineItem) Subtotal() int64 {
	return i.Cost * int64(i.Quantity)
}

// ContainsProduct reports whether items already hold productID.
func ContainsProduct(items []CartLineItem, productID string) bool {
	for _, it := range items {
		if it.ProductID == productID {
			return true
		}
	}
	return false
}

// OrderSummary is the read-only checkout breakdown.
type OrderSummary struct {
	Products int
	Subtotal int64
	Shipping int64
	Total    int64
}
