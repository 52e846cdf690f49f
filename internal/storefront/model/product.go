package model

// Product is a catalog entry as served by GET /products. Products are immutable once
// fetched and identified by ID.
type Product struct {
	ID       string  `json:"_id"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Cost     int64   `json:"cost"`
	Rating   float64 `json:"rating"`
	Image    string  `json:"image"`
}

// FindProduct returns the product with the given id.
func FindProduct(products []Product, id string) (Product, bool) {
	for _, p := range products {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}
