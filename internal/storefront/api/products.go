package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/qkart/storefront/internal/storefront/model"
)

// ListProducts calls GET /products.
func (c *Client) ListProducts(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	if err := c.do(ctx, request{method: http.MethodGet, path: "/products"}, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// SearchProducts calls GET /products/search?value=text. No match is reported by the
// backend as a 404, which surfaces here as errx.KindNotFound.
func (c *Client) SearchProducts(ctx context.Context, text string) ([]model.Product, error) {
	var products []model.Product
	err := c.do(ctx, request{
		method: http.MethodGet,
		path:   "/products/search",
		query:  url.Values{"value": []string{text}},
	}, &products)
	if err != nil {
		return nil, err
	}
	return products, nil
}
