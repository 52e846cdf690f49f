package api

import (
	"context"
	"net/http"

	"github.com/qkart/storefront/internal/storefront/model"
)

// GetCart calls GET /cart. A JSON null body yields a nil slice.
func (c *Client) GetCart(ctx context.Context, token string) ([]model.CartEntry, error) {
	var entries []model.CartEntry
	if err := c.do(ctx, request{method: http.MethodGet, path: "/cart", token: token}, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// UpsertCartItem calls POST /cart and returns the updated server cart.
// A quantity of 0 asks the backend to remove the entry.
func (c *Client) UpsertCartItem(ctx context.Context, token, productID string, qty int) ([]model.CartEntry, error) {
	var entries []model.CartEntry
	err := c.do(ctx, request{
		method: http.MethodPost,
		path:   "/cart",
		token:  token,
		body:   model.CartEntry{ProductID: productID, Quantity: qty},
	}, &entries)
	if err != nil {
		return nil, err
	}
	return entries, nil
}
