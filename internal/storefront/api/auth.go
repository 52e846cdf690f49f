package api

import (
	"context"
	"net/http"

	errx "github.com/qkart/storefront/internal/core/error"
	"github.com/qkart/storefront/internal/storefront/model"
)

type LoginResponse struct {
	Success  bool   `json:"success"`
	Token    string `json:"token"`
	Username string `json:"username"`
	Balance  int64  `json:"balance"`
	Message  string `json:"message,omitempty"`
}

type RegisterResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// Login calls POST /auth/login. A 2xx body with success=false is reported as
// errx.KindRejected so callers only ever look at the error.
func (c *Client) Login(ctx context.Context, creds model.Credentials) (*LoginResponse, error) {
	var out LoginResponse
	if err := c.do(ctx, request{method: http.MethodPost, path: "/auth/login", body: creds}, &out); err != nil {
		return nil, err
	}
	if !out.Success || out.Token == "" {
		msg := out.Message
		if msg == "" {
			msg = "Login was not accepted"
		}
		return nil, errx.New(errx.KindRejected, http.StatusOK, msg, nil)
	}
	return &out, nil
}

// Register calls POST /auth/register. Success=false is returned as-is; it means the
// username is taken.
func (c *Client) Register(ctx context.Context, creds model.Credentials) (*RegisterResponse, error) {
	var out RegisterResponse
	if err := c.do(ctx, request{method: http.MethodPost, path: "/auth/register", body: creds}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
