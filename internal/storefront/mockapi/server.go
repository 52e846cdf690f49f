package mockapi

import (
	"encoding/json"
	"net/http"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/qkart/storefront/internal/storefront/catalog"
	"github.com/qkart/storefront/internal/storefront/model"
	logx "github.com/qkart/storefront/pkg/logger"
)

// StartingBalance is credited to every registered user.
const StartingBalance = 5000

type user struct {
	password string
	balance  int64
}

// Server is an in-memory QKart backend for local development and tests. It follows
// the REST contract the client consumes, including its failure bodies.
type Server struct {
	mu       sync.Mutex
	products []model.Product
	users    map[string]*user
	tokens   map[string]string
	carts    map[string][]model.CartEntry
}

func New(products []model.Product) *Server {
	if products == nil {
		products = SeedProducts
	}
	cp := make([]model.Product, len(products))
	copy(cp, products)
	return &Server{
		products: cp,
		users:    map[string]*user{},
		tokens:   map[string]string{},
		carts:    map[string][]model.CartEntry{},
	}
}

// AddUser registers username directly, bypassing validation.
func (s *Server) AddUser(username, password string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[username] = &user{password: password, balance: StartingBalance}
}

// Handler returns the routes mounted at the root.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/products", s.listProducts)
	r.Get("/products/search", s.searchProducts)
	r.Route("/cart", func(r chi.Router) {
		r.Use(s.requireToken)
		r.Get("/", s.getCart)
		r.Post("/", s.upsertCart)
	})
	r.Post("/auth/login", s.login)
	r.Post("/auth/register", s.register)
	return r
}

type failure struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logx.Error().Err(err).Msg("mockapi: failed to encode response")
	}
}

func writeFailure(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, failure{Success: false, Message: message})
}

func (s *Server) listProducts(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, s.products)
}

func (s *Server) searchProducts(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	matched := catalog.Filter(s.products, r.URL.Query().Get("value"))
	s.mu.Unlock()

	if len(matched) == 0 {
		writeFailure(w, http.StatusNotFound, "No products found")
		return
	}
	writeJSON(w, http.StatusOK, matched)
}

type ctxKey struct{}

func (s *Server) requireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || token == "" {
			writeFailure(w, http.StatusUnauthorized, "Protected route, Oauth2 Bearer token not found")
			return
		}
		s.mu.Lock()
		username, known := s.tokens[token]
		s.mu.Unlock()
		if !known {
			writeFailure(w, http.StatusUnauthorized, "Token is invalid or has expired")
			return
		}
		next.ServeHTTP(w, r.WithContext(withUsername(r.Context(), username)))
	})
}

func (s *Server) getCart(w http.ResponseWriter, r *http.Request) {
	username := usernameFrom(r.Context())
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, s.cartLocked(username))
}

func (s *Server) upsertCart(w http.ResponseWriter, r *http.Request) {
	var in model.CartEntry
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil || in.ProductID == "" {
		writeFailure(w, http.StatusBadRequest, "Request body must contain productId and qty")
		return
	}
	if in.Quantity < 0 {
		writeFailure(w, http.StatusBadRequest, "Quantity cannot be negative")
		return
	}

	username := usernameFrom(r.Context())
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := model.FindProduct(s.products, in.ProductID); !ok {
		writeFailure(w, http.StatusNotFound, "Product doesn't exist")
		return
	}

	current := s.cartLocked(username)
	next := make([]model.CartEntry, 0, len(current)+1)
	found := false
	for _, e := range current {
		if e.ProductID == in.ProductID {
			found = true
			if in.Quantity == 0 {
				continue
			}
			e.Quantity = in.Quantity
		}
		next = append(next, e)
	}
	if !found && in.Quantity > 0 {
		next = append(next, in)
	}
	s.carts[username] = next
	writeJSON(w, http.StatusOK, next)
}

func (s *Server) cartLocked(username string) []model.CartEntry {
	if c, ok := s.carts[username]; ok {
		return c
	}
	return []model.CartEntry{}
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var creds model.Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		writeFailure(w, http.StatusBadRequest, "Request body must contain username and password")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[creds.Username]
	if !ok {
		writeFailure(w, http.StatusBadRequest, "Username does not exist")
		return
	}
	if u.password != creds.Password {
		writeFailure(w, http.StatusBadRequest, "Password is incorrect")
		return
	}

	token := uuid.NewString()
	s.tokens[token] = creds.Username
	writeJSON(w, http.StatusCreated, map[string]any{
		"success":  true,
		"token":    token,
		"username": creds.Username,
		"balance":  u.balance,
	})
}

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	var creds model.Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil || creds.Username == "" || creds.Password == "" {
		writeFailure(w, http.StatusBadRequest, "Request body must contain username and password")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, taken := s.users[creds.Username]; taken {
		writeFailure(w, http.StatusBadRequest, "Username is already taken")
		return
	}
	s.users[creds.Username] = &user{password: creds.Password, balance: StartingBalance}
	writeJSON(w, http.StatusCreated, map[string]any{"success": true})
}
