// Package cart mutates and reads the signed-in user's cart.
//
// Mutations never touch the local snapshot: merge and price rules live on the
// server, so callers re-read with List after a successful Add.
package cart

import (
	"context"
	"net/http"
	"slices"
	"sync"

	"github.com/fjod/go_cart/storefront/internal/domain"
	"github.com/fjod/go_cart/storefront/internal/remote"
)

type Doer interface {
	Do(ctx context.Context, req remote.Request, out any) error
}

type TokenSource interface {
	Token(ctx context.Context) (string, bool, error)
}

type CartService struct {
	remote  Doer
	session TokenSource

	mu    sync.Mutex
	items []domain.CartItem
}

func NewCartService(r Doer, session TokenSource) *CartService {
	return &CartService{
		remote:  r,
		session: session,
		items:   []domain.CartItem{},
	}
}

type addItemRequestDTO struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// Add asks the server to add quantity of productID; quantity below 1 means 1.
func (s *CartService) Add(ctx context.Context, productID string, quantity int) error {
	token, ok, err := s.session.Token(ctx)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrUnauthenticated
	}
	if quantity < 1 {
		quantity = 1
	}

	err = s.remote.Do(ctx, remote.Request{
		Method: http.MethodPost,
		Path:   "/me/cart",
		Token:  token,
		Body:   addItemRequestDTO{ProductID: productID, Quantity: quantity},
	}, nil)
	return remote.Reject(err, domain.ErrRemoteRejected)
}

// List reads the cart from the server. Anonymous users get an empty cart
// without a network call. On failure the previous snapshot is kept.
func (s *CartService) List(ctx context.Context) ([]domain.CartItem, error) {
	token, ok, err := s.session.Token(ctx)
	if err != nil {
		return nil, err
	}
	if !ok {
		s.Reset()
		return []domain.CartItem{}, nil
	}

	var items []domain.CartItem
	err = s.remote.Do(ctx, remote.Request{Method: http.MethodGet, Path: "/me/cart", Token: token}, &items)
	if err != nil {
		return nil, remote.Reject(err, domain.ErrRemoteRejected)
	}
	if items == nil {
		items = []domain.CartItem{}
	}

	s.mu.Lock()
	s.items = items
	s.mu.Unlock()
	return slices.Clone(items), nil
}

// Items returns the last cart read from the server.
func (s *CartService) Items() []domain.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.items)
}

func (s *CartService) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = []domain.CartItem{}
}
