// Package wishlist toggles and reads the signed-in user's wishlist. The server
// decides membership; this package only mirrors its last answer.
package wishlist

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

type WishlistService struct {
	remote  Doer
	session TokenSource

	mu    sync.Mutex
	items []domain.WishlistItem
}

func NewWishlistService(r Doer, session TokenSource) *WishlistService {
	return &WishlistService{
		remote:  r,
		session: session,
		items:   []domain.WishlistItem{},
	}
}

type toggleRequestDTO struct {
	ProductID string `json:"product_id"`
}

// Toggle flips productID's membership on the server.
func (s *WishlistService) Toggle(ctx context.Context, productID string) error {
	token, ok, err := s.session.Token(ctx)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrUnauthenticated
	}

	err = s.remote.Do(ctx, remote.Request{
		Method: http.MethodPost,
		Path:   "/me/wishlist",
		Token:  token,
		Body:   toggleRequestDTO{ProductID: productID},
	}, nil)
	return remote.Reject(err, domain.ErrRemoteRejected)
}

func (s *WishlistService) List(ctx context.Context) ([]domain.WishlistItem, error) {
	token, ok, err := s.session.Token(ctx)
	if err != nil {
		return nil, err
	}
	if !ok {
		s.Reset()
		return []domain.WishlistItem{}, nil
	}

	var items []domain.WishlistItem
	err = s.remote.Do(ctx, remote.Request{Method: http.MethodGet, Path: "/me/wishlist", Token: token}, &items)
	if err != nil {
		return nil, remote.Reject(err, domain.ErrRemoteRejected)
	}
	items = dedupe(items)

	s.mu.Lock()
	s.items = items
	s.mu.Unlock()
	return slices.Clone(items), nil
}

func (s *WishlistService) Items() []domain.WishlistItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.items)
}

// Contains reports membership according to the last List.
func (s *WishlistService) Contains(productID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.ContainsFunc(s.items, func(it domain.WishlistItem) bool {
		return it.ProductID == productID
	})
}

func (s *WishlistService) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = []domain.WishlistItem{}
}

// dedupe enforces set semantics on whatever the server sent.
func dedupe(items []domain.WishlistItem) []domain.WishlistItem {
	out := make([]domain.WishlistItem, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for _, it := range items {
		if _, ok := seen[it.ProductID]; ok {
			continue
		}
		seen[it.ProductID] = struct{}{}
		out = append(out, it)
	}
	return out
}
