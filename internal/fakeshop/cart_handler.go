package fakeshop

import (
	"net/http"
	"slices"

	"github.com/fjod/go_cart/storefront/internal/domain"
)

type addItemRequestDTO struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type wishlistRequestDTO struct {
	ProductID string `json:"product_id"`
}

type wishlistAckDTO struct {
	ProductID  string `json:"product_id"`
	InWishlist bool   `json:"in_wishlist"`
}

// GET /me/cart
func (s *Server) getCart(w http.ResponseWriter, r *http.Request) {
	u := userFromContext(r.Context())

	s.mu.Lock()
	items := slices.Clone(s.carts[u.ID])
	s.mu.Unlock()
	if items == nil {
		items = []domain.CartItem{}
	}
	respondJSON(w, http.StatusOK, items)
}

// POST /me/cart merges by product id; the first add fixes price_at_add.
func (s *Server) addCartItem(w http.ResponseWriter, r *http.Request) {
	u := userFromContext(r.Context())

	var req addItemRequestDTO
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Quantity <= 0 || req.Quantity > 99 {
		respondError(w, http.StatusBadRequest, "invalid_quantity", "quantity must be between 1 and 99")
		return
	}
	p, ok := s.findProduct(req.ProductID)
	if !ok {
		respondError(w, http.StatusNotFound, "not_found", "product not found")
		return
	}

	s.mu.Lock()
	cart := s.carts[u.ID]
	idx := slices.IndexFunc(cart, func(it domain.CartItem) bool { return it.ProductID == p.ID })
	if idx >= 0 {
		cart[idx].Quantity += req.Quantity
	} else {
		cart = append(cart, domain.CartItem{ProductID: p.ID, Quantity: req.Quantity, PriceAtAdd: p.Price})
	}
	s.carts[u.ID] = cart
	s.mu.Unlock()

	respondJSON(w, http.StatusCreated, map[string]string{"status": "ok"})
}

// GET /me/wishlist
func (s *Server) getWishlist(w http.ResponseWriter, r *http.Request) {
	u := userFromContext(r.Context())

	s.mu.Lock()
	ids := slices.Clone(s.wishlists[u.ID])
	s.mu.Unlock()

	items := make([]domain.WishlistItem, 0, len(ids))
	for _, id := range ids {
		items = append(items, domain.WishlistItem{ProductID: id})
	}
	respondJSON(w, http.StatusOK, items)
}

// POST /me/wishlist toggles membership.
func (s *Server) toggleWishlist(w http.ResponseWriter, r *http.Request) {
	u := userFromContext(r.Context())

	var req wishlistRequestDTO
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if _, ok := s.findProduct(req.ProductID); !ok {
		respondError(w, http.StatusNotFound, "not_found", "product not found")
		return
	}

	s.mu.Lock()
	list := s.wishlists[u.ID]
	idx := slices.Index(list, req.ProductID)
	present := idx < 0
	if present {
		list = append(list, req.ProductID)
	} else {
		list = slices.Delete(list, idx, idx+1)
	}
	s.wishlists[u.ID] = list
	s.mu.Unlock()

	respondJSON(w, http.StatusOK, wishlistAckDTO{ProductID: req.ProductID, InWishlist: present})
}
