package fakeshop

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/fjod/go_cart/storefront/internal/domain"
)

type CheckoutResponseDTO struct {
	ID    string `json:"id"`
	Total string `json:"total"`
}

// POST /orders/checkout
func (s *Server) checkout(w http.ResponseWriter, r *http.Request) {
	u := userFromContext(r.Context())

	var req struct{}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	key := r.Header.Get("Idempotency-Key")

	s.mu.Lock()
	defer s.mu.Unlock()

	if key != "" {
		if order, ok := s.orders[u.ID+"/"+key]; ok {
			respondJSON(w, http.StatusCreated, CheckoutResponseDTO{ID: order.ID, Total: order.Total.StringFixed(2)})
			return
		}
	}

	cart := s.carts[u.ID]
	if len(cart) == 0 {
		respondError(w, http.StatusConflict, "empty_cart", "cart is empty, nothing to checkout")
		return
	}

	order := domain.Order{ID: uuid.NewString(), Total: domain.CartTotal(cart)}
	delete(s.carts, u.ID)
	if key != "" {
		s.orders[u.ID+"/"+key] = order
	}
	s.logger.Info("order placed", "order_id", order.ID, "user_id", u.ID, "total", order.Total.StringFixed(2))

	respondJSON(w, http.StatusCreated, CheckoutResponseDTO{ID: order.ID, Total: order.Total.StringFixed(2)})
}
