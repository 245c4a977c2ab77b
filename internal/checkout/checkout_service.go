// Package checkout turns the server-side cart into an order.
package checkout

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/fjod/go_cart/storefront/internal/domain"
	"github.com/fjod/go_cart/storefront/internal/remote"
)

type Doer interface {
	Do(ctx context.Context, req remote.Request, out any) error
}

type TokenSource interface {
	Token(ctx context.Context) (string, bool, error)
}

// CartReloader re-reads the authoritative cart after an order is placed.
type CartReloader interface {
	List(ctx context.Context) ([]domain.CartItem, error)
}

type CheckoutService struct {
	remote  Doer
	session TokenSource
	cart    CartReloader
	logger  *slog.Logger
}

func NewCheckoutService(r Doer, session TokenSource, cart CartReloader, logger *slog.Logger) *CheckoutService {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &CheckoutService{
		remote:  r,
		session: session,
		cart:    cart,
		logger:  logger,
	}
}

// Checkout places an order for whatever the server holds in the cart; the
// local cart is not consulted. On success the cart is reloaded from the
// server. On failure the local cart snapshot is left as it was.
func (s *CheckoutService) Checkout(ctx context.Context) (*domain.Order, error) {
	token, ok, err := s.session.Token(ctx)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrUnauthenticated
	}

	var order domain.Order
	err = s.remote.Do(ctx, remote.Request{
		Method:         http.MethodPost,
		Path:           "/orders/checkout",
		Token:          token,
		Body:           struct{}{},
		IdempotencyKey: uuid.NewString(),
	}, &order)
	if err != nil {
		return nil, remote.Reject(err, domain.ErrCheckoutFailed)
	}
	if order.Total.IsNegative() {
		return nil, fmt.Errorf("%w: order %s has negative total %s", domain.ErrCheckoutFailed, order.ID, order.Total)
	}

	if _, err := s.cart.List(ctx); err != nil {
		s.logger.Warn("cart reload after checkout failed", "order_id", order.ID, "error", err)
	}
	return &order, nil
}
