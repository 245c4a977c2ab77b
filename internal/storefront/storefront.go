// Package storefront wires the session, catalog, cart, wishlist and checkout
// services into the single entry point a presentation layer talks to.
package storefront

import (
	"context"
	"log/slog"

	"github.com/fjod/go_cart/storefront/internal/auth"
	"github.com/fjod/go_cart/storefront/internal/cart"
	"github.com/fjod/go_cart/storefront/internal/catalog"
	"github.com/fjod/go_cart/storefront/internal/checkout"
	"github.com/fjod/go_cart/storefront/internal/domain"
	"github.com/fjod/go_cart/storefront/internal/remote"
	"github.com/fjod/go_cart/storefront/internal/session"
	"github.com/fjod/go_cart/storefront/internal/wishlist"
)

type Doer interface {
	Do(ctx context.Context, req remote.Request, out any) error
}

type Storefront struct {
	Session  *session.Manager
	Auth     *auth.Client
	Catalog  *catalog.QueryService
	Products *catalog.DetailService
	Cart     *cart.CartService
	Wishlist *wishlist.WishlistService
	Checkout *checkout.CheckoutService

	logger *slog.Logger
}

func New(r Doer, store session.Store, logger *slog.Logger) *Storefront {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	sess := session.NewManager(store)
	cartSvc := cart.NewCartService(r, sess)
	wishlistSvc := wishlist.NewWishlistService(r, sess)

	sf := &Storefront{
		Session:  sess,
		Auth:     auth.NewClient(r),
		Catalog:  catalog.NewQueryService(r, logger),
		Products: catalog.NewDetailService(r),
		Cart:     cartSvc,
		Wishlist: wishlistSvc,
		Checkout: checkout.NewCheckoutService(r, sess, cartSvc, logger),
		logger:   logger,
	}

	sess.Subscribe(func(e session.Event) {
		logger.Debug("session changed", "event", e.String())
		if e == session.EventSignedOut {
			cartSvc.Reset()
			wishlistSvc.Reset()
		}
	})
	return sf
}

func (s *Storefront) Login(ctx context.Context, email, password string) error {
	token, err := s.Auth.Login(ctx, email, password)
	if err != nil {
		return err
	}
	return s.Session.SetToken(ctx, token)
}

func (s *Storefront) Register(ctx context.Context, name, email, password string) error {
	token, err := s.Auth.Register(ctx, name, email, password)
	if err != nil {
		return err
	}
	return s.Session.SetToken(ctx, token)
}

// SignOut clears the session; subscribed views drop their authenticated state.
func (s *Storefront) SignOut(ctx context.Context) error {
	return s.Session.Clear(ctx)
}

func (s *Storefront) SignedIn(ctx context.Context) (bool, error) {
	_, ok, err := s.Session.Token(ctx)
	return ok, err
}

func (s *Storefront) Profile(ctx context.Context) (*domain.Profile, error) {
	token, ok, err := s.Session.Token(ctx)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrUnauthenticated
	}
	return s.Auth.Profile(ctx, token)
}

// AddToCart adds then re-reads the cart so the caller sees the server's
// merge and pricing.
func (s *Storefront) AddToCart(ctx context.Context, productID string, quantity int) ([]domain.CartItem, error) {
	if err := s.Cart.Add(ctx, productID, quantity); err != nil {
		return nil, err
	}
	return s.Cart.List(ctx)
}

func (s *Storefront) ToggleWishlist(ctx context.Context, productID string) ([]domain.WishlistItem, error) {
	if err := s.Wishlist.Toggle(ctx, productID); err != nil {
		return nil, err
	}
	return s.Wishlist.List(ctx)
}

// PlaceOrder checks out and returns the order with the cart as reloaded from
// the server afterwards.
func (s *Storefront) PlaceOrder(ctx context.Context) (*domain.Order, []domain.CartItem, error) {
	order, err := s.Checkout.Checkout(ctx)
	if err != nil {
		return nil, s.Cart.Items(), err
	}
	return order, s.Cart.Items(), nil
}
