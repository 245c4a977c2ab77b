// Package fakeshop is an in-memory commerce service speaking the same HTTP
// contract as the real one. Tests run it with httptest; cmd/fakeshop serves it
// for local development.
package fakeshop

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/crypto/bcrypt"

	"github.com/fjod/go_cart/storefront/internal/domain"
)

type Config struct {
	JWTSecret      string
	TokenTTL       time.Duration
	BcryptCost     int
	MaxRequestBody int64
	Products       []domain.Product
	Logger         *slog.Logger
}

type user struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
}

type Server struct {
	cfg    Config
	tokens *tokenIssuer
	logger *slog.Logger

	mu        sync.Mutex
	products  []domain.Product // index order is age: later entries are newer
	users     map[string]*user // by email
	carts     map[string][]domain.CartItem
	wishlists map[string][]string
	orders    map[string]domain.Order // by user id + "/" + idempotency key
}

func New(cfg Config) *Server {
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "fakeshop-dev-secret"
	}
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = time.Hour
	}
	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = bcrypt.DefaultCost
	}
	if cfg.MaxRequestBody <= 0 {
		cfg.MaxRequestBody = 1 << 20 // 1MB
	}
	if cfg.Products == nil {
		cfg.Products = SeedProducts()
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}

	return &Server{
		cfg:       cfg,
		tokens:    newTokenIssuer(cfg.JWTSecret, cfg.TokenTTL),
		logger:    cfg.Logger,
		products:  append([]domain.Product(nil), cfg.Products...),
		users:     make(map[string]*user),
		carts:     make(map[string][]domain.CartItem),
		wishlists: make(map[string][]string),
		orders:    make(map[string]domain.Order),
	}
}

func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)
	r.Use(s.limitBody)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/products", func(r chi.Router) {
		r.Get("/", s.listProducts)
		r.Get("/{id}", s.getProduct)
	})

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", s.register)
		r.Post("/login", s.login)
	})

	r.Group(func(r chi.Router) {
		r.Use(s.requireBearer)

		r.Get("/me", s.me)
		r.Route("/me/cart", func(r chi.Router) {
			r.Get("/", s.getCart)
			r.Post("/", s.addCartItem)
		})
		r.Route("/me/wishlist", func(r chi.Router) {
			r.Get("/", s.getWishlist)
			r.Post("/", s.toggleWishlist)
		})
		r.Post("/orders/checkout", s.checkout)
	})

	return r
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		started := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.InfoContext(r.Context(), "request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(started),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

func (s *Server) limitBody(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxRequestBody)
		next.ServeHTTP(w, r)
	})
}
