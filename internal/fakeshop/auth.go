package fakeshop

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var errInvalidToken = errors.New("invalid token")

type claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

type tokenIssuer struct {
	secret []byte
	ttl    time.Duration
}

func newTokenIssuer(secret string, ttl time.Duration) *tokenIssuer {
	return &tokenIssuer{secret: []byte(secret), ttl: ttl}
}

func (t *tokenIssuer) issue(u *user) (string, error) {
	now := time.Now()
	c := claims{
		Email: u.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "fakeshop",
			Subject:   u.ID,
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(t.secret)
}

func (t *tokenIssuer) parse(raw string) (*claims, error) {
	token, err := jwt.ParseWithClaims(raw, &claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errInvalidToken
		}
		return t.secret, nil
	})
	if err != nil {
		return nil, errInvalidToken
	}
	c, ok := token.Claims.(*claims)
	if !ok || !token.Valid {
		return nil, errInvalidToken
	}
	return c, nil
}

type ctxKey struct{}

func (s *Server) requireBearer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || raw == "" {
			respondError(w, http.StatusUnauthorized, "unauthorized", "missing bearer token")
			return
		}
		c, err := s.tokens.parse(raw)
		if err != nil {
			respondError(w, http.StatusUnauthorized, "unauthorized", "invalid bearer token")
			return
		}

		s.mu.Lock()
		u, ok := s.users[c.Email]
		s.mu.Unlock()
		if !ok || u.ID != c.Subject {
			respondError(w, http.StatusUnauthorized, "unauthorized", "unknown user")
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, u)))
	})
}

func userFromContext(ctx context.Context) *user {
	u, _ := ctx.Value(ctxKey{}).(*user)
	return u
}

type registerRequestDTO struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequestDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponseDTO struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type profileDTO struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequestDTO
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if strings.TrimSpace(req.Name) == "" {
		respondError(w, http.StatusUnprocessableEntity, "invalid_name", "name is required")
		return
	}
	if !strings.Contains(req.Email, "@") {
		respondError(w, http.StatusUnprocessableEntity, "invalid_email", "email is invalid")
		return
	}
	if len(req.Password) < 6 {
		respondError(w, http.StatusUnprocessableEntity, "invalid_password", "password must be at least 6 characters")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cfg.BcryptCost)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "could not hash password")
		return
	}

	s.mu.Lock()
	if _, exists := s.users[req.Email]; exists {
		s.mu.Unlock()
		respondError(w, http.StatusConflict, "already_exists", "email already registered")
		return
	}
	u := &user{ID: uuid.NewString(), Name: strings.TrimSpace(req.Name), Email: req.Email, PasswordHash: string(hash)}
	s.users[u.Email] = u
	s.mu.Unlock()

	s.respondToken(w, http.StatusCreated, u)
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequestDTO
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	s.mu.Lock()
	u, ok := s.users[strings.ToLower(strings.TrimSpace(req.Email))]
	s.mu.Unlock()
	if !ok || bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)) != nil {
		respondError(w, http.StatusUnauthorized, "invalid_credentials", "invalid email or password")
		return
	}

	s.respondToken(w, http.StatusOK, u)
}

func (s *Server) respondToken(w http.ResponseWriter, status int, u *user) {
	token, err := s.tokens.issue(u)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "could not issue token")
		return
	}
	respondJSON(w, status, tokenResponseDTO{AccessToken: token, TokenType: "bearer"})
}

func (s *Server) me(w http.ResponseWriter, r *http.Request) {
	u := userFromContext(r.Context())
	respondJSON(w, http.StatusOK, profileDTO{Name: u.Name, Email: u.Email})
}
