// Package auth signs users in against the commerce service.
//
// The client returns tokens to its caller and never stores them itself.
package auth

import (
	"context"
	"fmt"
	"net/http"

	"github.com/fjod/go_cart/storefront/internal/domain"
	"github.com/fjod/go_cart/storefront/internal/remote"
)

type Doer interface {
	Do(ctx context.Context, req remote.Request, out any) error
}

type Client struct {
	remote Doer
}

func NewClient(r Doer) *Client {
	return &Client{remote: r}
}

type loginRequestDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequestDTO struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponseDTO struct {
	AccessToken string `json:"access_token"`
}

func (c *Client) Register(ctx context.Context, name, email, password string) (string, error) {
	return c.authenticate(ctx, "/auth/register", registerRequestDTO{
		Name:     name,
		Email:    email,
		Password: password,
	})
}

func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	return c.authenticate(ctx, "/auth/login", loginRequestDTO{
		Email:    email,
		Password: password,
	})
}

func (c *Client) authenticate(ctx context.Context, path string, body any) (string, error) {
	var resp tokenResponseDTO
	err := c.remote.Do(ctx, remote.Request{Method: http.MethodPost, Path: path, Body: body}, &resp)
	if err != nil {
		return "", remote.Reject(err, domain.ErrValidation)
	}
	if resp.AccessToken == "" {
		return "", fmt.Errorf("%w: %s returned no access token", domain.ErrValidation, path)
	}
	return resp.AccessToken, nil
}

// Profile fetches the signed-in user's profile for token.
func (c *Client) Profile(ctx context.Context, token string) (*domain.Profile, error) {
	if token == "" {
		return nil, domain.ErrUnauthenticated
	}

	var p domain.Profile
	err := c.remote.Do(ctx, remote.Request{Method: http.MethodGet, Path: "/me", Token: token}, &p)
	switch remote.StatusCode(err) {
	case 0:
		if err != nil {
			return nil, err
		}
		return &p, nil
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, remote.Reject(err, domain.ErrUnauthenticated)
	default:
		return nil, remote.Reject(err, domain.ErrRemoteRejected)
	}
}
