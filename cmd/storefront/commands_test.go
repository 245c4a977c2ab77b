package main

import (
	"bytes"
	"context"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/fjod/go_cart/storefront/internal/domain"
	"github.com/fjod/go_cart/storefront/internal/fakeshop"
	"github.com/fjod/go_cart/storefront/internal/remote"
	"github.com/fjod/go_cart/storefront/internal/session"
	"github.com/fjod/go_cart/storefront/internal/storefront"
)

func newCLI(t *testing.T) *storefront.Storefront {
	t.Helper()
	srv := httptest.NewServer(fakeshop.New(fakeshop.Config{BcryptCost: bcrypt.MinCost}).Handler())
	t.Cleanup(srv.Close)

	client, err := remote.New(remote.Config{BaseURL: srv.URL, HTTPClient: srv.Client()})
	require.NoError(t, err)
	return storefront.New(client, session.NewMemoryStore(), nil)
}

func exec(t *testing.T, sf *storefront.Storefront, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	err := run(context.Background(), sf, args, &out)
	return out.String(), err
}

func TestRun_Usage(t *testing.T) {
	sf := newCLI(t)

	_, err := exec(t, sf)
	assert.ErrorIs(t, err, errUsage)

	_, err = exec(t, sf, "dance")
	assert.ErrorIs(t, err, errUsage)

	_, err = exec(t, sf, "products", "-sort", "cheapest")
	assert.ErrorIs(t, err, errUsage)

	_, err = exec(t, sf, "cart-add", "p-1001", "many")
	assert.ErrorIs(t, err, errUsage)
}

func TestRun_Products(t *testing.T) {
	sf := newCLI(t)

	out, err := exec(t, sf, "products", "-category", "Books", "-sort", "price_asc")
	require.NoError(t, err)
	assert.Contains(t, out, "p-1002")
	assert.Contains(t, out, "12.50")
	assert.NotContains(t, out, "p-1001")
	assert.Contains(t, out, "categories: Books, Home, Outdoors")

	out, err = exec(t, sf, "product", "p-1003")
	require.NoError(t, err)
	assert.Contains(t, out, "Trail Mug")

	_, err = exec(t, sf, "product", "p-missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRun_ShoppingFlow(t *testing.T) {
	sf := newCLI(t)

	_, err := exec(t, sf, "cart")
	require.ErrorIs(t, err, domain.ErrUnauthenticated)
	assert.Equal(t, "please sign in", describe(err))

	out, err := exec(t, sf, "register", "-name", "Ada", "-email", "ada@example.com", "-password", "secret1")
	require.NoError(t, err)
	assert.Contains(t, out, "signed in")

	out, err = exec(t, sf, "me")
	require.NoError(t, err)
	assert.Equal(t, "Ada <ada@example.com>\n", out)

	out, err = exec(t, sf, "cart-add", "p-1001", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "48.00")

	out, err = exec(t, sf, "wishlist-toggle", "p-1003")
	require.NoError(t, err)
	assert.Equal(t, "p-1003\n", out)

	out, err = exec(t, sf, "product", "p-1003")
	require.NoError(t, err)
	assert.Contains(t, out, "on your wishlist")

	out, err = exec(t, sf, "checkout")
	require.NoError(t, err)
	assert.Contains(t, out, "total 48.00")

	out, err = exec(t, sf, "cart")
	require.NoError(t, err)
	assert.Equal(t, "cart is empty\n", out)

	_, err = exec(t, sf, "checkout")
	assert.ErrorIs(t, err, domain.ErrCheckoutFailed)

	_, err = exec(t, sf, "logout")
	require.NoError(t, err)
	_, err = exec(t, sf, "wishlist")
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)

	_, err = exec(t, sf, "login", "-email", "ada@example.com", "-password", "secret1")
	require.NoError(t, err)
	out, err = exec(t, sf, "wishlist")
	require.NoError(t, err)
	assert.Equal(t, "p-1003\n", out)
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, 2, exitCode(errUsage))
	assert.Equal(t, 1, exitCode(domain.ErrNetwork))
}
