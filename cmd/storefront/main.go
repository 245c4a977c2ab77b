package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/fjod/go_cart/storefront/internal/config"
	"github.com/fjod/go_cart/storefront/internal/domain"
	"github.com/fjod/go_cart/storefront/internal/logger"
	"github.com/fjod/go_cart/storefront/internal/storefront"
)

func main() {
	cfg, err := config.LoadClient()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	lg, err := logger.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sf, closeSession, err := storefront.Open(ctx, cfg, lg)
	if err != nil {
		log.Fatalf("failed to open storefront: %v", err)
	}

	err = run(ctx, sf, os.Args[1:], os.Stdout)
	if cerr := closeSession(); cerr != nil {
		lg.Warn("failed to close session store", "error", cerr)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, describe(err))
		os.Exit(exitCode(err))
	}
}

// describe turns service errors into something a shopper can act on.
func describe(err error) string {
	switch {
	case errors.Is(err, errUsage):
		return err.Error()
	case errors.Is(err, domain.ErrUnauthenticated):
		return "please sign in"
	case errors.Is(err, domain.ErrNotFound):
		return "not found"
	case errors.Is(err, domain.ErrNetwork):
		return "the shop is unreachable, try again later"
	case errors.Is(err, domain.ErrCheckoutFailed):
		return "checkout failed: " + err.Error()
	case errors.Is(err, domain.ErrValidation):
		return "rejected: " + err.Error()
	default:
		return "error: " + err.Error()
	}
}

func exitCode(err error) int {
	if errors.Is(err, errUsage) {
		return 2
	}
	return 1
}
