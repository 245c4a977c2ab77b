package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/fjod/go_cart/storefront/internal/domain"
	"github.com/fjod/go_cart/storefront/internal/storefront"
)

var errUsage = errors.New("usage: storefront <products|product|register|login|logout|me|cart|cart-add|wishlist|wishlist-toggle|checkout> [flags]")

type command func(ctx context.Context, sf *storefront.Storefront, args []string, out io.Writer) error

var commands = map[string]command{
	"products":        listProducts,
	"product":         showProduct,
	"register":        register,
	"login":           login,
	"logout":          logout,
	"me":              showProfile,
	"cart":            showCart,
	"cart-add":        addToCart,
	"wishlist":        showWishlist,
	"wishlist-toggle": toggleWishlist,
	"checkout":        placeOrder,
}

func run(ctx context.Context, sf *storefront.Storefront, args []string, out io.Writer) error {
	if len(args) == 0 {
		return errUsage
	}
	cmd, ok := commands[args[0]]
	if !ok {
		return fmt.Errorf("%w: unknown command %q", errUsage, args[0])
	}
	return cmd(ctx, sf, args[1:], out)
}

func newFlagSet(name string, out io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(out)
	return fs
}

func parse(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %s: %v", errUsage, fs.Name(), err)
	}
	return nil
}

func listProducts(ctx context.Context, sf *storefront.Storefront, args []string, out io.Writer) error {
	fs := newFlagSet("products", out)
	text := fs.String("q", "", "search text")
	category := fs.String("category", "", "exact category")
	sortFlag := fs.String("sort", string(domain.SortNewest), "one of newest, price_asc, price_desc, rating_desc, rating_asc")
	if err := parse(fs, args); err != nil {
		return err
	}
	sortBy, err := domain.ParseSort(*sortFlag)
	if err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}

	res, err := sf.Catalog.Query(ctx, domain.Filters{Text: *text, Category: *category, Sort: sortBy})
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tCATEGORY\tPRICE\tRATING")
	for _, p := range res.Items {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%.1f\n", p.ID, p.Title, p.Category, p.Price.StringFixed(2), p.Rating)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	names := make([]string, 0, len(res.Facets))
	for _, f := range res.Facets {
		names = append(names, f.Name)
	}
	_, err = fmt.Fprintf(out, "categories: %s\n", strings.Join(names, ", "))
	return err
}

func showProduct(ctx context.Context, sf *storefront.Storefront, args []string, out io.Writer) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: product <id>", errUsage)
	}
	p, err := sf.Products.Get(ctx, args[0])
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%s (%s)\n", p.Title, p.ID)
	fmt.Fprintf(out, "%s  %s  rating %.1f\n", p.Category, p.Price.StringFixed(2), p.Rating)
	if p.Description != "" {
		fmt.Fprintln(out, p.Description)
	}
	for _, img := range p.Images {
		fmt.Fprintln(out, img)
	}
	if ok, _ := sf.SignedIn(ctx); ok {
		if _, err := sf.Wishlist.List(ctx); err == nil && sf.Wishlist.Contains(p.ID) {
			fmt.Fprintln(out, "on your wishlist")
		}
	}
	return nil
}

func register(ctx context.Context, sf *storefront.Storefront, args []string, out io.Writer) error {
	fs := newFlagSet("register", out)
	name := fs.String("name", "", "display name")
	email := fs.String("email", "", "email address")
	password := fs.String("password", "", "password")
	if err := parse(fs, args); err != nil {
		return err
	}
	if err := sf.Register(ctx, *name, *email, *password); err != nil {
		return err
	}
	_, err := fmt.Fprintln(out, "registered and signed in")
	return err
}

func login(ctx context.Context, sf *storefront.Storefront, args []string, out io.Writer) error {
	fs := newFlagSet("login", out)
	email := fs.String("email", "", "email address")
	password := fs.String("password", "", "password")
	if err := parse(fs, args); err != nil {
		return err
	}
	if err := sf.Login(ctx, *email, *password); err != nil {
		return err
	}
	_, err := fmt.Fprintln(out, "signed in")
	return err
}

func logout(ctx context.Context, sf *storefront.Storefront, _ []string, out io.Writer) error {
	if err := sf.SignOut(ctx); err != nil {
		return err
	}
	_, err := fmt.Fprintln(out, "signed out")
	return err
}

func showProfile(ctx context.Context, sf *storefront.Storefront, _ []string, out io.Writer) error {
	p, err := sf.Profile(ctx)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(out, "%s <%s>\n", p.Name, p.Email)
	return err
}

func showCart(ctx context.Context, sf *storefront.Storefront, _ []string, out io.Writer) error {
	ok, err := sf.SignedIn(ctx)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrUnauthenticated
	}
	items, err := sf.Cart.List(ctx)
	if err != nil {
		return err
	}
	return printCart(out, items)
}

func printCart(out io.Writer, items []domain.CartItem) error {
	if len(items) == 0 {
		_, err := fmt.Fprintln(out, "cart is empty")
		return err
	}
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PRODUCT\tQTY\tPRICE")
	for _, it := range items {
		fmt.Fprintf(tw, "%s\t%d\t%s\n", it.ProductID, it.Quantity, it.PriceAtAdd.StringFixed(2))
	}
	fmt.Fprintf(tw, "total\t\t%s\n", domain.CartTotal(items).StringFixed(2))
	return tw.Flush()
}

func addToCart(ctx context.Context, sf *storefront.Storefront, args []string, out io.Writer) error {
	if len(args) < 1 || len(args) > 2 {
		return fmt.Errorf("%w: cart-add <id> [qty]", errUsage)
	}
	qty := 1
	if len(args) == 2 {
		n, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("%w: quantity %q is not a number", errUsage, args[1])
		}
		qty = n
	}
	items, err := sf.AddToCart(ctx, args[0], qty)
	if err != nil {
		return err
	}
	return printCart(out, items)
}

func showWishlist(ctx context.Context, sf *storefront.Storefront, _ []string, out io.Writer) error {
	ok, err := sf.SignedIn(ctx)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrUnauthenticated
	}
	items, err := sf.Wishlist.List(ctx)
	if err != nil {
		return err
	}
	return printWishlist(out, items)
}

func printWishlist(out io.Writer, items []domain.WishlistItem) error {
	if len(items) == 0 {
		_, err := fmt.Fprintln(out, "wishlist is empty")
		return err
	}
	for _, it := range items {
		if _, err := fmt.Fprintln(out, it.ProductID); err != nil {
			return err
		}
	}
	return nil
}

func toggleWishlist(ctx context.Context, sf *storefront.Storefront, args []string, out io.Writer) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: wishlist-toggle <id>", errUsage)
	}
	items, err := sf.ToggleWishlist(ctx, args[0])
	if err != nil {
		return err
	}
	return printWishlist(out, items)
}

func placeOrder(ctx context.Context, sf *storefront.Storefront, _ []string, out io.Writer) error {
	order, _, err := sf.PlaceOrder(ctx)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(out, "order %s placed, total %s\n", order.ID, order.Total.StringFixed(2))
	return err
}
