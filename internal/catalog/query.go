// Package catalog reads products from the commerce service: filtered listings
// with stale-response suppression, and single-product detail.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/fjod/go_cart/storefront/internal/domain"
	"github.com/fjod/go_cart/storefront/internal/remote"
)

// ErrStale means a later query was issued before this one's answer arrived;
// the answer was dropped.
var ErrStale = errors.New("superseded by a newer query")

type Doer interface {
	Do(ctx context.Context, req remote.Request, out any) error
}

type Result struct {
	Items  []domain.Product
	Facets []domain.CategoryFacet
}

// Snapshot is the service state for rendering. Filters is the latest issued
// selection; Items and Facets belong to Applied, the selection of the last
// successful query, numbered Sequence. The two differ while a query is in
// flight or after one fails.
type Snapshot struct {
	Filters  domain.Filters
	Applied  domain.Filters
	Items    []domain.Product
	Facets   []domain.CategoryFacet
	Sequence uint64
	Err      error
}

type QueryService struct {
	remote Doer
	logger *slog.Logger
	seq    atomic.Uint64

	mu             sync.Mutex
	filters        domain.Filters
	appliedFilters domain.Filters
	applied        uint64
	items          []domain.Product
	facets         []domain.CategoryFacet
	lastErr        error
}

func NewQueryService(r Doer, logger *slog.Logger) *QueryService {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &QueryService{
		remote: r,
		logger: logger,
		filters: domain.Filters{
			Sort: domain.SortNewest,
		},
	}
}

type listResponseDTO struct {
	Items      []domain.Product `json:"items"`
	Categories []string         `json:"categories"`
}

// BuildQuery encodes only the non-empty filter fields.
func BuildQuery(f domain.Filters) url.Values {
	q := url.Values{}
	if f.Text != "" {
		q.Set("q", f.Text)
	}
	if f.Category != "" {
		q.Set("category", f.Category)
	}
	if f.Sort != domain.SortDefault {
		q.Set("sort", string(f.Sort))
	}
	return q
}

// Query fetches the listing for f. Only the most recently issued query may
// change the service state; an older answer returns ErrStale whether it
// succeeded or failed. On failure the last good items and facets stay.
//
// Query panics if f.Sort is not a known sort.
func (s *QueryService) Query(ctx context.Context, f domain.Filters) (Result, error) {
	if !f.Sort.Valid() {
		panic(fmt.Sprintf("catalog: unknown sort %q", f.Sort))
	}

	s.mu.Lock()
	seq := s.seq.Add(1)
	s.filters = f
	s.mu.Unlock()

	var resp listResponseDTO
	err := s.remote.Do(ctx, remote.Request{
		Method: http.MethodGet,
		Path:   "/products",
		Query:  BuildQuery(f),
	}, &resp)

	s.mu.Lock()
	defer s.mu.Unlock()

	if seq != s.seq.Load() {
		s.logger.Debug("discarding stale catalog response", "sequence", seq, "latest", s.seq.Load())
		return Result{}, ErrStale
	}

	if err != nil {
		err = remote.Reject(err, domain.ErrRemoteRejected)
		s.lastErr = err
		return Result{}, err
	}

	res := Result{
		Items:  resp.Items,
		Facets: domain.FacetsFromNames(resp.Categories),
	}
	if res.Items == nil {
		res.Items = []domain.Product{}
	}

	s.items = res.Items
	s.facets = res.Facets
	s.appliedFilters = f
	s.applied = seq
	s.lastErr = nil
	return Result{Items: domain.CloneProducts(res.Items), Facets: slices.Clone(res.Facets)}, nil
}

func (s *QueryService) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		Filters:  s.filters,
		Applied:  s.appliedFilters,
		Items:    domain.CloneProducts(s.items),
		Facets:   slices.Clone(s.facets),
		Sequence: s.applied,
		Err:      s.lastErr,
	}
}

func (s *QueryService) SetText(ctx context.Context, text string) (Result, error) {
	f := s.currentFilters()
	f.Text = text
	return s.Query(ctx, f)
}

// SetCategory selects a category; "" selects all.
func (s *QueryService) SetCategory(ctx context.Context, category string) (Result, error) {
	f := s.currentFilters()
	f.Category = category
	return s.Query(ctx, f)
}

func (s *QueryService) SetSort(ctx context.Context, sort domain.Sort) (Result, error) {
	f := s.currentFilters()
	f.Sort = sort
	return s.Query(ctx, f)
}

func (s *QueryService) currentFilters() domain.Filters {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filters
}
