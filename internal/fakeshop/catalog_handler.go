package fakeshop

import (
	"net/http"
	"slices"
	"sort"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/fjod/go_cart/storefront/internal/domain"
)

type listResponseDTO struct {
	Items      []domain.Product `json:"items"`
	Categories []string         `json:"categories"`
}

// GET /products?q=&category=&sort=
func (s *Server) listProducts(w http.ResponseWriter, r *http.Request) {
	q := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("q")))
	category := r.URL.Query().Get("category")
	sortBy, err := domain.ParseSort(r.URL.Query().Get("sort"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_sort", err.Error())
		return
	}

	s.mu.Lock()
	all := slices.Clone(s.products)
	s.mu.Unlock()

	items := make([]domain.Product, 0, len(all))
	categories := make([]string, 0)
	for _, p := range all {
		if !slices.Contains(categories, p.Category) {
			categories = append(categories, p.Category)
		}
		if category != "" && p.Category != category {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(p.Title+" "+p.Description), q) {
			continue
		}
		items = append(items, p)
	}
	sort.Strings(categories)
	sortProducts(items, sortBy)

	respondJSON(w, http.StatusOK, listResponseDTO{Items: items, Categories: categories})
}

// sortProducts expects items in catalog (oldest first) order.
func sortProducts(items []domain.Product, by domain.Sort) {
	switch by {
	case domain.SortNewest, domain.SortDefault:
		slices.Reverse(items)
	case domain.SortPriceAsc:
		slices.SortStableFunc(items, func(a, b domain.Product) int { return a.Price.Cmp(b.Price) })
	case domain.SortPriceDesc:
		slices.SortStableFunc(items, func(a, b domain.Product) int { return b.Price.Cmp(a.Price) })
	case domain.SortRatingAsc:
		slices.SortStableFunc(items, func(a, b domain.Product) int { return cmpFloat(a.Rating, b.Rating) })
	case domain.SortRatingDesc:
		slices.SortStableFunc(items, func(a, b domain.Product) int { return cmpFloat(b.Rating, a.Rating) })
	}
}

func cmpFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// GET /products/{id}
func (s *Server) getProduct(w http.ResponseWriter, r *http.Request) {
	p, ok := s.findProduct(chi.URLParam(r, "id"))
	if !ok {
		respondError(w, http.StatusNotFound, "not_found", "product not found")
		return
	}
	respondJSON(w, http.StatusOK, p)
}

func (s *Server) findProduct(id string) (domain.Product, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.products {
		if p.ID == id {
			return p, true
		}
	}
	return domain.Product{}, false
}
