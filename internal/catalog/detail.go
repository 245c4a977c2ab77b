package catalog

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"golang.org/x/sync/singleflight"

	"github.com/fjod/go_cart/storefront/internal/domain"
	"github.com/fjod/go_cart/storefront/internal/remote"
)

type DetailService struct {
	remote Doer
	sfg    singleflight.Group // collapses concurrent fetches of one id
}

func NewDetailService(r Doer) *DetailService {
	return &DetailService{remote: r}
}

// Get returns one product. A missing id is domain.ErrNotFound; transport
// trouble is domain.ErrNetwork.
func (s *DetailService) Get(ctx context.Context, id string) (*domain.Product, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: empty product id", domain.ErrNotFound)
	}

	// The shared fetch must outlive any one caller; remote.Client bounds it
	// with its own timeout.
	shared := context.WithoutCancel(ctx)
	ch := s.sfg.DoChan(id, func() (interface{}, error) {
		var p domain.Product
		err := s.remote.Do(shared, remote.Request{
			Method: http.MethodGet,
			Path:   "/products/" + url.PathEscape(id),
		}, &p)
		if err != nil {
			return nil, err
		}
		return &p, nil
	})

	var res singleflight.Result
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: get product %s: %w", domain.ErrNetwork, id, ctx.Err())
	case res = <-ch:
	}

	if res.Err != nil {
		if remote.StatusCode(res.Err) == http.StatusNotFound {
			return nil, remote.Reject(res.Err, domain.ErrNotFound)
		}
		return nil, remote.Reject(res.Err, domain.ErrRemoteRejected)
	}

	p := res.Val.(*domain.Product).Clone()
	return &p, nil
}
