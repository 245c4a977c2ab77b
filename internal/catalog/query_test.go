package catalog

import (
	"context"
	"encoding/json"
	"net/http"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fjod/go_cart/storefront/internal/domain"
	"github.com/fjod/go_cart/storefront/internal/remote"
)

// pendingCall is one Do invocation held open until the test answers it.
type pendingCall struct {
	req  remote.Request
	out  any
	done chan error
}

func (c *pendingCall) respond(t *testing.T, body string) {
	t.Helper()
	require.NoError(t, json.Unmarshal([]byte(body), c.out))
	c.done <- nil
}

func (c *pendingCall) fail(err error) {
	c.done <- err
}

type scriptedDoer struct {
	calls chan *pendingCall
}

func newScriptedDoer() *scriptedDoer {
	return &scriptedDoer{calls: make(chan *pendingCall, 8)}
}

func (d *scriptedDoer) Do(_ context.Context, req remote.Request, out any) error {
	c := &pendingCall{req: req, out: out, done: make(chan error, 1)}
	d.calls <- c
	return <-c.done
}

type queryOutcome struct {
	res Result
	err error
}

func startQuery(s *QueryService, f domain.Filters) chan queryOutcome {
	ch := make(chan queryOutcome, 1)
	go func() {
		res, err := s.Query(context.Background(), f)
		ch <- queryOutcome{res, err}
	}()
	return ch
}

func keys(v map[string][]string) []string {
	out := make([]string, 0, len(v))
	for k := range v {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func TestBuildQuery_OnlyNonEmptyKeys(t *testing.T) {
	tests := []struct {
		name    string
		filters domain.Filters
		want    []string
		encoded string
	}{
		{"nothing", domain.Filters{}, []string{}, ""},
		{"text only", domain.Filters{Text: "lamp"}, []string{"q"}, "q=lamp"},
		{"category only", domain.Filters{Category: "Books"}, []string{"category"}, "category=Books"},
		{"sort only", domain.Filters{Sort: domain.SortPriceAsc}, []string{"sort"}, "sort=price_asc"},
		{"category and sort", domain.Filters{Category: "Books", Sort: domain.SortNewest}, []string{"category", "sort"}, "category=Books&sort=newest"},
		{"text and sort", domain.Filters{Text: "x", Sort: domain.SortRatingDesc}, []string{"q", "sort"}, "q=x&sort=rating_desc"},
		{"text and category", domain.Filters{Text: "x", Category: "Toys"}, []string{"category", "q"}, "category=Toys&q=x"},
		{"all", domain.Filters{Text: "red mug", Category: "Home", Sort: domain.SortRatingAsc}, []string{"category", "q", "sort"}, "category=Home&q=red+mug&sort=rating_asc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := BuildQuery(tt.filters)
			assert.Equal(t, tt.want, keys(q))
			assert.Equal(t, tt.encoded, q.Encode())
		})
	}
}

func TestQuery_LatestIssuedWinsWhenOlderArrivesLast(t *testing.T) {
	d := newScriptedDoer()
	s := NewQueryService(d, nil)

	first := startQuery(s, domain.Filters{Category: "Books"})
	call1 := <-d.calls
	second := startQuery(s, domain.Filters{Category: "Toys"})
	call2 := <-d.calls

	call2.respond(t, `{"items":[{"id":"t1","title":"Top"}],"categories":["Books","Toys"]}`)
	out2 := <-second
	require.NoError(t, out2.err)

	call1.respond(t, `{"items":[{"id":"b1","title":"Novel"}],"categories":["Books"]}`)
	out1 := <-first
	require.ErrorIs(t, out1.err, ErrStale)

	snap := s.Snapshot()
	require.Len(t, snap.Items, 1)
	assert.Equal(t, "t1", snap.Items[0].ID)
	assert.Equal(t, []domain.CategoryFacet{{Name: "Books"}, {Name: "Toys"}}, snap.Facets)
	assert.Equal(t, "Toys", snap.Filters.Category)
	assert.Equal(t, uint64(2), snap.Sequence)
}

func TestQuery_OlderAnswerBeforeNewerIsStillStale(t *testing.T) {
	d := newScriptedDoer()
	s := NewQueryService(d, nil)

	first := startQuery(s, domain.Filters{Text: "a"})
	call1 := <-d.calls
	second := startQuery(s, domain.Filters{Text: "ab"})
	call2 := <-d.calls

	call1.respond(t, `{"items":[{"id":"old"}],"categories":[]}`)
	assert.ErrorIs(t, (<-first).err, ErrStale)
	assert.Empty(t, s.Snapshot().Items)

	call2.respond(t, `{"items":[{"id":"new"}],"categories":[]}`)
	require.NoError(t, (<-second).err)
	assert.Equal(t, "new", s.Snapshot().Items[0].ID)
}

func TestQuery_FailureKeepsLastGoodState(t *testing.T) {
	d := newScriptedDoer()
	s := NewQueryService(d, nil)

	done := startQuery(s, domain.Filters{})
	(<-d.calls).respond(t, `{"items":[{"id":"p1"}],"categories":["Books"]}`)
	require.NoError(t, (<-done).err)

	done = startQuery(s, domain.Filters{Text: "x"})
	(<-d.calls).fail(&remote.StatusError{Method: http.MethodGet, Path: "/products", Code: http.StatusInternalServerError})
	out := <-done
	require.ErrorIs(t, out.err, domain.ErrRemoteRejected)

	snap := s.Snapshot()
	require.Len(t, snap.Items, 1)
	assert.Equal(t, "p1", snap.Items[0].ID)
	assert.Equal(t, []domain.CategoryFacet{{Name: "Books"}}, snap.Facets)
	assert.ErrorIs(t, snap.Err, domain.ErrRemoteRejected)

	done = startQuery(s, domain.Filters{})
	(<-d.calls).respond(t, `{"items":[],"categories":[]}`)
	require.NoError(t, (<-done).err)
	assert.NoError(t, s.Snapshot().Err)
}

func TestQuery_NetworkFailurePassesThrough(t *testing.T) {
	d := newScriptedDoer()
	s := NewQueryService(d, nil)

	done := startQuery(s, domain.Filters{})
	(<-d.calls).fail(domain.ErrNetwork)
	err := (<-done).err
	assert.ErrorIs(t, err, domain.ErrNetwork)
	assert.NotErrorIs(t, err, domain.ErrRemoteRejected)
}

func TestQuery_StaleFailureIsNotRecorded(t *testing.T) {
	d := newScriptedDoer()
	s := NewQueryService(d, nil)

	first := startQuery(s, domain.Filters{Text: "a"})
	call1 := <-d.calls
	second := startQuery(s, domain.Filters{Text: "b"})
	call2 := <-d.calls

	call2.respond(t, `{"items":[{"id":"b"}]}`)
	require.NoError(t, (<-second).err)
	call1.fail(domain.ErrNetwork)
	assert.ErrorIs(t, (<-first).err, ErrStale)

	assert.NoError(t, s.Snapshot().Err)
}

func TestQuery_MissingArraysDefaultToEmpty(t *testing.T) {
	d := newScriptedDoer()
	s := NewQueryService(d, nil)

	done := startQuery(s, domain.Filters{})
	(<-d.calls).respond(t, `{}`)
	out := <-done
	require.NoError(t, out.err)
	assert.NotNil(t, out.res.Items)
	assert.Empty(t, out.res.Items)
	assert.NotNil(t, out.res.Facets)
}

func TestQuery_SendsUnauthenticatedRead(t *testing.T) {
	d := newScriptedDoer()
	s := NewQueryService(d, nil)

	done := startQuery(s, domain.Filters{Text: "", Category: "Books", Sort: domain.SortNewest})
	c := <-d.calls
	c.respond(t, `{}`)
	<-done

	assert.Equal(t, http.MethodGet, c.req.Method)
	assert.Equal(t, "/products", c.req.Path)
	assert.Empty(t, c.req.Token)
	assert.Equal(t, "category=Books&sort=newest", c.req.Query.Encode())
}

func TestQuery_UnknownSortPanics(t *testing.T) {
	s := NewQueryService(newScriptedDoer(), nil)
	assert.Panics(t, func() {
		s.Query(context.Background(), domain.Filters{Sort: "cheapest"})
	})
}

func TestSetters_KeepOtherFilters(t *testing.T) {
	d := newScriptedDoer()
	s := NewQueryService(d, nil)
	ctx := context.Background()

	answer := func() {
		(<-d.calls).done <- nil
	}

	go answer()
	_, err := s.SetCategory(ctx, "Books")
	require.NoError(t, err)

	go answer()
	_, err = s.SetText(ctx, "dune")
	require.NoError(t, err)

	go answer()
	_, err = s.SetSort(ctx, domain.SortPriceDesc)
	require.NoError(t, err)

	assert.Equal(t, domain.Filters{Text: "dune", Category: "Books", Sort: domain.SortPriceDesc}, s.Snapshot().Filters)
}

func TestNewQueryService_DefaultsToNewest(t *testing.T) {
	s := NewQueryService(newScriptedDoer(), nil)
	assert.Equal(t, domain.SortNewest, s.Snapshot().Filters.Sort)
}

func TestSnapshot_SeparatesIssuedFromApplied(t *testing.T) {
	d := newScriptedDoer()
	s := NewQueryService(d, nil)

	done := startQuery(s, domain.Filters{Category: "Books"})
	(<-d.calls).respond(t, `{"items":[{"id":"b1","images":["b.png"]}],"categories":["Books"]}`)
	require.NoError(t, (<-done).err)

	done = startQuery(s, domain.Filters{Category: "Toys"})
	call := <-d.calls

	snap := s.Snapshot()
	assert.Equal(t, "Toys", snap.Filters.Category)
	assert.Equal(t, "Books", snap.Applied.Category)
	assert.Equal(t, "b1", snap.Items[0].ID)

	call.fail(domain.ErrNetwork)
	require.ErrorIs(t, (<-done).err, domain.ErrNetwork)
	snap = s.Snapshot()
	assert.Equal(t, "Toys", snap.Filters.Category)
	assert.Equal(t, "Books", snap.Applied.Category)
}

func TestQuery_ResultDoesNotAliasState(t *testing.T) {
	d := newScriptedDoer()
	s := NewQueryService(d, nil)

	done := startQuery(s, domain.Filters{})
	(<-d.calls).respond(t, `{"items":[{"id":"p1","images":["a.png"]}],"categories":[]}`)
	out := <-done
	require.NoError(t, out.err)

	out.res.Items[0].Images[0] = "changed.png"
	snap := s.Snapshot()
	assert.Equal(t, []string{"a.png"}, snap.Items[0].Images)

	snap.Items[0].Images[0] = "changed.png"
	assert.Equal(t, []string{"a.png"}, s.Snapshot().Items[0].Images)
}
