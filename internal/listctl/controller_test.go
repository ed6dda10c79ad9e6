package listctl

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/brokeradda/adda-admin/internal/models"
	"github.com/brokeradda/adda-admin/pkg/adda"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// manualClock fires timers only when Advance is called.
type manualClock struct {
	mu     sync.Mutex
	now    time.Time
	timers []*manualTimer
}

type manualTimer struct {
	at      time.Time
	f       func()
	stopped bool
	fired   bool
}

func (t *manualTimer) Stop() bool {
	wasActive := !t.stopped && !t.fired
	t.stopped = true
	return wasActive
}

func newManualClock() *manualClock {
	return &manualClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *manualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *manualClock) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &manualTimer{at: c.now.Add(d), f: f}
	c.timers = append(c.timers, t)
	return t
}

func (c *manualClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	var due []*manualTimer
	for _, t := range c.timers {
		if !t.stopped && !t.fired && !t.at.After(c.now) {
			t.fired = true
			due = append(due, t)
		}
	}
	c.mu.Unlock()

	for _, t := range due {
		t.f()
	}
}

// recorder is a FetchFunc that records queries and serves pages.
type recorder struct {
	mu      sync.Mutex
	queries []models.ListQuery
	serve   func(q models.ListQuery) (models.Page[string], error)
}

func (r *recorder) fetch(_ context.Context, q models.ListQuery) (models.Page[string], error) {
	r.mu.Lock()
	r.queries = append(r.queries, q)
	serve := r.serve
	r.mu.Unlock()
	if serve == nil {
		return models.Page[string]{Items: []string{"a"}, CurrentPage: q.Page, TotalPages: 5, TotalItems: 50}, nil
	}
	return serve(q)
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.queries)
}

func (r *recorder) last() models.ListQuery {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.queries[len(r.queries)-1]
}

func newController(t *testing.T, mode FilterMode, debounce time.Duration) (*Controller[string], *recorder, *manualClock) {
	t.Helper()
	rec := &recorder{}
	clock := newManualClock()
	c := New(Options[string]{
		Resource:   "leads",
		Fetch:      rec.fetch,
		PageSize:   10,
		Debounce:   debounce,
		FilterMode: mode,
		Clock:      clock,
	})
	t.Cleanup(c.Dispose)
	return c, rec, clock
}

func TestMountFetchesOnce(t *testing.T) {
	c, rec, _ := newController(t, Inline, 500*time.Millisecond)

	c.Mount()
	c.Mount()

	assert.Equal(t, 1, rec.count())
	assert.Equal(t, models.ListQuery{Page: 1, PageSize: 10, Filters: map[string]string{}}, rec.last())
}

func TestDebounceSendsOnlyLastValue(t *testing.T) {
	c, rec, clock := newController(t, Snapshot, 800*time.Millisecond)
	c.Mount()

	for _, s := range []string{"s", "sh", "shi", "shiv"} {
		c.SetSearchText(s)
		clock.Advance(300 * time.Millisecond)
	}
	assert.Equal(t, 1, rec.count(), "no fetch while typing")
	assert.Equal(t, "shiv", c.Snapshot().RawSearch)
	assert.Empty(t, c.Snapshot().DebouncedSearch)

	clock.Advance(500 * time.Millisecond)

	require.Equal(t, 2, rec.count())
	assert.Equal(t, "shiv", rec.last().Search)
	assert.Equal(t, 1, rec.last().Page)

	clock.Advance(5 * time.Second)
	assert.Equal(t, 2, rec.count())
}

func TestDebounceResetsPageAndSkipsUnchangedSearch(t *testing.T) {
	c, rec, clock := newController(t, Inline, 500*time.Millisecond)
	c.Mount()
	c.GoToPage(3)
	require.Equal(t, 3, c.Snapshot().Page)

	c.SetSearchText("agra")
	clock.Advance(500 * time.Millisecond)
	assert.Equal(t, 1, c.Snapshot().Page)
	assert.Equal(t, 3, rec.count())

	c.SetSearchText("agr")
	c.SetSearchText("agra")
	clock.Advance(500 * time.Millisecond)
	assert.Equal(t, 3, rec.count(), "same debounced value must not refetch")
}

func TestSnapshotFiltersIsolatedUntilApply(t *testing.T) {
	c, rec, _ := newController(t, Snapshot, 0)
	c.Mount()
	before := c.Snapshot().Items

	c.OpenFilterPanel()
	c.SetFilter("region", "Agra")
	c.SetFilter("status", "new")

	assert.Equal(t, 1, rec.count())
	assert.Equal(t, before, c.Snapshot().Items)
	assert.Empty(t, c.Query().Filters)

	c.ApplyFilters()

	require.Equal(t, 2, rec.count())
	assert.Equal(t, map[string]string{"region": "Agra", "status": "new"}, rec.last().Filters)
	assert.Equal(t, 1, rec.last().Page)
	assert.False(t, c.Snapshot().FilterPanelOpen)
}

func TestApplyWithNoSelectionsClears(t *testing.T) {
	c, rec, _ := newController(t, Snapshot, 0)
	c.Mount()
	c.SetFilter("region", "Agra")
	c.ApplyFilters()

	c.SetFilter("region", "")
	c.ApplyFilters()

	assert.Equal(t, 3, rec.count())
	assert.Empty(t, rec.last().Filters)
	assert.Empty(t, c.Snapshot().Applied)
}

func TestInlineFilterFetchesOnChangeOnly(t *testing.T) {
	c, rec, _ := newController(t, Inline, 0)
	c.Mount()
	c.GoToPage(4)

	c.SetFilter("status", "blocked")
	c.SetFilter("status", "blocked")

	assert.Equal(t, 3, rec.count())
	assert.Equal(t, map[string]string{"status": "blocked"}, rec.last().Filters)
	assert.Equal(t, 1, rec.last().Page)
}

func TestGoToPageClamps(t *testing.T) {
	c, rec, _ := newController(t, Inline, 0)
	c.Mount()

	c.GoToPage(99)
	assert.Equal(t, 5, c.Snapshot().Page)

	c.GoToPage(-3)
	assert.Equal(t, 1, c.Snapshot().Page)

	c.GoToPage(1)
	assert.Equal(t, 3, rec.count())
}

func TestShrinkingTotalPagesClampsAndRefetches(t *testing.T) {
	c, rec, _ := newController(t, Inline, 0)
	c.Mount()
	c.GoToPage(5)

	rec.serve = func(q models.ListQuery) (models.Page[string], error) {
		return models.Page[string]{Items: []string{}, CurrentPage: q.Page, TotalPages: 2, TotalItems: 12}, nil
	}
	var observed []int
	c.opts.OnChange = func(s State[string]) { observed = append(observed, s.Page) }

	c.SetFilter("status", "blocked")

	assert.Equal(t, 1, c.Snapshot().Page)
	c.GoToPage(2)
	c.Refetch()
	for _, p := range observed {
		assert.True(t, p >= 1 && p <= 5)
	}

	rec.serve = func(q models.ListQuery) (models.Page[string], error) {
		return models.Page[string]{Items: []string{"x"}, CurrentPage: q.Page, TotalPages: 1, TotalItems: 1}, nil
	}
	n := rec.count()
	c.Refetch()

	assert.Equal(t, 1, c.Snapshot().Page)
	assert.Equal(t, 1, c.Snapshot().TotalPages)
	assert.Equal(t, n+2, rec.count(), "one refetch plus one corrective fetch")
	assert.Equal(t, 1, rec.last().Page)
}

func TestStaleResponsesAreDiscarded(t *testing.T) {
	release := make(chan struct{})
	var mu sync.Mutex
	calls := 0
	c := New(Options[string]{
		Resource: "brokers",
		PageSize: 10,
		Fetch: func(_ context.Context, q models.ListQuery) (models.Page[string], error) {
			mu.Lock()
			calls++
			n := calls
			mu.Unlock()
			if n == 1 {
				<-release
				return models.Page[string]{Items: []string{"stale"}, TotalPages: 1}, nil
			}
			return models.Page[string]{Items: []string{"fresh"}, TotalPages: 1}, nil
		},
	})
	defer c.Dispose()

	done := make(chan struct{})
	go func() {
		c.Mount()
		close(done)
	}()
	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return calls == 1
	}, time.Second, time.Millisecond)

	c.Refetch()
	close(release)
	<-done

	assert.Equal(t, []string{"fresh"}, c.Snapshot().Items)
	assert.False(t, c.Snapshot().Loading)
}

func TestDisposeDropsInFlightResult(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	c := New(Options[string]{
		Resource: "regions",
		Fetch: func(ctx context.Context, q models.ListQuery) (models.Page[string], error) {
			close(started)
			<-release
			return models.Page[string]{Items: []string{"late"}}, nil
		},
	})

	done := make(chan struct{})
	go func() {
		c.Mount()
		close(done)
	}()
	<-started
	c.Dispose()
	close(release)
	<-done

	assert.Empty(t, c.Snapshot().Items)
	c.Refetch()
	c.GoToPage(2)
}

func TestErrorPolicies(t *testing.T) {
	fail := false
	fetch := func(_ context.Context, q models.ListQuery) (models.Page[string], error) {
		if fail {
			return models.Page[string]{}, &adda.StatusError{Status: http.StatusInternalServerError}
		}
		return models.Page[string]{Items: []string{"a", "b"}, TotalPages: 1}, nil
	}

	clearing := New(Options[string]{Resource: "brokers", Fetch: fetch})
	keeping := New(Options[string]{Resource: "leads", Fetch: fetch, ErrorPolicy: KeepItems})
	defer clearing.Dispose()
	defer keeping.Dispose()

	clearing.Mount()
	keeping.Mount()
	fail = true
	clearing.Refetch()
	keeping.Refetch()

	assert.Empty(t, clearing.Snapshot().Items)
	assert.Equal(t, "Server error. Please try again later.", clearing.Snapshot().Err)
	assert.Equal(t, []string{"a", "b"}, keeping.Snapshot().Items)
	assert.Equal(t, "Server error. Please try again later.", keeping.Snapshot().Err)

	fail = false
	keeping.Refetch()
	assert.Empty(t, keeping.Snapshot().Err)
}

func TestNoTokenMessage(t *testing.T) {
	c := New(Options[string]{
		Resource: "contacts",
		Fetch: func(context.Context, models.ListQuery) (models.Page[string], error) {
			return models.Page[string]{}, errors.Join(errors.New("list"), adda.ErrNoToken)
		},
	})
	defer c.Dispose()
	c.Mount()

	assert.Equal(t, "No authentication token found. Please log in again.", c.Snapshot().Err)
}

func TestEmptyStates(t *testing.T) {
	c, rec, _ := newController(t, Snapshot, 0)
	rec.serve = func(models.ListQuery) (models.Page[string], error) {
		return models.Page[string]{}, nil
	}
	c.Mount()
	assert.Equal(t, NoData, c.EmptyState())

	c.SetFilter("region", "Agra")
	assert.Equal(t, NoData, c.EmptyState(), "pending selections are not effective yet")

	c.ApplyFilters()
	assert.Equal(t, NoMatches, c.EmptyState())
	assert.Equal(t, "no_matches", c.Snapshot().EmptyState)

	c.ClearFilters()
	assert.Equal(t, NoData, c.EmptyState())
}

func TestLeadsScenario(t *testing.T) {
	c, rec, clock := newController(t, Snapshot, DefaultLeadDebounce)
	rec.serve = func(q models.ListQuery) (models.Page[string], error) {
		return models.Page[string]{Items: []string{"l1", "l2", "l3"}, TotalPages: 1, TotalItems: 3}, nil
	}
	c.Mount()
	mounted := rec.count()

	c.SetSearchText("shiv")
	clock.Advance(DefaultLeadDebounce)

	require.Equal(t, mounted+1, rec.count())
	assert.Equal(t, "shiv", rec.last().Search)
	assert.Equal(t, 1, rec.last().Page)
	assert.Len(t, c.Snapshot().Items, 3)

	c.OpenFilterPanel()
	c.SetFilter("region", "Agra")
	c.ApplyFilters()

	require.Equal(t, mounted+2, rec.count())
	assert.Equal(t, "shiv", rec.last().Search)
	assert.Equal(t, map[string]string{"region": "Agra"}, rec.last().Filters)
	assert.Equal(t, 1, rec.last().Page)
}

func TestUpdatePatchesItems(t *testing.T) {
	c, _, _ := newController(t, Inline, 0)
	c.Mount()

	c.Update(func(items []string) []string { return append(items, "b") })

	assert.Equal(t, []string{"a", "b"}, c.Snapshot().Items)
}
