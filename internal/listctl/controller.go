// Package listctl implements the search, filter and paginate lifecycle shared
// by every list page of the dashboard.
//
// A Controller fetches only when one of its derived inputs changes: mount,
// the current page, the debounced search text, or the effective filters
// (the applied snapshot in Snapshot mode, the live selections in Inline
// mode). Raw keystrokes and pending snapshot selections never fetch.
package listctl

import (
	"context"
	"maps"
	"strings"
	"sync"
	"time"

	"github.com/brokeradda/adda-admin/internal/apierror"
	"github.com/brokeradda/adda-admin/internal/logger"
	"github.com/brokeradda/adda-admin/internal/models"
)

// FetchFunc loads one page for q.
type FetchFunc[T any] func(ctx context.Context, q models.ListQuery) (models.Page[T], error)

// FilterMode selects when filter selections take effect.
type FilterMode int

const (
	// Inline filters fetch on every change.
	Inline FilterMode = iota
	// Snapshot filters fetch only on ApplyFilters or ClearFilters.
	Snapshot
)

// ErrorPolicy decides what happens to displayed items when a fetch fails.
type ErrorPolicy int

const (
	ClearItems ErrorPolicy = iota
	KeepItems
)

// EmptyState distinguishes an empty resource from an over-filtered one.
type EmptyState int

const (
	HasItems EmptyState = iota
	NoData
	NoMatches
)

func (e EmptyState) String() string {
	switch e {
	case NoData:
		return "no_data"
	case NoMatches:
		return "no_matches"
	default:
		return "has_items"
	}
}

// Default quiet periods.
const (
	DefaultDebounce     = 500 * time.Millisecond
	DefaultLeadDebounce = 800 * time.Millisecond
	DefaultPageSize     = 10
)

// Options configures a Controller.
type Options[T any] struct {
	Resource    string
	Fetch       FetchFunc[T]
	PageSize    int
	Debounce    time.Duration
	FilterMode  FilterMode
	ErrorPolicy ErrorPolicy
	Clock       Clock
	// OnChange receives a copy of the state after every transition.
	OnChange func(State[T])
	// Describe turns a fetch error into the message shown to the admin.
	Describe func(err error) string
}

// State is a point-in-time copy of a controller.
type State[T any] struct {
	RawSearch       string            `json:"raw_search"`
	DebouncedSearch string            `json:"debounced_search"`
	Pending         map[string]string `json:"pending_filters"`
	Applied         map[string]string `json:"applied_filters"`
	Page            int               `json:"page"`
	PageSize        int               `json:"page_size"`
	TotalPages      int               `json:"total_pages"`
	TotalItems      int               `json:"total_items"`
	Items           []T               `json:"items"`
	Loading         bool              `json:"loading"`
	Err             string            `json:"error,omitempty"`
	FilterPanelOpen bool              `json:"filter_panel_open"`
	Empty           EmptyState        `json:"-"`
	EmptyState      string            `json:"empty_state"`
	Fetches         uint64            `json:"fetches"`
}

// Controller is safe for concurrent use.
type Controller[T any] struct {
	mu        sync.Mutex
	opts      Options[T]
	debouncer *Debouncer
	ctx       context.Context
	cancel    context.CancelFunc

	rawSearch       string
	debouncedSearch string
	pending         map[string]string
	applied         map[string]string
	page            int
	totalPages      int
	totalItems      int
	items           []T
	loading         bool
	err             string
	panelOpen       bool

	seq      uint64
	mounted  bool
	disposed bool
}

// New creates a controller. Nothing is fetched until Mount.
func New[T any](opts Options[T]) *Controller[T] {
	if opts.PageSize <= 0 {
		opts.PageSize = DefaultPageSize
	}
	if opts.Clock == nil {
		opts.Clock = SystemClock
	}
	if opts.Describe == nil {
		resource := opts.Resource
		opts.Describe = func(err error) string {
			return apierror.Describe(err, resource, apierror.OpList)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Controller[T]{
		opts:       opts,
		debouncer:  NewDebouncer(opts.Clock, opts.Debounce),
		ctx:        ctx,
		cancel:     cancel,
		pending:    map[string]string{},
		applied:    map[string]string{},
		page:       1,
		totalPages: 1,
		items:      []T{},
	}
}

// Mount performs the initial fetch. Later calls are no-ops.
func (c *Controller[T]) Mount() {
	c.mu.Lock()
	if c.mounted || c.disposed {
		c.mu.Unlock()
		return
	}
	c.mounted = true
	c.mu.Unlock()

	c.fetch()
}

// SetSearchText updates the raw search immediately and schedules the
// debounced value. It never fetches by itself.
func (c *Controller[T]) SetSearchText(s string) {
	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return
	}
	c.rawSearch = s
	c.mu.Unlock()
	c.notify()

	c.debouncer.Call(func() { c.settleSearch(s) })
}

func (c *Controller[T]) settleSearch(s string) {
	c.mu.Lock()
	if c.disposed || strings.TrimSpace(s) == strings.TrimSpace(c.debouncedSearch) {
		c.mu.Unlock()
		return
	}
	c.debouncedSearch = s
	c.page = 1
	c.mu.Unlock()

	c.fetch()
}

// SetFilter records a filter selection. Inline controllers fetch when the
// value changes; Snapshot controllers wait for ApplyFilters.
func (c *Controller[T]) SetFilter(key, value string) {
	c.mu.Lock()
	if c.disposed || c.pending[key] == value {
		c.mu.Unlock()
		return
	}
	if value == "" {
		delete(c.pending, key)
	} else {
		c.pending[key] = value
	}
	inline := c.opts.FilterMode == Inline
	if inline {
		c.page = 1
	}
	c.mu.Unlock()
	c.notify()

	if inline {
		c.fetch()
	}
}

// ApplyFilters copies the pending selections into the applied snapshot,
// closes the filter panel and fetches page 1. With no selections it behaves
// like ClearFilters.
func (c *Controller[T]) ApplyFilters() {
	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return
	}
	if !hasValues(c.pending) {
		c.mu.Unlock()
		c.ClearFilters()
		return
	}
	c.applied = maps.Clone(c.pending)
	c.panelOpen = false
	c.page = 1
	c.mu.Unlock()

	c.fetch()
}

// ClearFilters drops pending and applied filters and fetches page 1.
func (c *Controller[T]) ClearFilters() {
	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return
	}
	c.pending = map[string]string{}
	c.applied = map[string]string{}
	c.panelOpen = false
	c.page = 1
	c.mu.Unlock()

	c.fetch()
}

// OpenFilterPanel shows the advanced filter panel.
func (c *Controller[T]) OpenFilterPanel() {
	c.setPanel(true)
}

// CloseFilterPanel hides the panel without applying pending selections.
func (c *Controller[T]) CloseFilterPanel() {
	c.setPanel(false)
}

func (c *Controller[T]) setPanel(open bool) {
	c.mu.Lock()
	c.panelOpen = open
	c.mu.Unlock()
	c.notify()
}

// GoToPage moves to page n, clamped to [1, TotalPages]. Moving to the
// current page does nothing.
func (c *Controller[T]) GoToPage(n int) {
	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return
	}
	n = clamp(n, c.totalPages)
	if n == c.page {
		c.mu.Unlock()
		return
	}
	c.page = n
	c.mu.Unlock()

	c.fetch()
}

// Refetch reloads the current query, typically after a mutation. It does
// nothing before Mount.
func (c *Controller[T]) Refetch() {
	c.mu.Lock()
	mounted := c.mounted
	c.mu.Unlock()
	if mounted {
		c.fetch()
	}
}

// Update applies fn to the displayed items under the controller lock. It is
// the hook for optimistic patches.
func (c *Controller[T]) Update(fn func(items []T) []T) {
	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return
	}
	c.items = fn(c.items)
	c.mu.Unlock()
	c.notify()
}

// SetError overrides the displayed error message.
func (c *Controller[T]) SetError(msg string) {
	c.mu.Lock()
	c.err = msg
	c.mu.Unlock()
	c.notify()
}

// Dispose stops pending debounces and discards in-flight results.
func (c *Controller[T]) Dispose() {
	c.mu.Lock()
	c.disposed = true
	c.mu.Unlock()

	c.debouncer.Cancel()
	c.cancel()
}

// Query returns the request the next fetch would send.
func (c *Controller[T]) Query() models.ListQuery {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.queryLocked()
}

func (c *Controller[T]) queryLocked() models.ListQuery {
	return models.ListQuery{
		Page:     c.page,
		PageSize: c.opts.PageSize,
		Search:   strings.TrimSpace(c.debouncedSearch),
		Filters:  maps.Clone(c.effectiveFiltersLocked()),
	}
}

func (c *Controller[T]) effectiveFiltersLocked() map[string]string {
	if c.opts.FilterMode == Snapshot {
		return c.applied
	}
	return c.pending
}

// EmptyState classifies the current item list.
func (c *Controller[T]) EmptyState() EmptyState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.emptyStateLocked()
}

func (c *Controller[T]) emptyStateLocked() EmptyState {
	switch {
	case len(c.items) > 0:
		return HasItems
	case strings.TrimSpace(c.debouncedSearch) != "" || hasValues(c.effectiveFiltersLocked()):
		return NoMatches
	default:
		return NoData
	}
}

// Snapshot returns a copy of the current state.
func (c *Controller[T]) Snapshot() State[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Controller[T]) snapshotLocked() State[T] {
	empty := c.emptyStateLocked()
	return State[T]{
		RawSearch:       c.rawSearch,
		DebouncedSearch: c.debouncedSearch,
		Pending:         maps.Clone(c.pending),
		Applied:         maps.Clone(c.applied),
		Page:            c.page,
		PageSize:        c.opts.PageSize,
		TotalPages:      c.totalPages,
		TotalItems:      c.totalItems,
		Items:           append(make([]T, 0, len(c.items)), c.items...),
		Loading:         c.loading,
		Err:             c.err,
		FilterPanelOpen: c.panelOpen,
		Empty:           empty,
		EmptyState:      empty.String(),
		Fetches:         c.seq,
	}
}

// fetch issues one request. Only the response to the most recently issued
// request is applied; older responses and anything arriving after Dispose
// are dropped.
func (c *Controller[T]) fetch() {
	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return
	}
	c.seq++
	seq := c.seq
	q := c.queryLocked()
	c.loading = true
	c.mu.Unlock()
	c.notify()

	page, err := c.opts.Fetch(c.ctx, q)

	c.mu.Lock()
	if c.disposed || seq != c.seq {
		c.mu.Unlock()
		logger.Debug("discarding stale list response",
			logger.String("resource", c.opts.Resource),
			logger.Int("page", q.Page),
		)
		return
	}
	c.loading = false

	corrective := false
	if err != nil {
		c.err = c.opts.Describe(err)
		if c.opts.ErrorPolicy == ClearItems {
			c.items = []T{}
			c.totalItems = 0
		}
		logger.Warn("list fetch failed",
			logger.String("resource", c.opts.Resource),
			logger.Err(err),
		)
	} else {
		page.Clamp(c.opts.PageSize)
		c.err = ""
		c.items = page.Items
		c.totalPages = page.TotalPages
		c.totalItems = page.TotalItems
		if c.page > c.totalPages {
			c.page = c.totalPages
			corrective = true
		}
	}
	c.mu.Unlock()
	c.notify()

	if corrective {
		c.fetch()
	}
}

func (c *Controller[T]) notify() {
	if c.opts.OnChange == nil {
		return
	}
	c.opts.OnChange(c.Snapshot())
}

func clamp(n, totalPages int) int {
	if totalPages < 1 {
		totalPages = 1
	}
	if n < 1 {
		return 1
	}
	if n > totalPages {
		return totalPages
	}
	return n
}

func hasValues(m map[string]string) bool {
	for _, v := range m {
		if v = strings.TrimSpace(v); v != "" && !strings.EqualFold(v, "all") {
			return true
		}
	}
	return false
}
