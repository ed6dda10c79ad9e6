package mutation

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"

	"github.com/brokeradda/adda-admin/internal/listctl"
	"github.com/brokeradda/adda-admin/internal/models"
	"github.com/brokeradda/adda-admin/pkg/adda"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type toasts struct {
	mu       sync.Mutex
	success  []string
	failures []string
}

func (t *toasts) Success(msg string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.success = append(t.success, msg)
}

func (t *toasts) Failure(msg string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.failures = append(t.failures, msg)
}

// brokerFixture wires a broker list served from server-side rows.
type brokerFixture struct {
	mu      sync.Mutex
	server  []models.Broker
	fetches int
	list    *listctl.Controller[models.Broker]
}

func newBrokerFixture(t *testing.T) *brokerFixture {
	t.Helper()
	f := &brokerFixture{server: []models.Broker{
		{ID: "b1", Name: "Asha", ApprovedByAdmin: models.BrokerUnblocked},
		{ID: "b2", Name: "Ravi", ApprovedByAdmin: models.BrokerUnblocked},
	}}
	f.list = listctl.New(listctl.Options[models.Broker]{
		Resource: "brokers",
		Fetch: func(context.Context, models.ListQuery) (models.Page[models.Broker], error) {
			f.mu.Lock()
			defer f.mu.Unlock()
			f.fetches++
			return models.Page[models.Broker]{Items: append([]models.Broker(nil), f.server...), TotalPages: 1}, nil
		},
	})
	t.Cleanup(f.list.Dispose)
	f.list.Mount()
	return f
}

func TestConfirmRunsFullPipeline(t *testing.T) {
	f := newBrokerFixture(t)
	notes := &toasts{}

	var sawOptimistic bool
	var c *Controller[models.Broker]
	c = New(Options[models.Broker]{
		Resource: "brokers",
		List:     f.list,
		ID:       BrokerID,
		Patch:    PatchBroker,
		Adjust:   AdjustBrokerCounters,
		Notifier: notes,
		Execute: func(ctx context.Context, intent models.MutationIntent) error {
			sawOptimistic = c.Phase() == Optimistic &&
				f.list.Snapshot().Items[0].ApprovedByAdmin == models.BrokerBlocked &&
				c.Counters()[CounterBlocked] == 1
			assert.True(t, intent.ConfirmedByUser)

			f.mu.Lock()
			f.server[0].ApprovedByAdmin = models.BrokerBlocked
			f.mu.Unlock()
			return nil
		},
	})
	c.SetCounters(Counters{CounterBlocked: 0, CounterUnblocked: 2})

	intent, err := c.Request("b1", "Asha", models.MutationBlock)
	require.NoError(t, err)
	assert.NotEmpty(t, intent.ID)
	assert.True(t, c.DialogOpen())

	require.NoError(t, c.Confirm(context.Background()))

	assert.True(t, sawOptimistic)
	assert.Equal(t, Reconciled, c.Phase())
	assert.False(t, c.DialogOpen())
	_, pending := c.Pending()
	assert.False(t, pending)
	assert.Equal(t, 2, f.fetches, "mount plus reconciliation refetch")
	assert.Equal(t, []string{"Asha blocked successfully"}, notes.success)
	assert.Equal(t, models.BrokerBlocked, f.list.Snapshot().Items[0].ApprovedByAdmin)
	assert.Equal(t, Counters{CounterBlocked: 1, CounterUnblocked: 1}, c.Counters())
}

func TestFailedCallStillRefetchesAndRevertsToServerTruth(t *testing.T) {
	f := newBrokerFixture(t)
	notes := &toasts{}
	c := New(Options[models.Broker]{
		Resource: "brokers",
		List:     f.list,
		ID:       BrokerID,
		Patch:    PatchBroker,
		Notifier: notes,
		Execute: func(context.Context, models.MutationIntent) error {
			return &adda.StatusError{Status: http.StatusBadRequest}
		},
	})

	_, err := c.Request("b2", "Ravi", models.MutationBlock)
	require.NoError(t, err)
	err = c.Confirm(context.Background())

	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, adda.StatusCode(err))
	assert.Equal(t, 2, f.fetches)
	assert.Equal(t, models.BrokerUnblocked, f.list.Snapshot().Items[1].ApprovedByAdmin)
	assert.Equal(t, []string{"Failed to update brokers"}, notes.failures)
	assert.Equal(t, "Failed to update brokers", f.list.Snapshot().Err)
	assert.Equal(t, Reconciled, c.Phase())
}

func TestCancelHasNoSideEffects(t *testing.T) {
	f := newBrokerFixture(t)
	called := false
	c := New(Options[models.Broker]{
		Resource: "brokers",
		List:     f.list,
		Execute:  func(context.Context, models.MutationIntent) error { called = true; return nil },
	})

	_, err := c.Request("b1", "Asha", models.MutationVerify)
	require.NoError(t, err)
	c.Cancel()

	assert.ErrorIs(t, c.Confirm(context.Background()), ErrNoPendingIntent)
	assert.False(t, called)
	assert.Equal(t, 1, f.fetches)
	assert.Equal(t, Idle, c.Phase())
}

func TestImmediateSkipsDialog(t *testing.T) {
	var executed []models.MutationKind
	list := &fakeList[models.PropertyCard]{}
	c := New(Options[models.PropertyCard]{
		Resource: "properties",
		List:     list,
		ID:       PropertyID,
		Patch:    PatchProperty,
		Execute: func(_ context.Context, intent models.MutationIntent) error {
			executed = append(executed, intent.Kind)
			assert.False(t, intent.ConfirmedByUser)
			return nil
		},
	})

	require.NoError(t, c.Immediate(context.Background(), "p1", "Villa", models.MutationApprove))

	assert.Equal(t, []models.MutationKind{models.MutationApprove}, executed)
	assert.Equal(t, 1, list.refetches)
	assert.False(t, c.DialogOpen())
}

func TestRequestValidation(t *testing.T) {
	c := New(Options[models.Broker]{List: &fakeList[models.Broker]{}})

	_, err := c.Request("", "x", models.MutationBlock)
	assert.ErrorIs(t, err, ErrInvalidIntent)
	_, err = c.Request("b1", "x", models.MutationKind("explode"))
	assert.ErrorIs(t, err, ErrInvalidIntent)
	assert.ErrorIs(t, c.Immediate(context.Background(), "b1", "x", "nope"), ErrInvalidIntent)
}

func TestReconcileHookRunsAfterRefetch(t *testing.T) {
	list := &fakeList[models.Region]{}
	var order []string
	list.onRefetch = func() { order = append(order, "refetch") }
	c := New(Options[models.Region]{
		Resource:  "regions",
		List:      list,
		ID:        func(r models.Region) string { return r.ID },
		Patch:     Remove[models.Region],
		Execute:   func(context.Context, models.MutationIntent) error { return errors.New("boom") },
		Reconcile: func(context.Context) { order = append(order, "reconcile") },
	})

	_, _ = c.Request("r1", "Agra", models.MutationDelete)
	_ = c.Confirm(context.Background())

	assert.Equal(t, []string{"refetch", "reconcile"}, order)
}

func TestBrokerCounterAdjustments(t *testing.T) {
	c := BrokerCounters(models.BrokerSummary{Total: 3, Blocked: 1, Unblocked: 2})

	AdjustBrokerCounters(c, models.MutationBlock)
	assert.Equal(t, 2, c[CounterBlocked])
	assert.Equal(t, 1, c[CounterUnblocked])

	AdjustBrokerCounters(c, models.MutationUnverify)
	assert.Equal(t, 0, c[CounterVerified])

	AdjustBrokerCounters(c, models.MutationVerify)
	assert.Equal(t, 1, c[CounterVerified])
}

func TestRemoveDropsDeletedItems(t *testing.T) {
	list := &fakeList[models.Contact]{}
	list.items = []models.Contact{{ID: "c1"}, {ID: "c2"}}
	c := New(Options[models.Contact]{
		Resource: "contacts",
		List:     list,
		ID:       func(x models.Contact) string { return x.ID },
		Patch:    Remove[models.Contact],
		Execute:  func(context.Context, models.MutationIntent) error { return nil },
	})

	require.NoError(t, c.Immediate(context.Background(), "c1", "", models.MutationDelete))
	assert.Equal(t, []models.Contact{{ID: "c2"}}, list.items)
}

type fakeList[T any] struct {
	items     []T
	refetches int
	lastErr   string
	onRefetch func()
}

func (f *fakeList[T]) Refetch() {
	f.refetches++
	if f.onRefetch != nil {
		f.onRefetch()
	}
}

func (f *fakeList[T]) SetError(msg string) { f.lastErr = msg }

func (f *fakeList[T]) Update(fn func([]T) []T) {
	f.items = fn(f.items)
}
