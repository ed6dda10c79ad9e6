// Package mutation runs admin actions against a list: confirm, patch the
// displayed rows optimistically, call the backend, then refetch so the
// server's answer always wins.
package mutation

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"sync"

	"github.com/brokeradda/adda-admin/internal/apierror"
	"github.com/brokeradda/adda-admin/internal/logger"
	"github.com/brokeradda/adda-admin/internal/models"
	"github.com/google/uuid"
)

var (
	// ErrNoPendingIntent is returned by Confirm when nothing awaits confirmation.
	ErrNoPendingIntent = errors.New("no pending action to confirm")
	// ErrBusy is returned when an action is requested while another runs.
	ErrBusy = errors.New("another action is in progress")
	// ErrInvalidIntent is returned for an unknown kind or empty target.
	ErrInvalidIntent = errors.New("invalid action")
)

// Phase is the lifecycle position of the current action.
type Phase int

const (
	Idle Phase = iota
	AwaitingConfirmation
	Optimistic
	Reconciled
)

func (p Phase) String() string {
	switch p {
	case AwaitingConfirmation:
		return "awaiting_confirmation"
	case Optimistic:
		return "optimistic"
	case Reconciled:
		return "reconciled"
	default:
		return "idle"
	}
}

// List is the part of a list controller a mutation touches.
type List[T any] interface {
	Update(fn func(items []T) []T)
	Refetch()
	SetError(msg string)
}

// Executor performs the backend call for an intent.
type Executor func(ctx context.Context, intent models.MutationIntent) error

// Notifier shows transient success and failure messages.
type Notifier interface {
	Success(msg string)
	Failure(msg string)
}

// Counters are summary figures shown beside a list, such as blocked and
// unblocked broker totals.
type Counters map[string]int

// Options configures a Controller.
type Options[T any] struct {
	Resource string
	List     List[T]
	Execute  Executor
	// ID returns the identifier matched against MutationIntent.TargetID.
	ID func(item T) string
	// Patch returns the optimistically updated item, or false to drop it
	// from the list.
	Patch func(item T, kind models.MutationKind) (T, bool)
	// Adjust applies the optimistic counter change for kind.
	Adjust   func(c Counters, kind models.MutationKind)
	Notifier Notifier
	// Reconcile runs after the refetch, typically to reload counters.
	Reconcile func(ctx context.Context)
}

// Controller is safe for concurrent use.
type Controller[T any] struct {
	mu       sync.Mutex
	opts     Options[T]
	pending  *models.MutationIntent
	phase    Phase
	running  bool
	counters Counters
}

// New creates a controller.
func New[T any](opts Options[T]) *Controller[T] {
	if opts.Notifier == nil {
		opts.Notifier = LogNotifier{}
	}
	return &Controller[T]{opts: opts, counters: Counters{}}
}

// Request opens the confirmation dialog for an action.
func (c *Controller[T]) Request(targetID, targetName string, kind models.MutationKind) (models.MutationIntent, error) {
	if targetID == "" || !kind.Valid() {
		return models.MutationIntent{}, ErrInvalidIntent
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.running {
		return models.MutationIntent{}, ErrBusy
	}

	intent := models.MutationIntent{
		ID:         uuid.NewString(),
		TargetID:   targetID,
		TargetName: targetName,
		Kind:       kind,
	}
	c.pending = &intent
	c.phase = AwaitingConfirmation
	return intent, nil
}

// Cancel dismisses the dialog without side effects.
func (c *Controller[T]) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.running {
		return
	}
	c.pending = nil
	c.phase = Idle
}

// Pending returns the intent awaiting confirmation.
func (c *Controller[T]) Pending() (models.MutationIntent, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pending == nil {
		return models.MutationIntent{}, false
	}
	return *c.pending, true
}

// DialogOpen reports whether a confirmation dialog is showing.
func (c *Controller[T]) DialogOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pending != nil && c.phase == AwaitingConfirmation
}

// Phase returns the current lifecycle phase.
func (c *Controller[T]) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

// Counters returns a copy of the summary counters.
func (c *Controller[T]) Counters() Counters {
	c.mu.Lock()
	defer c.mu.Unlock()
	return maps.Clone(c.counters)
}

// SetCounters replaces the counters with server truth.
func (c *Controller[T]) SetCounters(counters Counters) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.counters = maps.Clone(counters)
	if c.counters == nil {
		c.counters = Counters{}
	}
}

// Confirm runs the pending intent.
func (c *Controller[T]) Confirm(ctx context.Context) error {
	c.mu.Lock()
	if c.pending == nil {
		c.mu.Unlock()
		return ErrNoPendingIntent
	}
	if c.running {
		c.mu.Unlock()
		return ErrBusy
	}
	intent := *c.pending
	intent.ConfirmedByUser = true
	c.running = true
	c.mu.Unlock()

	return c.run(ctx, intent)
}

// Immediate runs an action without a confirmation dialog.
func (c *Controller[T]) Immediate(ctx context.Context, targetID, targetName string, kind models.MutationKind) error {
	if targetID == "" || !kind.Valid() {
		return ErrInvalidIntent
	}

	c.mu.Lock()
	if c.running {
		c.mu.Unlock()
		return ErrBusy
	}
	c.running = true
	c.mu.Unlock()

	return c.run(ctx, models.MutationIntent{
		ID:         uuid.NewString(),
		TargetID:   targetID,
		TargetName: targetName,
		Kind:       kind,
	})
}

// run returns the executor's error after the refetch has been issued,
// whatever the outcome.
func (c *Controller[T]) run(ctx context.Context, intent models.MutationIntent) error {
	log := logger.Ctx(ctx).With(
		logger.String("resource", c.opts.Resource),
		logger.String("action", string(intent.Kind)),
		logger.String("target_id", intent.TargetID),
	)

	c.applyOptimistic(intent)

	err := c.opts.Execute(ctx, intent)
	msg := ""
	if err != nil {
		msg = apierror.Describe(err, c.opts.Resource, apierror.OpMutation)
		log.Warn("action failed", logger.Err(err))
		c.opts.Notifier.Failure(msg)
	} else {
		log.Info("action succeeded")
		c.opts.Notifier.Success(SuccessMessage(intent))
	}

	c.opts.List.Refetch()
	if msg != "" {
		c.opts.List.SetError(msg)
	}
	if c.opts.Reconcile != nil {
		c.opts.Reconcile(ctx)
	}

	c.mu.Lock()
	c.phase = Reconciled
	c.pending = nil
	c.running = false
	c.mu.Unlock()

	if err != nil {
		return fmt.Errorf("%s %s: %w", intent.Kind, intent.TargetID, err)
	}
	return nil
}

func (c *Controller[T]) applyOptimistic(intent models.MutationIntent) {
	c.mu.Lock()
	c.phase = Optimistic
	if c.opts.Adjust != nil {
		c.opts.Adjust(c.counters, intent.Kind)
	}
	c.mu.Unlock()

	if c.opts.Patch == nil || c.opts.ID == nil {
		return
	}
	c.opts.List.Update(func(items []T) []T {
		out := items[:0:0]
		for _, item := range items {
			if c.opts.ID(item) != intent.TargetID {
				out = append(out, item)
				continue
			}
			if patched, keep := c.opts.Patch(item, intent.Kind); keep {
				out = append(out, patched)
			}
		}
		return out
	})
}

var pastTense = map[models.MutationKind]string{
	models.MutationBlock:    "blocked",
	models.MutationUnblock:  "unblocked",
	models.MutationVerify:   "verified",
	models.MutationUnverify: "unverified",
	models.MutationApprove:  "approved",
	models.MutationReject:   "rejected",
	models.MutationDelete:   "deleted",
}

// SuccessMessage is the toast shown after a successful action.
func SuccessMessage(intent models.MutationIntent) string {
	name := intent.TargetName
	if name == "" {
		name = "Item"
	}
	return fmt.Sprintf("%s %s successfully", name, pastTense[intent.Kind])
}

// LogNotifier writes toasts to the default logger.
type LogNotifier struct{}

func (LogNotifier) Success(msg string) {
	logger.Info("toast", logger.String("kind", "success"), logger.String("message", msg))
}

func (LogNotifier) Failure(msg string) {
	logger.Warn("toast", logger.String("kind", "failure"), logger.String("message", msg))
}
