package service

import (
	"sync"
	"time"

	"github.com/brokeradda/adda-admin/internal/mutation"
)

// Toast kinds.
const (
	ToastSuccess = "success"
	ToastFailure = "failure"
)

// Toast is a transient notification for the admin.
type Toast struct {
	Kind    string    `json:"kind"`
	Message string    `json:"message"`
	At      time.Time `json:"at"`
}

// ToastQueue keeps the most recent toasts until the front end drains them.
// Each toast is also written to the log.
type ToastQueue struct {
	mu    sync.Mutex
	items []Toast
	max   int
	now   func() time.Time
	log   mutation.LogNotifier
}

// NewToastQueue holds at most max undelivered toasts; older ones drop first.
func NewToastQueue(max int) *ToastQueue {
	if max <= 0 {
		max = 20
	}
	return &ToastQueue{max: max, now: time.Now}
}

func (q *ToastQueue) Success(msg string) {
	q.log.Success(msg)
	q.push(ToastSuccess, msg)
}

func (q *ToastQueue) Failure(msg string) {
	q.log.Failure(msg)
	q.push(ToastFailure, msg)
}

func (q *ToastQueue) push(kind, msg string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.items = append(q.items, Toast{Kind: kind, Message: msg, At: q.now()})
	if over := len(q.items) - q.max; over > 0 {
		q.items = append(q.items[:0:0], q.items[over:]...)
	}
}

// Drain returns and forgets the pending toasts, oldest first.
func (q *ToastQueue) Drain() []Toast {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := q.items
	q.items = nil
	if out == nil {
		out = []Toast{}
	}
	return out
}
