package service

import (
	"context"

	"github.com/brokeradda/adda-admin/internal/listctl"
	"github.com/brokeradda/adda-admin/internal/models"
	"github.com/brokeradda/adda-admin/internal/mutation"
)

// deletable is a list page whose only row action is a confirmed delete.
type deletable[T any] struct {
	resource string
	list     *listctl.Controller[T]
	actions  *mutation.Controller[T]
}

func newDeletable[T any](resource string, list *listctl.Controller[T], id func(T) string,
	remove func(ctx context.Context, id string) error, settings Settings) deletable[T] {
	rec := settings.Recorder
	return deletable[T]{
		resource: resource,
		list:     list,
		actions: mutation.New(mutation.Options[T]{
			Resource: resource,
			List:     list,
			Execute: func(ctx context.Context, intent models.MutationIntent) error {
				err := remove(ctx, intent.TargetID)
				rec.RecordMutation(resource, string(intent.Kind), err)
				return err
			},
			ID:       id,
			Patch:    mutation.Remove[T],
			Notifier: settings.Notifier,
		}),
	}
}

// View returns the stateful list page.
func (d deletable[T]) View() View {
	return newView(d.resource, d.list)
}

// RequestDelete opens the delete confirmation dialog.
func (d deletable[T]) RequestDelete(id, name string) (models.MutationIntent, error) {
	return d.actions.Request(id, name, models.MutationDelete)
}

// Confirm runs the pending delete.
func (d deletable[T]) Confirm(ctx context.Context) error {
	return d.actions.Confirm(ctx)
}

// Cancel dismisses the pending delete.
func (d deletable[T]) Cancel() {
	d.actions.Cancel()
}

// Pending returns the delete awaiting confirmation.
func (d deletable[T]) Pending() (models.MutationIntent, bool) {
	return d.actions.Pending()
}
