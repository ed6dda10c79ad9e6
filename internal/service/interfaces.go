package service

import (
	"github.com/brokeradda/adda-admin/internal/listctl"
)

// View drives one stateful list page on behalf of the dashboard front end.
type View interface {
	Resource() string
	Mount()
	Search(text string)
	SetFilter(key, value string)
	ApplyFilters()
	ClearFilters()
	OpenFilterPanel()
	CloseFilterPanel()
	GoToPage(n int)
	Refetch()
	State() any
	Dispose()
}

// Recorder counts admin actions and imports. *metrics.Metrics satisfies it.
type Recorder interface {
	RecordMutation(resource, action string, err error)
	RecordImport(kind string, err error)
}

type nopRecorder struct{}

func (nopRecorder) RecordMutation(string, string, error) {}
func (nopRecorder) RecordImport(string, error)           {}

type view[T any] struct {
	*listctl.Controller[T]
	resource string
}

func newView[T any](resource string, c *listctl.Controller[T]) View {
	return view[T]{Controller: c, resource: resource}
}

func (v view[T]) Resource() string   { return v.resource }
func (v view[T]) Search(text string) { v.SetSearchText(text) }
func (v view[T]) State() any         { return v.Snapshot() }
