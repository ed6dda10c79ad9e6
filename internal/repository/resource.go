package repository

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/brokeradda/adda-admin/internal/models"
	"github.com/brokeradda/adda-admin/internal/normalize"
	"github.com/brokeradda/adda-admin/pkg/adda"
)

// Clock returns the time used to render relative timestamps.
type Clock func() time.Time

// resource is the list half shared by every repository.
type resource[T any] struct {
	client    *adda.Client
	path      string
	serialize QuerySerializer
	spec      normalize.Spec[T]
	now       Clock
}

func newResource[T any](client *adda.Client, path string, params map[string]string, spec normalize.Spec[T]) resource[T] {
	return resource[T]{
		client:    client,
		path:      path,
		serialize: NewQuerySerializer(params),
		spec:      spec,
		now:       time.Now,
	}
}

func (r *resource[T]) List(ctx context.Context, q models.ListQuery) (models.Page[T], error) {
	body, err := r.client.Get(ctx, r.path, r.serialize(q))
	if err != nil {
		return models.Page[T]{}, fmt.Errorf("failed to list %s: %w", r.spec.Resource, err)
	}
	return r.spec.Page(ctx, body, q.PageSize, r.now()), nil
}

func (r *resource[T]) itemPath(id string, action ...string) string {
	p := r.path + "/" + url.PathEscape(id)
	for _, a := range action {
		p += "/" + a
	}
	return p
}

// action posts to an item sub-resource such as /api/brokers/:id/block.
func (r *resource[T]) action(ctx context.Context, id, action string) error {
	if _, err := r.client.Post(ctx, r.itemPath(id, action), nil); err != nil {
		return fmt.Errorf("failed to %s %s %s: %w", action, r.spec.Resource, id, err)
	}
	return nil
}

func (r *resource[T]) delete(ctx context.Context, id string) error {
	if _, err := r.client.Delete(ctx, r.itemPath(id)); err != nil {
		return fmt.Errorf("failed to delete %s %s: %w", r.spec.Resource, id, err)
	}
	return nil
}

func notFound(path string) error {
	return &adda.StatusError{Method: http.MethodGet, Path: path, Status: http.StatusNotFound, Body: "empty response"}
}
