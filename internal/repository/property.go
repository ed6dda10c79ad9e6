package repository

import (
	"context"
	"fmt"

	"github.com/brokeradda/adda-admin/internal/models"
	"github.com/brokeradda/adda-admin/internal/normalize"
	"github.com/brokeradda/adda-admin/pkg/adda"
)

type propertyRepository struct {
	resource[models.PropertyCard]
}

// NewPropertyRepository creates a new property repository
func NewPropertyRepository(client *adda.Client) PropertyRepository {
	return &propertyRepository{resource: newResource(client, "/api/properties", PropertyParams, normalize.Properties)}
}

// GetByID fetches one property. A 2xx body without a property object is
// reported as a 404.
func (r *propertyRepository) GetByID(ctx context.Context, id string) (models.PropertyCard, error) {
	path := r.itemPath(id)
	body, err := r.client.Get(ctx, path, nil)
	if err != nil {
		return models.PropertyCard{}, fmt.Errorf("failed to get property: %w", err)
	}

	p, ok := normalize.PropertyDetail(ctx, body, r.now())
	if !ok {
		return models.PropertyCard{}, fmt.Errorf("failed to get property: %w", notFound(path))
	}
	return p, nil
}

func (r *propertyRepository) Approve(ctx context.Context, id string) error {
	return r.action(ctx, id, string(models.MutationApprove))
}

func (r *propertyRepository) Reject(ctx context.Context, id string) error {
	return r.action(ctx, id, string(models.MutationReject))
}
