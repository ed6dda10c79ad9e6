package repository

import (
	"context"
	"fmt"

	"github.com/brokeradda/adda-admin/internal/models"
	"github.com/brokeradda/adda-admin/internal/normalize"
	"github.com/brokeradda/adda-admin/pkg/adda"
)

type regionRepository struct {
	resource[models.Region]
}

// NewRegionRepository creates a new region repository
func NewRegionRepository(client *adda.Client) RegionRepository {
	return &regionRepository{resource: newResource(client, "/api/regions", RegionParams, normalize.Regions)}
}

func (r *regionRepository) Create(ctx context.Context, in models.RegionInput) error {
	if _, err := r.client.Post(ctx, r.path, in); err != nil {
		return fmt.Errorf("failed to create region: %w", err)
	}
	return nil
}

func (r *regionRepository) Delete(ctx context.Context, id string) error {
	return r.delete(ctx, id)
}
