package service

import (
	"context"

	"github.com/brokeradda/adda-admin/internal/apierror"
	"github.com/brokeradda/adda-admin/internal/listctl"
	"github.com/brokeradda/adda-admin/internal/logger"
	"github.com/brokeradda/adda-admin/internal/models"
	"github.com/brokeradda/adda-admin/internal/repository"
	"github.com/brokeradda/adda-admin/internal/validate"
)

const resourceRegions = "regions"

// Regions backs the regions page: list, create form and delete.
type Regions struct {
	deletable[models.Region]
	repo repository.RegionRepository
	rec  Recorder
}

// NewRegions wires the regions list and delete action to repo.
func NewRegions(repo repository.RegionRepository, settings Settings) *Regions {
	settings = settings.withDefaults()
	list := listctl.New(listctl.Options[models.Region]{
		Resource: resourceRegions,
		Fetch:    repo.List,
		PageSize: settings.PageSize,
		Debounce: settings.Debounce,
		Clock:    settings.Clock,
	})
	return &Regions{
		deletable: newDeletable(resourceRegions, list, regionID, repo.Delete, settings),
		repo:      repo,
		rec:       settings.Recorder,
	}
}

func regionID(r models.Region) string { return r.ID }

// List fetches one page without touching the stateful view.
func (s *Regions) List(ctx context.Context, q models.ListQuery) (models.Page[models.Region], error) {
	return s.repo.List(ctx, q)
}

// Create validates and adds a region, then refreshes the list.
func (s *Regions) Create(ctx context.Context, in models.RegionInput) ([]apierror.FieldError, error) {
	if errs := validate.Struct(in); len(errs) > 0 {
		return errs, nil
	}
	err := s.repo.Create(ctx, in)
	s.rec.RecordMutation(resourceRegions, "create", err)
	if err != nil {
		return nil, err
	}
	logger.Ctx(ctx).Info("region created", logger.String("name", in.Name))
	s.list.Refetch()
	return nil, nil
}
