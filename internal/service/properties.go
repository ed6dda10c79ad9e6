package service

import (
	"context"

	"github.com/brokeradda/adda-admin/internal/listctl"
	"github.com/brokeradda/adda-admin/internal/models"
	"github.com/brokeradda/adda-admin/internal/mutation"
	"github.com/brokeradda/adda-admin/internal/repository"
)

const resourceProperties = "properties"

// Properties backs the property grid and the property detail page.
// Approve and reject run without a confirmation dialog.
type Properties struct {
	repo    repository.PropertyRepository
	list    *listctl.Controller[models.PropertyCard]
	actions *mutation.Controller[models.PropertyCard]
	rec     Recorder
}

// NewProperties wires the property list and action controllers to repo.
func NewProperties(repo repository.PropertyRepository, settings Settings) *Properties {
	settings = settings.withDefaults()
	s := &Properties{repo: repo, rec: settings.Recorder}

	s.list = listctl.New(listctl.Options[models.PropertyCard]{
		Resource: resourceProperties,
		Fetch:    repo.List,
		PageSize: settings.PageSize,
		Debounce: settings.Debounce,
		Clock:    settings.Clock,
	})
	s.actions = mutation.New(mutation.Options[models.PropertyCard]{
		Resource: resourceProperties,
		List:     s.list,
		Execute:  s.execute,
		ID:       mutation.PropertyID,
		Patch:    mutation.PatchProperty,
		Notifier: settings.Notifier,
	})
	return s
}

// List fetches one page without touching the stateful view.
func (s *Properties) List(ctx context.Context, q models.ListQuery) (models.Page[models.PropertyCard], error) {
	return s.repo.List(ctx, q)
}

// View returns the stateful list page.
func (s *Properties) View() View {
	return newView(resourceProperties, s.list)
}

// Get loads one property for the detail page.
func (s *Properties) Get(ctx context.Context, id string) (models.PropertyCard, error) {
	return s.repo.GetByID(ctx, id)
}

// Decide approves or rejects a property immediately.
func (s *Properties) Decide(ctx context.Context, id, title string, kind models.MutationKind) error {
	if kind != models.MutationApprove && kind != models.MutationReject {
		return ErrUnsupportedAction
	}
	return s.actions.Immediate(ctx, id, title, kind)
}

func (s *Properties) execute(ctx context.Context, intent models.MutationIntent) error {
	var err error
	switch intent.Kind {
	case models.MutationApprove:
		err = s.repo.Approve(ctx, intent.TargetID)
	case models.MutationReject:
		err = s.repo.Reject(ctx, intent.TargetID)
	default:
		err = ErrUnsupportedAction
	}
	s.rec.RecordMutation(resourceProperties, string(intent.Kind), err)
	return err
}
