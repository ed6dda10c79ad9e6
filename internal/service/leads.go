package service

import (
	"context"

	"github.com/brokeradda/adda-admin/internal/listctl"
	"github.com/brokeradda/adda-admin/internal/models"
	"github.com/brokeradda/adda-admin/internal/repository"
)

const resourceLeads = "leads"

// Leads backs the enquiries page. Filters apply as a snapshot from the
// filter panel and a failed refresh keeps the cards already shown.
type Leads struct {
	repo repository.LeadRepository
	list *listctl.Controller[models.Lead]
}

// NewLeads wires the enquiries list to repo.
func NewLeads(repo repository.LeadRepository, settings Settings) *Leads {
	settings = settings.withDefaults()
	return &Leads{
		repo: repo,
		list: listctl.New(listctl.Options[models.Lead]{
			Resource:    resourceLeads,
			Fetch:       repo.List,
			PageSize:    settings.PageSize,
			Debounce:    settings.LeadDebounce,
			FilterMode:  listctl.Snapshot,
			ErrorPolicy: listctl.KeepItems,
			Clock:       settings.Clock,
		}),
	}
}

// List fetches one page without touching the stateful view.
func (s *Leads) List(ctx context.Context, q models.ListQuery) (models.Page[models.Lead], error) {
	return s.repo.List(ctx, q)
}

// View returns the stateful list page.
func (s *Leads) View() View {
	return newView(resourceLeads, s.list)
}
