package service

import (
	"context"

	"github.com/brokeradda/adda-admin/internal/listctl"
	"github.com/brokeradda/adda-admin/internal/models"
	"github.com/brokeradda/adda-admin/internal/repository"
)

const resourceContacts = "contacts"

// Contacts backs the support requests page.
type Contacts struct {
	deletable[models.Contact]
	repo repository.ContactRepository
}

// NewContacts wires the contacts list and delete action to repo.
func NewContacts(repo repository.ContactRepository, settings Settings) *Contacts {
	settings = settings.withDefaults()
	list := listctl.New(listctl.Options[models.Contact]{
		Resource: resourceContacts,
		Fetch:    repo.List,
		PageSize: settings.PageSize,
		Debounce: settings.Debounce,
		Clock:    settings.Clock,
	})
	return &Contacts{
		deletable: newDeletable(resourceContacts, list, func(c models.Contact) string { return c.ID }, repo.Delete, settings),
		repo:      repo,
	}
}

// List fetches one page without touching the stateful view.
func (s *Contacts) List(ctx context.Context, q models.ListQuery) (models.Page[models.Contact], error) {
	return s.repo.List(ctx, q)
}
