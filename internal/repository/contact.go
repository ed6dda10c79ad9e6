package repository

import (
	"context"

	"github.com/brokeradda/adda-admin/internal/models"
	"github.com/brokeradda/adda-admin/internal/normalize"
	"github.com/brokeradda/adda-admin/pkg/adda"
)

type contactRepository struct {
	resource[models.Contact]
}

// NewContactRepository creates a new support request repository
func NewContactRepository(client *adda.Client) ContactRepository {
	return &contactRepository{resource: newResource(client, "/api/contacts", ContactParams, normalize.Contacts)}
}

func (r *contactRepository) Delete(ctx context.Context, id string) error {
	return r.delete(ctx, id)
}
