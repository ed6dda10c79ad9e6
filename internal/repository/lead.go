package repository

import (
	"github.com/brokeradda/adda-admin/internal/models"
	"github.com/brokeradda/adda-admin/internal/normalize"
	"github.com/brokeradda/adda-admin/pkg/adda"
)

type leadRepository struct {
	resource[models.Lead]
}

// NewLeadRepository creates a new enquiry repository
func NewLeadRepository(client *adda.Client) LeadRepository {
	return &leadRepository{resource: newResource(client, "/api/leads", LeadParams, normalize.Leads)}
}
