package normalize

import (
	"time"

	"github.com/brokeradda/adda-admin/internal/envelope"
	"github.com/brokeradda/adda-admin/internal/format"
	"github.com/brokeradda/adda-admin/internal/models"
)

// Leads normalizes the enquiries list.
var Leads = Spec[models.Lead]{
	Resource:   "leads",
	ArrayPaths: []string{"data.items", "data.leads", "data.data.leads", "leads", "data"},
	Item:       Lead,
}

// leadRegionPaths is the region fallback chain for enquiries.
var leadRegionPaths = []string{
	"regions.0.name",
	"regions.0.city",
	"region.name",
	"region",
	"secondaryRegion.name",
	"secondaryRegion",
	"optionalRegion.name",
	"optionalRegion",
	"city",
}

// Lead maps one raw enquiry.
func Lead(item any, now time.Time) models.Lead {
	l := models.Lead{
		ID:           id(item),
		CustomerName: envelope.StringOr(item, "Unknown", "customerName", "customer.name", "name", "clientName"),
		Phone:        envelope.StringOr(item, "N/A", "customerPhone", "customer.phone", "phone", "contact.phone"),
		Email:        envelope.StringOr(item, "N/A", "customerEmail", "customer.email", "email"),
		Requirement:  envelope.StringOr(item, "", "requirement", "description", "message", "notes"),
		Region:       envelope.StringOr(item, "Not specified", leadRegionPaths...),
		BrokerName:   envelope.StringOr(item, "Unassigned", "broker.name", "assignedBroker.name", "createdBy.name", "brokerName"),
		CreatedAgo:   ago(item, now, false, "createdAt", "created_at", "date"),
	}

	l.PropertyType = "N/A"
	if s, ok := envelope.String(item, "propertyType", "property.type", "type"); ok {
		l.PropertyType = label(s)
	}
	l.Status = "New"
	if s, ok := envelope.String(item, "status", "leadStatus"); ok {
		l.Status = label(s)
	}

	l.Budget = "N/A"
	if n, ok := envelope.NumberText(item, "budget", "budget.max", "budget.amount", "maxBudget", "price"); ok {
		if amount, ok := format.ParseAmount(n); ok {
			l.Budget = format.Price(amount)
		}
	} else if s, ok := envelope.String(item, "budget", "budgetRange"); ok {
		l.Budget = s
	}
	return l
}
