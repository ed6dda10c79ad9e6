package normalize

import (
	"context"
	"strings"
	"time"

	"github.com/brokeradda/adda-admin/internal/envelope"
	"github.com/brokeradda/adda-admin/internal/format"
	"github.com/brokeradda/adda-admin/internal/logger"
	"github.com/brokeradda/adda-admin/internal/models"
)

// Properties normalizes the property grid.
var Properties = Spec[models.PropertyCard]{
	Resource:   "properties",
	ArrayPaths: []string{"data.properties", "data.items", "data.data.properties", "properties", "data"},
	Item:       Property,
}

// Property maps one raw property.
func Property(item any, now time.Time) models.PropertyCard {
	p := models.PropertyCard{
		ID:    id(item),
		Title: envelope.StringOr(item, "Untitled Property", "title", "name", "propertyTitle"),
		Location: envelope.StringOr(item, "Location not specified",
			"location.address", "address", "location", "locality", "city", "region.name"),
		BrokerName: envelope.StringOr(item, "N/A", "broker.name", "postedBy.name", "owner.name", "brokerName"),
		PostedAgo:  ago(item, now, false, "createdAt", "postedAt", "created_at"),
		Images:     envelope.Strings(item, []string{"url", "path", "src"}, "images", "photos", "gallery"),
	}

	p.PropertyType = "N/A"
	if s, ok := envelope.String(item, "propertyType", "type", "category"); ok {
		p.PropertyType = label(s)
	}
	p.Status = "Available"
	if s, ok := envelope.String(item, "status", "availability"); ok {
		p.Status = label(s)
	}
	p.ApprovedByAdmin = propertyApproval(item)

	p.Price, p.PriceFull = "Price on request", ""
	if n, ok := envelope.NumberText(item, "price", "pricing.amount", "pricing.price", "budget", "expectedPrice"); ok {
		if amount, ok := format.ParseAmount(n); ok {
			p.Price = format.PriceCompact(amount)
			p.PriceFull = format.Rupees(amount)
		}
	}

	p.Bedrooms, _ = envelope.Int(item, "bedrooms", "bhk", "specifications.bedrooms")
	p.AreaSqft, _ = envelope.Int(item, "area", "areaSqft", "builtUpArea", "specifications.area")

	if len(p.Images) > 0 {
		p.Image = p.Images[0]
	} else {
		p.Image = envelope.StringOr(item, "", "image", "thumbnail", "coverImage")
	}
	return p
}

func propertyApproval(item any) string {
	s, ok := envelope.String(item, "approvedByAdmin", "approvalStatus", "adminApproval")
	if ok {
		switch strings.ToLower(s) {
		case models.PropertyApproved, "true":
			return models.PropertyApproved
		case models.PropertyRejected, "false":
			return models.PropertyRejected
		}
	}
	return models.PropertyPending
}

// PropertyDetail normalizes a single-property response. The bool is false
// when the body holds no property object.
func PropertyDetail(ctx context.Context, body []byte, now time.Time) (models.PropertyCard, bool) {
	v := envelope.Decode(body)
	obj, ok := envelope.Object(v, "data.property", "property", "data")
	if !ok {
		obj, ok = v.(map[string]any)
	}
	if !ok || id(obj) == "" {
		logger.Ctx(ctx).Warn("property detail response has no property object")
		return models.PropertyCard{}, false
	}
	return Property(obj, now), true
}
