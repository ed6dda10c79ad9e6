package normalize

import (
	"time"

	"github.com/brokeradda/adda-admin/internal/envelope"
	"github.com/brokeradda/adda-admin/internal/models"
)

// Regions normalizes the regions table.
var Regions = Spec[models.Region]{
	Resource:   "regions",
	ArrayPaths: []string{"data.regions", "data.items", "regions", "data"},
	Item:       Region,
}

// Region maps one raw region.
func Region(item any, _ time.Time) models.Region {
	r := models.Region{
		ID:          id(item),
		Name:        envelope.StringOr(item, "Unnamed Region", "name", "regionName", "city"),
		City:        envelope.StringOr(item, "", "city", "name"),
		State:       envelope.StringOr(item, "", "state", "stateName", "region.state"),
		Description: envelope.StringOr(item, "", "description", "details"),
	}
	r.BrokersCount, _ = envelope.Int(item, "brokersCount", "brokerCount", "totalBrokers")
	if r.BrokersCount == 0 {
		r.BrokersCount = envelope.Len(item, "brokers")
	}
	return r
}

// Notifications normalizes the notification feed. Notifications show the
// short relative-time form ("5M", "3H").
var Notifications = Spec[models.Notification]{
	Resource:   "notifications",
	ArrayPaths: []string{"data.notifications", "data.items", "notifications", "data"},
	Item:       Notification,
}

// Notification maps one raw notification.
func Notification(item any, now time.Time) models.Notification {
	n := models.Notification{
		ID:       id(item),
		Title:    envelope.StringOr(item, "Notification", "title", "heading", "subject"),
		Message:  envelope.StringOr(item, "", "message", "body", "content", "description"),
		Audience: envelope.StringOr(item, "All", "audience", "targetAudience", "recipients"),
		Ago:      ago(item, now, true, "createdAt", "sentAt", "timestamp"),
	}
	n.Type = "General"
	if s, ok := envelope.String(item, "type", "category"); ok {
		n.Type = label(s)
	}
	n.Read, _ = envelope.Bool(item, "read", "isRead", "seen")
	return n
}

// Contacts normalizes support requests.
var Contacts = Spec[models.Contact]{
	Resource:   "contacts",
	ArrayPaths: []string{"data.contacts", "data.items", "data.data.contacts", "contacts", "data"},
	Item:       Contact,
}

// Contact maps one raw support request.
func Contact(item any, now time.Time) models.Contact {
	c := models.Contact{
		ID:         id(item),
		Email:      envelope.StringOr(item, "N/A", "email", "user.email"),
		Phone:      envelope.StringOr(item, "N/A", "phone", "mobile", "user.phone"),
		Subject:    envelope.StringOr(item, "General enquiry", "subject", "topic"),
		Message:    envelope.StringOr(item, "", "message", "query", "description"),
		CreatedAgo: ago(item, now, false, "createdAt", "created_at"),
	}
	c.Name = "Anonymous"
	if s, ok := envelope.String(item, "name", "fullName", "user.name"); ok {
		c.Name = s
	} else if s, ok := fullName(item, ""); ok {
		c.Name = s
	}
	return c
}
