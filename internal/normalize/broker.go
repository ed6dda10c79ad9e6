package normalize

import (
	"strings"
	"time"

	"github.com/brokeradda/adda-admin/internal/envelope"
	"github.com/brokeradda/adda-admin/internal/models"
)

// Brokers normalizes the brokers list.
var Brokers = Spec[models.Broker]{
	Resource:   "brokers",
	ArrayPaths: []string{"data.brokers", "data.items", "data.data.brokers", "brokers", "items", "data"},
	Item:       Broker,
}

// Broker maps one raw broker.
func Broker(item any, now time.Time) models.Broker {
	b := models.Broker{
		ID:    id(item),
		Email: envelope.StringOr(item, "N/A", "email", "user.email", "contact.email"),
		Phone: envelope.StringOr(item, "N/A", "phone", "phoneNumber", "mobile", "user.phone", "contact.phone"),
		Firm:  envelope.StringOr(item, "Independent", "firmName", "companyName", "company.name", "firm"),
		Region: envelope.StringOr(item, "Not specified",
			"regions.0.name", "regions.0.city", "region.name", "region", "city"),
		Membership:   envelope.StringOr(item, "Basic", "membership.plan", "membership.type", "membershipType", "membership", "plan"),
		ProfileImage: envelope.StringOr(item, "", "profileImage", "avatar", "user.avatar", "image"),
		KYCDocument:  envelope.StringOr(item, "", "kycDocs.aadharFront", "kycDocuments.0.url", "kycDocuments.0", "kycDocument", "documents.0.url"),
		JoinedAgo:    ago(item, now, false, "createdAt", "joinedAt", "created_at"),
	}

	b.Name = brokerName(item)
	b.ApprovedByAdmin = brokerStatus(item)
	b.StatusLabel = label(b.ApprovedByAdmin)
	b.Verified = brokerVerified(item)
	b.LeadsCount, _ = envelope.Int(item, "leadsCount", "stats.leads", "totalLeads")
	if b.LeadsCount == 0 {
		b.LeadsCount = envelope.Len(item, "leads")
	}
	b.PropertiesCount, _ = envelope.Int(item, "propertiesCount", "stats.properties", "listingsCount")
	if b.PropertiesCount == 0 {
		b.PropertiesCount = envelope.Len(item, "properties")
	}
	return b
}

func brokerName(item any) string {
	if s, ok := envelope.String(item, "name", "fullName", "brokerName", "user.name"); ok {
		return s
	}
	if s, ok := fullName(item, ""); ok {
		return s
	}
	return "Unknown Broker"
}

func brokerStatus(item any) string {
	if s, ok := envelope.String(item, "approvedByAdmin", "status", "adminStatus"); ok {
		if strings.EqualFold(s, models.BrokerBlocked) {
			return models.BrokerBlocked
		}
		return models.BrokerUnblocked
	}
	if blocked, ok := envelope.Bool(item, "isBlocked", "blocked"); ok && blocked {
		return models.BrokerBlocked
	}
	return models.BrokerUnblocked
}

func brokerVerified(item any) bool {
	if v, ok := envelope.Bool(item, "verified", "isVerified", "kycVerified"); ok {
		return v
	}
	s, _ := envelope.String(item, "verificationStatus", "kycStatus")
	return strings.EqualFold(s, "verified")
}

// BrokerStats reads the stats block some brokers responses carry. The bool
// is false when there is none.
func BrokerStats(body []byte) (models.BrokerSummary, bool) {
	stats, ok := envelope.Object(envelope.Decode(body), "data.stats", "stats", "data.summary", "summary")
	if !ok {
		return models.BrokerSummary{}, false
	}
	var s models.BrokerSummary
	s.Total, _ = envelope.Int(stats, "total", "totalBrokers")
	s.Blocked, _ = envelope.Int(stats, "blocked", "blockedBrokers")
	s.Unblocked, _ = envelope.Int(stats, "unblocked", "unblockedBrokers", "active")
	s.Verified, _ = envelope.Int(stats, "verified", "verifiedBrokers")
	if s.Total == 0 {
		s.Total = s.Blocked + s.Unblocked
	}
	return s, true
}

// BrokerSummary reads the header counters, falling back to counting the
// items of the current page when the backend sends no stats block.
func BrokerSummary(body []byte, items []models.Broker) models.BrokerSummary {
	if s, ok := BrokerStats(body); ok {
		return s
	}

	s := models.BrokerSummary{Total: len(items)}
	if p := envelope.ReadPagination(envelope.Decode(body)); p.Found && p.TotalItems > s.Total {
		s.Total = p.TotalItems
	}
	for _, b := range items {
		if b.Blocked() {
			s.Blocked++
		} else {
			s.Unblocked++
		}
		if b.Verified {
			s.Verified++
		}
	}
	return s
}
