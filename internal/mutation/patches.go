package mutation

import (
	"github.com/brokeradda/adda-admin/internal/models"
)

// Counter keys for the brokers header.
const (
	CounterBlocked   = "blocked"
	CounterUnblocked = "unblocked"
	CounterVerified  = "verified"
	CounterTotal     = "total"
)

// BrokerID identifies a broker row.
func BrokerID(b models.Broker) string { return b.ID }

// PatchBroker flips the status or verification flag the action targets.
func PatchBroker(b models.Broker, kind models.MutationKind) (models.Broker, bool) {
	switch kind {
	case models.MutationBlock:
		b.ApprovedByAdmin = models.BrokerBlocked
		b.StatusLabel = "Blocked"
	case models.MutationUnblock:
		b.ApprovedByAdmin = models.BrokerUnblocked
		b.StatusLabel = "Unblocked"
	case models.MutationVerify:
		b.Verified = true
	case models.MutationUnverify:
		b.Verified = false
	case models.MutationDelete:
		return b, false
	}
	return b, true
}

// AdjustBrokerCounters moves one broker between the header counters.
func AdjustBrokerCounters(c Counters, kind models.MutationKind) {
	switch kind {
	case models.MutationBlock:
		move(c, CounterUnblocked, CounterBlocked)
	case models.MutationUnblock:
		move(c, CounterBlocked, CounterUnblocked)
	case models.MutationVerify:
		c[CounterVerified]++
	case models.MutationUnverify:
		if c[CounterVerified] > 0 {
			c[CounterVerified]--
		}
	}
}

func move(c Counters, from, to string) {
	if c[from] > 0 {
		c[from]--
	}
	c[to]++
}

// BrokerCounters converts a summary into counters.
func BrokerCounters(s models.BrokerSummary) Counters {
	return Counters{
		CounterTotal:     s.Total,
		CounterBlocked:   s.Blocked,
		CounterUnblocked: s.Unblocked,
		CounterVerified:  s.Verified,
	}
}

// PropertyID identifies a property card.
func PropertyID(p models.PropertyCard) string { return p.ID }

// PatchProperty records the approval decision on a card.
func PatchProperty(p models.PropertyCard, kind models.MutationKind) (models.PropertyCard, bool) {
	switch kind {
	case models.MutationApprove:
		p.ApprovedByAdmin = models.PropertyApproved
	case models.MutationReject:
		p.ApprovedByAdmin = models.PropertyRejected
	case models.MutationDelete:
		return p, false
	}
	return p, true
}

// Remove drops the targeted item; used for delete-only lists.
func Remove[T any](item T, kind models.MutationKind) (T, bool) {
	return item, kind != models.MutationDelete
}
