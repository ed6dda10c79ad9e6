package repository

import (
	"context"
	"fmt"
	"net/url"

	"github.com/brokeradda/adda-admin/internal/models"
	"github.com/brokeradda/adda-admin/internal/normalize"
	"github.com/brokeradda/adda-admin/pkg/adda"
)

type brokerRepository struct {
	resource[models.Broker]
}

// NewBrokerRepository creates a new broker repository
func NewBrokerRepository(client *adda.Client) BrokerRepository {
	return &brokerRepository{resource: newResource(client, "/api/brokers", BrokerParams, normalize.Brokers)}
}

// Stats reads the counters block of a minimal brokers page. The bool is
// false when the backend does not send one.
func (r *brokerRepository) Stats(ctx context.Context) (models.BrokerSummary, bool, error) {
	body, err := r.client.Get(ctx, r.path, url.Values{"page": {"1"}, "limit": {"1"}})
	if err != nil {
		return models.BrokerSummary{}, false, fmt.Errorf("failed to get broker stats: %w", err)
	}
	s, ok := normalize.BrokerStats(body)
	return s, ok, nil
}

// Count returns the total number of brokers matching filters.
func (r *brokerRepository) Count(ctx context.Context, filters map[string]string) (int, error) {
	page, err := r.List(ctx, models.ListQuery{Page: 1, PageSize: 1, Filters: filters})
	if err != nil {
		return 0, err
	}
	return page.TotalItems, nil
}

func (r *brokerRepository) Create(ctx context.Context, in models.BrokerInput) error {
	if _, err := r.client.Post(ctx, r.path, in); err != nil {
		return fmt.Errorf("failed to create broker: %w", err)
	}
	return nil
}

func (r *brokerRepository) Block(ctx context.Context, id string) error {
	return r.action(ctx, id, string(models.MutationBlock))
}

func (r *brokerRepository) Unblock(ctx context.Context, id string) error {
	return r.action(ctx, id, string(models.MutationUnblock))
}

func (r *brokerRepository) Verify(ctx context.Context, id string) error {
	return r.action(ctx, id, string(models.MutationVerify))
}

func (r *brokerRepository) Unverify(ctx context.Context, id string) error {
	return r.action(ctx, id, string(models.MutationUnverify))
}
