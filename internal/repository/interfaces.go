package repository

//go:generate mockgen -source=interfaces.go -destination=mocks/mock_repository.go -package=mocks

import (
	"context"
	"io"

	"github.com/brokeradda/adda-admin/internal/models"
)

// ListSource fetches one page of a resource for the given query.
type ListSource[T any] interface {
	List(ctx context.Context, q models.ListQuery) (models.Page[T], error)
}

// BrokerRepository defines the interface for broker data access
type BrokerRepository interface {
	ListSource[models.Broker]
	Stats(ctx context.Context) (models.BrokerSummary, bool, error)
	Count(ctx context.Context, filters map[string]string) (int, error)
	Create(ctx context.Context, in models.BrokerInput) error
	Block(ctx context.Context, id string) error
	Unblock(ctx context.Context, id string) error
	Verify(ctx context.Context, id string) error
	Unverify(ctx context.Context, id string) error
}

// LeadRepository defines the interface for enquiry data access
type LeadRepository interface {
	ListSource[models.Lead]
}

// PropertyRepository defines the interface for property data access
type PropertyRepository interface {
	ListSource[models.PropertyCard]
	GetByID(ctx context.Context, id string) (models.PropertyCard, error)
	Approve(ctx context.Context, id string) error
	Reject(ctx context.Context, id string) error
}

// RegionRepository defines the interface for region data access
type RegionRepository interface {
	ListSource[models.Region]
	Create(ctx context.Context, in models.RegionInput) error
	Delete(ctx context.Context, id string) error
}

// NotificationRepository defines the interface for notification data access
type NotificationRepository interface {
	ListSource[models.Notification]
	Send(ctx context.Context, in models.NotificationInput) error
}

// ContactRepository defines the interface for support request data access
type ContactRepository interface {
	ListSource[models.Contact]
	Delete(ctx context.Context, id string) error
}

// ImportRepository uploads CSV files for bulk import.
type ImportRepository interface {
	Import(ctx context.Context, kind models.ImportKind, filename string, r io.Reader) ([]byte, error)
}

// AuthRepository exchanges admin credentials for a login response.
type AuthRepository interface {
	Login(ctx context.Context, email, password string) ([]byte, error)
}
