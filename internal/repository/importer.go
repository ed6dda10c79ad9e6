package repository

import (
	"context"
	"fmt"
	"io"

	"github.com/brokeradda/adda-admin/internal/models"
	"github.com/brokeradda/adda-admin/pkg/adda"
)

// ImportField is the multipart field name the import endpoints expect.
const ImportField = "file"

type importRepository struct {
	client *adda.Client
}

// NewImportRepository creates a new CSV import repository
func NewImportRepository(client *adda.Client) ImportRepository {
	return &importRepository{client: client}
}

func (r *importRepository) Import(ctx context.Context, kind models.ImportKind, filename string, rd io.Reader) ([]byte, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("unknown import kind %q", kind)
	}
	body, err := r.client.Upload(ctx, "/api/import/"+string(kind), ImportField, filename, rd)
	if err != nil {
		return nil, fmt.Errorf("failed to import %s: %w", kind, err)
	}
	return body, nil
}

type authRepository struct {
	client *adda.Client
}

// NewAuthRepository creates a new admin login repository
func NewAuthRepository(client *adda.Client) AuthRepository {
	return &authRepository{client: client}
}

func (r *authRepository) Login(ctx context.Context, email, password string) ([]byte, error) {
	body, err := r.client.PostPublic(ctx, "/api/admin/login", map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to log in: %w", err)
	}
	return body, nil
}
