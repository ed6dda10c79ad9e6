package service

import (
	"context"

	"github.com/brokeradda/adda-admin/internal/apierror"
	"github.com/brokeradda/adda-admin/internal/models"
	"github.com/brokeradda/adda-admin/internal/repository"
	"github.com/brokeradda/adda-admin/internal/session"
	"github.com/brokeradda/adda-admin/internal/validate"
)

// Auth signs the admin in and out of the shared session.
type Auth struct {
	sess *session.Session
	repo repository.AuthRepository
}

// NewAuth creates the auth service.
func NewAuth(sess *session.Session, repo repository.AuthRepository) *Auth {
	return &Auth{sess: sess, repo: repo}
}

// Login validates the credentials and stores the returned token. Field
// problems come back as FieldErrors with a nil error.
func (a *Auth) Login(ctx context.Context, in models.LoginInput) ([]apierror.FieldError, error) {
	if errs := validate.Struct(in); len(errs) > 0 {
		return errs, nil
	}
	if _, err := a.sess.Login(ctx, a.repo, in.Email, in.Password); err != nil {
		return nil, err
	}
	return nil, nil
}

// Logout drops the token.
func (a *Auth) Logout(ctx context.Context) {
	a.sess.Logout(ctx)
}

// Session returns the underlying session.
func (a *Auth) Session() *session.Session {
	return a.sess
}
