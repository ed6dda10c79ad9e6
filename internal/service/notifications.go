package service

import (
	"context"

	"github.com/brokeradda/adda-admin/internal/apierror"
	"github.com/brokeradda/adda-admin/internal/listctl"
	"github.com/brokeradda/adda-admin/internal/logger"
	"github.com/brokeradda/adda-admin/internal/models"
	"github.com/brokeradda/adda-admin/internal/repository"
	"github.com/brokeradda/adda-admin/internal/validate"
)

const resourceNotifications = "notifications"

// Notifications backs the notification feed and the broadcast form.
type Notifications struct {
	repo repository.NotificationRepository
	list *listctl.Controller[models.Notification]
	rec  Recorder
}

// NewNotifications wires the notification feed to repo.
func NewNotifications(repo repository.NotificationRepository, settings Settings) *Notifications {
	settings = settings.withDefaults()
	return &Notifications{
		repo: repo,
		rec:  settings.Recorder,
		list: listctl.New(listctl.Options[models.Notification]{
			Resource: resourceNotifications,
			Fetch:    repo.List,
			PageSize: settings.PageSize,
			Debounce: settings.Debounce,
			Clock:    settings.Clock,
		}),
	}
}

// List fetches one page without touching the stateful view.
func (s *Notifications) List(ctx context.Context, q models.ListQuery) (models.Page[models.Notification], error) {
	return s.repo.List(ctx, q)
}

// View returns the stateful list page.
func (s *Notifications) View() View {
	return newView(resourceNotifications, s.list)
}

// Send validates and broadcasts a notification. An empty audience means
// everyone.
func (s *Notifications) Send(ctx context.Context, in models.NotificationInput) ([]apierror.FieldError, error) {
	if errs := validate.Struct(in); len(errs) > 0 {
		return errs, nil
	}
	if in.Audience == "" {
		in.Audience = "all"
	}
	err := s.repo.Send(ctx, in)
	s.rec.RecordMutation(resourceNotifications, "send", err)
	if err != nil {
		return nil, err
	}
	logger.Ctx(ctx).Info("notification sent", logger.String("audience", in.Audience))
	s.list.Refetch()
	return nil, nil
}
