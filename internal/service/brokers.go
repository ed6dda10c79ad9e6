package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/brokeradda/adda-admin/internal/apierror"
	"github.com/brokeradda/adda-admin/internal/listctl"
	"github.com/brokeradda/adda-admin/internal/logger"
	"github.com/brokeradda/adda-admin/internal/models"
	"github.com/brokeradda/adda-admin/internal/mutation"
	"github.com/brokeradda/adda-admin/internal/repository"
	"github.com/brokeradda/adda-admin/internal/validate"
	"golang.org/x/sync/errgroup"
)

const resourceBrokers = "brokers"

// ErrUnsupportedAction is returned for an action the page does not offer.
var ErrUnsupportedAction = errors.New("action not supported for this resource")

// Brokers backs the brokers page: list, header counters, add-broker form
// and the block/unblock/verify/unverify actions.
type Brokers struct {
	repo    repository.BrokerRepository
	list    *listctl.Controller[models.Broker]
	actions *mutation.Controller[models.Broker]
	rec     Recorder
}

// NewBrokers wires the brokers list and action controllers to repo.
func NewBrokers(repo repository.BrokerRepository, settings Settings) *Brokers {
	settings = settings.withDefaults()
	s := &Brokers{repo: repo, rec: settings.Recorder}

	s.list = listctl.New(listctl.Options[models.Broker]{
		Resource: resourceBrokers,
		Fetch:    repo.List,
		PageSize: settings.PageSize,
		Debounce: settings.Debounce,
		Clock:    settings.Clock,
	})
	s.actions = mutation.New(mutation.Options[models.Broker]{
		Resource:  resourceBrokers,
		List:      s.list,
		Execute:   s.execute,
		ID:        mutation.BrokerID,
		Patch:     mutation.PatchBroker,
		Adjust:    mutation.AdjustBrokerCounters,
		Notifier:  settings.Notifier,
		Reconcile: s.refreshCounters,
	})
	return s
}

// List fetches one page without touching the stateful view.
func (s *Brokers) List(ctx context.Context, q models.ListQuery) (models.Page[models.Broker], error) {
	return s.repo.List(ctx, q)
}

// View returns the stateful list page.
func (s *Brokers) View() View {
	return newView(resourceBrokers, s.list)
}

// Summary returns the header counters. When the backend does not embed
// them in the list response they are counted with filtered queries.
func (s *Brokers) Summary(ctx context.Context) (models.BrokerSummary, error) {
	sum, ok, err := s.repo.Stats(ctx)
	if err != nil {
		return models.BrokerSummary{}, err
	}
	if ok {
		return sum, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	count := func(dst *int, filters map[string]string) {
		g.Go(func() error {
			n, err := s.repo.Count(gctx, filters)
			*dst = n
			return err
		})
	}
	count(&sum.Total, nil)
	count(&sum.Blocked, map[string]string{"status": models.BrokerBlocked})
	count(&sum.Unblocked, map[string]string{"status": models.BrokerUnblocked})
	count(&sum.Verified, map[string]string{"verified": "true"})
	if err := g.Wait(); err != nil {
		return models.BrokerSummary{}, fmt.Errorf("failed to count brokers: %w", err)
	}
	return sum, nil
}

// Counters returns the header counters as last adjusted or refreshed.
func (s *Brokers) Counters() mutation.Counters {
	return s.actions.Counters()
}

func (s *Brokers) refreshCounters(ctx context.Context) {
	sum, err := s.Summary(ctx)
	if err != nil {
		logger.Ctx(ctx).Warn("failed to refresh broker counters", logger.Err(err))
		return
	}
	s.actions.SetCounters(mutation.BrokerCounters(sum))
}

// LoadCounters seeds the header counters from the backend.
func (s *Brokers) LoadCounters(ctx context.Context) (mutation.Counters, error) {
	sum, err := s.Summary(ctx)
	if err != nil {
		return nil, err
	}
	s.actions.SetCounters(mutation.BrokerCounters(sum))
	return s.actions.Counters(), nil
}

// Request opens the confirmation dialog for an action on a broker.
func (s *Brokers) Request(id, name string, kind models.MutationKind) (models.MutationIntent, error) {
	if !brokerAction(kind) {
		return models.MutationIntent{}, ErrUnsupportedAction
	}
	return s.actions.Request(id, name, kind)
}

// Confirm runs the pending action.
func (s *Brokers) Confirm(ctx context.Context) error {
	return s.actions.Confirm(ctx)
}

// Cancel dismisses the pending action.
func (s *Brokers) Cancel() {
	s.actions.Cancel()
}

// Pending returns the action awaiting confirmation.
func (s *Brokers) Pending() (models.MutationIntent, bool) {
	return s.actions.Pending()
}

func (s *Brokers) execute(ctx context.Context, intent models.MutationIntent) error {
	var err error
	switch intent.Kind {
	case models.MutationBlock:
		err = s.repo.Block(ctx, intent.TargetID)
	case models.MutationUnblock:
		err = s.repo.Unblock(ctx, intent.TargetID)
	case models.MutationVerify:
		err = s.repo.Verify(ctx, intent.TargetID)
	case models.MutationUnverify:
		err = s.repo.Unverify(ctx, intent.TargetID)
	default:
		err = ErrUnsupportedAction
	}
	s.rec.RecordMutation(resourceBrokers, string(intent.Kind), err)
	return err
}

// Create validates and adds a broker. Field problems are returned as
// FieldErrors with a nil error; a non-nil error means the backend failed.
func (s *Brokers) Create(ctx context.Context, in models.BrokerInput) ([]apierror.FieldError, error) {
	if errs := validate.Struct(in); len(errs) > 0 {
		return errs, nil
	}
	in.Phone = validate.NormalizePhone(in.Phone)

	existing, err := s.repo.List(ctx, models.ListQuery{Page: 1, PageSize: listctl.DefaultPageSize, Search: in.Phone})
	if err != nil {
		return nil, err
	}
	phones := make([]string, 0, len(existing.Items))
	for _, b := range existing.Items {
		phones = append(phones, b.Phone)
	}
	if fe := validate.UniquePhone(in.Phone, phones); fe != nil {
		return []apierror.FieldError{*fe}, nil
	}

	err = s.repo.Create(ctx, in)
	s.rec.RecordMutation(resourceBrokers, "create", err)
	if err != nil {
		return nil, err
	}
	logger.Ctx(ctx).Info("broker created", logger.String("email", in.Email))

	s.list.Refetch()
	s.refreshCounters(ctx)
	return nil, nil
}

func brokerAction(kind models.MutationKind) bool {
	switch kind {
	case models.MutationBlock, models.MutationUnblock, models.MutationVerify, models.MutationUnverify:
		return true
	}
	return false
}
