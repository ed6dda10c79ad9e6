package service

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/brokeradda/adda-admin/internal/listctl"
	"github.com/brokeradda/adda-admin/internal/models"
	"github.com/brokeradda/adda-admin/internal/mutation"
	"github.com/brokeradda/adda-admin/internal/repository/mocks"
	"github.com/brokeradda/adda-admin/internal/session"
	"github.com/brokeradda/adda-admin/pkg/adda"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type recordedCall struct {
	resource, action string
	failed           bool
}

type fakeRecorder struct {
	mutations []recordedCall
	imports   []recordedCall
}

func (r *fakeRecorder) RecordMutation(resource, action string, err error) {
	r.mutations = append(r.mutations, recordedCall{resource, action, err != nil})
}

func (r *fakeRecorder) RecordImport(kind string, err error) {
	r.imports = append(r.imports, recordedCall{"import", kind, err != nil})
}

func testSettings(toasts *ToastQueue, rec Recorder) Settings {
	return Settings{PageSize: 10, Notifier: toasts, Recorder: rec}
}

func brokerPage(items ...models.Broker) models.Page[models.Broker] {
	return models.Page[models.Broker]{Items: items, CurrentPage: 1, TotalPages: 1, TotalItems: len(items)}
}

func brokerState(t *testing.T, v View) listctl.State[models.Broker] {
	t.Helper()
	st, ok := v.State().(listctl.State[models.Broker])
	require.True(t, ok)
	return st
}

var (
	asha = models.Broker{ID: "b1", Name: "Asha Rao", Phone: "9876543210", ApprovedByAdmin: models.BrokerUnblocked}
	ravi = models.Broker{ID: "b2", Name: "Ravi Kumar", Phone: "9123456780", ApprovedByAdmin: models.BrokerUnblocked}
)

func TestBrokerSummaryUsesEmbeddedStats(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockBrokerRepository(ctrl)
	repo.EXPECT().Stats(gomock.Any()).Return(models.BrokerSummary{Total: 12, Blocked: 2, Unblocked: 10, Verified: 7}, true, nil)

	s := NewBrokers(repo, testSettings(NewToastQueue(0), nil))
	sum, err := s.Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.BrokerSummary{Total: 12, Blocked: 2, Unblocked: 10, Verified: 7}, sum)
}

func TestBrokerSummaryFallsBackToCounts(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockBrokerRepository(ctrl)
	repo.EXPECT().Stats(gomock.Any()).Return(models.BrokerSummary{}, false, nil)
	repo.EXPECT().Count(gomock.Any(), gomock.Any()).Times(4).DoAndReturn(
		func(_ context.Context, filters map[string]string) (int, error) {
			switch {
			case filters["status"] == models.BrokerBlocked:
				return 3, nil
			case filters["status"] == models.BrokerUnblocked:
				return 17, nil
			case filters["verified"] == "true":
				return 9, nil
			default:
				return 20, nil
			}
		})

	s := NewBrokers(repo, testSettings(NewToastQueue(0), nil))
	sum, err := s.Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.BrokerSummary{Total: 20, Blocked: 3, Unblocked: 17, Verified: 9}, sum)
}

func TestBrokerSummaryCountFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockBrokerRepository(ctrl)
	repo.EXPECT().Stats(gomock.Any()).Return(models.BrokerSummary{}, false, nil)
	repo.EXPECT().Count(gomock.Any(), gomock.Any()).AnyTimes().
		Return(0, &adda.StatusError{Status: http.StatusInternalServerError})

	s := NewBrokers(repo, testSettings(NewToastQueue(0), nil))
	_, err := s.Summary(context.Background())
	require.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, adda.StatusCode(err))
}

func TestBrokerBlockConfirmFlow(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockBrokerRepository(ctrl)
	toasts := NewToastQueue(0)
	rec := &fakeRecorder{}
	s := NewBrokers(repo, testSettings(toasts, rec))
	ctx := context.Background()

	blocked := asha
	blocked.ApprovedByAdmin = models.BrokerBlocked

	repo.EXPECT().List(gomock.Any(), gomock.Any()).Return(brokerPage(asha, ravi), nil)
	repo.EXPECT().Stats(gomock.Any()).Return(models.BrokerSummary{Total: 2, Unblocked: 2}, true, nil)
	view := s.View()
	view.Mount()
	_, err := s.LoadCounters(ctx)
	require.NoError(t, err)

	intent, err := s.Request(asha.ID, asha.Name, models.MutationBlock)
	require.NoError(t, err)
	assert.Equal(t, asha.ID, intent.TargetID)
	pending, ok := s.Pending()
	require.True(t, ok)
	assert.Equal(t, intent.ID, pending.ID)

	repo.EXPECT().Block(gomock.Any(), asha.ID).DoAndReturn(func(context.Context, string) error {
		// optimistic patch is visible before the call returns
		st := brokerState(t, view)
		assert.Equal(t, models.BrokerBlocked, st.Items[0].ApprovedByAdmin)
		assert.Equal(t, 1, s.Counters()[mutation.CounterBlocked])
		assert.Equal(t, 1, s.Counters()[mutation.CounterUnblocked])
		return nil
	})
	repo.EXPECT().List(gomock.Any(), gomock.Any()).Return(brokerPage(blocked, ravi), nil)
	repo.EXPECT().Stats(gomock.Any()).Return(models.BrokerSummary{Total: 2, Blocked: 1, Unblocked: 1}, true, nil)

	require.NoError(t, s.Confirm(ctx))

	_, ok = s.Pending()
	assert.False(t, ok)
	st := brokerState(t, view)
	assert.Equal(t, models.BrokerBlocked, st.Items[0].ApprovedByAdmin)
	assert.Empty(t, st.Err)
	assert.Equal(t, mutation.Counters{"total": 2, "blocked": 1, "unblocked": 1, "verified": 0}, s.Counters())

	got := toasts.Drain()
	require.Len(t, got, 1)
	assert.Equal(t, ToastSuccess, got[0].Kind)
	assert.Equal(t, "Asha Rao blocked successfully", got[0].Message)
	assert.Equal(t, []recordedCall{{"brokers", "block", false}}, rec.mutations)
}

func TestBrokerActionFailureRefetchesAndShowsError(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockBrokerRepository(ctrl)
	toasts := NewToastQueue(0)
	s := NewBrokers(repo, testSettings(toasts, nil))

	repo.EXPECT().List(gomock.Any(), gomock.Any()).Times(2).Return(brokerPage(asha), nil)
	view := s.View()
	view.Mount()

	_, err := s.Request(asha.ID, asha.Name, models.MutationVerify)
	require.NoError(t, err)

	repo.EXPECT().Verify(gomock.Any(), asha.ID).Return(&adda.StatusError{Status: http.StatusForbidden})
	repo.EXPECT().Stats(gomock.Any()).Return(models.BrokerSummary{Total: 1, Unblocked: 1}, true, nil)

	err = s.Confirm(context.Background())
	require.Error(t, err)

	st := brokerState(t, view)
	assert.False(t, st.Items[0].Verified, "server truth replaces the optimistic patch")
	assert.Equal(t, "Access denied. You don't have permission to view brokers.", st.Err)

	got := toasts.Drain()
	require.Len(t, got, 1)
	assert.Equal(t, ToastFailure, got[0].Kind)
}

func TestBrokerRequestRejectsForeignAction(t *testing.T) {
	ctrl := gomock.NewController(t)
	s := NewBrokers(mocks.NewMockBrokerRepository(ctrl), testSettings(NewToastQueue(0), nil))

	_, err := s.Request("b1", "Asha", models.MutationApprove)
	assert.ErrorIs(t, err, ErrUnsupportedAction)
	assert.ErrorIs(t, s.Confirm(context.Background()), mutation.ErrNoPendingIntent)
}

func TestBrokerCreate(t *testing.T) {
	valid := models.BrokerInput{Name: "Meera Shah", Email: "meera@example.com", Phone: "+91 98765-11111"}

	t.Run("invalid input never reaches the backend", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		s := NewBrokers(mocks.NewMockBrokerRepository(ctrl), testSettings(NewToastQueue(0), nil))

		errs, err := s.Create(context.Background(), models.BrokerInput{Name: "M", Email: "nope", Phone: "123"})
		require.NoError(t, err)
		fields := map[string]bool{}
		for _, fe := range errs {
			fields[fe.Field] = true
		}
		assert.Equal(t, map[string]bool{"name": true, "email": true, "phone": true}, fields)
	})

	t.Run("duplicate phone", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mocks.NewMockBrokerRepository(ctrl)
		dup := asha
		dup.Phone = "98765 11111"
		repo.EXPECT().List(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, q models.ListQuery) (models.Page[models.Broker], error) {
				assert.Equal(t, "9876511111", q.Search)
				return brokerPage(dup), nil
			})

		s := NewBrokers(repo, testSettings(NewToastQueue(0), nil))
		errs, err := s.Create(context.Background(), valid)
		require.NoError(t, err)
		require.Len(t, errs, 1)
		assert.Equal(t, "phone", errs[0].Field)
		assert.Equal(t, "unique", errs[0].Code)
	})

	t.Run("created", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mocks.NewMockBrokerRepository(ctrl)
		rec := &fakeRecorder{}
		repo.EXPECT().List(gomock.Any(), gomock.Any()).Return(brokerPage(), nil)
		repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, in models.BrokerInput) error {
				assert.Equal(t, "9876511111", in.Phone)
				return nil
			})
		repo.EXPECT().Stats(gomock.Any()).Return(models.BrokerSummary{Total: 1, Unblocked: 1}, true, nil)

		s := NewBrokers(repo, testSettings(NewToastQueue(0), rec))
		errs, err := s.Create(context.Background(), valid)
		require.NoError(t, err)
		assert.Empty(t, errs)
		assert.Equal(t, 1, s.Counters()[mutation.CounterTotal])
		assert.Equal(t, []recordedCall{{"brokers", "create", false}}, rec.mutations)
	})
}

func TestPropertyDecideRunsWithoutDialog(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockPropertyRepository(ctrl)
	toasts := NewToastQueue(0)
	s := NewProperties(repo, testSettings(toasts, nil))

	card := models.PropertyCard{ID: "p1", Title: "Sea View 2BHK", ApprovedByAdmin: models.PropertyPending}
	repo.EXPECT().List(gomock.Any(), gomock.Any()).Times(2).Return(
		models.Page[models.PropertyCard]{Items: []models.PropertyCard{card}, TotalPages: 1, TotalItems: 1}, nil)
	s.View().Mount()

	repo.EXPECT().Approve(gomock.Any(), "p1").Return(nil)
	require.NoError(t, s.Decide(context.Background(), "p1", card.Title, models.MutationApprove))

	got := toasts.Drain()
	require.Len(t, got, 1)
	assert.Equal(t, "Sea View 2BHK approved successfully", got[0].Message)

	assert.ErrorIs(t, s.Decide(context.Background(), "p1", card.Title, models.MutationBlock), ErrUnsupportedAction)
}

func TestPropertyGet(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockPropertyRepository(ctrl)
	repo.EXPECT().GetByID(gomock.Any(), "missing").Return(models.PropertyCard{}, &adda.StatusError{Status: http.StatusNotFound})

	s := NewProperties(repo, testSettings(NewToastQueue(0), nil))
	_, err := s.Get(context.Background(), "missing")
	assert.Equal(t, http.StatusNotFound, adda.StatusCode(err))
}

func TestRegionDeleteRemovesRow(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockRegionRepository(ctrl)
	rec := &fakeRecorder{}
	s := NewRegions(repo, testSettings(NewToastQueue(0), rec))

	pune := models.Region{ID: "r1", Name: "Pune"}
	goa := models.Region{ID: "r2", Name: "Goa"}
	repo.EXPECT().List(gomock.Any(), gomock.Any()).Return(
		models.Page[models.Region]{Items: []models.Region{pune, goa}, TotalPages: 1, TotalItems: 2}, nil)
	view := s.View()
	view.Mount()

	_, err := s.RequestDelete("r1", "Pune")
	require.NoError(t, err)

	repo.EXPECT().Delete(gomock.Any(), "r1").DoAndReturn(func(context.Context, string) error {
		st := view.State().(listctl.State[models.Region])
		assert.Equal(t, []models.Region{goa}, st.Items)
		return nil
	})
	repo.EXPECT().List(gomock.Any(), gomock.Any()).Return(
		models.Page[models.Region]{Items: []models.Region{goa}, TotalPages: 1, TotalItems: 1}, nil)

	require.NoError(t, s.Confirm(context.Background()))
	assert.Equal(t, []recordedCall{{"regions", "delete", false}}, rec.mutations)
}

func TestRegionCreateValidates(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockRegionRepository(ctrl)
	s := NewRegions(repo, testSettings(NewToastQueue(0), nil))

	errs, err := s.Create(context.Background(), models.RegionInput{Name: "  "})
	require.NoError(t, err)
	require.Len(t, errs, 2)

	repo.EXPECT().Create(gomock.Any(), models.RegionInput{Name: "Nashik", State: "Maharashtra"}).Return(nil)
	errs, err = s.Create(context.Background(), models.RegionInput{Name: "Nashik", State: "Maharashtra"})
	require.NoError(t, err)
	assert.Empty(t, errs)
}

func TestNotificationSendDefaultsAudience(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockNotificationRepository(ctrl)
	s := NewNotifications(repo, testSettings(NewToastQueue(0), nil))

	repo.EXPECT().Send(gomock.Any(), models.NotificationInput{Title: "Hi", Message: "New leads", Audience: "all"}).Return(nil)
	errs, err := s.Send(context.Background(), models.NotificationInput{Title: "Hi", Message: "New leads"})
	require.NoError(t, err)
	assert.Empty(t, errs)

	errs, err = s.Send(context.Background(), models.NotificationInput{Title: "Hi", Message: "x", Audience: "admins"})
	require.NoError(t, err)
	require.Len(t, errs, 1)
	assert.Equal(t, "audience", errs[0].Field)
}

func TestContactDeleteFailureKeepsRow(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockContactRepository(ctrl)
	s := NewContacts(repo, testSettings(NewToastQueue(0), nil))

	c := models.Contact{ID: "c1", Name: "Nikhil"}
	page := models.Page[models.Contact]{Items: []models.Contact{c}, TotalPages: 1, TotalItems: 1}
	repo.EXPECT().List(gomock.Any(), gomock.Any()).Times(2).Return(page, nil)
	view := s.View()
	view.Mount()

	_, err := s.RequestDelete("c1", "Nikhil")
	require.NoError(t, err)
	repo.EXPECT().Delete(gomock.Any(), "c1").Return(errors.New("connection reset"))

	require.Error(t, s.Confirm(context.Background()))
	st := view.State().(listctl.State[models.Contact])
	assert.Equal(t, []models.Contact{c}, st.Items)
	assert.Equal(t, "Failed to update contacts", st.Err)
}

func TestLeadsViewUsesSnapshotFilters(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockLeadRepository(ctrl)
	s := NewLeads(repo, testSettings(NewToastQueue(0), nil))

	repo.EXPECT().List(gomock.Any(), gomock.Any()).Return(models.Page[models.Lead]{TotalPages: 1}, nil)
	view := s.View()
	view.Mount()

	// pending selections do not fetch until applied
	view.SetFilter("status", "new")
	repo.EXPECT().List(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, q models.ListQuery) (models.Page[models.Lead], error) {
			assert.Equal(t, "new", q.Filters["status"])
			return models.Page[models.Lead]{TotalPages: 1}, nil
		})
	view.ApplyFilters()

	st := view.State().(listctl.State[models.Lead])
	assert.Equal(t, "no_matches", st.EmptyState)
}

func TestImportsRecordsUploads(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockImportRepository(ctrl)
	rec := &fakeRecorder{}
	s := NewImports(repo, testSettings(NewToastQueue(0), rec))

	repo.EXPECT().Import(gomock.Any(), models.ImportLeads, "leads.csv", gomock.Any()).
		Return([]byte(`{"summary":{"total":2,"imported":2,"failed":0}}`), nil)

	tab, err := s.Upload(context.Background(), models.ImportLeads, "leads.csv", []byte("name,phone\nA,1\nB,2\n"))
	require.NoError(t, err)
	require.NotNil(t, tab.Result)
	assert.Equal(t, 2, tab.Result.Imported)
	assert.Equal(t, []recordedCall{{"import", "leads", false}}, rec.imports)

	_, err = s.Upload(context.Background(), models.ImportLeads, "leads.xlsx", []byte("x"))
	require.Error(t, err)
	assert.Len(t, rec.imports, 1, "rejected files are not uploads")
}

func TestAuthLogin(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockAuthRepository(ctrl)
	sess := session.New()
	a := NewAuth(sess, repo)

	errs, err := a.Login(context.Background(), models.LoginInput{Email: "bad"})
	require.NoError(t, err)
	assert.Len(t, errs, 2)

	repo.EXPECT().Login(gomock.Any(), "admin@brokeradda.com", "secret").Return([]byte(`{"data":{"token":"tok-9"}}`), nil)
	errs, err = a.Login(context.Background(), models.LoginInput{Email: "admin@brokeradda.com", Password: "secret"})
	require.NoError(t, err)
	assert.Empty(t, errs)
	assert.Equal(t, "tok-9", sess.Token())

	a.Logout(context.Background())
	assert.False(t, sess.LoggedIn())
}

func TestDashboardViews(t *testing.T) {
	ctrl := gomock.NewController(t)
	d := NewDashboard(Repositories{
		Brokers:       mocks.NewMockBrokerRepository(ctrl),
		Leads:         mocks.NewMockLeadRepository(ctrl),
		Properties:    mocks.NewMockPropertyRepository(ctrl),
		Regions:       mocks.NewMockRegionRepository(ctrl),
		Notifications: mocks.NewMockNotificationRepository(ctrl),
		Contacts:      mocks.NewMockContactRepository(ctrl),
		Imports:       mocks.NewMockImportRepository(ctrl),
		Auth:          mocks.NewMockAuthRepository(ctrl),
	}, session.New(), Settings{})
	defer d.Close()

	assert.Equal(t, []string{"brokers", "contacts", "leads", "notifications", "properties", "regions"}, d.Resources())
	v, ok := d.View("leads")
	require.True(t, ok)
	assert.Equal(t, "leads", v.Resource())
	_, ok = d.View("users")
	assert.False(t, ok)
}

func TestToastQueueKeepsNewest(t *testing.T) {
	q := NewToastQueue(2)
	q.Success("one")
	q.Failure("two")
	q.Success("three")

	got := q.Drain()
	require.Len(t, got, 2)
	assert.Equal(t, "two", got[0].Message)
	assert.Equal(t, "three", got[1].Message)
	assert.Empty(t, q.Drain())
}
