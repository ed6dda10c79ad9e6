// Package csvimport drives the bulk import tabs. Each import kind has its
// own state machine, so importing brokers never disturbs the leads tab:
//
//	Idle -> FileSelected -> Importing -> Succeeded | Failed
//
// Reset returns a tab to Idle from any state but Importing.
package csvimport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"

	"github.com/brokeradda/adda-admin/internal/apierror"
	"github.com/brokeradda/adda-admin/internal/envelope"
	"github.com/brokeradda/adda-admin/internal/logger"
	"github.com/brokeradda/adda-admin/internal/models"
	"github.com/brokeradda/adda-admin/pkg/adda"
)

// State is a tab's position in the import lifecycle.
type State string

const (
	Idle         State = "idle"
	FileSelected State = "file_selected"
	Importing    State = "importing"
	Succeeded    State = "succeeded"
	Failed       State = "failed"
)

var (
	// ErrUnknownKind is returned for an import kind without a tab.
	ErrUnknownKind = errors.New("unknown import kind")
	// ErrNoFile is returned by Import unless a file is selected.
	ErrNoFile = errors.New("no file selected")
	// ErrInProgress is returned when a tab is already importing.
	ErrInProgress = errors.New("import already in progress")
)

// Uploader sends a CSV to the backend and returns the raw response.
type Uploader interface {
	Import(ctx context.Context, kind models.ImportKind, filename string, r io.Reader) ([]byte, error)
}

// Tab is a snapshot of one import tab.
type Tab struct {
	Kind   models.ImportKind    `json:"kind"`
	State  State                `json:"state"`
	File   *File                `json:"file,omitempty"`
	Result *models.ImportResult `json:"result,omitempty"`
	Err    string               `json:"error,omitempty"`
}

// Manager is safe for concurrent use.
type Manager struct {
	mu       sync.Mutex
	uploader Uploader
	tabs     map[models.ImportKind]*Tab
}

// NewManager creates a manager with an idle tab per import kind.
func NewManager(uploader Uploader) *Manager {
	m := &Manager{uploader: uploader, tabs: make(map[models.ImportKind]*Tab)}
	for _, kind := range models.ImportKinds {
		m.tabs[kind] = &Tab{Kind: kind, State: Idle}
	}
	return m
}

// Tab returns a snapshot of the tab for kind.
func (m *Manager) Tab(kind models.ImportKind) (Tab, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	t, ok := m.tabs[kind]
	if !ok {
		return Tab{}, ErrUnknownKind
	}
	return *t, nil
}

// Tabs returns every tab in display order.
func (m *Manager) Tabs() []Tab {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]Tab, 0, len(models.ImportKinds))
	for _, kind := range models.ImportKinds {
		out = append(out, *m.tabs[kind])
	}
	return out
}

// Select validates a file for kind. An invalid file leaves the tab Idle with
// MsgInvalidFile as its error.
func (m *Manager) Select(kind models.ImportKind, filename string, data []byte) (Tab, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	t, ok := m.tabs[kind]
	if !ok {
		return Tab{}, ErrUnknownKind
	}
	if t.State == Importing {
		return *t, ErrInProgress
	}

	f, err := Inspect(filename, data)
	if err != nil {
		*t = Tab{Kind: kind, State: Idle, Err: MsgInvalidFile}
		return *t, err
	}
	*t = Tab{Kind: kind, State: FileSelected, File: f}
	return *t, nil
}

// Import uploads the selected file. The tab ends Succeeded or Failed; the
// error is returned as well for callers that want it.
func (m *Manager) Import(ctx context.Context, kind models.ImportKind) (Tab, error) {
	m.mu.Lock()
	t, ok := m.tabs[kind]
	if !ok {
		m.mu.Unlock()
		return Tab{}, ErrUnknownKind
	}
	switch t.State {
	case Importing:
		m.mu.Unlock()
		return *t, ErrInProgress
	case FileSelected:
	default:
		m.mu.Unlock()
		return *t, ErrNoFile
	}
	t.State = Importing
	t.Err = ""
	file := t.File
	m.mu.Unlock()

	log := logger.Ctx(ctx).With(logger.String("kind", string(kind)), logger.String("file", file.Name))
	body, err := m.uploader.Import(ctx, kind, file.Name, file.Reader())

	m.mu.Lock()
	defer m.mu.Unlock()
	if err != nil {
		t.State = Failed
		t.Err = failureMessage(err, kind)
		log.Warn("import failed", logger.Err(err))
		return *t, fmt.Errorf("import %s: %w", kind, err)
	}

	res := ParseResult(body)
	t.State = Succeeded
	t.Result = &res
	log.Info("import finished",
		logger.Int("imported", res.Imported),
		logger.Int("failed", res.Failed),
	)
	return *t, nil
}

// Reset returns the tab to Idle.
func (m *Manager) Reset(kind models.ImportKind) (Tab, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	t, ok := m.tabs[kind]
	if !ok {
		return Tab{}, ErrUnknownKind
	}
	if t.State == Importing {
		return *t, ErrInProgress
	}
	*t = Tab{Kind: kind, State: Idle}
	return *t, nil
}

// failureMessage prefers the backend's own message for rejected uploads.
func failureMessage(err error, kind models.ImportKind) string {
	status := adda.StatusCode(err)
	if errors.Is(err, adda.ErrNoToken) || status == http.StatusUnauthorized ||
		status == http.StatusForbidden || status >= 500 {
		return apierror.Describe(err, string(kind), apierror.OpMutation)
	}

	var se *adda.StatusError
	if errors.As(err, &se) {
		if msg, ok := envelope.String(envelope.Decode([]byte(se.Body)), "message", "error", "data.message"); ok {
			return msg
		}
	}
	return fmt.Sprintf("Failed to import %s", kind)
}
