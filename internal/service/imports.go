package service

import (
	"context"

	"github.com/brokeradda/adda-admin/internal/csvimport"
	"github.com/brokeradda/adda-admin/internal/models"
	"github.com/brokeradda/adda-admin/internal/repository"
)

// Imports backs the bulk import page: one independent tab per kind.
type Imports struct {
	manager *csvimport.Manager
	rec     Recorder
}

// NewImports creates the import tabs over repo.
func NewImports(repo repository.ImportRepository, settings Settings) *Imports {
	settings = settings.withDefaults()
	return &Imports{manager: csvimport.NewManager(repo), rec: settings.Recorder}
}

// Tabs returns every tab in display order.
func (s *Imports) Tabs() []csvimport.Tab {
	return s.manager.Tabs()
}

// Tab returns the tab for kind.
func (s *Imports) Tab(kind models.ImportKind) (csvimport.Tab, error) {
	return s.manager.Tab(kind)
}

// Select stages a file on the tab for kind.
func (s *Imports) Select(kind models.ImportKind, filename string, data []byte) (csvimport.Tab, error) {
	return s.manager.Select(kind, filename, data)
}

// Import uploads the staged file for kind.
func (s *Imports) Import(ctx context.Context, kind models.ImportKind) (csvimport.Tab, error) {
	tab, err := s.manager.Import(ctx, kind)
	if err == nil || tab.State == csvimport.Failed {
		s.rec.RecordImport(string(kind), err)
	}
	return tab, err
}

// Upload stages and imports a file in one step.
func (s *Imports) Upload(ctx context.Context, kind models.ImportKind, filename string, data []byte) (csvimport.Tab, error) {
	if tab, err := s.Select(kind, filename, data); err != nil {
		return tab, err
	}
	return s.Import(ctx, kind)
}

// Reset clears the tab for kind.
func (s *Imports) Reset(kind models.ImportKind) (csvimport.Tab, error) {
	return s.manager.Reset(kind)
}
