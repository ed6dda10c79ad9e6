package service

import (
	"time"

	"github.com/brokeradda/adda-admin/internal/listctl"
	"github.com/brokeradda/adda-admin/internal/mutation"
)

// Settings tunes the list pages and where side effects are reported.
type Settings struct {
	PageSize     int
	Debounce     time.Duration
	LeadDebounce time.Duration
	Clock        listctl.Clock
	Notifier     mutation.Notifier
	Recorder     Recorder
}

func (s Settings) withDefaults() Settings {
	if s.PageSize <= 0 {
		s.PageSize = listctl.DefaultPageSize
	}
	if s.Debounce <= 0 {
		s.Debounce = listctl.DefaultDebounce
	}
	if s.LeadDebounce <= 0 {
		s.LeadDebounce = listctl.DefaultLeadDebounce
	}
	if s.Notifier == nil {
		s.Notifier = mutation.LogNotifier{}
	}
	if s.Recorder == nil {
		s.Recorder = nopRecorder{}
	}
	return s
}
