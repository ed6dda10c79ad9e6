// Package normalize turns Broker Adda API envelopes into view models.
//
// Each resource declares where its item list may live and, per field, an
// ordered chain of candidate source paths. The order of every chain is part
// of the contract: earlier sources win. Nothing here returns an error; an
// unrecognised envelope yields an empty page and a warning in the log.
package normalize

import (
	"context"
	"strings"
	"time"

	"github.com/brokeradda/adda-admin/internal/envelope"
	"github.com/brokeradda/adda-admin/internal/format"
	"github.com/brokeradda/adda-admin/internal/logger"
	"github.com/brokeradda/adda-admin/internal/models"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ItemFunc maps one raw item to a view model.
type ItemFunc[T any] func(item any, now time.Time) T

// Spec describes how to normalize one resource.
type Spec[T any] struct {
	Resource   string
	ArrayPaths []string
	Item       ItemFunc[T]
}

// Items extracts and maps every item of an envelope.
func (s Spec[T]) Items(ctx context.Context, v any, now time.Time) []T {
	raw, ok := envelope.FindArray(v, s.ArrayPaths...)
	if !ok {
		logger.Ctx(ctx).Warn("unrecognised response shape, rendering empty list",
			logger.String("resource", s.Resource),
		)
	}
	out := make([]T, 0, len(raw))
	for _, item := range raw {
		out = append(out, s.Item(item, now))
	}
	return out
}

// Page normalizes a list response body into a clamped page.
func (s Spec[T]) Page(ctx context.Context, body []byte, pageSize int, now time.Time) models.Page[T] {
	v := envelope.Decode(body)
	page := models.Page[T]{Items: s.Items(ctx, v, now)}

	if p := envelope.ReadPagination(v); p.Found {
		page.CurrentPage = p.CurrentPage
		page.TotalPages = p.TotalPages
		page.TotalItems = p.TotalItems
	}
	page.Clamp(pageSize)
	return page
}

var separators = strings.NewReplacer("_", " ", "-", " ")

// label title-cases a backend enum such as "in_progress" into "In Progress".
// Casers carry state, so each call gets its own.
func label(s string) string {
	s = separators.Replace(strings.TrimSpace(s))
	return cases.Title(language.English).String(strings.ToLower(s))
}

func id(item any) string {
	return envelope.StringOr(item, "", "_id", "id", "uuid")
}

// ago renders the first parseable timestamp among paths, or "N/A".
func ago(item any, now time.Time, short bool, paths ...string) string {
	for _, p := range paths {
		s, ok := envelope.String(item, p)
		if !ok {
			continue
		}
		t, ok := format.ParseTime(s)
		if !ok {
			continue
		}
		if short {
			return format.TimeAgoShort(now, t)
		}
		return format.TimeAgo(now, t)
	}
	return "N/A"
}

// fullName joins first and last name candidates when no single name exists.
func fullName(item any, prefix string) (string, bool) {
	first, okFirst := envelope.String(item, prefix+"firstName", prefix+"first_name")
	last, okLast := envelope.String(item, prefix+"lastName", prefix+"last_name")
	if !okFirst && !okLast {
		return "", false
	}
	return strings.TrimSpace(first + " " + last), true
}
