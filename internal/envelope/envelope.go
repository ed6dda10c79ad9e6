// Package envelope extracts values from loosely typed JSON payloads.
//
// Backend responses arrive in several shapes for the same resource, so every
// logical field is read through an ordered list of candidate paths. The first
// candidate that is present, non-empty and of an acceptable kind wins. None
// of the functions here panic or return errors: a missing value is reported
// as NotFound and callers pick their own fallback.
package envelope

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Result is the outcome of a candidate lookup.
type Result struct {
	Value any
	Path  string
	Found bool
}

// NotFound is the zero Result.
var NotFound = Result{}

// Decode parses body into generic JSON values, keeping numbers as json.Number.
// Invalid JSON decodes to nil.
func Decode(body []byte) any {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil
	}
	return v
}

// Get walks a dot-separated path. Numeric segments index arrays. An empty
// path returns v itself.
func Get(v any, path string) (any, bool) {
	if path == "" {
		return v, v != nil
	}
	cur := v
	for _, seg := range strings.Split(path, ".") {
		switch node := cur.(type) {
		case map[string]any:
			next, ok := node[seg]
			if !ok {
				return nil, false
			}
			cur = next
		case []any:
			i, err := strconv.Atoi(seg)
			if err != nil || i < 0 || i >= len(node) {
				return nil, false
			}
			cur = node[i]
		default:
			return nil, false
		}
	}
	return cur, cur != nil
}

// First returns the first candidate that is non-empty and satisfies accept.
// A nil accept admits any non-empty value.
func First(v any, accept func(any) bool, paths ...string) Result {
	for _, p := range paths {
		val, ok := Get(v, p)
		if !ok || IsEmpty(val) {
			continue
		}
		if accept != nil && !accept(val) {
			continue
		}
		return Result{Value: val, Path: p, Found: true}
	}
	return NotFound
}

// Lookup returns the first non-empty candidate of any kind.
func Lookup(v any, paths ...string) Result {
	return First(v, nil, paths...)
}

// IsEmpty reports nil, blank strings, and empty arrays/objects.
func IsEmpty(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(t) == ""
	case []any:
		return len(t) == 0
	case map[string]any:
		return len(t) == 0
	default:
		return false
	}
}

func isScalar(v any) bool {
	switch v.(type) {
	case string, json.Number, float64, int, int64, bool:
		return true
	}
	return false
}

func isNumeric(v any) bool {
	_, ok := toNumberText(v)
	return ok
}

// String returns the first scalar candidate rendered as text.
func String(v any, paths ...string) (string, bool) {
	r := First(v, isScalar, paths...)
	if !r.Found {
		return "", false
	}
	return strings.TrimSpace(scalarText(r.Value)), true
}

// StringOr is String with a literal fallback.
func StringOr(v any, fallback string, paths ...string) string {
	if s, ok := String(v, paths...); ok {
		return s
	}
	return fallback
}

// NumberText returns the first candidate that parses as a number, as
// canonical decimal text (e.g. "2500000" or "12.5").
func NumberText(v any, paths ...string) (string, bool) {
	r := First(v, isNumeric, paths...)
	if !r.Found {
		return "", false
	}
	return toNumberText(r.Value)
}

// Int returns the first numeric candidate truncated to an int.
func Int(v any, paths ...string) (int, bool) {
	s, ok := NumberText(v, paths...)
	if !ok {
		return 0, false
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return int(i), true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return int(f), true
}

// Bool returns the first candidate interpretable as a boolean. Strings
// "true"/"false"/"yes"/"no" and numbers 1/0 are accepted.
func Bool(v any, paths ...string) (bool, bool) {
	r := First(v, func(x any) bool { _, ok := toBool(x); return ok }, paths...)
	if !r.Found {
		return false, false
	}
	b, _ := toBool(r.Value)
	return b, true
}

// Object returns the first candidate that is a JSON object.
func Object(v any, paths ...string) (map[string]any, bool) {
	r := First(v, func(x any) bool { _, ok := x.(map[string]any); return ok }, paths...)
	if !r.Found {
		return nil, false
	}
	return r.Value.(map[string]any), true
}

// Strings collects scalar values from the first array candidate; object
// elements contribute their first scalar field among fields.
func Strings(v any, fields []string, paths ...string) []string {
	r := First(v, func(x any) bool { _, ok := x.([]any); return ok }, paths...)
	if !r.Found {
		return nil
	}
	var out []string
	for _, el := range r.Value.([]any) {
		if isScalar(el) {
			if s := strings.TrimSpace(scalarText(el)); s != "" {
				out = append(out, s)
			}
			continue
		}
		if s, ok := String(el, fields...); ok {
			out = append(out, s)
		}
	}
	return out
}

func scalarText(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case bool:
		return strconv.FormatBool(t)
	}
	return ""
}

func toNumberText(v any) (string, bool) {
	switch t := v.(type) {
	case json.Number:
		if _, err := t.Float64(); err != nil {
			return "", false
		}
		return t.String(), true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case int:
		return strconv.Itoa(t), true
	case int64:
		return strconv.FormatInt(t, 10), true
	case string:
		s := strings.ReplaceAll(strings.TrimSpace(t), ",", "")
		if s == "" {
			return "", false
		}
		if _, err := strconv.ParseFloat(s, 64); err != nil {
			return "", false
		}
		return s, true
	}
	return "", false
}

func toBool(v any) (bool, bool) {
	switch t := v.(type) {
	case bool:
		return t, true
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "true", "yes", "1":
			return true, true
		case "false", "no", "0":
			return false, true
		}
	case json.Number:
		switch t.String() {
		case "1":
			return true, true
		case "0":
			return false, true
		}
	case float64:
		if t == 1 {
			return true, true
		}
		if t == 0 {
			return false, true
		}
	}
	return false, false
}
