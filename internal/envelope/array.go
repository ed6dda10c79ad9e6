package envelope

// Array finds the item list inside an envelope. Candidates are tried in
// order and the first array wins; failing that, the envelope itself is used
// when it is an array, then an object holding exactly one array-valued
// property. The result is never nil.
func Array(v any, paths ...string) []any {
	arr, _ := FindArray(v, paths...)
	return arr
}

// FindArray is Array that also reports whether any shape matched, so callers
// can tell an empty list from an unrecognised envelope.
func FindArray(v any, paths ...string) ([]any, bool) {
	for _, p := range paths {
		if val, ok := Get(v, p); ok {
			if arr, ok := val.([]any); ok {
				return arr, true
			}
		}
	}

	switch t := v.(type) {
	case []any:
		return t, true
	case map[string]any:
		var only []any
		count := 0
		for _, val := range t {
			if arr, ok := val.([]any); ok {
				only = arr
				count++
			}
		}
		if count == 1 {
			return only, true
		}
	}
	return []any{}, false
}

// Len returns the length of the first array candidate, or 0.
func Len(v any, paths ...string) int {
	r := First(v, func(x any) bool { _, ok := x.([]any); return ok }, paths...)
	if !r.Found {
		return 0
	}
	return len(r.Value.([]any))
}

// Pagination describes the paging block of a list envelope.
type Pagination struct {
	CurrentPage int
	TotalPages  int
	TotalItems  int
	Found       bool
}

var paginationRoots = []string{"pagination", "data.pagination", "meta", "data.meta", "data", ""}

// ReadPagination reads paging metadata from the usual places. Fields that
// are absent stay zero.
func ReadPagination(v any) Pagination {
	var p Pagination
	for _, root := range paginationRoots {
		obj, ok := Get(v, root)
		if !ok {
			continue
		}
		if _, isObj := obj.(map[string]any); !isObj {
			continue
		}
		page, okPage := Int(obj, "currentPage", "page", "current_page")
		pages, okPages := Int(obj, "totalPages", "pages", "total_pages", "lastPage")
		total, okTotal := Int(obj, "total", "totalItems", "total_items", "totalCount", "count")
		if !okPage && !okPages && !okTotal {
			continue
		}
		p = Pagination{CurrentPage: page, TotalPages: pages, TotalItems: total, Found: true}
		break
	}
	return p
}
