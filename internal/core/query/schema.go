package query

import (
	"cmp"
	"strings"
	"time"
)

// Comparator orders two records, following the cmp.Compare convention.
type Comparator[T any] func(a, b T) int

// Schema declares how records of one entity type can be queried.
type Schema[T any] struct {
	// Filters maps a filter name to the record field it matches.
	Filters map[string]func(T) string
	// SearchFields are matched case-insensitively against the search term.
	SearchFields []func(T) string
	// Sorts is the allow-list of sortable fields.
	Sorts map[string]Comparator[T]
}

func (s *Schema[T]) FilterNames() []string {
	names := make([]string, 0, len(s.Filters))
	for name := range s.Filters {
		names = append(names, name)
	}
	return names
}

func ByString[T any](fn func(T) string) Comparator[T] {
	return func(a, b T) int {
		return strings.Compare(fn(a), fn(b))
	}
}

func ByNumber[T any, N cmp.Ordered](fn func(T) N) Comparator[T] {
	return func(a, b T) int {
		return cmp.Compare(fn(a), fn(b))
	}
}

func ByTime[T any](fn func(T) time.Time) Comparator[T] {
	return func(a, b T) int {
		return fn(a).Compare(fn(b))
	}
}

func ByBool[T any](fn func(T) bool) Comparator[T] {
	return func(a, b T) int {
		x, y := fn(a), fn(b)
		switch {
		case x == y:
			return 0
		case !x:
			return -1
		default:
			return 1
		}
	}
}

var dateLayouts = []string{
	time.RFC3339Nano,
	time.DateTime,
	time.DateOnly,
}

// ByDate compares date-like strings chronologically. Values that cannot be
// parsed sort before any valid date.
func ByDate[T any](fn func(T) string) Comparator[T] {
	return func(a, b T) int {
		x, xOK := parseDate(fn(a))
		y, yOK := parseDate(fn(b))
		switch {
		case xOK && yOK:
			return x.Compare(y)
		case xOK:
			return 1
		case yOK:
			return -1
		default:
			return strings.Compare(fn(a), fn(b))
		}
	}
}

func parseDate(raw string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
