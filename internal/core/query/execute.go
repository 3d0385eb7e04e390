package query

import (
	"slices"
	"strings"

	"github.com/bornholm/producthub/internal/core/model"
	"github.com/pkg/errors"
)

// Execute runs the filter, search, sort and paginate stages, in that order,
// over records. The records slice is not modified.
func Execute[T any](records []T, schema *Schema[T], spec Spec) (*Page[T], error) {
	spec = spec.normalize()

	compare, exists := schema.Sorts[spec.SortBy]
	if !exists {
		return nil, errors.WithStack(model.NewValidationErrorf("Unsupported sort field '%s'", spec.SortBy))
	}

	search := strings.ToLower(spec.Search)

	matches := make([]T, 0, len(records))
	for _, r := range records {
		if !matchFilters(r, schema, spec.Filters) {
			continue
		}

		if search != "" && !matchSearch(r, schema, search) {
			continue
		}

		matches = append(matches, r)
	}

	slices.SortStableFunc(matches, func(a, b T) int {
		if spec.SortOrder == OrderAsc {
			return compare(a, b)
		}
		return compare(b, a)
	})

	total := len(matches)
	start := min((spec.Page-1)*spec.Limit, total)
	end := min(start+spec.Limit, total)

	return &Page[T]{
		Data:       matches[start:end],
		TotalCount: total,
		Page:       spec.Page,
		TotalPages: (total + spec.Limit - 1) / spec.Limit,
		HasNext:    spec.Page*spec.Limit < total,
		HasPrev:    spec.Page > 1,
	}, nil
}

func matchFilters[T any](record T, schema *Schema[T], filters map[string]string) bool {
	for name, value := range filters {
		if value == "" || value == FilterAll {
			continue
		}

		field, exists := schema.Filters[name]
		if !exists {
			continue
		}

		if field(record) != value {
			return false
		}
	}

	return true
}

func matchSearch[T any](record T, schema *Schema[T], search string) bool {
	for _, field := range schema.SearchFields {
		if strings.Contains(strings.ToLower(field(record)), search) {
			return true
		}
	}

	return false
}
