package query

const (
	DefaultPage      = 1
	DefaultLimit     = 10
	DefaultSortBy    = "createdAt"
	DefaultSortOrder = OrderDesc

	// FilterAll disables a filter.
	FilterAll = "All"
)

type Order string

const (
	OrderAsc  Order = "asc"
	OrderDesc Order = "desc"
)

// ParseOrder returns OrderAsc for "asc" and OrderDesc for anything else.
func ParseOrder(raw string) Order {
	if Order(raw) == OrderAsc {
		return OrderAsc
	}
	return OrderDesc
}

// Spec describes a listing request.
type Spec struct {
	// Filters maps a filter name to the exact value records must have.
	// Empty values and FilterAll disable the filter.
	Filters   map[string]string
	Search    string
	SortBy    string
	SortOrder Order
	Page      int
	Limit     int
}

type OptionFunc func(s *Spec)

func NewSpec(funcs ...OptionFunc) Spec {
	spec := Spec{
		Filters:   map[string]string{},
		SortBy:    DefaultSortBy,
		SortOrder: DefaultSortOrder,
		Page:      DefaultPage,
		Limit:     DefaultLimit,
	}
	for _, fn := range funcs {
		fn(&spec)
	}
	return spec
}

func WithFilter(name, value string) OptionFunc {
	return func(s *Spec) {
		if s.Filters == nil {
			s.Filters = map[string]string{}
		}
		s.Filters[name] = value
	}
}

func WithSearch(search string) OptionFunc {
	return func(s *Spec) {
		s.Search = search
	}
}

func WithSort(sortBy string, order Order) OptionFunc {
	return func(s *Spec) {
		s.SortBy = sortBy
		s.SortOrder = order
	}
}

func WithPagination(page, limit int) OptionFunc {
	return func(s *Spec) {
		s.Page = page
		s.Limit = limit
	}
}

func (s Spec) normalize() Spec {
	if s.Page < 1 {
		s.Page = DefaultPage
	}
	if s.Limit < 1 {
		s.Limit = DefaultLimit
	}
	if s.SortBy == "" {
		s.SortBy = DefaultSortBy
	}
	if s.SortOrder != OrderAsc {
		s.SortOrder = OrderDesc
	}
	return s
}

// Page is one page of a listing.
type Page[T any] struct {
	Data       []T  `json:"data"`
	TotalCount int  `json:"totalCount"`
	Page       int  `json:"page"`
	TotalPages int  `json:"totalPages"`
	HasNext    bool `json:"hasNext"`
	HasPrev    bool `json:"hasPrev"`
}
