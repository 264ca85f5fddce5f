package queries

import (
	"errors"
	"math"
	"strings"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

const (
	MinPerPage     = 1
	MaxPerPage     = 999
	DefaultPerPage = 20
)

var ErrListOrdersQueryIsNotConstructed = errors.New(
	"ListOrdersQuery must be created via NewListOrdersQuery constructor",
)

// ListOrdersQuery is one page of the order list, optionally filtered by a
// search term matched against number, customer and site.
//
// Example:
//
//	perPage := 50
//	query, err := NewListOrdersQuery(2, &perPage, nil)
type ListOrdersQuery struct {
	page    int
	perPage int
	search  string

	guard guard.ConstructorGuard
}

// NewListOrdersQuery requires page >= 1 and small enough that the row
// offset fits in an int. perPage defaults to DefaultPerPage
// and must have at most three digits. A blank search matches every order.
func NewListOrdersQuery(page int, perPage *int, search *string) (ListOrdersQuery, error) {
	q := ListOrdersQuery{page: page, perPage: DefaultPerPage, guard: guard.NewConstructorGuard()}

	var errList []error
	if page < 1 {
		errList = append(errList, errs.NewValueIsOutOfRangeError("page", page, 1, "unbounded"))
	}
	if perPage != nil {
		if *perPage < MinPerPage || *perPage > MaxPerPage {
			errList = append(errList, errs.NewValueIsOutOfRangeError("per_page", *perPage, MinPerPage, MaxPerPage))
		}
		q.perPage = *perPage
	}
	if page >= 1 && q.perPage >= MinPerPage {
		// the row offset must fit in an int
		if maxPage := math.MaxInt/q.perPage + 1; page > maxPage {
			errList = append(errList, errs.NewValueIsOutOfRangeError("page", page, 1, maxPage))
		}
	}
	if search != nil {
		q.search = strings.TrimSpace(*search)
	}

	if err := errors.Join(errList...); err != nil {
		return ListOrdersQuery{}, err
	}
	return q, nil
}

func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

func (q ListOrdersQuery) Page() int {
	return q.page
}

func (q ListOrdersQuery) PerPage() int {
	return q.perPage
}

func (q ListOrdersQuery) Search() string {
	return q.search
}

func (q ListOrdersQuery) offset() int {
	return (q.page - 1) * q.perPage
}

type ListOrdersQueryResponse struct {
	Items   []OrderSummary
	Page    int
	PerPage int
	Total   int64
}

// OrderSummary is one row of the order list with the status of every group.
type OrderSummary struct {
	ID        kernel.UUID
	Number    string
	Customer  string
	Site      string
	CreatedAt time.Time
	Groups    []GroupStatusView
}

type GroupStatusView struct {
	Type   order.GroupType
	Label  string
	Status StatusView
}
