// Package listview derives the employee list the browser renders: the full
// fetched record set filtered by a free-text query and ordered by the active
// sort column. Derivation is pure; the source set is never mutated.
package listview

import (
	"sort"
	"strings"
	"time"

	. "staffdir/internal/models"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

type SortDirection string

const (
	Ascending  SortDirection = "asc"
	Descending SortDirection = "desc"
)

type SortKey string

const (
	SortUniqueID  SortKey = "uniqueId"
	SortName      SortKey = "name"
	SortEmail     SortKey = "email"
	SortCreatedAt SortKey = "createdAt"
)

// dateRenderFormat is the fixed human-readable form createdAt is shown in
// and searched against, e.g. "05-Jan-24".
const dateRenderFormat = "02-Jan-06"

var sortable = map[SortKey]bool{
	SortUniqueID:  true,
	SortName:      true,
	SortEmail:     true,
	SortCreatedAt: true,
}

// ViewState is the display-only client state driving the derived view.
type ViewState struct {
	Query         string
	SortKey       SortKey
	SortDirection SortDirection
}

func DefaultState() ViewState {
	return ViewState{SortKey: SortName, SortDirection: Ascending}
}

// Toggle applies a column-header click: the active column flips direction,
// a different sortable column becomes active ascending, and clicks on
// display-only columns change nothing.
func (s ViewState) Toggle(column SortKey) ViewState {
	if !sortable[column] {
		return s
	}

	if s.SortKey == column {
		if s.SortDirection == Ascending {
			s.SortDirection = Descending
		} else {
			s.SortDirection = Ascending
		}
		return s
	}

	s.SortKey = column
	s.SortDirection = Ascending
	return s
}

func RenderCreatedAt(t time.Time) string {
	return t.UTC().Format(dateRenderFormat)
}

// Derive returns the filtered-then-sorted view of records. The result has a
// fresh backing array; the records themselves are shared, not copied.
func Derive(records []*Employee, state ViewState) []*Employee {
	view := filter(records, state.Query)
	sortView(view, state)
	return view
}

func filter(records []*Employee, query string) []*Employee {
	view := make([]*Employee, 0, len(records))
	if query == "" {
		return append(view, records...)
	}

	q := strings.ToLower(query)
	for _, record := range records {
		if matches(record, q) {
			view = append(view, record)
		}
	}
	return view
}

func matches(record *Employee, lowerQuery string) bool {
	return strings.Contains(strings.ToLower(record.Name), lowerQuery) ||
		strings.Contains(strings.ToLower(record.Email), lowerQuery) ||
		strings.Contains(strings.ToLower(record.UniqueID), lowerQuery) ||
		strings.Contains(strings.ToLower(RenderCreatedAt(record.CreatedAt)), lowerQuery)
}

type comparator func(a, b *Employee) int

// comparators maps each sortable column to its typed comparison, resolved
// once per sort invocation. Keys outside the table are non-comparable and
// leave the filtered order untouched.
func comparators(col *collate.Collator) map[SortKey]comparator {
	byText := func(get func(*Employee) string) comparator {
		return func(a, b *Employee) int {
			return col.CompareString(get(a), get(b))
		}
	}

	return map[SortKey]comparator{
		SortUniqueID: byText(func(e *Employee) string { return e.UniqueID }),
		SortName:     byText(func(e *Employee) string { return e.Name }),
		SortEmail:    byText(func(e *Employee) string { return e.Email }),
		SortCreatedAt: func(a, b *Employee) int {
			return a.CreatedAt.Compare(b.CreatedAt)
		},
	}
}

func sortView(view []*Employee, state ViewState) {
	cmp, ok := comparators(collate.New(language.English, collate.Loose))[state.SortKey]
	if !ok {
		return
	}

	sign := 1
	if state.SortDirection == Descending {
		sign = -1
	}

	sort.SliceStable(view, func(i, j int) bool {
		return sign*cmp(view[i], view[j]) < 0
	})
}
