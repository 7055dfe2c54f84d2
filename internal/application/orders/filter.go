package orders

import (
	"sort"
	"strings"

	"orderdesk/internal/domain/order"
)

// Sort order selectors. The two *Amount names are accepted aliases kept for
// older dashboard clients.
const (
	SortNewest     = "newest"
	SortOldest     = "oldest"
	SortAmountHigh = "amount-high"
	SortAmountLow  = "amount-low"

	sortAmountHighAlias = "highestAmount"
	sortAmountLowAlias  = "lowestAmount"
)

// Query is the list view selection: free-text search, an optional status code
// filter and a sort order.
type Query struct {
	Search string
	Status *int
	Sort   string
}

// ApplyQuery filters and sorts a record collection. It never mutates its
// input; the result is a fresh, stably ordered slice.
func ApplyQuery(records []order.Record, q Query) []order.Record {
	out := make([]order.Record, 0, len(records))
	term := strings.ToLower(strings.TrimSpace(q.Search))

	for _, rec := range records {
		if term != "" && !matchesSearch(rec, term) {
			continue
		}
		if q.Status != nil && !matchesStatus(rec, *q.Status) {
			continue
		}
		out = append(out, rec)
	}

	sortRecords(out, q.Sort)
	return out
}

// matchesSearch checks the term against the customer name, the order id, the
// order number and every line item name.
func matchesSearch(rec order.Record, term string) bool {
	if strings.Contains(strings.ToLower(rec.CustomerName), term) {
		return true
	}
	if strings.Contains(strings.ToLower(rec.ID), term) {
		return true
	}
	if strings.Contains(strings.ToLower(rec.OrderNumber), term) {
		return true
	}
	for _, item := range rec.Items {
		if strings.Contains(strings.ToLower(item.Name), term) {
			return true
		}
	}
	return false
}

// matchesStatus resolves the record status to a code. A record whose status
// has no code is excluded while a status filter is active.
func matchesStatus(rec order.Record, want int) bool {
	code, ok := rec.Status.Code()
	return ok && code == want
}

func sortRecords(records []order.Record, sortBy string) {
	switch sortBy {
	case SortOldest:
		sort.SliceStable(records, func(i, j int) bool {
			return records[i].Date.Before(records[j].Date)
		})
	case SortAmountHigh, sortAmountHighAlias:
		sort.SliceStable(records, func(i, j int) bool {
			return records[i].Total > records[j].Total
		})
	case SortAmountLow, sortAmountLowAlias:
		sort.SliceStable(records, func(i, j int) bool {
			return records[i].Total < records[j].Total
		})
	default:
		// SortNewest, empty and anything unknown
		sort.SliceStable(records, func(i, j int) bool {
			return records[i].Date.After(records[j].Date)
		})
	}
}
