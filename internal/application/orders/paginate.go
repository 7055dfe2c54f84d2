package orders

import "orderdesk/internal/domain/order"

// DefaultPageSize is used when a client asks for no or a nonsensical size.
const DefaultPageSize = 10

// Page is one slice of a filtered collection.
type Page struct {
	Items      []order.Record
	TotalPages int
}

// Paginate slices records into fixed-size pages. An empty collection still
// has one (empty) page; an out-of-range page number yields an empty slice,
// never an error.
func Paginate(records []order.Record, pageSize, pageNumber int) Page {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	totalPages := (len(records) + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}

	start := (pageNumber - 1) * pageSize
	if start < 0 || start >= len(records) {
		return Page{Items: []order.Record{}, TotalPages: totalPages}
	}
	end := start + pageSize
	if end > len(records) {
		end = len(records)
	}

	return Page{Items: records[start:end], TotalPages: totalPages}
}

// ClampPage pulls a requested page number into the valid range.
func ClampPage(pageNumber, totalPages int) int {
	if pageNumber < 1 {
		return 1
	}
	if pageNumber > totalPages {
		return totalPages
	}
	return pageNumber
}
