package orders

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"orderdesk/internal/domain/order"
)

func makeRecords(n int) []order.Record {
	out := make([]order.Record, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, order.Record{ID: fmt.Sprintf("%d", i)})
	}
	return out
}

func TestPaginate_EmptyCollectionHasOnePage(t *testing.T) {
	page := Paginate(nil, 10, 1)

	assert.Empty(t, page.Items)
	assert.Equal(t, 1, page.TotalPages)
}

func TestPaginate_LastPartialPage(t *testing.T) {
	page := Paginate(makeRecords(25), 10, 3)

	assert.Len(t, page.Items, 5)
	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, "21", page.Items[0].ID)
	assert.Equal(t, "25", page.Items[4].ID)
}

func TestPaginate_FullPage(t *testing.T) {
	page := Paginate(makeRecords(25), 10, 2)

	assert.Len(t, page.Items, 10)
	assert.Equal(t, "11", page.Items[0].ID)
}

func TestPaginate_OutOfRangeIsEmptyNotError(t *testing.T) {
	page := Paginate(makeRecords(5), 10, 7)
	assert.Empty(t, page.Items)
	assert.Equal(t, 1, page.TotalPages)

	page = Paginate(makeRecords(5), 10, 0)
	assert.Empty(t, page.Items)

	page = Paginate(makeRecords(5), 10, -3)
	assert.Empty(t, page.Items)
}

func TestPaginate_ExactMultiple(t *testing.T) {
	page := Paginate(makeRecords(20), 10, 2)

	assert.Len(t, page.Items, 10)
	assert.Equal(t, 2, page.TotalPages)
}

func TestClampPage(t *testing.T) {
	assert.Equal(t, 1, ClampPage(0, 3))
	assert.Equal(t, 1, ClampPage(-5, 3))
	assert.Equal(t, 2, ClampPage(2, 3))
	assert.Equal(t, 3, ClampPage(9, 3))
}
