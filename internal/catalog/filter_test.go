package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var testProducts = []Product{
	{ID: 1, Title: "Mascara", Category: "beauty", Price: 9.99, Rating: 4.9},
	{ID: 2, Title: "Laptop", Category: "laptops", Price: 1099, Rating: 4.1},
	{ID: 3, Title: "Eyeshadow", Category: "beauty", Price: 19.99, Rating: 3.2},
	{ID: 4, Title: "Tablet", Category: "tablets", Price: 599, Rating: 4.5},
}

func ids(products []Product) []int64 {
	out := make([]int64, len(products))
	for i, p := range products {
		out[i] = p.ID
	}
	return out
}

func TestFilterProducts_Category(t *testing.T) {
	got := FilterProducts(testProducts, Filter{Category: "beauty"})

	assert.Equal(t, []int64{1, 3}, ids(got))
}

func TestFilterProducts_PriceRange(t *testing.T) {
	got := FilterProducts(testProducts, Filter{MinPrice: 15, MaxPrice: 600})

	assert.Equal(t, []int64{3, 4}, ids(got))
}

func TestFilterProducts_NoConstraints(t *testing.T) {
	got := FilterProducts(testProducts, Filter{})

	assert.Equal(t, []int64{1, 2, 3, 4}, ids(got))
}

func TestFilterProducts_CombinedEmptyResult(t *testing.T) {
	got := FilterProducts(testProducts, Filter{Category: "laptops", MaxPrice: 100})

	assert.Empty(t, got)
}

func TestSortProducts_PriceAsc(t *testing.T) {
	got := SortProducts(testProducts, "price", "asc")

	assert.Equal(t, []int64{1, 3, 4, 2}, ids(got))
}

func TestSortProducts_PriceDesc(t *testing.T) {
	got := SortProducts(testProducts, "price", "desc")

	assert.Equal(t, []int64{2, 4, 3, 1}, ids(got))
}

func TestSortProducts_Title(t *testing.T) {
	got := SortProducts(testProducts, "title", "asc")

	assert.Equal(t, []int64{3, 2, 1, 4}, ids(got))
}

func TestSortProducts_RatingDesc(t *testing.T) {
	got := SortProducts(testProducts, "rating", "desc")

	assert.Equal(t, []int64{1, 4, 2, 3}, ids(got))
}

func TestSortProducts_UnknownKeyKeepsOrder(t *testing.T) {
	got := SortProducts(testProducts, "stock", "asc")

	assert.Equal(t, []int64{1, 2, 3, 4}, ids(got))
}

func TestSortProducts_DoesNotMutateInput(t *testing.T) {
	SortProducts(testProducts, "price", "desc")

	assert.Equal(t, []int64{1, 2, 3, 4}, ids(testProducts))
}

func TestPaginate(t *testing.T) {
	page, pages := Paginate(testProducts, 1, 3)

	assert.Equal(t, 2, pages)
	assert.Equal(t, []int64{1, 2, 3}, ids(page))
}

func TestPaginate_LastPartialPage(t *testing.T) {
	page, pages := Paginate(testProducts, 2, 3)

	assert.Equal(t, 2, pages)
	assert.Equal(t, []int64{4}, ids(page))
}

func TestPaginate_OutOfRange(t *testing.T) {
	page, pages := Paginate(testProducts, 5, 3)

	assert.Equal(t, 2, pages)
	assert.Empty(t, page)
}

func TestPaginate_EmptyInput(t *testing.T) {
	page, pages := Paginate(nil, 1, 12)

	assert.Zero(t, pages)
	assert.Empty(t, page)
}
