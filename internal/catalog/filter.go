package catalog

import "sort"

// Filter narrows an already-fetched product list. Zero values mean "no
// constraint"; MaxPrice at or below zero is treated as unbounded.
type Filter struct {
	Category string
	MinPrice float64
	MaxPrice float64
}

// FilterProducts applies f and returns a new slice; the input is untouched.
func FilterProducts(products []Product, f Filter) []Product {
	out := make([]Product, 0, len(products))
	for _, p := range products {
		if f.Category != "" && p.Category != f.Category {
			continue
		}
		if f.MinPrice > 0 && p.Price < f.MinPrice {
			continue
		}
		if f.MaxPrice > 0 && p.Price > f.MaxPrice {
			continue
		}
		out = append(out, p)
	}
	return out
}

// SortProducts orders a copy of products by key ("price", "title" or
// "rating") in the given order ("asc" or "desc"). An unknown key leaves the
// upstream order alone.
func SortProducts(products []Product, key, order string) []Product {
	out := make([]Product, len(products))
	copy(out, products)

	var less func(a, b Product) bool
	switch key {
	case "price":
		less = func(a, b Product) bool { return a.Price < b.Price }
	case "title":
		less = func(a, b Product) bool { return a.Title < b.Title }
	case "rating":
		less = func(a, b Product) bool { return a.Rating < b.Rating }
	default:
		return out
	}

	sort.SliceStable(out, func(i, j int) bool {
		if order == "desc" {
			return less(out[j], out[i])
		}
		return less(out[i], out[j])
	})
	return out
}

// Paginate slices out one page and reports the page count. Pages are
// 1-based; out-of-range pages come back empty.
func Paginate(products []Product, page, perPage int) ([]Product, int) {
	if perPage <= 0 {
		perPage = 1
	}
	pages := (len(products) + perPage - 1) / perPage

	if page < 1 || len(products) == 0 {
		return nil, pages
	}
	start := (page - 1) * perPage
	if start >= len(products) {
		return nil, pages
	}
	end := start + perPage
	if end > len(products) {
		end = len(products)
	}
	return products[start:end], pages
}
