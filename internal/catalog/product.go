package catalog

// Product is the slice of the upstream catalog record the storefront
// consumes. Everything else the API returns is ignored.
type Product struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Brand       string  `json:"brand"`
	Price       float64 `json:"price"`
	Rating      float64 `json:"rating"`
	Stock       int     `json:"stock"`
	Thumbnail   string  `json:"thumbnail"`
}

// ProductPage is the list response shape of the catalog API.
type ProductPage struct {
	Products []Product `json:"products"`
	Total    int       `json:"total"`
}

// Categories is the fixed category list offered as shop filters. The
// upstream API has a categories endpoint but its payload shape has shifted
// before; the hardcoded list is the stable choice.
var Categories = []string{
	"beauty", "fragrances", "furniture", "groceries", "home-decoration",
	"kitchen-accessories", "laptops", "mens-shirts", "mens-shoes",
	"mens-watches", "mobile-accessories", "motorcycle", "skin-care",
	"smartphones", "sports-accessories", "sunglasses", "tablets", "tops",
	"vehicle", "womens-bags", "womens-dresses", "womens-jewellery",
	"womens-shoes", "womens-watches",
}
