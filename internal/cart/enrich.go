package cart

import (
	"context"
	"net/http"

	"golang.org/x/sync/errgroup"

	"storefront/internal/catalog"
	"storefront/internal/domain"
)

// ShippingFlatRate is the fixed shipping charge shown on the cart page.
const ShippingFlatRate = 20.00

// Line is a cart item joined with its live catalog record.
type Line struct {
	domain.CartItem
	Product catalog.Product
	Total   float64
}

// Summary holds the cart page money totals.
type Summary struct {
	Subtotal float64
	Shipping float64
	Total    float64
}

// Enriched joins every cart line with live product data, fetched
// concurrently. A failed lookup drops that one line from the view instead
// of failing the page; the cart degrades partially and silently.
func (s *Service) Enriched(ctx context.Context, r *http.Request) ([]Line, Summary) {
	items := s.Items(r)

	fetched := make([]*Line, len(items))
	g, ctx := errgroup.WithContext(ctx)
	for i, item := range items {
		i, item := i, item
		g.Go(func() error {
			p, err := s.products.GetProduct(ctx, item.ProductID)
			if err != nil {
				return nil
			}
			fetched[i] = &Line{
				CartItem: item,
				Product:  p,
				Total:    p.Price * float64(item.Quantity),
			}
			return nil
		})
	}
	_ = g.Wait() // lookups never surface errors, only dropped lines

	lines := make([]Line, 0, len(fetched))
	subtotal := 0.0
	for _, l := range fetched {
		if l == nil {
			continue
		}
		lines = append(lines, *l)
		subtotal += l.Total
	}

	return lines, Summary{
		Subtotal: subtotal,
		Shipping: ShippingFlatRate,
		Total:    subtotal + ShippingFlatRate,
	}
}
