package cart

import (
	"context"
	"net/http"

	"storefront/internal/catalog"
	"storefront/internal/domain"
	"storefront/internal/session"
)

// ProductGetter is the slice of the catalog client the cart view needs.
type ProductGetter interface {
	GetProduct(ctx context.Context, id int64) (catalog.Product, error)
}

// Service applies cart operations to the session carried by a request.
// Every mutation returns the updated cart together with the Set-Cookie
// value that must go out on the response; there is no server-side copy,
// so dropping the cookie drops the change.
type Service struct {
	store    *session.Store
	products ProductGetter
}

func New(store *session.Store, products ProductGetter) *Service {
	return &Service{store: store, products: products}
}

// Items decodes the current cart without mutating anything.
func (s *Service) Items(r *http.Request) domain.Cart {
	return s.store.ReadCart(r.Header.Get("Cookie"))
}

// Add puts quantity of productID into the cart, accumulating onto an
// existing line.
func (s *Service) Add(r *http.Request, productID int64, quantity int) (domain.Cart, string, error) {
	header := r.Header.Get("Cookie")
	cart := domain.Add(s.store.ReadCart(header), productID, quantity)
	cookie, err := s.store.WriteCart(header, cart)
	if err != nil {
		return nil, "", err
	}
	return cart, cookie, nil
}

// Remove deletes the line for productID. An absent product is a no-op that
// still re-signs and re-issues the session.
func (s *Service) Remove(r *http.Request, productID int64) (domain.Cart, string, error) {
	header := r.Header.Get("Cookie")
	cart := domain.Remove(s.store.ReadCart(header), productID)
	cookie, err := s.store.WriteCart(header, cart)
	if err != nil {
		return nil, "", err
	}
	return cart, cookie, nil
}

// SetQuantity replaces the line quantity outright; zero or less deletes the
// line. When the product is not in the cart the operation is a no-op and
// the inbound Cookie header is echoed back verbatim instead of re-signing —
// a long-standing quirk of the session contract, kept and pinned by tests.
func (s *Service) SetQuantity(r *http.Request, productID int64, quantity int) (domain.Cart, string, error) {
	header := r.Header.Get("Cookie")
	cart := s.store.ReadCart(header)

	next, ok := domain.SetQuantity(cart, productID, quantity)
	if !ok {
		return cart, header, nil
	}
	cookie, err := s.store.WriteCart(header, next)
	if err != nil {
		return nil, "", err
	}
	return next, cookie, nil
}
