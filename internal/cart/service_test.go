package cart

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/catalog"
	"storefront/internal/domain"
	"storefront/internal/session"
)

type fakeCatalog struct {
	products map[int64]catalog.Product
}

func (f *fakeCatalog) GetProduct(_ context.Context, id int64) (catalog.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return catalog.Product{}, catalog.ErrNotFound
	}
	return p, nil
}

func newTestService(products map[int64]catalog.Product) (*Service, *session.Store) {
	store := session.NewStore(session.Config{Secret: []byte("test-secret")})
	return New(store, &fakeCatalog{products: products}), store
}

// requestWithCart builds a request carrying cart as its session cookie.
func requestWithCart(t *testing.T, store *session.Store, cart domain.Cart) *http.Request {
	t.Helper()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	if cart != nil {
		setCookie, err := store.WriteCart("", cart)
		require.NoError(t, err)
		r.Header.Set("Cookie", strings.SplitN(setCookie, ";", 2)[0])
	}
	return r
}

func cookieToHeader(setCookie string) string {
	return strings.TrimSpace(strings.SplitN(setCookie, ";", 2)[0])
}

func TestItems_NoCookie(t *testing.T) {
	svc, store := newTestService(nil)

	assert.Empty(t, svc.Items(requestWithCart(t, store, nil)))
}

func TestAdd_NewItem(t *testing.T) {
	svc, store := newTestService(nil)
	r := requestWithCart(t, store, nil)

	cart, cookie, err := svc.Add(r, 7, 2)

	require.NoError(t, err)
	assert.Equal(t, domain.Cart{{ProductID: 7, Quantity: 2}}, cart)
	assert.Equal(t, cart, store.ReadCart(cookieToHeader(cookie)), "the cookie must carry the updated cart")
}

func TestAdd_Accumulates(t *testing.T) {
	svc, store := newTestService(nil)
	r := requestWithCart(t, store, domain.Cart{{ProductID: 1, Quantity: 2}})

	cart, _, err := svc.Add(r, 1, 3)

	require.NoError(t, err)
	assert.Equal(t, domain.Cart{{ProductID: 1, Quantity: 5}}, cart)
}

func TestRemove(t *testing.T) {
	svc, store := newTestService(nil)
	r := requestWithCart(t, store, domain.Cart{
		{ProductID: 1, Quantity: 2},
		{ProductID: 2, Quantity: 1},
	})

	cart, cookie, err := svc.Remove(r, 1)

	require.NoError(t, err)
	assert.Equal(t, domain.Cart{{ProductID: 2, Quantity: 1}}, cart)
	assert.Equal(t, cart, store.ReadCart(cookieToHeader(cookie)))
}

func TestRemove_AbsentStillReissuesSession(t *testing.T) {
	svc, store := newTestService(nil)
	r := requestWithCart(t, store, domain.Cart{{ProductID: 1, Quantity: 2}})

	cart, cookie, err := svc.Remove(r, 42)

	require.NoError(t, err)
	assert.Equal(t, domain.Cart{{ProductID: 1, Quantity: 2}}, cart)
	assert.NotEqual(t, r.Header.Get("Cookie"), cookie, "a no-op remove still re-signs the session")
}

func TestSetQuantity_RemovesAtZero(t *testing.T) {
	svc, store := newTestService(nil)
	r := requestWithCart(t, store, domain.Cart{{ProductID: 5, Quantity: 1}})

	cart, cookie, err := svc.SetQuantity(r, 5, 0)

	require.NoError(t, err)
	assert.Empty(t, cart)
	assert.Empty(t, store.ReadCart(cookieToHeader(cookie)))
}

func TestSetQuantity_Replaces(t *testing.T) {
	svc, store := newTestService(nil)
	r := requestWithCart(t, store, domain.Cart{{ProductID: 5, Quantity: 1}})

	cart, _, err := svc.SetQuantity(r, 5, 9)

	require.NoError(t, err)
	assert.Equal(t, domain.Cart{{ProductID: 5, Quantity: 9}}, cart)
}

// An update for a product that is not in the cart leaves the cart alone and
// echoes the inbound Cookie header verbatim instead of re-signing. The echo
// is part of the session contract and is pinned here on purpose.
func TestSetQuantity_AbsentEchoesInboundCookie(t *testing.T) {
	svc, store := newTestService(nil)
	r := requestWithCart(t, store, domain.Cart{{ProductID: 1, Quantity: 2}})
	inbound := r.Header.Get("Cookie")

	cart, cookie, err := svc.SetQuantity(r, 99, 5)

	require.NoError(t, err)
	assert.Equal(t, domain.Cart{{ProductID: 1, Quantity: 2}}, cart)
	assert.Equal(t, inbound, cookie)
}

func TestSetQuantity_AbsentWithNoCookie(t *testing.T) {
	svc, store := newTestService(nil)
	r := requestWithCart(t, store, nil)

	cart, cookie, err := svc.SetQuantity(r, 99, 5)

	require.NoError(t, err)
	assert.Empty(t, cart)
	assert.Empty(t, cookie)
}

// Two racing requests each read their own cookie snapshot and write back
// independently; whichever Set-Cookie the browser applies last wins and the
// other mutation is silently discarded. There is no merge.
func TestConcurrentMutations_LastWriterWins(t *testing.T) {
	svc, store := newTestService(nil)

	base, err := store.WriteCart("", domain.Cart{{ProductID: 1, Quantity: 1}})
	require.NoError(t, err)
	header := cookieToHeader(base)

	tabOne := httptest.NewRequest(http.MethodPost, "/cart", nil)
	tabOne.Header.Set("Cookie", header)
	tabTwo := httptest.NewRequest(http.MethodPost, "/cart", nil)
	tabTwo.Header.Set("Cookie", header)

	_, _, err = svc.Add(tabOne, 2, 1)
	require.NoError(t, err)
	_, laterCookie, err := svc.Add(tabTwo, 3, 1)
	require.NoError(t, err)

	final := store.ReadCart(cookieToHeader(laterCookie))
	assert.Equal(t, domain.Cart{
		{ProductID: 1, Quantity: 1},
		{ProductID: 3, Quantity: 1},
	}, final, "the first tab's add is lost once the second tab's cookie lands")
}

func TestEnriched(t *testing.T) {
	svc, store := newTestService(map[int64]catalog.Product{
		1: {ID: 1, Title: "Mascara", Price: 10},
		2: {ID: 2, Title: "Eyeshadow", Price: 5.5},
	})
	r := requestWithCart(t, store, domain.Cart{
		{ProductID: 1, Quantity: 2},
		{ProductID: 2, Quantity: 1},
	})

	lines, summary := svc.Enriched(context.Background(), r)

	require.Len(t, lines, 2)
	assert.Equal(t, "Mascara", lines[0].Product.Title)
	assert.Equal(t, 20.0, lines[0].Total)
	assert.Equal(t, 5.5, lines[1].Total)
	assert.Equal(t, 25.5, summary.Subtotal)
	assert.Equal(t, ShippingFlatRate, summary.Shipping)
	assert.Equal(t, 45.5, summary.Total)
}

func TestEnriched_DropsFailedLookups(t *testing.T) {
	svc, store := newTestService(map[int64]catalog.Product{
		1: {ID: 1, Title: "Mascara", Price: 10},
	})
	r := requestWithCart(t, store, domain.Cart{
		{ProductID: 1, Quantity: 2},
		{ProductID: 404, Quantity: 3}, // unknown upstream, dropped from the view
	})

	lines, summary := svc.Enriched(context.Background(), r)

	require.Len(t, lines, 1)
	assert.Equal(t, int64(1), lines[0].ProductID)
	assert.Equal(t, 20.0, summary.Subtotal)
}

func TestEnriched_EmptyCart(t *testing.T) {
	svc, store := newTestService(nil)

	lines, summary := svc.Enriched(context.Background(), requestWithCart(t, store, nil))

	assert.Empty(t, lines)
	assert.Equal(t, 0.0, summary.Subtotal)
	assert.Equal(t, ShippingFlatRate, summary.Total)
}
