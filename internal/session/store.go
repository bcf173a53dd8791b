package session

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/golang-jwt/jwt/v4"

	"storefront/internal/domain"
)

// CookieName is the session cookie shared with the original storefront.
const CookieName = "__session"

const cartClaim = "cart"

// Config carries everything a Store needs. It is passed in explicitly so
// tests can run stores with different secrets side by side.
type Config struct {
	// Secret signs the session token (HMAC-SHA256).
	Secret []byte
	// Secure marks the cookie Secure; set in production.
	Secure bool
}

// Store translates between the wire-level session cookie and an in-memory
// cart. It is pure: no network, no disk, no process-wide state.
type Store struct {
	secret []byte
	secure bool
}

func NewStore(cfg Config) *Store {
	return &Store{secret: cfg.Secret, secure: cfg.Secure}
}

// ReadCart decodes the cart out of the request's Cookie header. A missing
// cookie, a bad signature, or a malformed cart all read as an empty cart;
// a corrupted cookie must never fail the request.
func (s *Store) ReadCart(cookieHeader string) domain.Cart {
	return decodeCart(s.claims(cookieHeader)[cartClaim])
}

// WriteCart re-reads the existing session so unrelated claims survive, sets
// the cart claim, and returns the Set-Cookie header value for the response.
// Every cart mutation must be followed by a WriteCart or the change is lost
// with the response.
func (s *Store) WriteCart(cookieHeader string, cart domain.Cart) (string, error) {
	claims := s.claims(cookieHeader)
	claims[cartClaim] = cart

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign session: %w", err)
	}

	cookie := &http.Cookie{
		Name:     CookieName,
		Value:    signed,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   s.secure,
	}
	return cookie.String(), nil
}

// claims parses and verifies the session token out of a raw Cookie header.
// Any failure yields a fresh, empty claim set.
func (s *Store) claims(cookieHeader string) jwt.MapClaims {
	raw, ok := cookieValue(cookieHeader)
	if !ok {
		return jwt.MapClaims{}
	}

	token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || token == nil || !token.Valid {
		return jwt.MapClaims{}
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return jwt.MapClaims{}
	}
	return claims
}

func cookieValue(cookieHeader string) (string, bool) {
	if cookieHeader == "" {
		return "", false
	}
	r := http.Request{Header: http.Header{"Cookie": {cookieHeader}}}
	c, err := r.Cookie(CookieName)
	if err != nil {
		return "", false
	}
	return c.Value, true
}

// decodeCart turns the raw cart claim back into a Cart. Claims round-trip
// through JSON, so the value arrives as []interface{} of maps. Lines that
// violate the cart invariants (non-positive id or quantity, duplicate
// product) are dropped rather than surfaced.
func decodeCart(v interface{}) domain.Cart {
	if v == nil {
		return domain.Cart{}
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return domain.Cart{}
	}
	var decoded domain.Cart
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return domain.Cart{}
	}

	cart := make(domain.Cart, 0, len(decoded))
	seen := make(map[int64]bool, len(decoded))
	for _, item := range decoded {
		if item.ProductID <= 0 || item.Quantity <= 0 || seen[item.ProductID] {
			continue
		}
		seen[item.ProductID] = true
		cart = append(cart, item)
	}
	return cart
}
