package domain

// CartItem is a single line in a visitor's cart. The JSON field names are
// the session cookie wire format and must not change.
type CartItem struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

// Cart is an ordered list of items, unique by ProductID. Every item held in
// a Cart has Quantity > 0; a quantity at or below zero means "not in cart".
type Cart []CartItem

// Add returns a new cart with quantity added to an existing line for
// productID, or with a new line appended if the product is not in the cart.
func Add(cart Cart, productID int64, quantity int) Cart {
	next := make(Cart, len(cart), len(cart)+1)
	copy(next, cart)
	for i := range next {
		if next[i].ProductID == productID {
			next[i].Quantity += quantity
			return next
		}
	}
	return append(next, CartItem{ProductID: productID, Quantity: quantity})
}

// Remove returns a new cart without any line for productID.
func Remove(cart Cart, productID int64) Cart {
	next := make(Cart, 0, len(cart))
	for _, item := range cart {
		if item.ProductID != productID {
			next = append(next, item)
		}
	}
	return next
}

// SetQuantity returns a new cart with the line for productID set to the
// absolute quantity given. A quantity at or below zero deletes the line.
// The boolean reports whether the product was in the cart; when it is
// false the input cart is returned untouched.
func SetQuantity(cart Cart, productID int64, quantity int) (Cart, bool) {
	for i := range cart {
		if cart[i].ProductID != productID {
			continue
		}
		if quantity <= 0 {
			return Remove(cart, productID), true
		}
		next := make(Cart, len(cart))
		copy(next, cart)
		next[i].Quantity = quantity
		return next, true
	}
	return cart, false
}

// TotalQuantity is the sum of all line quantities, shown on the cart badge.
func TotalQuantity(cart Cart) int {
	total := 0
	for _, item := range cart {
		total += item.Quantity
	}
	return total
}
