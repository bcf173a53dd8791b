package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"storefront/internal/cart"
	"storefront/internal/catalog"
	"storefront/internal/domain"
)

// listFetchLimit is how much of the catalog one shop request pulls before
// filtering locally. The upstream list endpoints paginate, but category and
// price filters run here, so the page works over a larger fetch.
const listFetchLimit = 100

// productsPerPage is the shop grid page size.
const productsPerPage = 12

// Catalog is the read-only product source the handlers consume.
type Catalog interface {
	ListProducts(ctx context.Context, limit, skip int) (catalog.ProductPage, error)
	SearchProducts(ctx context.Context, query string, limit, skip int) (catalog.ProductPage, error)
	GetProduct(ctx context.Context, id int64) (catalog.Product, error)
}

type Handlers struct {
	catalog Catalog
	cart    *cart.Service
	views   *views
	log     *zap.Logger
}

func NewHandlers(cat Catalog, cartSvc *cart.Service, log *zap.Logger) (*Handlers, error) {
	v, err := parseViews()
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Handlers{catalog: cat, cart: cartSvc, views: v, log: log}, nil
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type homeData struct {
	pageData
}

func (h *Handlers) Home(w http.ResponseWriter, r *http.Request) {
	h.render(w, h.views.home, http.StatusOK, homeData{pageData: h.page(r)})
}

type shopQuery struct {
	Search   string
	Category string
	MinPrice string
	MaxPrice string
	Sort     string
	Order    string
}

type pageLink struct {
	N       int
	URL     string
	Current bool
}

type shopData struct {
	pageData
	Products   []catalog.Product
	Total      int
	Page       int
	Pages      int
	PrevURL    string
	NextURL    string
	PageLinks  []pageLink
	Categories []string
	Query      shopQuery
}

func (h *Handlers) ShopIndex(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	page := 1
	if n, err := strconv.Atoi(q.Get("page")); err == nil && n > 0 {
		page = n
	}
	sq := shopQuery{
		Search:   q.Get("search"),
		Category: q.Get("category"),
		MinPrice: q.Get("minPrice"),
		MaxPrice: q.Get("maxPrice"),
		Sort:     q.Get("sort"),
		Order:    q.Get("order"),
	}
	if sq.Order == "" {
		sq.Order = "asc"
	}

	var fetched catalog.ProductPage
	var err error
	if sq.Search != "" {
		fetched, err = h.catalog.SearchProducts(r.Context(), sq.Search, listFetchLimit, 0)
	} else {
		fetched, err = h.catalog.ListProducts(r.Context(), listFetchLimit, 0)
	}
	if err != nil {
		h.log.Error("list products", zap.Error(err))
		h.renderError(w, r, http.StatusBadGateway, "Failed to load products")
		return
	}

	filter := catalog.Filter{Category: sq.Category}
	// Filter values are best-effort: an unparsable price is ignored, not an
	// error, so a mangled link still renders the shop.
	if v, err := strconv.ParseFloat(sq.MinPrice, 64); err == nil {
		filter.MinPrice = v
	}
	if v, err := strconv.ParseFloat(sq.MaxPrice, 64); err == nil {
		filter.MaxPrice = v
	}

	products := catalog.FilterProducts(fetched.Products, filter)
	products = catalog.SortProducts(products, sq.Sort, sq.Order)
	total := len(products)
	pageItems, pages := catalog.Paginate(products, page, productsPerPage)

	data := shopData{
		pageData:   h.page(r),
		Products:   pageItems,
		Total:      total,
		Page:       page,
		Pages:      pages,
		Categories: catalog.Categories,
		Query:      sq,
	}
	if page > 1 {
		data.PrevURL = shopURL(sq, page-1)
	}
	if page < pages {
		data.NextURL = shopURL(sq, page+1)
	}
	for n := 1; n <= pages; n++ {
		data.PageLinks = append(data.PageLinks, pageLink{N: n, URL: shopURL(sq, n), Current: n == page})
	}

	h.render(w, h.views.shop, http.StatusOK, data)
}

// shopURL rebuilds a shop link for another page keeping the active filters.
func shopURL(sq shopQuery, page int) string {
	q := url.Values{}
	if sq.Search != "" {
		q.Set("search", sq.Search)
	}
	if sq.Category != "" {
		q.Set("category", sq.Category)
	}
	if sq.MinPrice != "" {
		q.Set("minPrice", sq.MinPrice)
	}
	if sq.MaxPrice != "" {
		q.Set("maxPrice", sq.MaxPrice)
	}
	if sq.Sort != "" {
		q.Set("sort", sq.Sort)
		q.Set("order", sq.Order)
	}
	if page > 1 {
		q.Set("page", strconv.Itoa(page))
	}
	if len(q) == 0 {
		return "/shop"
	}
	return "/shop?" + q.Encode()
}

type productData struct {
	pageData
	Product catalog.Product
}

func (h *Handlers) ProductDetail(w http.ResponseWriter, r *http.Request) {
	id, ok := h.productIDParam(w, r)
	if !ok {
		return
	}

	p, err := h.catalog.GetProduct(r.Context(), id)
	if errors.Is(err, catalog.ErrNotFound) {
		h.renderError(w, r, http.StatusNotFound, "Product not found")
		return
	}
	if err != nil {
		h.log.Error("get product", zap.Int64("product_id", id), zap.Error(err))
		h.renderError(w, r, http.StatusBadGateway, "Failed to load product")
		return
	}

	h.render(w, h.views.product, http.StatusOK, productData{pageData: h.page(r), Product: p})
}

// ProductAction handles the add-to-cart form on the detail page.
func (h *Handlers) ProductAction(w http.ResponseWriter, r *http.Request) {
	id, ok := h.productIDParam(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		h.renderError(w, r, http.StatusBadRequest, "Invalid form submission")
		return
	}
	if r.PostFormValue("intent") != "add-to-cart" {
		h.renderError(w, r, http.StatusBadRequest, "Unknown intent")
		return
	}

	quantity := 1
	if raw := r.PostFormValue("quantity"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			h.renderError(w, r, http.StatusBadRequest, "Quantity must be a positive integer")
			return
		}
		quantity = n
	}

	_, cookie, err := h.cart.Add(r, id, quantity)
	if err != nil {
		h.log.Error("add to cart", zap.Int64("product_id", id), zap.Error(err))
		h.renderError(w, r, http.StatusInternalServerError, "Failed to update cart")
		return
	}

	setSessionCookie(w, cookie)
	http.Redirect(w, r, r.URL.Path, http.StatusSeeOther)
}

type cartData struct {
	pageData
	Lines   []cart.Line
	Summary cart.Summary
}

func (h *Handlers) CartPage(w http.ResponseWriter, r *http.Request) {
	lines, summary := h.cart.Enriched(r.Context(), r)
	h.render(w, h.views.cart, http.StatusOK, cartData{
		pageData: h.page(r),
		Lines:    lines,
		Summary:  summary,
	})
}

// CartAction dispatches the cart page form intents.
func (h *Handlers) CartAction(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderError(w, r, http.StatusBadRequest, "Invalid form submission")
		return
	}

	productID, err := strconv.ParseInt(r.PostFormValue("productId"), 10, 64)
	if err != nil || productID <= 0 {
		h.renderError(w, r, http.StatusBadRequest, "productId must be a positive integer")
		return
	}

	var cookie string
	switch intent := r.PostFormValue("intent"); intent {
	case "update-quantity":
		quantity, err := strconv.Atoi(r.PostFormValue("quantity"))
		if err != nil {
			h.renderError(w, r, http.StatusBadRequest, "quantity must be an integer")
			return
		}
		_, cookie, err = h.cart.SetQuantity(r, productID, quantity)
		if err != nil {
			h.log.Error("update quantity", zap.Int64("product_id", productID), zap.Error(err))
			h.renderError(w, r, http.StatusInternalServerError, "Failed to update cart")
			return
		}
	case "remove-item":
		_, cookie, err = h.cart.Remove(r, productID)
		if err != nil {
			h.log.Error("remove item", zap.Int64("product_id", productID), zap.Error(err))
			h.renderError(w, r, http.StatusInternalServerError, "Failed to update cart")
			return
		}
	default:
		h.renderError(w, r, http.StatusBadRequest, "Unknown intent")
		return
	}

	setSessionCookie(w, cookie)
	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}

func (h *Handlers) productIDParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "productID"), 10, 64)
	if err != nil || id <= 0 {
		h.renderError(w, r, http.StatusBadRequest, "Product ID must be a positive integer")
		return 0, false
	}
	return id, true
}

// page builds the fields every view needs.
func (h *Handlers) page(r *http.Request) pageData {
	return pageData{CartCount: domain.TotalQuantity(h.cart.Items(r))}
}

func setSessionCookie(w http.ResponseWriter, cookie string) {
	if cookie != "" {
		w.Header().Set("Set-Cookie", cookie)
	}
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
