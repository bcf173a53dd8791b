package server

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

//go:embed templates/*.gohtml
var templateFS embed.FS

// pageData is embedded by every view's data struct; the layout needs it for
// the header cart badge.
type pageData struct {
	CartCount int
}

type views struct {
	home    *template.Template
	shop    *template.Template
	product *template.Template
	cart    *template.Template
	failure *template.Template
}

var templateFuncs = template.FuncMap{
	"money": func(v float64) string {
		return fmt.Sprintf("%.2f", v)
	},
	// categoryName turns "mens-watches" into "Mens Watches".
	"categoryName": func(category string) string {
		words := strings.Split(category, "-")
		for i, w := range words {
			if w == "" {
				continue
			}
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
		return strings.Join(words, " ")
	},
	"add": func(a, b int) int { return a + b },
	"sub": func(a, b int) int { return a - b },
}

func parseViews() (*views, error) {
	parse := func(page string) (*template.Template, error) {
		return template.New(page).Funcs(templateFuncs).
			ParseFS(templateFS, "templates/layout.gohtml", "templates/"+page)
	}

	var v views
	var err error
	if v.home, err = parse("home.gohtml"); err != nil {
		return nil, err
	}
	if v.shop, err = parse("shop.gohtml"); err != nil {
		return nil, err
	}
	if v.product, err = parse("product.gohtml"); err != nil {
		return nil, err
	}
	if v.cart, err = parse("cart.gohtml"); err != nil {
		return nil, err
	}
	if v.failure, err = parse("failure.gohtml"); err != nil {
		return nil, err
	}
	return &v, nil
}

func (h *Handlers) render(w http.ResponseWriter, t *template.Template, status int, data interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := t.ExecuteTemplate(w, "layout", data); err != nil {
		h.log.Error("render template", zap.String("template", t.Name()), zap.Error(err))
	}
}

type failureData struct {
	pageData
	Status  int
	Message string
}

func (h *Handlers) renderError(w http.ResponseWriter, r *http.Request, status int, message string) {
	h.render(w, h.views.failure, status, failureData{
		pageData: h.page(r),
		Status:   status,
		Message:  message,
	})
}
