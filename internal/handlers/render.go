package handlers

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/Skotchmaster/order_admin/internal/middleware/csrf"
	"github.com/Skotchmaster/order_admin/internal/models"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageNames = []string{"home", "customers", "customer_form", "products", "orders"}

// Page is what every template receives.
type Page struct {
	Title string
	CSRF  string
	View  any
}

// Renderer executes a page template inside the shared layout.
type Renderer struct {
	pages map[string]*template.Template
}

func NewRenderer() (*Renderer, error) {
	funcs := template.FuncMap{
		"amount": func(d decimal.Decimal) string { return models.FormatAmount(d) },
		"inc":    func(i int) int { return i + 1 },
	}

	r := &Renderer{pages: make(map[string]*template.Template, len(pageNames))}
	for _, name := range pageNames {
		t, err := template.New(name).Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		r.pages[name] = t
	}
	return r, nil
}

func (r *Renderer) Render(w io.Writer, name string, data any, c echo.Context) error {
	t, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("template %s not found", name)
	}
	return t.ExecuteTemplate(w, "layout", data)
}

func page(c echo.Context, title string, view any) Page {
	return Page{Title: title, CSRF: csrf.Token(c), View: view}
}
