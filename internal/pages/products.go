package pages

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/Skotchmaster/order_admin/internal/logging"
	"github.com/Skotchmaster/order_admin/internal/models"
	"github.com/Skotchmaster/order_admin/internal/service"
)

// ProductForm holds the raw text of the create form.
type ProductForm struct {
	Name        string
	Description string
	Price       string
	Stock       string
}

// Command parses price and stock and checks that every field is present.
func (f ProductForm) Command() (models.ProductCommand, error) {
	var missing []string
	for _, fld := range []struct{ name, v string }{
		{"name", f.Name}, {"description", f.Description}, {"price", f.Price}, {"stock", f.Stock},
	} {
		if strings.TrimSpace(fld.v) == "" {
			missing = append(missing, fld.name)
		}
	}
	if len(missing) > 0 {
		return models.ProductCommand{}, fmt.Errorf("%w: %s required", service.ErrValidation, strings.Join(missing, ", "))
	}

	price, err := decimal.NewFromString(strings.TrimSpace(f.Price))
	if err != nil {
		return models.ProductCommand{}, fmt.Errorf("%w: price must be a number", service.ErrValidation)
	}
	if price.IsNegative() {
		return models.ProductCommand{}, fmt.Errorf("%w: price must be >= 0", service.ErrValidation)
	}
	if !models.WholeCents(price) {
		return models.ProductCommand{}, fmt.Errorf("%w: price allows at most 2 decimals", service.ErrValidation)
	}
	stock, err := strconv.Atoi(strings.TrimSpace(f.Stock))
	if err != nil {
		return models.ProductCommand{}, fmt.Errorf("%w: stock must be a whole number", service.ErrValidation)
	}
	if stock < 0 {
		return models.ProductCommand{}, fmt.Errorf("%w: stock must be >= 0", service.ErrValidation)
	}

	return models.ProductCommand{
		Name:        f.Name,
		Description: f.Description,
		Price:       price,
		Stock:       stock,
	}, nil
}

type ProductsView struct {
	Products []models.Product
	Form     ProductForm
	Loaded   bool
	Err      string
}

type ProductsPage struct {
	api ProductAPI

	mu       sync.Mutex
	products Snapshot[models.Product]
	form     ProductForm
	loaded   bool
	err      string
}

func NewProductsPage(api ProductAPI) *ProductsPage {
	return &ProductsPage{api: api}
}

func (p *ProductsPage) Loaded() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.loaded
}

func (p *ProductsPage) Load(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.err = ""
	products, err := p.api.List(ctx)
	p.loaded = true
	if err != nil {
		logging.FromContext(ctx).Warn("load_products_failed", "error", err)
		p.err = Message("load products", err)
		return err
	}
	p.products = NewSnapshot(products)
	return nil
}

func (p *ProductsPage) Create(ctx context.Context, form ProductForm) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.err = ""
	p.form = form

	cmd, err := form.Command()
	if err != nil {
		p.err = Message("create product", err)
		return err
	}

	created, err := p.api.Create(ctx, cmd)
	if err != nil {
		logging.FromContext(ctx).Warn("create_product_failed", "error", err)
		p.err = Message("create product", err)
		return err
	}

	p.products = p.products.Append(created)
	p.form = ProductForm{}
	return nil
}

func (p *ProductsPage) Delete(ctx context.Context, id models.ID) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.err = ""
	if err := p.api.Delete(ctx, id); err != nil {
		logging.FromContext(ctx).Warn("delete_product_failed", "product_id", id, "error", err)
		p.err = Message("delete product", err)
		return err
	}
	p.products = p.products.RemoveByID(id)
	return nil
}

func (p *ProductsPage) View() ProductsView {
	p.mu.Lock()
	defer p.mu.Unlock()
	return ProductsView{Products: p.products.Items(), Form: p.form, Loaded: p.loaded, Err: p.err}
}
