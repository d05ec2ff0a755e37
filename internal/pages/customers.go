package pages

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/Skotchmaster/order_admin/internal/logging"
	"github.com/Skotchmaster/order_admin/internal/models"
	"github.com/Skotchmaster/order_admin/internal/service"
)

type CustomersView struct {
	Customers []models.Customer
	Loaded    bool
	Err       string
}

type CustomersPage struct {
	api CustomerAPI

	mu        sync.Mutex
	customers Snapshot[models.Customer]
	loaded    bool
	err       string
}

func NewCustomersPage(api CustomerAPI) *CustomersPage {
	return &CustomersPage{api: api}
}

func (p *CustomersPage) Loaded() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.loaded
}

func (p *CustomersPage) Load(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.err = ""
	customers, err := p.api.List(ctx)
	p.loaded = true
	if err != nil {
		logging.FromContext(ctx).Warn("load_customers_failed", "error", err)
		p.err = Message("load customers", err)
		return err
	}
	p.customers = NewSnapshot(customers)
	return nil
}

func (p *CustomersPage) Delete(ctx context.Context, id models.ID) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.err = ""
	if err := p.api.Delete(ctx, id); err != nil {
		logging.FromContext(ctx).Warn("delete_customer_failed", "customer_id", id, "error", err)
		p.err = Message("delete customer", err)
		return err
	}
	p.customers = p.customers.RemoveByID(id)
	return nil
}

// Upsert folds a record saved elsewhere (the edit form) into the list.
func (p *CustomersPage) Upsert(c models.Customer) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, ok := p.customers.Find(c.ID); ok {
		p.customers = p.customers.Replace(c)
		return
	}
	p.customers = p.customers.Append(c)
}

func (p *CustomersPage) View() CustomersView {
	p.mu.Lock()
	defer p.mu.Unlock()
	return CustomersView{Customers: p.customers.Items(), Loaded: p.loaded, Err: p.err}
}

type CustomerFormView struct {
	ID      models.ID
	Editing bool
	Values  models.CustomerCommand
	Err     string
}

// CustomerForm edits one customer, or creates one when opened with "new".
type CustomerForm struct {
	api CustomerAPI

	mu      sync.Mutex
	id      models.ID
	editing bool
	values  models.CustomerCommand
	err     string
	pending bool
}

const NewCustomerID = "new"

func NewCustomerForm(api CustomerAPI) *CustomerForm {
	return &CustomerForm{api: api}
}

func (f *CustomerForm) Open(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.err = ""
	f.pending = false
	f.values = models.CustomerCommand{}
	f.editing = id != NewCustomerID
	f.id = ""
	if !f.editing {
		return nil
	}

	f.id = models.ID(id)
	c, err := f.api.Get(ctx, f.id)
	if err != nil {
		logging.FromContext(ctx).Warn("load_customer_failed", "customer_id", id, "error", err)
		f.err = Message("load customer", err)
		return err
	}
	f.values = models.CustomerCommand{Name: c.Name, Email: c.Email, Phone: c.Phone}
	return nil
}

// Submit saves the form. On success the saved record is returned; on
// failure the typed values stay in the form.
func (f *CustomerForm) Submit(ctx context.Context, values models.CustomerCommand) (models.Customer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.err = ""
	f.values = values
	f.pending = true

	var missing []string
	if strings.TrimSpace(values.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(values.Email) == "" {
		missing = append(missing, "email")
	}
	if strings.TrimSpace(values.Phone) == "" {
		missing = append(missing, "phone")
	}
	if len(missing) > 0 {
		err := fmt.Errorf("%w: %s required", service.ErrValidation, strings.Join(missing, ", "))
		f.err = Message("save customer", err)
		return models.Customer{}, err
	}

	var (
		saved models.Customer
		err   error
	)
	if f.editing {
		saved, err = f.api.Update(ctx, f.id, values.Patch())
	} else {
		saved, err = f.api.Create(ctx, values)
	}
	if err != nil {
		logging.FromContext(ctx).Warn("save_customer_failed", "customer_id", f.id, "error", err)
		f.err = Message("save customer", err)
		return models.Customer{}, err
	}
	f.pending = false
	return saved, nil
}

// Pending reports whether the form for id holds a submission that failed
// and should be shown again instead of reopened.
func (f *CustomerForm) Pending(id string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.pending {
		return false
	}
	if id == NewCustomerID {
		return !f.editing
	}
	return f.editing && f.id == models.ID(id)
}

func (f *CustomerForm) View() CustomerFormView {
	f.mu.Lock()
	defer f.mu.Unlock()
	return CustomerFormView{ID: f.id, Editing: f.editing, Values: f.values, Err: f.err}
}
