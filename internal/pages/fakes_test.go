package pages

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/Skotchmaster/order_admin/internal/apiclient"
	"github.com/Skotchmaster/order_admin/internal/models"
)

var errUnavailable = &apiclient.StatusError{Op: "test", StatusCode: 503, Status: "503 Service Unavailable"}

type fakeCustomers struct {
	items   []models.Customer
	listErr error
	saveErr error
	calls   atomic.Int32
	patched models.CustomerPatch
}

func (f *fakeCustomers) List(context.Context) ([]models.Customer, error) {
	f.calls.Add(1)
	return f.items, f.listErr
}

func (f *fakeCustomers) Get(_ context.Context, id models.ID) (models.Customer, error) {
	f.calls.Add(1)
	for _, c := range f.items {
		if c.ID == id {
			return c, nil
		}
	}
	return models.Customer{}, &apiclient.StatusError{Op: "get customer", StatusCode: 404, Status: "404 Not Found"}
}

func (f *fakeCustomers) Create(_ context.Context, cmd models.CustomerCommand) (models.Customer, error) {
	f.calls.Add(1)
	if f.saveErr != nil {
		return models.Customer{}, f.saveErr
	}
	return models.Customer{ID: models.ID(fmt.Sprintf("c%d", len(f.items)+1)), Name: cmd.Name, Email: cmd.Email, Phone: cmd.Phone}, nil
}

func (f *fakeCustomers) Update(_ context.Context, id models.ID, patch models.CustomerPatch) (models.Customer, error) {
	f.calls.Add(1)
	f.patched = patch
	if f.saveErr != nil {
		return models.Customer{}, f.saveErr
	}
	return models.Customer{ID: id, Name: *patch.Name, Email: *patch.Email, Phone: *patch.Phone}, nil
}

func (f *fakeCustomers) Delete(context.Context, models.ID) error {
	f.calls.Add(1)
	return f.saveErr
}

type fakeProducts struct {
	items     []models.Product
	listErr   error
	createErr error
	calls     atomic.Int32
	created   models.ProductCommand
}

func (f *fakeProducts) List(context.Context) ([]models.Product, error) {
	f.calls.Add(1)
	return f.items, f.listErr
}

func (f *fakeProducts) Create(_ context.Context, cmd models.ProductCommand) (models.Product, error) {
	f.calls.Add(1)
	f.created = cmd
	if f.createErr != nil {
		return models.Product{}, f.createErr
	}
	return models.Product{ID: "p-new", Name: cmd.Name, Description: cmd.Description, Price: cmd.Price, Stock: cmd.Stock}, nil
}

func (f *fakeProducts) Delete(context.Context, models.ID) error {
	f.calls.Add(1)
	return f.createErr
}

type fakeOrders struct {
	items   []models.Order
	listErr error
	err     error
	calls   atomic.Int32
	created []models.CreateOrderCommand
}

func (f *fakeOrders) List(context.Context) ([]models.Order, error) {
	f.calls.Add(1)
	return f.items, f.listErr
}

func (f *fakeOrders) Create(_ context.Context, cmd models.CreateOrderCommand) (models.Order, error) {
	f.calls.Add(1)
	if f.err != nil {
		return models.Order{}, f.err
	}
	f.created = append(f.created, cmd)
	return models.Order{
		ID: models.ID(fmt.Sprintf("o%d", len(f.created))), CustomerID: cmd.CustomerID, CustomerName: cmd.CustomerName,
		Items: cmd.Items, TotalAmount: cmd.TotalAmount, Status: cmd.Status,
	}, nil
}

func (f *fakeOrders) UpdateStatus(_ context.Context, id models.ID, status models.OrderStatus) (models.Order, error) {
	f.calls.Add(1)
	if f.err != nil {
		return models.Order{}, f.err
	}
	for _, o := range f.items {
		if o.ID == id {
			o.Status = status
			return o, nil
		}
	}
	return models.Order{}, &apiclient.StatusError{Op: "update order status", StatusCode: 404, Status: "404 Not Found"}
}

func (f *fakeOrders) Delete(context.Context, models.ID) error {
	f.calls.Add(1)
	return f.err
}
