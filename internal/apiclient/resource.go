package apiclient

import (
	"context"
	"net/http"

	"github.com/Skotchmaster/order_admin/internal/models"
)

// resource maps one REST collection onto typed calls.
type resource[T any] struct {
	c    *Client
	name string
	noun string
}

func (r resource[T]) List(ctx context.Context) ([]T, error) {
	op := "list " + r.noun + "s"
	data, err := r.c.roundTrip(ctx, op, http.MethodGet, r.c.endpoint(r.name), nil)
	if err != nil {
		return nil, err
	}
	return decodeList[T](op, data)
}

func (r resource[T]) Get(ctx context.Context, id models.ID) (T, error) {
	op := "get " + r.noun
	data, err := r.c.roundTrip(ctx, op, http.MethodGet, r.c.endpoint(r.name, id.String()), nil)
	if err != nil {
		var zero T
		return zero, err
	}
	return decodeOne[T](op, data)
}

func (r resource[T]) create(ctx context.Context, cmd any) (T, error) {
	op := "create " + r.noun
	data, err := r.c.roundTrip(ctx, op, http.MethodPost, r.c.endpoint(r.name), cmd)
	if err != nil {
		var zero T
		return zero, err
	}
	return decodeOne[T](op, data)
}

func (r resource[T]) put(ctx context.Context, op string, cmd any, path ...string) (T, error) {
	data, err := r.c.roundTrip(ctx, op, http.MethodPut, r.c.endpoint(append([]string{r.name}, path...)...), cmd)
	if err != nil {
		var zero T
		return zero, err
	}
	return decodeOne[T](op, data)
}

func (r resource[T]) Delete(ctx context.Context, id models.ID) error {
	_, err := r.c.roundTrip(ctx, "delete "+r.noun, http.MethodDelete, r.c.endpoint(r.name, id.String()), nil)
	return err
}

type CustomerClient struct {
	resource[models.Customer]
}

func (c *CustomerClient) Create(ctx context.Context, cmd models.CustomerCommand) (models.Customer, error) {
	return c.create(ctx, cmd)
}

// Update sends only the fields present in patch; merging is up to the server.
func (c *CustomerClient) Update(ctx context.Context, id models.ID, patch models.CustomerPatch) (models.Customer, error) {
	return c.put(ctx, "update customer", patch, id.String())
}

type ProductClient struct {
	resource[models.Product]
}

func (c *ProductClient) Create(ctx context.Context, cmd models.ProductCommand) (models.Product, error) {
	return c.create(ctx, cmd)
}

func (c *ProductClient) Update(ctx context.Context, id models.ID, patch models.ProductPatch) (models.Product, error) {
	return c.put(ctx, "update product", patch, id.String())
}

type OrderClient struct {
	resource[models.Order]
}

func (c *OrderClient) Create(ctx context.Context, cmd models.CreateOrderCommand) (models.Order, error) {
	return c.create(ctx, cmd)
}

func (c *OrderClient) UpdateStatus(ctx context.Context, id models.ID, status models.OrderStatus) (models.Order, error) {
	return c.put(ctx, "update order status", models.StatusCommand{Status: status}, id.String(), "status")
}
