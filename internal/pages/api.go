package pages

import (
	"context"

	"github.com/Skotchmaster/order_admin/internal/models"
)

type CustomerAPI interface {
	List(ctx context.Context) ([]models.Customer, error)
	Get(ctx context.Context, id models.ID) (models.Customer, error)
	Create(ctx context.Context, cmd models.CustomerCommand) (models.Customer, error)
	Update(ctx context.Context, id models.ID, patch models.CustomerPatch) (models.Customer, error)
	Delete(ctx context.Context, id models.ID) error
}

type ProductAPI interface {
	List(ctx context.Context) ([]models.Product, error)
	Create(ctx context.Context, cmd models.ProductCommand) (models.Product, error)
	Delete(ctx context.Context, id models.ID) error
}

type OrderAPI interface {
	List(ctx context.Context) ([]models.Order, error)
	Create(ctx context.Context, cmd models.CreateOrderCommand) (models.Order, error)
	UpdateStatus(ctx context.Context, id models.ID, status models.OrderStatus) (models.Order, error)
	Delete(ctx context.Context, id models.ID) error
}

type CustomerLister interface {
	List(ctx context.Context) ([]models.Customer, error)
}

type ProductLister interface {
	List(ctx context.Context) ([]models.Product, error)
}
