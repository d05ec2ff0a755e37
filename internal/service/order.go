package service

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Skotchmaster/order_admin/internal/logging"
	"github.com/Skotchmaster/order_admin/internal/models"
)

var (
	ErrValidation = errors.New("validation")
	ErrReference  = errors.New("reference")
)

var newItemID = func() models.ID { return models.ID(uuid.NewString()) }

type LineDraft struct {
	ProductID models.ID
	Quantity  int
}

// Draft is an unsaved order. All edits return a new Draft.
type Draft struct {
	CustomerID models.ID
	Lines      []LineDraft
}

func NewDraft() Draft {
	return Draft{Lines: []LineDraft{{Quantity: 1}}}
}

func (d Draft) Clone() Draft {
	d.Lines = slices.Clone(d.Lines)
	return d
}

func (d Draft) SelectCustomer(id models.ID) Draft {
	d = d.Clone()
	d.CustomerID = id
	return d
}

func (d Draft) AddLine() Draft {
	d = d.Clone()
	d.Lines = append(d.Lines, LineDraft{Quantity: 1})
	return d
}

// RemoveLine may leave the draft with no lines; Compose rejects that.
func (d Draft) RemoveLine(i int) Draft {
	if i < 0 || i >= len(d.Lines) {
		return d
	}
	d = d.Clone()
	d.Lines = slices.Delete(d.Lines, i, i+1)
	return d
}

func (d Draft) SetLineProduct(i int, id models.ID) Draft {
	if i < 0 || i >= len(d.Lines) {
		return d
	}
	d = d.Clone()
	d.Lines[i].ProductID = id
	return d
}

func (d Draft) SetLineQuantity(i, q int) Draft {
	if i < 0 || i >= len(d.Lines) {
		return d
	}
	if q < 1 {
		q = 1
	}
	d = d.Clone()
	d.Lines[i].Quantity = q
	return d
}

func findByID[T models.Identified](items []T, id models.ID) (T, bool) {
	for _, it := range items {
		if it.Key() == id {
			return it, true
		}
	}
	var zero T
	return zero, false
}

// Compose builds the creation command for d from the locally loaded
// customers and products. It never touches the network.
func Compose(d Draft, customers []models.Customer, products []models.Product) (models.CreateOrderCommand, error) {
	if d.CustomerID == "" {
		return models.CreateOrderCommand{}, fmt.Errorf("%w: customer required", ErrValidation)
	}
	if len(d.Lines) == 0 {
		return models.CreateOrderCommand{}, fmt.Errorf("%w: items required", ErrValidation)
	}
	for i := range d.Lines {
		if d.Lines[i].ProductID == "" {
			return models.CreateOrderCommand{}, fmt.Errorf("%w: product required on line %d", ErrValidation, i+1)
		}
		if d.Lines[i].Quantity < 1 {
			return models.CreateOrderCommand{}, fmt.Errorf("%w: quantity must be > 0 on line %d", ErrValidation, i+1)
		}
	}

	customer, ok := findByID(customers, d.CustomerID)
	if !ok {
		return models.CreateOrderCommand{}, fmt.Errorf("%w: customer %s not found", ErrReference, d.CustomerID)
	}

	items := make([]models.OrderItem, 0, len(d.Lines))
	total := decimal.Zero
	for _, line := range d.Lines {
		product, ok := findByID(products, line.ProductID)
		if !ok {
			return models.CreateOrderCommand{}, fmt.Errorf("%w: product %s not found", ErrReference, line.ProductID)
		}

		subtotal := product.Price.Mul(decimal.NewFromInt(int64(line.Quantity)))
		items = append(items, models.OrderItem{
			ID:          newItemID(),
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    line.Quantity,
			Price:       product.Price,
			Subtotal:    subtotal,
		})
		total = total.Add(subtotal)
	}

	return models.CreateOrderCommand{
		CustomerID:   customer.ID,
		CustomerName: customer.Name,
		Items:        items,
		TotalAmount:  total,
		Status:       models.StatusPending,
	}, nil
}

// PreviewTotal is the running total shown while editing. Lines whose
// product is unset or unknown count as zero.
func PreviewTotal(d Draft, products []models.Product) decimal.Decimal {
	total := decimal.Zero
	for _, line := range d.Lines {
		product, ok := findByID(products, line.ProductID)
		if !ok {
			continue
		}
		total = total.Add(product.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	return total
}

type OrderCreator interface {
	Create(ctx context.Context, cmd models.CreateOrderCommand) (models.Order, error)
}

type OrderService struct {
	Orders OrderCreator
}

func (s *OrderService) Submit(ctx context.Context, d Draft, customers []models.Customer, products []models.Product) (models.Order, error) {
	l := logging.FromContext(ctx).With("service", "order.submit")

	cmd, err := Compose(d, customers, products)
	if err != nil {
		l.Warn("compose_order_failed", "error", err)
		return models.Order{}, err
	}

	order, err := s.Orders.Create(ctx, cmd)
	if err != nil {
		l.Error("create_order_failed", "customer_id", cmd.CustomerID, "error", err)
		return models.Order{}, fmt.Errorf("create order: %w", err)
	}

	l.Info("create_order_success", "order_id", order.ID, "items", len(cmd.Items), "total", cmd.TotalAmount.StringFixed(2))
	return order, nil
}
