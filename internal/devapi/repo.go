package devapi

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Skotchmaster/order_admin/internal/models"
)

var (
	ErrNotFound = errors.New("not found")
	ErrInvalid  = errors.New("invalid")
)

type GormRepo struct {
	DB *gorm.DB
}

func (r *GormRepo) Migrate(ctx context.Context) error {
	return r.DB.WithContext(ctx).AutoMigrate(Tables...)
}

func notFound(err error, what string, id models.ID) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %s %s", ErrNotFound, what, id)
	}
	return err
}

func (r *GormRepo) ListCustomers(ctx context.Context) ([]models.Customer, error) {
	var rows []CustomerRow
	if err := r.DB.WithContext(ctx).Order("created_at ASC, id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]models.Customer, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.model())
	}
	return out, nil
}

func (r *GormRepo) GetCustomer(ctx context.Context, id models.ID) (models.Customer, error) {
	var row CustomerRow
	if err := r.DB.WithContext(ctx).Where("id = ?", id.String()).First(&row).Error; err != nil {
		return models.Customer{}, notFound(err, "customer", id)
	}
	return row.model(), nil
}

func (r *GormRepo) CreateCustomer(ctx context.Context, cmd models.CustomerCommand) (models.Customer, error) {
	row := CustomerRow{ID: uuid.NewString(), Name: cmd.Name, Email: cmd.Email, Phone: cmd.Phone}
	if err := r.DB.WithContext(ctx).Create(&row).Error; err != nil {
		return models.Customer{}, err
	}
	return row.model(), nil
}

func (r *GormRepo) PatchCustomer(ctx context.Context, id models.ID, patch models.CustomerPatch) (models.Customer, error) {
	var row CustomerRow
	if err := r.DB.WithContext(ctx).Where("id = ?", id.String()).First(&row).Error; err != nil {
		return models.Customer{}, notFound(err, "customer", id)
	}

	if patch.Name != nil {
		row.Name = *patch.Name
	}
	if patch.Email != nil {
		row.Email = *patch.Email
	}
	if patch.Phone != nil {
		row.Phone = *patch.Phone
	}

	if err := r.DB.WithContext(ctx).Save(&row).Error; err != nil {
		return models.Customer{}, err
	}
	return row.model(), nil
}

func (r *GormRepo) DeleteCustomer(ctx context.Context, id models.ID) error {
	res := r.DB.WithContext(ctx).Where("id = ?", id.String()).Delete(&CustomerRow{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: customer %s", ErrNotFound, id)
	}
	return nil
}

func (r *GormRepo) ListProducts(ctx context.Context) ([]models.Product, error) {
	var rows []ProductRow
	if err := r.DB.WithContext(ctx).Order("created_at ASC, id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]models.Product, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.model())
	}
	return out, nil
}

func (r *GormRepo) GetProduct(ctx context.Context, id models.ID) (models.Product, error) {
	var row ProductRow
	if err := r.DB.WithContext(ctx).Where("id = ?", id.String()).First(&row).Error; err != nil {
		return models.Product{}, notFound(err, "product", id)
	}
	return row.model(), nil
}

func (r *GormRepo) CreateProduct(ctx context.Context, cmd models.ProductCommand) (models.Product, error) {
	row := ProductRow{
		ID:          uuid.NewString(),
		Name:        cmd.Name,
		Description: cmd.Description,
		Price:       cmd.Price,
		Stock:       cmd.Stock,
	}
	if err := r.DB.WithContext(ctx).Create(&row).Error; err != nil {
		return models.Product{}, err
	}
	return row.model(), nil
}

func (r *GormRepo) PatchProduct(ctx context.Context, id models.ID, patch models.ProductPatch) (models.Product, error) {
	var row ProductRow
	if err := r.DB.WithContext(ctx).Where("id = ?", id.String()).First(&row).Error; err != nil {
		return models.Product{}, notFound(err, "product", id)
	}

	if patch.Name != nil {
		row.Name = *patch.Name
	}
	if patch.Description != nil {
		row.Description = *patch.Description
	}
	if patch.Price != nil {
		row.Price = *patch.Price
	}
	if patch.Stock != nil {
		row.Stock = *patch.Stock
	}

	if err := r.DB.WithContext(ctx).Save(&row).Error; err != nil {
		return models.Product{}, err
	}
	return row.model(), nil
}

func (r *GormRepo) DeleteProduct(ctx context.Context, id models.ID) error {
	res := r.DB.WithContext(ctx).Where("id = ?", id.String()).Delete(&ProductRow{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: product %s", ErrNotFound, id)
	}
	return nil
}

func orderedItems(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}

func (r *GormRepo) ListOrders(ctx context.Context) ([]models.Order, error) {
	var rows []OrderRow
	if err := r.DB.WithContext(ctx).Preload("Items", orderedItems).Order("created_at ASC, id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]models.Order, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.model())
	}
	return out, nil
}

func (r *GormRepo) GetOrder(ctx context.Context, id models.ID) (models.Order, error) {
	var row OrderRow
	if err := r.DB.WithContext(ctx).Preload("Items", orderedItems).Where("id = ?", id.String()).First(&row).Error; err != nil {
		return models.Order{}, notFound(err, "order", id)
	}
	return row.model(), nil
}

// validateOrder checks the creation command the way a real backend would:
// each subtotal is price times quantity and the total is their sum.
func validateOrder(cmd models.CreateOrderCommand) error {
	if cmd.CustomerID == "" {
		return fmt.Errorf("%w: customerId required", ErrInvalid)
	}
	if len(cmd.Items) == 0 {
		return fmt.Errorf("%w: items required", ErrInvalid)
	}
	if !cmd.Status.Valid() {
		return fmt.Errorf("%w: unknown status %q", ErrInvalid, cmd.Status)
	}

	sum := decimal.Zero
	for i, it := range cmd.Items {
		if it.ProductID == "" || it.Quantity < 1 {
			return fmt.Errorf("%w: item %d needs a product and a positive quantity", ErrInvalid, i+1)
		}
		if !it.Price.Mul(decimal.NewFromInt(int64(it.Quantity))).Equal(it.Subtotal) {
			return fmt.Errorf("%w: item %d subtotal does not match price x quantity", ErrInvalid, i+1)
		}
		sum = sum.Add(it.Subtotal)
	}
	if !sum.Equal(cmd.TotalAmount) {
		return fmt.Errorf("%w: totalAmount does not match the sum of subtotals", ErrInvalid)
	}
	return nil
}

func (r *GormRepo) CreateOrder(ctx context.Context, cmd models.CreateOrderCommand) (models.Order, error) {
	if cmd.Status == "" {
		cmd.Status = models.StatusPending
	}
	if err := validateOrder(cmd); err != nil {
		return models.Order{}, err
	}

	row := OrderRow{
		ID:           uuid.NewString(),
		CustomerID:   cmd.CustomerID.String(),
		CustomerName: cmd.CustomerName,
		TotalAmount:  cmd.TotalAmount,
		Status:       string(cmd.Status),
		Items:        make([]OrderItemRow, 0, len(cmd.Items)),
	}
	for i, it := range cmd.Items {
		id := it.ID.String()
		if id == "" {
			id = uuid.NewString()
		}
		row.Items = append(row.Items, OrderItemRow{
			ID:          id,
			OrderID:     row.ID,
			Position:    i,
			ProductID:   it.ProductID.String(),
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			Price:       it.Price,
			Subtotal:    it.Subtotal,
		})
	}

	if err := r.DB.WithContext(ctx).Create(&row).Error; err != nil {
		return models.Order{}, err
	}
	return row.model(), nil
}

func (r *GormRepo) UpdateOrderStatus(ctx context.Context, id models.ID, status models.OrderStatus) (models.Order, error) {
	if !status.Valid() {
		return models.Order{}, fmt.Errorf("%w: unknown status %q", ErrInvalid, status)
	}

	res := r.DB.WithContext(ctx).Model(&OrderRow{}).Where("id = ?", id.String()).Update("status", string(status))
	if res.Error != nil {
		return models.Order{}, res.Error
	}
	if res.RowsAffected == 0 {
		return models.Order{}, fmt.Errorf("%w: order %s", ErrNotFound, id)
	}
	return r.GetOrder(ctx, id)
}

func (r *GormRepo) DeleteOrder(ctx context.Context, id models.ID) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id.String()).Delete(&OrderItemRow{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id.String()).Delete(&OrderRow{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: order %s", ErrNotFound, id)
		}
		return nil
	})
}
