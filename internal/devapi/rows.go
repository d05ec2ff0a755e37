package devapi

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Skotchmaster/order_admin/internal/models"
)

type CustomerRow struct {
	ID        string `gorm:"primaryKey"`
	Name      string `gorm:"not null"`
	Email     string `gorm:"not null"`
	Phone     string `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (CustomerRow) TableName() string { return "customers" }

func (r CustomerRow) model() models.Customer {
	return models.Customer{ID: models.ID(r.ID), Name: r.Name, Email: r.Email, Phone: r.Phone}
}

type ProductRow struct {
	ID          string          `gorm:"primaryKey"`
	Name        string          `gorm:"not null"`
	Description string          `gorm:"not null"`
	Price       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Stock       int             `gorm:"not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (ProductRow) TableName() string { return "products" }

func (r ProductRow) model() models.Product {
	return models.Product{ID: models.ID(r.ID), Name: r.Name, Description: r.Description, Price: r.Price, Stock: r.Stock}
}

type OrderRow struct {
	ID           string          `gorm:"primaryKey"`
	CustomerID   string          `gorm:"not null;index"`
	CustomerName string          `gorm:"not null"`
	TotalAmount  decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Status       string          `gorm:"not null"`
	Items        []OrderItemRow  `gorm:"foreignKey:OrderID"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (OrderRow) TableName() string { return "orders" }

type OrderItemRow struct {
	ID          string          `gorm:"primaryKey"`
	OrderID     string          `gorm:"not null;index"`
	Position    int             `gorm:"not null"`
	ProductID   string          `gorm:"not null"`
	ProductName string          `gorm:"not null"`
	Quantity    int             `gorm:"not null"`
	Price       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Subtotal    decimal.Decimal `gorm:"type:decimal(12,2);not null"`
}

func (OrderItemRow) TableName() string { return "order_items" }

func (r OrderRow) model() models.Order {
	items := make([]models.OrderItem, 0, len(r.Items))
	for _, it := range r.Items {
		items = append(items, models.OrderItem{
			ID:          models.ID(it.ID),
			ProductID:   models.ID(it.ProductID),
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			Price:       it.Price,
			Subtotal:    it.Subtotal,
		})
	}
	return models.Order{
		ID:           models.ID(r.ID),
		CustomerID:   models.ID(r.CustomerID),
		CustomerName: r.CustomerName,
		Items:        items,
		TotalAmount:  r.TotalAmount,
		Status:       models.OrderStatus(r.Status),
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

// Tables lists every row type for AutoMigrate.
var Tables = []any{&CustomerRow{}, &ProductRow{}, &OrderRow{}, &OrderItemRow{}}
