package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// The remote API speaks plain JSON numbers for money.
	decimal.MarshalJSONWithoutQuotes = true
}

// ID is an opaque record identity. Some API deployments emit numeric ids,
// so both JSON strings and JSON numbers are accepted.
type ID string

func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("id: expected string or number, got %s", b)
	}
	*id = ID(n.String())
	return nil
}

func (id ID) String() string { return string(id) }

type Customer struct {
	ID    ID     `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type CustomerCommand struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// CustomerPatch carries only the fields to change; nil fields are not sent.
type CustomerPatch struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty"`
	Phone *string `json:"phone,omitempty"`
}

func (c CustomerCommand) Patch() CustomerPatch {
	return CustomerPatch{Name: &c.Name, Email: &c.Email, Phone: &c.Phone}
}

type Product struct {
	ID          ID              `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
}

type ProductCommand struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
}

type ProductPatch struct {
	Name        *string          `json:"name,omitempty"`
	Description *string          `json:"description,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	Stock       *int             `json:"stock,omitempty"`
}

type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusCompleted OrderStatus = "completed"
	StatusCancelled OrderStatus = "cancelled"
)

var OrderStatuses = []OrderStatus{StatusPending, StatusCompleted, StatusCancelled}

func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

func ParseOrderStatus(s string) (OrderStatus, error) {
	st := OrderStatus(s)
	if !st.Valid() {
		return "", fmt.Errorf("unknown order status %q", s)
	}
	return st, nil
}

// OrderItem fields ProductName and Price are snapshots taken when the order
// was placed and do not follow later product edits.
type OrderItem struct {
	ID          ID              `json:"id"`
	ProductID   ID              `json:"productId"`
	ProductName string          `json:"productName"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

type Order struct {
	ID           ID              `json:"id"`
	CustomerID   ID              `json:"customerId"`
	CustomerName string          `json:"customerName"`
	Items        []OrderItem     `json:"items"`
	TotalAmount  decimal.Decimal `json:"totalAmount"`
	Status       OrderStatus     `json:"status"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

type CreateOrderCommand struct {
	CustomerID   ID              `json:"customerId"`
	CustomerName string          `json:"customerName"`
	Items        []OrderItem     `json:"items"`
	TotalAmount  decimal.Decimal `json:"totalAmount"`
	Status       OrderStatus     `json:"status"`
}

type StatusCommand struct {
	Status OrderStatus `json:"status"`
}

// FormatAmount renders money with two decimals; a missing amount is zero.
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// WholeCents reports whether d has no more than two significant decimals.
func WholeCents(d decimal.Decimal) bool {
	return d.Equal(d.Round(2))
}

// Identified is implemented by every record the console lists.
type Identified interface {
	Key() ID
}

func (c Customer) Key() ID { return c.ID }
func (p Product) Key() ID  { return p.ID }
func (o Order) Key() ID    { return o.ID }
