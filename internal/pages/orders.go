package pages

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/Skotchmaster/order_admin/internal/logging"
	"github.com/Skotchmaster/order_admin/internal/models"
	"github.com/Skotchmaster/order_admin/internal/service"
)

// OrdersState is everything the orders page shows, replaced wholesale on
// each successful load.
type OrdersState struct {
	Orders    Snapshot[models.Order]
	Products  Snapshot[models.Product]
	Customers Snapshot[models.Customer]
}

type OrdersView struct {
	Orders    []models.Order
	Products  []models.Product
	Customers []models.Customer
	Draft     service.Draft
	Total     string
	Statuses  []models.OrderStatus
	Loaded    bool
	Err       string
}

type OrdersPage struct {
	orders    OrderAPI
	products  ProductLister
	customers CustomerLister
	svc       *service.OrderService

	mu     sync.Mutex
	state  OrdersState
	draft  service.Draft
	loaded bool
	err    string
}

func NewOrdersPage(orders OrderAPI, products ProductLister, customers CustomerLister) *OrdersPage {
	return &OrdersPage{
		orders:    orders,
		products:  products,
		customers: customers,
		svc:       &service.OrderService{Orders: orders},
		draft:     service.NewDraft(),
	}
}

func (p *OrdersPage) Loaded() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.loaded
}

// Load fetches orders, products and customers concurrently and waits for
// all three. Any failure keeps the previous state.
func (p *OrdersPage) Load(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.err = ""

	var (
		g         errgroup.Group
		orders    []models.Order
		products  []models.Product
		customers []models.Customer
	)
	g.Go(func() (err error) {
		orders, err = p.orders.List(ctx)
		return err
	})
	g.Go(func() (err error) {
		products, err = p.products.List(ctx)
		return err
	})
	g.Go(func() (err error) {
		customers, err = p.customers.List(ctx)
		return err
	})

	err := g.Wait()
	p.loaded = true
	if err != nil {
		logging.FromContext(ctx).Warn("load_orders_page_failed", "error", err)
		p.err = Message("load data", err)
		return err
	}

	p.state = OrdersState{
		Orders:    NewSnapshot(orders),
		Products:  NewSnapshot(products),
		Customers: NewSnapshot(customers),
	}
	return nil
}

func (p *OrdersPage) edit(f func(service.Draft) service.Draft) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.draft = f(p.draft)
}

func (p *OrdersPage) SelectCustomer(id models.ID) {
	p.edit(func(d service.Draft) service.Draft { return d.SelectCustomer(id) })
}

func (p *OrdersPage) AddLine() {
	p.edit(service.Draft.AddLine)
}

func (p *OrdersPage) RemoveLine(i int) {
	p.edit(func(d service.Draft) service.Draft { return d.RemoveLine(i) })
}

func (p *OrdersPage) SetLine(i int, productID models.ID, quantity int) {
	p.edit(func(d service.Draft) service.Draft {
		return d.SetLineProduct(i, productID).SetLineQuantity(i, quantity)
	})
}

// Fill replaces the draft with the customer and lines posted from the
// orders form.
func (p *OrdersPage) Fill(customerID models.ID, lines []service.LineDraft) {
	p.edit(func(service.Draft) service.Draft {
		d := service.Draft{Lines: []service.LineDraft{}}.SelectCustomer(customerID)
		for i, line := range lines {
			d = d.AddLine().SetLineProduct(i, line.ProductID).SetLineQuantity(i, line.Quantity)
		}
		return d
	})
}

// Submit composes the draft against the loaded lists and creates the order.
// The order list is only touched when the API accepted the order.
func (p *OrdersPage) Submit(ctx context.Context) (models.Order, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.err = ""
	order, err := p.svc.Submit(ctx, p.draft, p.state.Customers.Items(), p.state.Products.Items())
	if err != nil {
		p.err = Message("create order", err)
		return models.Order{}, err
	}

	p.state.Orders = p.state.Orders.Append(order)
	p.draft = service.NewDraft()
	return order, nil
}

func (p *OrdersPage) UpdateStatus(ctx context.Context, id models.ID, status models.OrderStatus) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.err = ""
	order, err := p.orders.UpdateStatus(ctx, id, status)
	if err != nil {
		logging.FromContext(ctx).Warn("update_order_status_failed", "order_id", id, "error", err)
		p.err = Message("update order status", err)
		return err
	}
	p.state.Orders = p.state.Orders.Replace(order)
	return nil
}

func (p *OrdersPage) Delete(ctx context.Context, id models.ID) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.err = ""
	if err := p.orders.Delete(ctx, id); err != nil {
		logging.FromContext(ctx).Warn("delete_order_failed", "order_id", id, "error", err)
		p.err = Message("delete order", err)
		return err
	}
	p.state.Orders = p.state.Orders.RemoveByID(id)
	return nil
}

func (p *OrdersPage) View() OrdersView {
	p.mu.Lock()
	defer p.mu.Unlock()

	products := p.state.Products.Items()
	return OrdersView{
		Orders:    p.state.Orders.Items(),
		Products:  products,
		Customers: p.state.Customers.Items(),
		Draft:     p.draft.Clone(),
		Total:     models.FormatAmount(service.PreviewTotal(p.draft, products)),
		Statuses:  models.OrderStatuses,
		Loaded:    p.loaded,
		Err:       p.err,
	}
}
