package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/order_admin/internal/logging"
	"github.com/Skotchmaster/order_admin/internal/models"
	"github.com/Skotchmaster/order_admin/internal/pages"
	"github.com/Skotchmaster/order_admin/internal/service"
	"github.com/Skotchmaster/order_admin/internal/session"
)

// Workspaces resolves the page controllers owned by the caller's session.
type Workspaces interface {
	Workspace(c echo.Context) *session.Workspace
}

type ConsoleHandler struct {
	Sessions Workspaces
}

func wantsReload(c echo.Context) bool {
	return c.QueryParam("reload") == "1"
}

func seeOther(c echo.Context, path string) error {
	return c.Redirect(http.StatusSeeOther, path)
}

func (h *ConsoleHandler) Home(c echo.Context) error {
	return c.Render(http.StatusOK, "home", page(c, "Order Admin", nil))
}

func (h *ConsoleHandler) Customers(c echo.Context) error {
	ctx := c.Request().Context()
	p := h.Sessions.Workspace(c).Customers
	if !p.Loaded() || wantsReload(c) {
		_ = p.Load(ctx)
	}
	return c.Render(http.StatusOK, "customers", page(c, "Customers", p.View()))
}

func (h *ConsoleHandler) DeleteCustomer(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "console.delete_customer")

	if err := h.Sessions.Workspace(c).Customers.Delete(ctx, models.ID(c.Param("id"))); err == nil {
		l.Info("delete_customer_success", "customer_id", c.Param("id"))
	}
	return seeOther(c, "/customers")
}

func (h *ConsoleHandler) CustomerForm(c echo.Context) error {
	ctx := c.Request().Context()
	id := c.Param("id")
	f := h.Sessions.Workspace(c).CustomerForm
	if !f.Pending(id) || wantsReload(c) {
		_ = f.Open(ctx, id)
	}

	title := "Edit customer"
	if id == pages.NewCustomerID {
		title = "New customer"
	}
	return c.Render(http.StatusOK, "customer_form", page(c, title, f.View()))
}

func (h *ConsoleHandler) SaveCustomer(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "console.save_customer")
	id := c.Param("id")
	ws := h.Sessions.Workspace(c)

	values := models.CustomerCommand{
		Name:  strings.TrimSpace(c.FormValue("name")),
		Email: strings.TrimSpace(c.FormValue("email")),
		Phone: strings.TrimSpace(c.FormValue("phone")),
	}

	// Forms posted without a prior GET in this session are opened first.
	if view := ws.CustomerForm.View(); view.Editing != (id != pages.NewCustomerID) || (view.Editing && view.ID.String() != id) {
		if err := ws.CustomerForm.Open(ctx, id); err != nil {
			return seeOther(c, "/customers/"+id)
		}
	}

	saved, err := ws.CustomerForm.Submit(ctx, values)
	if err != nil {
		return seeOther(c, "/customers/"+id)
	}

	ws.Customers.Upsert(saved)
	l.Info("save_customer_success", "customer_id", saved.ID)
	return seeOther(c, "/customers")
}

func (h *ConsoleHandler) Products(c echo.Context) error {
	ctx := c.Request().Context()
	p := h.Sessions.Workspace(c).Products
	if !p.Loaded() || wantsReload(c) {
		_ = p.Load(ctx)
	}
	return c.Render(http.StatusOK, "products", page(c, "Products", p.View()))
}

func (h *ConsoleHandler) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "console.create_product")

	form := pages.ProductForm{
		Name:        c.FormValue("name"),
		Description: c.FormValue("description"),
		Price:       c.FormValue("price"),
		Stock:       c.FormValue("stock"),
	}
	if err := h.Sessions.Workspace(c).Products.Create(ctx, form); err == nil {
		l.Info("create_product_success")
	}
	return seeOther(c, "/products")
}

func (h *ConsoleHandler) DeleteProduct(c echo.Context) error {
	ctx := c.Request().Context()
	_ = h.Sessions.Workspace(c).Products.Delete(ctx, models.ID(c.Param("id")))
	return seeOther(c, "/products")
}

func (h *ConsoleHandler) Orders(c echo.Context) error {
	ctx := c.Request().Context()
	p := h.Sessions.Workspace(c).Orders
	if !p.Loaded() || wantsReload(c) {
		_ = p.Load(ctx)
	}
	return c.Render(http.StatusOK, "orders", page(c, "Orders", p.View()))
}

func (h *ConsoleHandler) RefreshOrders(c echo.Context) error {
	_ = h.Sessions.Workspace(c).Orders.Load(c.Request().Context())
	return seeOther(c, "/orders")
}

// fillDraft applies the draft fields of the orders form, when present, to
// the session's draft.
func fillDraft(c echo.Context, p *pages.OrdersPage) error {
	params, err := c.FormParams()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}
	if _, ok := params["customer_id"]; !ok {
		return nil
	}

	products, quantities := params["product_id"], params["quantity"]
	if len(products) != len(quantities) {
		return echo.NewHTTPError(http.StatusBadRequest, "product and quantity fields do not match")
	}
	lines := make([]service.LineDraft, len(products))
	for i := range products {
		// Blank or malformed quantities clamp to 1 like any other edit.
		qty, err := strconv.Atoi(strings.TrimSpace(quantities[i]))
		if err != nil {
			qty = 1
		}
		lines[i] = service.LineDraft{ProductID: models.ID(products[i]), Quantity: qty}
	}
	p.Fill(models.ID(params.Get("customer_id")), lines)
	return nil
}

func (h *ConsoleHandler) EditDraft(c echo.Context) error {
	l := logging.FromContext(c.Request().Context()).With("handler", "console.edit_draft")
	p := h.Sessions.Workspace(c).Orders

	if err := fillDraft(c, p); err != nil {
		l.Warn("edit_draft_failed", "status", 400, "reason", "invalid draft fields", "error", err)
		return err
	}

	switch action := c.FormValue("action"); action {
	case "update":
	case "add":
		p.AddLine()
	case "remove":
		line, err := strconv.Atoi(c.FormValue("line"))
		if err != nil {
			l.Warn("edit_draft_failed", "status", 400, "reason", "invalid line", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, "invalid draft line")
		}
		p.RemoveLine(line)
	default:
		l.Warn("edit_draft_failed", "status", 400, "reason", "unknown action", "action", action)
		return echo.NewHTTPError(http.StatusBadRequest, "unknown draft action")
	}
	return seeOther(c, "/orders")
}

func (h *ConsoleHandler) SubmitOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "console.submit_order")
	p := h.Sessions.Workspace(c).Orders

	if err := fillDraft(c, p); err != nil {
		l.Warn("submit_order_failed", "status", 400, "reason", "invalid draft fields", "error", err)
		return err
	}
	if order, err := p.Submit(ctx); err == nil {
		l.Info("submit_order_success", "order_id", order.ID)
	}
	return seeOther(c, "/orders")
}

func (h *ConsoleHandler) UpdateOrderStatus(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "console.update_order_status")

	status, err := models.ParseOrderStatus(c.FormValue("status"))
	if err != nil {
		l.Warn("update_order_status_failed", "status", 400, "reason", "invalid status", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid status")
	}
	_ = h.Sessions.Workspace(c).Orders.UpdateStatus(ctx, models.ID(c.Param("id")), status)
	return seeOther(c, "/orders")
}

func (h *ConsoleHandler) DeleteOrder(c echo.Context) error {
	ctx := c.Request().Context()
	_ = h.Sessions.Workspace(c).Orders.Delete(ctx, models.ID(c.Param("id")))
	return seeOther(c, "/orders")
}
