package devapi

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/order_admin/internal/logging"
	"github.com/Skotchmaster/order_admin/internal/models"
	"github.com/Skotchmaster/order_admin/internal/mykafka"
)

type API struct {
	Repo   *GormRepo
	Events mykafka.Publisher
}

func (h *API) publish(ctx context.Context, topic, key string, event map[string]any) {
	if h.Events == nil {
		return
	}
	if err := h.Events.PublishEvent(ctx, topic, key, event); err != nil {
		logging.FromContext(ctx).Error("publish_event_failed", "topic", topic, "type", event["type"], "error", err)
	}
}

// fail maps repository errors onto HTTP statuses.
func fail(l *slog.Logger, event string, err error) error {
	switch {
	case errors.Is(err, ErrNotFound):
		l.Warn(event, "status", 404, "error", err)
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, ErrInvalid):
		l.Warn(event, "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	default:
		l.Error(event, "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
}

func badBody(l *slog.Logger, event string, err error) error {
	l.Warn(event, "status", 400, "reason", "invalid body", "error", err)
	return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
}

func idParam(c echo.Context) models.ID {
	return models.ID(c.Param("id"))
}

func (h *API) ListCustomers(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "customer.list")

	items, err := h.Repo.ListCustomers(ctx)
	if err != nil {
		return fail(l, "list_customers_failed", err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *API) GetCustomer(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "customer.get")

	item, err := h.Repo.GetCustomer(ctx, idParam(c))
	if err != nil {
		return fail(l, "get_customer_failed", err)
	}
	return c.JSON(http.StatusOK, item)
}

func (h *API) CreateCustomer(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "customer.create")

	var cmd models.CustomerCommand
	if err := c.Bind(&cmd); err != nil {
		return badBody(l, "create_customer_failed", err)
	}
	if strings.TrimSpace(cmd.Name) == "" || strings.TrimSpace(cmd.Email) == "" || strings.TrimSpace(cmd.Phone) == "" {
		l.Warn("create_customer_failed", "status", 400, "reason", "missing fields")
		return echo.NewHTTPError(http.StatusBadRequest, "name, email and phone are required")
	}

	item, err := h.Repo.CreateCustomer(ctx, cmd)
	if err != nil {
		return fail(l, "create_customer_failed", err)
	}
	h.publish(ctx, mykafka.CustomerTopic, item.ID.String(), map[string]any{
		"type": "customer_created", "customerId": item.ID, "name": item.Name,
	})
	l.Info("create_customer_success", "customer_id", item.ID)
	return c.JSON(http.StatusCreated, item)
}

func (h *API) UpdateCustomer(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "customer.update")

	var patch models.CustomerPatch
	if err := c.Bind(&patch); err != nil {
		return badBody(l, "update_customer_failed", err)
	}

	item, err := h.Repo.PatchCustomer(ctx, idParam(c), patch)
	if err != nil {
		return fail(l, "update_customer_failed", err)
	}
	h.publish(ctx, mykafka.CustomerTopic, item.ID.String(), map[string]any{
		"type": "customer_updated", "customerId": item.ID, "name": item.Name,
	})
	return c.JSON(http.StatusOK, item)
}

func (h *API) DeleteCustomer(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "customer.delete")

	id := idParam(c)
	if err := h.Repo.DeleteCustomer(ctx, id); err != nil {
		return fail(l, "delete_customer_failed", err)
	}
	h.publish(ctx, mykafka.CustomerTopic, id.String(), map[string]any{"type": "customer_deleted", "customerId": id})
	return c.NoContent(http.StatusNoContent)
}

func (h *API) ListProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.list")

	items, err := h.Repo.ListProducts(ctx)
	if err != nil {
		return fail(l, "list_products_failed", err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *API) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get")

	item, err := h.Repo.GetProduct(ctx, idParam(c))
	if err != nil {
		return fail(l, "get_product_failed", err)
	}
	return c.JSON(http.StatusOK, item)
}

func (h *API) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.create")

	var cmd models.ProductCommand
	if err := c.Bind(&cmd); err != nil {
		return badBody(l, "create_product_failed", err)
	}
	if strings.TrimSpace(cmd.Name) == "" || cmd.Price.IsNegative() || !models.WholeCents(cmd.Price) || cmd.Stock < 0 {
		l.Warn("create_product_failed", "status", 400, "reason", "invalid fields")
		return echo.NewHTTPError(http.StatusBadRequest, "name is required; price must be >= 0 in whole cents; stock must be >= 0")
	}

	item, err := h.Repo.CreateProduct(ctx, cmd)
	if err != nil {
		return fail(l, "create_product_failed", err)
	}
	h.publish(ctx, mykafka.ProductTopic, item.ID.String(), map[string]any{
		"type": "product_created", "productId": item.ID, "name": item.Name, "price": item.Price,
	})
	l.Info("create_product_success", "product_id", item.ID)
	return c.JSON(http.StatusCreated, item)
}

func (h *API) UpdateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.update")

	var patch models.ProductPatch
	if err := c.Bind(&patch); err != nil {
		return badBody(l, "update_product_failed", err)
	}
	if patch.Price != nil && (patch.Price.IsNegative() || !models.WholeCents(*patch.Price)) {
		l.Warn("update_product_failed", "status", 400, "reason", "invalid price")
		return echo.NewHTTPError(http.StatusBadRequest, "price must be >= 0 in whole cents")
	}

	item, err := h.Repo.PatchProduct(ctx, idParam(c), patch)
	if err != nil {
		return fail(l, "update_product_failed", err)
	}
	h.publish(ctx, mykafka.ProductTopic, item.ID.String(), map[string]any{
		"type": "product_updated", "productId": item.ID, "name": item.Name, "price": item.Price,
	})
	return c.JSON(http.StatusOK, item)
}

func (h *API) DeleteProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.delete")

	id := idParam(c)
	if err := h.Repo.DeleteProduct(ctx, id); err != nil {
		return fail(l, "delete_product_failed", err)
	}
	h.publish(ctx, mykafka.ProductTopic, id.String(), map[string]any{"type": "product_deleted", "productId": id})
	return c.NoContent(http.StatusNoContent)
}

func (h *API) ListOrders(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.list")

	items, err := h.Repo.ListOrders(ctx)
	if err != nil {
		return fail(l, "list_orders_failed", err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *API) GetOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.get")

	item, err := h.Repo.GetOrder(ctx, idParam(c))
	if err != nil {
		return fail(l, "get_order_failed", err)
	}
	return c.JSON(http.StatusOK, item)
}

func (h *API) CreateOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.create")

	var cmd models.CreateOrderCommand
	if err := c.Bind(&cmd); err != nil {
		return badBody(l, "create_order_failed", err)
	}

	order, err := h.Repo.CreateOrder(ctx, cmd)
	if err != nil {
		return fail(l, "create_order_failed", err)
	}
	h.publish(ctx, mykafka.OrderTopic, order.ID.String(), map[string]any{
		"type":        "order_created",
		"orderId":     order.ID,
		"customerId":  order.CustomerID,
		"items":       len(order.Items),
		"totalAmount": order.TotalAmount,
		"status":      order.Status,
	})
	l.Info("create_order_success", "order_id", order.ID, "total", models.FormatAmount(order.TotalAmount))
	return c.JSON(http.StatusCreated, order)
}

// UpdateOrderStatus serves both PUT /order/:id and PUT /order/:id/status;
// status is the only mutable field of a placed order.
func (h *API) UpdateOrderStatus(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.update_status")

	var cmd models.StatusCommand
	if err := c.Bind(&cmd); err != nil {
		return badBody(l, "update_order_status_failed", err)
	}

	order, err := h.Repo.UpdateOrderStatus(ctx, idParam(c), cmd.Status)
	if err != nil {
		return fail(l, "update_order_status_failed", err)
	}
	h.publish(ctx, mykafka.OrderTopic, order.ID.String(), map[string]any{
		"type": "order_status_changed", "orderId": order.ID, "status": order.Status,
	})
	return c.JSON(http.StatusOK, order)
}

func (h *API) DeleteOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.delete")

	id := idParam(c)
	if err := h.Repo.DeleteOrder(ctx, id); err != nil {
		return fail(l, "delete_order_failed", err)
	}
	h.publish(ctx, mykafka.OrderTopic, id.String(), map[string]any{"type": "order_deleted", "orderId": id})
	return c.NoContent(http.StatusNoContent)
}
