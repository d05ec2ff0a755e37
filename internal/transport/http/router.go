package httpserver

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/order_admin/internal/handlers"
	"github.com/Skotchmaster/order_admin/internal/logging"
)

// Pinger checks that the remote API is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Deps struct {
	Console *handlers.ConsoleHandler
	API     Pinger
}

// HealthPaths bypass the console's auth and CSRF middleware.
var HealthPaths = []string{"/health/live", "/health/ready"}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error {
		if d.API == nil {
			return c.NoContent(http.StatusOK)
		}
		ctx, cancel := context.WithTimeout(c.Request().Context(), 3*time.Second)
		defer cancel()
		if err := d.API.Ping(ctx); err != nil {
			logging.FromContext(ctx).Warn("ready_check_failed", "status", http.StatusServiceUnavailable, "error", err)
			return c.NoContent(http.StatusServiceUnavailable)
		}
		return c.NoContent(http.StatusOK)
	})

	e.GET("/", d.Console.Home)

	customers := e.Group("/customers")
	customers.GET("", d.Console.Customers)
	customers.GET("/:id", d.Console.CustomerForm)
	customers.POST("/:id", d.Console.SaveCustomer)
	customers.POST("/:id/delete", d.Console.DeleteCustomer)

	products := e.Group("/products")
	products.GET("", d.Console.Products)
	products.POST("", d.Console.CreateProduct)
	products.POST("/:id/delete", d.Console.DeleteProduct)

	orders := e.Group("/orders")
	orders.GET("", d.Console.Orders)
	orders.POST("", d.Console.SubmitOrder)
	orders.POST("/refresh", d.Console.RefreshOrders)
	orders.POST("/draft", d.Console.EditDraft)
	orders.POST("/:id/status", d.Console.UpdateOrderStatus)
	orders.POST("/:id/delete", d.Console.DeleteOrder)
}
