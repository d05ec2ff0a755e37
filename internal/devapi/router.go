package devapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Register mounts the resource routes under prefix (usually "/api").
// Middleware in mw applies to the resource routes only.
func Register(e *echo.Echo, prefix string, h *API, mw ...echo.MiddlewareFunc) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error {
		sqlDB, err := h.Repo.DB.DB()
		if err != nil {
			return c.NoContent(http.StatusServiceUnavailable)
		}
		if err := sqlDB.PingContext(c.Request().Context()); err != nil {
			return c.NoContent(http.StatusServiceUnavailable)
		}
		return c.NoContent(http.StatusOK)
	})

	api := e.Group(prefix, mw...)

	customers := api.Group("/customer")
	customers.GET("", h.ListCustomers)
	customers.POST("", h.CreateCustomer)
	customers.GET("/:id", h.GetCustomer)
	customers.PUT("/:id", h.UpdateCustomer)
	customers.DELETE("/:id", h.DeleteCustomer)

	products := api.Group("/product")
	products.GET("", h.ListProducts)
	products.POST("", h.CreateProduct)
	products.GET("/:id", h.GetProduct)
	products.PUT("/:id", h.UpdateProduct)
	products.DELETE("/:id", h.DeleteProduct)

	orders := api.Group("/order")
	orders.GET("", h.ListOrders)
	orders.POST("", h.CreateOrder)
	orders.GET("/:id", h.GetOrder)
	orders.PUT("/:id", h.UpdateOrderStatus)
	orders.PUT("/:id/status", h.UpdateOrderStatus)
	orders.DELETE("/:id", h.DeleteOrder)
}
