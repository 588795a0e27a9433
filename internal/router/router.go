// Package router defines how HTTP routes are registered for the API.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/agrigo/equipment-rental/internal/handler"
	"github.com/agrigo/equipment-rental/internal/metrics"
	"github.com/agrigo/equipment-rental/internal/middleware"
	"github.com/agrigo/equipment-rental/internal/model"
)

// Handlers bundles the API handlers registered on the router.
type Handlers struct {
	Users     *handler.UserHandler
	Resources *handler.ResourceHandler
	Bookings  *handler.BookingHandler
	Chat      *handler.ChatHandler
	Recommend *handler.RecommendHandler
}

// RegisterRoutes mounts every endpoint. Routes live at the root with
// no version prefix; existing mobile clients depend on these exact
// paths. Update and delete accept the ID both as a path segment and
// as ?id= because deployed clients use both forms.
//
// With authRequired set, mutating routes are role-gated on top of the
// bearer identity check: resource mutations need an owner or admin
// token, booking and chat writes any known role. Reads, registration
// and /ml/predict stay open.
func RegisterRoutes(e *echo.Echo, h Handlers, authRequired bool) {
	var resourceGate, participantGate []echo.MiddlewareFunc
	if authRequired {
		resourceGate = []echo.MiddlewareFunc{
			middleware.RequireRole(model.RoleOwner, model.RoleAdmin),
		}
		participantGate = []echo.MiddlewareFunc{
			middleware.RequireRole(model.RoleFarmer, model.RoleOwner, model.RoleAdmin),
		}
	}

	e.GET("/healthz", handler.Health)

	e.GET("/users", h.Users.Get)
	e.POST("/users", h.Users.Create)

	e.GET("/resources", h.Resources.Get)
	e.POST("/resources", h.Resources.Create, resourceGate...)
	e.PUT("/resources", h.Resources.UpdateByQuery, resourceGate...)
	e.PUT("/resources/:id", h.Resources.UpdateByPath, resourceGate...)
	e.DELETE("/resources", h.Resources.Delete, resourceGate...)

	e.GET("/bookings", h.Bookings.Get)
	e.POST("/bookings", h.Bookings.Create, participantGate...)
	e.PUT("/bookings", h.Bookings.UpdateByQuery, participantGate...)
	e.PUT("/bookings/:id", h.Bookings.UpdateByPath, participantGate...)
	e.DELETE("/bookings", h.Bookings.Delete, participantGate...)

	e.GET("/chat/:bookingId", h.Chat.List)
	e.POST("/chat", h.Chat.Send, participantGate...)

	e.POST("/ml/predict", h.Recommend.Predict)
}

// RegisterMetrics exposes the Prometheus scrape endpoint.
func RegisterMetrics(e *echo.Echo, gatherer prometheus.Gatherer) {
	e.GET("/metrics", echo.WrapHandler(metrics.Handler(gatherer)))
}
