package handler

import (
    "net/http"
    "time"

    "github.com/labstack/echo/v4"
)

// Health reports liveness for load balancers and monitoring.
func Health(c echo.Context) error {
    return c.JSON(http.StatusOK, echo.Map{
        "status":    "running",
        "service":   "equipment-rental-api",
        "timestamp": time.Now().UTC().Format(time.RFC3339),
    })
}
