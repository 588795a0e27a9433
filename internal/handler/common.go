package handler // handler defines the HTTP endpoints of the rental API

import (
    "net/http"
    "strconv"
    "strings"

    "github.com/labstack/echo/v4"

    "github.com/agrigo/equipment-rental/internal/validate"
)

// maxPageSize caps every listing regardless of the requested limit.
// Oversized limits are clamped, never rejected.
const maxPageSize = 100

// errJSON writes the {"error", "code"} envelope shared by all
// endpoints.
func errJSON(c echo.Context, status int, code, msg string) error {
    return c.JSON(status, echo.Map{"error": msg, "code": code})
}

// rejectJSON writes a validation rejection.
func rejectJSON(c echo.Context, rej *validate.Rejection) error {
    return errJSON(c, rej.Status, rej.Code, rej.Message)
}

// internalError hides storage failures behind a generic message;
// 500s carry no machine code.
func internalError(c echo.Context) error {
    return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Internal server error"})
}

// parseID parses a positive decimal identifier from a path or query
// string. Zero and garbage are both invalid.
func parseID(s string) (uint64, bool) {
    id, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
    if err != nil || id == 0 {
        return 0, false
    }
    return id, true
}

// parseLimit clamps the limit parameter into (0, maxPageSize].
// Unparseable or non-positive values fall back to def.
func parseLimit(s string, def int) int {
    n, err := strconv.Atoi(strings.TrimSpace(s))
    if err != nil || n <= 0 {
        n = def
    }
    if n > maxPageSize {
        n = maxPageSize
    }
    return n
}

// parseOffset returns a non-negative offset, defaulting to 0.
func parseOffset(s string) int {
    n, err := strconv.Atoi(strings.TrimSpace(s))
    if err != nil || n < 0 {
        return 0
    }
    return n
}
