// Package middleware provides shared request processing: bearer
// identity, role checks, rate limiting and response caching.
package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// Identity returns middleware that parses an optional HS256 bearer
// token and stores the subject and role claims in the context under
// "user_id" and "role". When required is false a missing or invalid
// token passes through anonymously; the API's own ownership checks
// stay authoritative either way. When required is true the request is
// rejected with AUTH_REQUIRED instead.
func Identity(secret string, required bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") || secret == "" {
				if required {
					return c.JSON(http.StatusUnauthorized, echo.Map{
						"error": "Bearer token required", "code": "AUTH_REQUIRED",
					})
				}
				return next(c)
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, echo.ErrUnauthorized
				}
				return []byte(secret), nil
			})
			if err != nil || !tok.Valid {
				if required {
					return c.JSON(http.StatusUnauthorized, echo.Map{
						"error": "Invalid token", "code": "AUTH_REQUIRED",
					})
				}
				return next(c)
			}

			if claims, ok := tok.Claims.(jwt.MapClaims); ok {
				c.Set("user_id", claims["sub"])
				c.Set("role", claims["role"])
			}
			return next(c)
		}
	}
}

// currentUserID returns the authenticated subject for keying, or
// "anon" for unauthenticated requests.
func currentUserID(c echo.Context) string {
	if v := c.Get("user_id"); v != nil {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	return "anon"
}
