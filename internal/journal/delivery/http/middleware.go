package http

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"go-trade-journal/pkg/logger"
	"go-trade-journal/pkg/security"
)

// OwnerCookieName is the cookie carrying the owner token for browser clients.
const OwnerCookieName = "owner_token"

// OwnerMiddleware rejects requests that do not carry a valid owner token.
// Tokens are accepted from the Authorization header (Bearer) or the owner
// cookie. Rejection happens before any handler touches the store.
func OwnerMiddleware(tokens *security.AuthService, log *logger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := bearerToken(c)
			if token == "" {
				if cookie, err := c.Cookie(OwnerCookieName); err == nil {
					token = cookie.Value
				}
			}
			if token == "" {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Owner authentication required"})
			}

			if _, err := tokens.ValidateToken(token); err != nil {
				log.Warn("Rejected owner token", logger.ErrorField(err), logger.Field("path", c.Path()))
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Invalid or expired token"})
			}
			return next(c)
		}
	}
}

func bearerToken(c echo.Context) string {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if header == "" {
		return ""
	}
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return header
}
