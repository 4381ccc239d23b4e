package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"

	"go-trade-journal/internal/journal/dto"
	"go-trade-journal/internal/journal/service"
	"go-trade-journal/pkg/logger"
)

// AuthHandler handles owner login and logout.
type AuthHandler struct {
	authService service.AuthService
	logger      *logger.Logger
	loginRate   rate.Limit
	loginBurst  int
}

// NewAuthHandler creates a new AuthHandler. The rate and burst bound login
// attempts per client IP.
func NewAuthHandler(authService service.AuthService, logger *logger.Logger, loginRate float64, loginBurst int) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
		loginRate:   rate.Limit(loginRate),
		loginBurst:  loginBurst,
	}
}

// RegisterRoutes registers the auth routes to the Echo group.
func (h *AuthHandler) RegisterRoutes(g *echo.Group) {
	limiter := middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
			Rate:      h.loginRate,
			Burst:     h.loginBurst,
			ExpiresIn: 3 * time.Minute,
		}),
	})
	g.POST("/login", h.Login, limiter)
	g.POST("/logout", h.Logout)
}

// Login godoc
// @Summary Owner login
// @Description Exchange the owner credentials for a token; also sets the owner cookie
// @Tags auth
// @Accept  json
// @Produce  json
// @Param   credentials  body    dto.LoginRequest   true    "Owner credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req dto.LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request payload"})
	}

	resp, err := h.authService.Login(c.Request().Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Invalid username or password"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Internal server error"})
	}

	c.SetCookie(&http.Cookie{
		Name:     OwnerCookieName,
		Value:    resp.Token,
		Path:     "/",
		Expires:  resp.ExpiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return c.JSON(http.StatusOK, resp)
}

// Logout godoc
// @Summary Owner logout
// @Description Clear the owner cookie
// @Tags auth
// @Produce  json
// @Success 204 {object} nil
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	c.SetCookie(&http.Cookie{
		Name:     OwnerCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return c.NoContent(http.StatusNoContent)
}
