package http

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"go-trade-journal/internal/journal/dto"
	"go-trade-journal/internal/journal/service"
	"go-trade-journal/pkg/logger"
)

// TradeHandler handles the owner-workspace trade routes.
type TradeHandler struct {
	tradeService      service.TradeService
	analyticsService  service.AnalyticsService
	screenshotService service.ScreenshotService
	logger            *logger.Logger
}

// NewTradeHandler creates a new TradeHandler.
func NewTradeHandler(tradeService service.TradeService, analyticsService service.AnalyticsService, screenshotService service.ScreenshotService, logger *logger.Logger) *TradeHandler {
	return &TradeHandler{
		tradeService:      tradeService,
		analyticsService:  analyticsService,
		screenshotService: screenshotService,
		logger:            logger,
	}
}

// RegisterRoutes registers the owner routes to the (already gated) admin group.
func (h *TradeHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/trades", h.ListTrades)
	g.POST("/trades", h.CreateTrade)
	g.GET("/trades/:id", h.GetTrade)
	g.PUT("/trades/:id", h.UpdateTrade)
	g.DELETE("/trades/:id", h.DeleteTrade)
	g.POST("/trades/:id/screenshots", h.UploadScreenshot)
	g.GET("/summary", h.GetSummary)
}

// CreateTrade godoc
// @Summary Log a new trade
// @Description Create a journal entry; a CLOSED status requires a result in R
// @Tags admin
// @Accept  json
// @Produce  json
// @Param   trade  body    dto.CreateTradeRequest   true    "Trade to log"
// @Success 201 {object} dto.TradeResponse
// @Failure 400 {object} dto.ValidationErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /admin/trades [post]
func (h *TradeHandler) CreateTrade(c echo.Context) error {
	var req dto.CreateTradeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request payload"})
	}

	trade, err := h.tradeService.CreateTrade(c.Request().Context(), &req)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, trade)
}

// ListTrades godoc
// @Summary List all trades
// @Description List every journal entry, including private fields
// @Tags admin
// @Produce  json
// @Param   status     query   string  false  "Filter by status"
// @Param   direction  query   string  false  "Filter by direction"
// @Param   strategy   query   string  false  "Filter by strategy tag"
// @Param   symbol     query   string  false  "Filter by symbol substring"
// @Param   featured   query   bool    false  "Only featured trades"
// @Success 200 {array} dto.TradeResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /admin/trades [get]
func (h *TradeHandler) ListTrades(c echo.Context) error {
	trades, err := h.tradeService.ListTrades(c.Request().Context(), filterFromQuery(c))
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, trades)
}

// GetTrade godoc
// @Summary Get a trade by ID
// @Description Get a single journal entry, including private fields
// @Tags admin
// @Produce  json
// @Param   id  path    int true    "Trade ID"
// @Success 200 {object} dto.TradeResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/trades/{id} [get]
func (h *TradeHandler) GetTrade(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid trade ID"})
	}

	trade, err := h.tradeService.GetTrade(c.Request().Context(), uint(id))
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, trade)
}

// UpdateTrade godoc
// @Summary Edit a trade
// @Description Replace the editable fields of a journal entry
// @Tags admin
// @Accept  json
// @Produce  json
// @Param   id     path    int                      true    "Trade ID"
// @Param   trade  body    dto.UpdateTradeRequest   true    "Edited trade"
// @Success 200 {object} dto.TradeResponse
// @Failure 400 {object} dto.ValidationErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/trades/{id} [put]
func (h *TradeHandler) UpdateTrade(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid trade ID"})
	}

	var req dto.UpdateTradeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request payload"})
	}

	trade, err := h.tradeService.UpdateTrade(c.Request().Context(), uint(id), &req)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, trade)
}

// DeleteTrade godoc
// @Summary Delete a trade
// @Description Remove a journal entry and its screenshots; its id is never reused
// @Tags admin
// @Produce  json
// @Param   id  path    int true    "Trade ID"
// @Success 204 {object} nil
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/trades/{id} [delete]
func (h *TradeHandler) DeleteTrade(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid trade ID"})
	}

	if err := h.tradeService.DeleteTrade(c.Request().Context(), uint(id)); err != nil {
		return writeServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// UploadScreenshot godoc
// @Summary Attach a screenshot
// @Description Upload a before/after chart screenshot for a trade
// @Tags admin
// @Accept  multipart/form-data
// @Produce  json
// @Param   id     path      int     true   "Trade ID"
// @Param   phase  formData  string  true   "before or after"
// @Param   file   formData  file    true   "Screenshot image"
// @Success 200 {object} dto.TradeResponse
// @Failure 400 {object} dto.ValidationErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/trades/{id}/screenshots [post]
func (h *TradeHandler) UploadScreenshot(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid trade ID"})
	}

	file, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "A screenshot file is required"})
	}

	if _, err := h.screenshotService.Attach(c.Request().Context(), uint(id), c.FormValue("phase"), file); err != nil {
		return writeServiceError(c, err)
	}

	trade, err := h.tradeService.GetTrade(c.Request().Context(), uint(id))
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, trade)
}

// GetSummary godoc
// @Summary Owner performance summary
// @Description Aggregate statistics over the full journal, including data-quality issues
// @Tags admin
// @Produce  json
// @Success 200 {object} dto.AnalyticsSummary
// @Failure 401 {object} dto.ErrorResponse
// @Router /admin/summary [get]
func (h *TradeHandler) GetSummary(c echo.Context) error {
	summary, err := h.analyticsService.GetSummary(c.Request().Context(), false)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, summary)
}
