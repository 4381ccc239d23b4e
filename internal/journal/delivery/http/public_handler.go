package http

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"go-trade-journal/internal/entity"
	"go-trade-journal/internal/journal/dto"
	"go-trade-journal/internal/journal/service"
	"go-trade-journal/pkg/logger"
)

// PublicHandler serves the visitor-facing case-study routes. Everything it
// returns is built from public DTO types, which carry no private fields.
type PublicHandler struct {
	tradeService     service.TradeService
	analyticsService service.AnalyticsService
	exportService    service.ExportService
	logger           *logger.Logger
}

// NewPublicHandler creates a new PublicHandler.
func NewPublicHandler(tradeService service.TradeService, analyticsService service.AnalyticsService, exportService service.ExportService, logger *logger.Logger) *PublicHandler {
	return &PublicHandler{
		tradeService:     tradeService,
		analyticsService: analyticsService,
		exportService:    exportService,
		logger:           logger,
	}
}

// RegisterRoutes registers the public case routes to the Echo group.
func (h *PublicHandler) RegisterRoutes(g *echo.Group) {
	g.GET("", h.ListCases)
	g.GET("/summary", h.GetSummary)
	g.GET("/playbook", h.GetPlaybook)
	g.GET("/export/csv", h.ExportCSV)
	g.GET("/:id", h.GetCase)
}

// ListCases godoc
// @Summary List published case studies
// @Description List published trades with private fields stripped
// @Tags cases
// @Produce  json
// @Param   status     query   string  false  "Filter by status (OPEN or CLOSED)"
// @Param   direction  query   string  false  "Filter by direction (BUY or SELL)"
// @Param   strategy   query   string  false  "Filter by strategy tag"
// @Param   symbol     query   string  false  "Filter by symbol substring"
// @Param   featured   query   bool    false  "Only featured cases"
// @Success 200 {array} dto.PublicCaseResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /cases [get]
func (h *PublicHandler) ListCases(c echo.Context) error {
	cases, err := h.tradeService.ListPublicCases(c.Request().Context(), filterFromQuery(c))
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, cases)
}

// GetCase godoc
// @Summary Get one published case study
// @Description Get a published trade by id; unpublished ids return 404
// @Tags cases
// @Produce  json
// @Param   id  path    int true    "Trade ID"
// @Success 200 {object} dto.PublicCaseResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /cases/{id} [get]
func (h *PublicHandler) GetCase(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid trade ID"})
	}

	publicCase, err := h.tradeService.GetPublicCase(c.Request().Context(), uint(id))
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, publicCase)
}

// GetSummary godoc
// @Summary Public performance summary
// @Description Aggregate statistics and equity curve over published trades
// @Tags cases
// @Produce  json
// @Success 200 {object} dto.AnalyticsSummary
// @Failure 500 {object} dto.ErrorResponse
// @Router /cases/summary [get]
func (h *PublicHandler) GetSummary(c echo.Context) error {
	summary, err := h.analyticsService.GetSummary(c.Request().Context(), true)
	if err != nil {
		return writeServiceError(c, err)
	}

	// The data-quality report is owner-facing; copy before dropping it so
	// the cached summary stays intact.
	public := *summary
	public.DataQuality = nil
	return c.JSON(http.StatusOK, &public)
}

// GetPlaybook godoc
// @Summary Strategy playbook
// @Description Strategy tags in use on published trades with descriptions
// @Tags cases
// @Produce  json
// @Success 200 {array} dto.PlaybookEntry
// @Failure 500 {object} dto.ErrorResponse
// @Router /cases/playbook [get]
func (h *PublicHandler) GetPlaybook(c echo.Context) error {
	playbook, err := h.tradeService.ListPlaybook(c.Request().Context())
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, playbook)
}

// ExportCSV godoc
// @Summary Export closed cases as CSV
// @Description Download the closed published trades as a CSV file
// @Tags cases
// @Produce  text/csv
// @Success 200 {string} string
// @Failure 500 {object} dto.ErrorResponse
// @Router /cases/export/csv [get]
func (h *PublicHandler) ExportCSV(c echo.Context) error {
	c.Response().Header().Set(echo.HeaderContentType, "text/csv")
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename=trades_closed.csv`)
	c.Response().WriteHeader(http.StatusOK)
	return h.exportService.ExportClosedCSV(c.Request().Context(), c.Response(), true)
}

// filterFromQuery builds a listing filter from the shared query params.
func filterFromQuery(c echo.Context) dto.ListTradesFilter {
	filter := dto.ListTradesFilter{
		StrategyTag: c.QueryParam("strategy"),
		SymbolQuery: c.QueryParam("symbol"),
	}
	if status := c.QueryParam("status"); status != "" {
		filter.Status = entity.Status(status)
	}
	if direction := c.QueryParam("direction"); direction != "" {
		filter.Direction = entity.Direction(direction)
	}
	if featured, err := strconv.ParseBool(c.QueryParam("featured")); err == nil {
		filter.FeaturedOnly = featured
	}
	return filter
}
