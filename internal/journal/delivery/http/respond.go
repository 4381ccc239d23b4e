package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"go-trade-journal/internal/journal/dto"
	"go-trade-journal/internal/journal/service"
)

// writeServiceError maps service-layer errors onto HTTP responses: field
// validation to 400, missing trades to 404, everything else to a generic
// 500 (the detail is already logged in the service layer).
func writeServiceError(c echo.Context, err error) error {
	var verr *service.ValidationError
	if errors.As(err, &verr) {
		return c.JSON(http.StatusBadRequest, dto.ValidationErrorResponse{
			Error:  "Validation failed",
			Fields: verr.Fields,
		})
	}
	if errors.Is(err, service.ErrTradeNotFound) {
		return c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "Trade not found"})
	}
	return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Internal server error"})
}
