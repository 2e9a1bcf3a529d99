package http

import (
	"errors"
	"net/http"

	domain "prestamos-backend/internal/domain/loan"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// ---- helpers ----

// writeDomainError maps engine/repository errors to HTTP responses.
func writeDomainError(c echo.Context, err error) error {
	var ub *domain.UnbalancedError
	switch {
	case errors.As(err, &ub):
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:      "unbalanced distribution",
			Difference: ub.Difference.StringFixed(2),
		})
	case errors.Is(err, domain.ErrForbidden):
		return c.JSON(http.StatusForbidden, ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "loan not found"})
	case errors.Is(err, domain.ErrLoanClosed), errors.Is(err, domain.ErrStaleVersion):
		return c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrZeroRate):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	default:
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}
