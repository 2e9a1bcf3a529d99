package http

import (
	"net/http"

	appmw "prestamos-backend/internal/adapter/middleware"
	uc "prestamos-backend/internal/usecase/partner"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type PartnerHandler struct{ uc *uc.Usecase }

func NewPartnerHandler(u *uc.Usecase) *PartnerHandler { return &PartnerHandler{uc: u} }

type distributeSharesReq struct {
	// partner name → percentage of the loan rate
	Shares map[string]float64 `json:"shares" validate:"required,min=1,dive,gte=0,dec2"`
}

func (h *PartnerHandler) DistributeShares(c echo.Context) error {
	sess, ok := appmw.SessionFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "missing session"})
	}
	var req distributeSharesReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}

	shares := make(map[string]decimal.Decimal, len(req.Shares))
	for name, pct := range req.Shares {
		shares[name] = decimal.NewFromFloat(pct).Round(2)
	}
	if err := h.uc.Distribute(c.Request().Context(), sess, c.Param("loan_id"), shares); err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "distributed"})
}

func (h *PartnerHandler) Earnings(c echo.Context) error {
	ledger, err := h.uc.Earnings(c.Request().Context(), c.Param("loan_id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, ledger)
}
