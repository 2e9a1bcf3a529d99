package http

import (
	"net/http"

	appmw "prestamos-backend/internal/adapter/middleware"
	uc "prestamos-backend/internal/usecase/payment"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type PaymentHandler struct{ uc *uc.Usecase }

func NewPaymentHandler(u *uc.Usecase) *PaymentHandler { return &PaymentHandler{uc: u} }

type applyPaymentReq struct {
	InterestPaid  float64 `json:"interest_paid"  validate:"gte=0,dec2"`
	PrincipalPaid float64 `json:"principal_paid" validate:"gte=0,dec2"`
	Renew         bool    `json:"renew"`
	Note          string  `json:"note" validate:"omitempty,max=500"`
}

func (h *PaymentHandler) ApplyPayment(c echo.Context) error {
	sess, ok := appmw.SessionFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "missing session"})
	}
	var req applyPaymentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}

	dto, err := h.uc.Apply(c.Request().Context(), sess, c.Param("loan_id"), uc.ApplyInput{
		InterestPaid:  decimal.NewFromFloat(req.InterestPaid).Round(2),
		PrincipalPaid: decimal.NewFromFloat(req.PrincipalPaid).Round(2),
		Renew:         req.Renew,
		Note:          req.Note,
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
