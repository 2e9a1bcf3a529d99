package http

import (
	"net/http"
	"time"

	appmw "prestamos-backend/internal/adapter/middleware"
	domain "prestamos-backend/internal/domain/loan"
	uc "prestamos-backend/internal/usecase/loan"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type LoanHandler struct{ uc *uc.Usecase }

func NewLoanHandler(u *uc.Usecase) *LoanHandler { return &LoanHandler{uc: u} }

const dateLayout = "2006-01-02"

type issueLoanReq struct {
	BorrowerName   string  `json:"borrower_name"    validate:"required,max=120"`
	BorrowerIDDoc  string  `json:"borrower_id_doc"  validate:"required,max=32"`
	BorrowerPhone  string  `json:"borrower_phone"   validate:"omitempty,max=32"`
	Principal      float64 `json:"principal"        validate:"required,gt=0,dec2"`
	MonthlyRatePct float64 `json:"monthly_rate_pct" validate:"gte=0,dec2"`
	// Canonical date `YYYY-MM-DD` (aligns with schema DATE)
	IssueDate string `json:"issue_date" validate:"required,datetime=2006-01-02"`
}

func (h *LoanHandler) IssueLoan(c echo.Context) error {
	sess, ok := appmw.SessionFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "missing session"})
	}
	var req issueLoanReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	issueDate, _ := time.Parse(dateLayout, req.IssueDate)

	dto, err := h.uc.Issue(c.Request().Context(), sess, uc.IssueLoanInput{
		BorrowerName:   req.BorrowerName,
		BorrowerIDDoc:  req.BorrowerIDDoc,
		BorrowerPhone:  req.BorrowerPhone,
		Principal:      decimal.NewFromFloat(req.Principal).Round(2),
		MonthlyRatePct: decimal.NewFromFloat(req.MonthlyRatePct).Round(2),
		IssueDate:      issueDate,
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *LoanHandler) GetLoan(c echo.Context) error {
	dto, err := h.uc.Get(c.Request().Context(), c.Param("loan_id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanHandler) ListLoans(c echo.Context) error {
	f := domain.ListFilter{Query: c.QueryParam("q")}
	if s := c.QueryParam("state"); s != "" {
		st := domain.State(s)
		if !st.Valid() {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "unknown state filter"})
		}
		f.State = st
	}
	out, err := h.uc.List(c.Request().Context(), f)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"loans": out, "count": len(out)})
}

func (h *LoanHandler) Summary(c echo.Context) error {
	s, err := h.uc.Summary(c.Request().Context())
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, s)
}

type correctLoanReq struct {
	BorrowerName   *string  `json:"borrower_name"    validate:"omitempty,max=120"`
	BorrowerIDDoc  *string  `json:"borrower_id_doc"  validate:"omitempty,max=32"`
	BorrowerPhone  *string  `json:"borrower_phone"   validate:"omitempty,max=32"`
	Principal      *float64 `json:"principal"        validate:"omitempty,gte=0,dec2"`
	MonthlyRatePct *float64 `json:"monthly_rate_pct" validate:"omitempty,gte=0,dec2"`
	NextDueDate    *string  `json:"next_due_date"    validate:"omitempty,datetime=2006-01-02"`
	State          *string  `json:"state"            validate:"omitempty,oneof=active paid"`
	Notes          *string  `json:"notes"`
	Reason         string   `json:"reason" validate:"omitempty,max=500"`
}

func (h *LoanHandler) CorrectLoan(c echo.Context) error {
	sess, ok := appmw.SessionFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "missing session"})
	}
	var req correctLoanReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}

	corr := domain.Correction{
		BorrowerName:  req.BorrowerName,
		BorrowerIDDoc: req.BorrowerIDDoc,
		BorrowerPhone: req.BorrowerPhone,
		Notes:         req.Notes,
	}
	if req.Principal != nil {
		p := decimal.NewFromFloat(*req.Principal).Round(2)
		corr.Principal = &p
	}
	if req.MonthlyRatePct != nil {
		r := decimal.NewFromFloat(*req.MonthlyRatePct).Round(2)
		corr.MonthlyRatePct = &r
	}
	if req.NextDueDate != nil {
		d, _ := time.Parse(dateLayout, *req.NextDueDate)
		corr.NextDueDate = &d
	}
	if req.State != nil {
		st := domain.State(*req.State)
		corr.State = &st
	}

	dto, err := h.uc.Correct(c.Request().Context(), sess, c.Param("loan_id"), uc.CorrectInput{
		Correction: corr,
		Reason:     req.Reason,
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanHandler) DeleteLoan(c echo.Context) error {
	sess, ok := appmw.SessionFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "missing session"})
	}
	if err := h.uc.Delete(c.Request().Context(), sess, c.Param("loan_id")); err != nil {
		return writeDomainError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *LoanHandler) AuditTrail(c echo.Context) error {
	entries, err := h.uc.AuditTrail(c.Request().Context(), c.Param("loan_id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"entries": entries, "count": len(entries)})
}
