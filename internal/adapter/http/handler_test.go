package http

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"

	appmw "prestamos-backend/internal/adapter/middleware"
	domain "prestamos-backend/internal/domain/loan"
	"prestamos-backend/internal/domain/session"
	"prestamos-backend/internal/domain/uow"
	"prestamos-backend/internal/testutil/auditmock"
	"prestamos-backend/internal/testutil/loanmock"
	"prestamos-backend/internal/testutil/partnermock"
	"prestamos-backend/internal/testutil/uowmock"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// -------- shared helpers --------

func newEchoWithValidator() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func mustJSON(v any) *bytes.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

var (
	adminSess  = session.Session{ActorID: strings.Repeat("e", 32), Role: session.RoleAdmin}
	viewerSess = session.Session{ActorID: strings.Repeat("f", 32), Role: session.RoleViewer}
)

func asAdmin(c echo.Context)  { appmw.WithSession(c, adminSess) }
func asViewer(c echo.Context) { appmw.WithSession(c, viewerSess) }

// passthroughUoW wires the mocks into a unit of work that runs callbacks
// directly, locking nothing.
func passthroughUoW(loans *loanmock.Repo, partners *partnermock.Repo, audits *auditmock.Repo) (*uowmock.UoW, uow.Repos) {
	repos := uow.Repos{Loans: loans, Partners: partners, Audits: audits}
	return uowmock.Passthrough(repos, func(loanID string) (*domain.Loan, error) {
		return loans.GetByLoanIDForUpdate(context.Background(), loanID)
	}), repos
}

func containsFieldMsg(fe []FieldError, field, msg string) bool {
	for _, e := range fe {
		if e.Field == field && strings.Contains(e.Message, msg) {
			return true
		}
	}
	return false
}
