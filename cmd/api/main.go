package main

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	httpadp "prestamos-backend/internal/adapter/http"
	appmw "prestamos-backend/internal/adapter/middleware"
	"prestamos-backend/internal/adapter/repository/mysql"
	"prestamos-backend/internal/config"
	"prestamos-backend/internal/infrastructure/cache"
	"prestamos-backend/internal/infrastructure/db"
	loanuc "prestamos-backend/internal/usecase/loan"
	partneruc "prestamos-backend/internal/usecase/partner"
	paymentuc "prestamos-backend/internal/usecase/payment"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		log.Fatal(err)
	}
	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		log.Fatal(err)
	}

	loanRepo := mysql.NewLoanRepository(gdb)
	partnerRepo := mysql.NewPartnerShareRepository(gdb)
	auditRepo := mysql.NewAuditRepository(gdb)
	tx := mysql.NewGormUoW(gdb)

	loanUC := loanuc.NewUsecase(loanRepo, auditRepo, tx)
	paymentUC := paymentuc.NewUsecase(tx)
	partnerUC := partneruc.NewUsecase(loanRepo, partnerRepo, auditRepo, tx)

	h := httpadp.NewHandler()
	lh := httpadp.NewLoanHandler(loanUC)
	ph := httpadp.NewPaymentHandler(paymentUC)
	sh := httpadp.NewPartnerHandler(partnerUC)

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Logger(), middleware.Recover())
	e.Validator = httpadp.NewValidator()

	e.GET("/health", h.Health)

	g := e.Group("/loans",
		appmw.ActorSession([]byte(cfg.JWTSecret)),
		appmw.Idempotency(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second),
	)
	g.POST("", lh.IssueLoan)
	g.GET("", lh.ListLoans)
	g.GET("/summary", lh.Summary)
	g.GET("/:loan_id", lh.GetLoan)
	g.PATCH("/:loan_id", lh.CorrectLoan)
	g.DELETE("/:loan_id", lh.DeleteLoan)
	g.GET("/:loan_id/audit", lh.AuditTrail)
	g.POST("/:loan_id/payments", ph.ApplyPayment)
	g.PUT("/:loan_id/partners", sh.DistributeShares)
	g.GET("/:loan_id/partners/earnings", sh.Earnings)

	addr := ":" + cfg.AppPort
	log.Printf("listening on %s", addr)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
