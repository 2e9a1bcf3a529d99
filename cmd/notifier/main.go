package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"

	"prestamos-backend/internal/adapter/repository/mysql"
	"prestamos-backend/internal/config"
	"prestamos-backend/internal/infrastructure/db"
	"prestamos-backend/internal/notifier"
	"prestamos-backend/internal/usecase/reminder"
)

// Daily job: mail the operator a digest of loans due in the next few days.
// Meant to run from cron; exits after one pass.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	if err := cfg.ValidateReminder(); err != nil {
		log.Fatal(err)
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		log.Fatal(err)
	}

	sender := notifier.NewSMTPSender(notifier.SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		User:     cfg.SMTPUser,
		Password: cfg.SMTPPass,
		To:       cfg.ReminderRecipient,
	})
	uc := reminder.NewUsecase(mysql.NewLoanRepository(gdb), sender, cfg.ReminderWindowDays)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	n, err := uc.Run(ctx, time.Now())
	if err != nil {
		log.Fatal(err)
	}
	if n == 0 {
		log.Println("reminder: nothing due in window")
		return
	}
	log.Printf("reminder: digest sent for %d loans", n)
}
