package reminder

import (
	"context"
	"time"

	domain "prestamos-backend/internal/domain/loan"

	"github.com/shopspring/decimal"
)

// Item is one upcoming due date in the daily digest.
type Item struct {
	LoanID       string
	BorrowerName string
	InterestDue  decimal.Decimal
	DueDate      time.Time
	DaysLeft     int
}

type Digest struct {
	GeneratedAt time.Time
	WindowDays  int
	Items       []Item
}

// Sender delivers a rendered digest. The production implementation is the
// SMTP notifier; tests plug in a fake.
type Sender interface {
	Send(ctx context.Context, d Digest) error
}

type Usecase struct {
	loans  domain.Repository
	sender Sender
	window int
}

func NewUsecase(loans domain.Repository, sender Sender, windowDays int) *Usecase {
	return &Usecase{loans: loans, sender: sender, window: windowDays}
}

// Run scans active loans due within the window and sends the digest.
// Returns the number of loans included; nothing is sent when the window is
// empty.
func (u *Usecase) Run(ctx context.Context, now time.Time) (int, error) {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	loans, err := u.loans.ListDueWithin(ctx, today, u.window)
	if err != nil {
		return 0, err
	}

	d := Digest{GeneratedAt: now.UTC(), WindowDays: u.window}
	for _, l := range loans {
		due := time.Date(l.NextDueDate.Year(), l.NextDueDate.Month(), l.NextDueDate.Day(), 0, 0, 0, 0, time.UTC)
		daysLeft := int(due.Sub(today).Hours() / 24)
		if daysLeft < 0 || daysLeft > u.window {
			continue
		}
		d.Items = append(d.Items, Item{
			LoanID:       l.LoanID,
			BorrowerName: l.BorrowerName,
			InterestDue:  l.InterestDue,
			DueDate:      due,
			DaysLeft:     daysLeft,
		})
	}
	if len(d.Items) == 0 {
		return 0, nil
	}
	if err := u.sender.Send(ctx, d); err != nil {
		return 0, err
	}
	return len(d.Items), nil
}
