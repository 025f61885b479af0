package report

import (
	"context"
	"time"
)

type Report struct {
	ID          uint
	UserID      uint
	Subject     string
	Description string
	Date        time.Time
}

type ReportRepository interface {
	Create(ctx context.Context, r *Report) error
	// FindByUser returns the reports of a user newest first.
	FindByUser(ctx context.Context, userID uint) ([]*Report, error)
}
