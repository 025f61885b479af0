package dbschema

import (
	"time"

	"pantrypal.app/pantry-api-gateway/app/domain/report"
	"pantrypal.app/pantry-api-gateway/app/infrastructure/database"
)

func init() {
	database.RegisterSchemaForAutoMigrate(Report{})
}

type Report struct {
	BaseModel
	UserID      uint      `gorm:"not null;index"`
	Subject     string    `gorm:"type:varchar(255);not null"`
	Description string    `gorm:"type:text;not null"`
	Date        time.Time `gorm:"not null;index"`
}

func NewSchemaReport(r *report.Report) *Report {
	return &Report{
		BaseModel: BaseModel{
			ID: r.ID,
		},
		UserID:      r.UserID,
		Subject:     r.Subject,
		Description: r.Description,
		Date:        r.Date,
	}
}

func (r *Report) EtoD() *report.Report {
	return &report.Report{
		ID:          r.ID,
		UserID:      r.UserID,
		Subject:     r.Subject,
		Description: r.Description,
		Date:        r.Date,
	}
}
