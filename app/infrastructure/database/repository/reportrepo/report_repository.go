package reportrepo

import (
	"context"

	"pantrypal.app/pantry-api-gateway/app/domain/report"
	"pantrypal.app/pantry-api-gateway/app/infrastructure/database/dbschema"
	"pantrypal.app/pantry-api-gateway/app/infrastructure/database/repository/transaction"
	"pantrypal.app/pantry-api-gateway/app/utils/functional"
)

type ReportGormRepository struct {
	db *transaction.Database
}

var _ report.ReportRepository = (*ReportGormRepository)(nil)

func NewReportGormRepository(db *transaction.Database) report.ReportRepository {
	return &ReportGormRepository{db: db}
}

func (r *ReportGormRepository) Create(ctx context.Context, rep *report.Report) error {
	model := dbschema.NewSchemaReport(rep)
	if err := r.db.GetTx(ctx).Create(model).Error; err != nil {
		return err
	}
	rep.ID = model.ID
	return nil
}

func (r *ReportGormRepository) FindByUser(ctx context.Context, userID uint) ([]*report.Report, error) {
	var rows []*dbschema.Report
	if err := r.db.GetTx(ctx).Where("user_id = ?", userID).Order("date DESC, id DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return functional.Map(rows, func(row *dbschema.Report) *report.Report {
		return row.EtoD()
	}), nil
}
