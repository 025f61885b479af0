package pantryrepo

import (
	"context"
	"time"

	"pantrypal.app/pantry-api-gateway/app/domain/expiry"
	"pantrypal.app/pantry-api-gateway/app/infrastructure/database/repository/transaction"
	"pantrypal.app/pantry-api-gateway/app/utils/functional"
)

type OwnershipGormRepository struct {
	db *transaction.Database
}

var _ expiry.OwnershipRepository = (*OwnershipGormRepository)(nil)

func NewOwnershipGormRepository(db *transaction.Database) expiry.OwnershipRepository {
	return &OwnershipGormRepository{db: db}
}

// An item is expiring soon when 0 <= shelf - floor(elapsed days) <= 1, that is
// shelf - 1 <= elapsed < shelf + 1 days. Intervals are built from hours so the
// window does not move with the session time zone.
const (
	windowOpenDays   = 1
	windowClosedDays = -1
)

// acquisitionWindow mirrors the SQL bounds: acquired_at in (after, notAfter].
func acquisitionWindow(at time.Time, shelfLifeDays int) (after time.Time, notAfter time.Time) {
	day := 24 * time.Hour
	after = at.Add(-time.Duration(shelfLifeDays+windowOpenDays) * day)
	notAfter = at.Add(-time.Duration(shelfLifeDays+windowClosedDays) * day)
	return after, notAfter
}

type ownershipRow struct {
	UserID         uint
	FoodID         string
	Name           string
	Quantity       int
	DateAdded      time.Time
	ExpirationDays int
}

// FindOwnershipRecords joins pantry rows with the catalog shelf life. With
// ExpiringAt set, rows are narrowed to acquisitionWindow of their shelf life.
// The scanner applies the exact predicate afterwards.
func (r *OwnershipGormRepository) FindOwnershipRecords(ctx context.Context, filter expiry.OwnershipFilter) ([]*expiry.OwnershipRecord, error) {
	sql := r.db.GetTx(ctx).
		Table("user_ingredient AS ui").
		Select("ui.user_id, ui.food_id, ii.name, ui.quantity, ui.date_added, ii.expiration_days").
		Joins("JOIN ingredient AS ii ON ii.food_id = ui.food_id")
	if filter.UserID != nil {
		sql = sql.Where("ui.user_id = ?", *filter.UserID)
	}
	if filter.ExpiringAt != nil {
		at := filter.ExpiringAt.UTC()
		sql = sql.
			Where("ui.date_added > ?::timestamptz - make_interval(hours => 24 * (ii.expiration_days + ?))", at, windowOpenDays).
			Where("ui.date_added <= ?::timestamptz - make_interval(hours => 24 * (ii.expiration_days + ?))", at, windowClosedDays)
	}
	var rows []*ownershipRow
	if err := sql.Order("ui.user_id, ui.date_added, ui.food_id").Scan(&rows).Error; err != nil {
		return nil, err
	}
	return functional.Map(rows, func(row *ownershipRow) *expiry.OwnershipRecord {
		return &expiry.OwnershipRecord{
			UserID:        row.UserID,
			FoodID:        row.FoodID,
			Name:          row.Name,
			Quantity:      row.Quantity,
			AcquiredAt:    row.DateAdded,
			ShelfLifeDays: row.ExpirationDays,
		}
	}), nil
}
