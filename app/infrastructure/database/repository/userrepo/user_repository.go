package userrepo

import (
	"context"
	"errors"

	"gorm.io/gorm"
	domain "pantrypal.app/pantry-api-gateway/app/domain/user"
	"pantrypal.app/pantry-api-gateway/app/infrastructure/database/dbschema"
	"pantrypal.app/pantry-api-gateway/app/infrastructure/database/repository/transaction"
)

type UserGormRepository struct {
	db *transaction.Database
}

var _ domain.UserRepository = (*UserGormRepository)(nil)

func NewUserGormRepository(db *transaction.Database) domain.UserRepository {
	return &UserGormRepository{
		db: db,
	}
}

func (r *UserGormRepository) Create(ctx context.Context, u *domain.User) error {
	model := dbschema.NewSchemaUser(u)
	if err := r.db.GetTx(ctx).Create(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrDuplicateUser
		}
		return err
	}
	u.ID = model.ID
	u.CreatedAt = model.CreatedAt
	return nil
}

// FindByID returns nil, nil when the id is unknown.
func (r *UserGormRepository) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	var model dbschema.User
	if err := r.db.GetTx(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.EtoD(), nil
}

func (repo *UserGormRepository) FindFirst(ctx context.Context, filter domain.UserFilter) (*domain.User, error) {
	var model dbschema.User
	sql := repo.applyFilter(repo.db.GetTx(ctx), filter)
	if err := sql.Order("id").First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.EtoD(), nil
}

// applyFilter applies conditions dynamically to the query.
func (repo *UserGormRepository) applyFilter(sql *gorm.DB, filter domain.UserFilter) *gorm.DB {
	if filter.PublicID != nil {
		sql = sql.Where("public_id = ?", *filter.PublicID)
	}
	if filter.FirebaseUID != nil {
		sql = sql.Where("firebase_uid = ?", *filter.FirebaseUID)
	}
	if filter.Email != nil {
		sql = sql.Where("email = ?", *filter.Email)
	}
	return sql
}

func (r *UserGormRepository) Update(ctx context.Context, u *domain.User) error {
	return r.db.GetTx(ctx).
		Model(&dbschema.User{}).
		Where("id = ?", u.ID).
		Updates(map[string]any{
			"email":        u.Email,
			"device_token": u.DeviceToken,
		}).Error
}
