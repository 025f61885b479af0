package dbschema

import (
	"time"

	"pantrypal.app/pantry-api-gateway/app/domain/pantry"
	"pantrypal.app/pantry-api-gateway/app/infrastructure/database"
)

func init() {
	database.RegisterSchemaForAutoMigrate(UserIngredient{})
}

// UserIngredient is one pantry row, unique per (user, food).
type UserIngredient struct {
	BaseModel
	UserID    uint      `gorm:"not null;uniqueIndex:idx_user_ingredient_user_food"`
	FoodID    string    `gorm:"type:varchar(64);not null;uniqueIndex:idx_user_ingredient_user_food"`
	Quantity  int       `gorm:"not null;default:0"`
	DateAdded time.Time `gorm:"not null;index"`
}

func (u *UserIngredient) EtoD() *pantry.PantryItem {
	return &pantry.PantryItem{
		UserID:    u.UserID,
		FoodID:    u.FoodID,
		Quantity:  u.Quantity,
		DateAdded: u.DateAdded,
	}
}
