package dbschema

import (
	"github.com/shopspring/decimal"
	"pantrypal.app/pantry-api-gateway/app/domain/ingredient"
	"pantrypal.app/pantry-api-gateway/app/infrastructure/database"
)

func init() {
	database.RegisterSchemaForAutoMigrate(Ingredient{})
}

// Ingredient is the internal food catalog. ExpirationDays is the shelf life
// the expiry scanner works with.
type Ingredient struct {
	BaseModel
	FoodID         string          `gorm:"type:varchar(64);uniqueIndex;not null"`
	Name           string          `gorm:"type:varchar(255);not null;index"`
	Category       string          `gorm:"type:varchar(128);index"`
	QuantityType   string          `gorm:"type:varchar(32)"`
	ExpirationDays int             `gorm:"not null;default:0"`
	ImageURL       string          `gorm:"type:varchar(512)"`
	Quantity       decimal.Decimal `gorm:"type:numeric(12,4);not null;default:0"`
	Fat            decimal.Decimal `gorm:"type:numeric(12,4);not null;default:0"`
	Cholesterol    decimal.Decimal `gorm:"type:numeric(12,4);not null;default:0"`
	Sodium         decimal.Decimal `gorm:"type:numeric(12,4);not null;default:0"`
	Potassium      decimal.Decimal `gorm:"type:numeric(12,4);not null;default:0"`
	Carbohydrate   decimal.Decimal `gorm:"type:numeric(12,4);not null;default:0"`
	Protein        decimal.Decimal `gorm:"type:numeric(12,4);not null;default:0"`
	Calorie        decimal.Decimal `gorm:"type:numeric(12,4);not null;default:0"`
}

func NewSchemaIngredient(i *ingredient.Ingredient) *Ingredient {
	return &Ingredient{
		FoodID:         i.FoodID,
		Name:           i.Name,
		Category:       i.Category,
		QuantityType:   i.QuantityType,
		ExpirationDays: i.ExpirationDays,
		ImageURL:       i.ImageURL,
		Quantity:       i.Quantity,
		Fat:            i.Fat,
		Cholesterol:    i.Cholesterol,
		Sodium:         i.Sodium,
		Potassium:      i.Potassium,
		Carbohydrate:   i.Carbohydrate,
		Protein:        i.Protein,
		Calorie:        i.Calorie,
	}
}

func (i *Ingredient) EtoD() *ingredient.Ingredient {
	return &ingredient.Ingredient{
		FoodID:         i.FoodID,
		Name:           i.Name,
		Category:       i.Category,
		QuantityType:   i.QuantityType,
		ExpirationDays: i.ExpirationDays,
		ImageURL:       i.ImageURL,
		Quantity:       i.Quantity,
		Fat:            i.Fat,
		Cholesterol:    i.Cholesterol,
		Sodium:         i.Sodium,
		Potassium:      i.Potassium,
		Carbohydrate:   i.Carbohydrate,
		Protein:        i.Protein,
		Calorie:        i.Calorie,
	}
}
