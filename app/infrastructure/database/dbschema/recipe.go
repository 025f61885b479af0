package dbschema

import (
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"pantrypal.app/pantry-api-gateway/app/domain/recipe"
	"pantrypal.app/pantry-api-gateway/app/infrastructure/database"
)

func init() {
	database.RegisterSchemaForAutoMigrate(Recipe{})
}

type Recipe struct {
	BaseModel
	UserID      uint                        `gorm:"not null;uniqueIndex:idx_recipe_user_uri"`
	URI         string                      `gorm:"type:varchar(512);not null;uniqueIndex:idx_recipe_user_uri"`
	Label       string                      `gorm:"type:varchar(255);not null"`
	Image       string                      `gorm:"type:text"`
	URL         string                      `gorm:"type:text"`
	Calories    decimal.Decimal             `gorm:"type:numeric(12,4);not null;default:0"`
	TotalWeight decimal.Decimal             `gorm:"type:numeric(12,4);not null;default:0"`
	CuisineType datatypes.JSONSlice[string] `gorm:"type:jsonb"`
	MealType    datatypes.JSONSlice[string] `gorm:"type:jsonb"`
	DishType    datatypes.JSONSlice[string] `gorm:"type:jsonb"`
}

func NewSchemaRecipe(r *recipe.Recipe) *Recipe {
	return &Recipe{
		BaseModel: BaseModel{
			CreatedAt: r.CreatedAt,
		},
		UserID:      r.UserID,
		URI:         r.URI,
		Label:       r.Label,
		Image:       r.Image,
		URL:         r.URL,
		Calories:    r.Calories,
		TotalWeight: r.TotalWeight,
		CuisineType: datatypes.NewJSONSlice(nonNil(r.CuisineType)),
		MealType:    datatypes.NewJSONSlice(nonNil(r.MealType)),
		DishType:    datatypes.NewJSONSlice(nonNil(r.DishType)),
	}
}

func (r *Recipe) EtoD() *recipe.Recipe {
	return &recipe.Recipe{
		UserID:      r.UserID,
		URI:         r.URI,
		Label:       r.Label,
		Image:       r.Image,
		URL:         r.URL,
		Calories:    r.Calories,
		TotalWeight: r.TotalWeight,
		CuisineType: []string(r.CuisineType),
		MealType:    []string(r.MealType),
		DishType:    []string(r.DishType),
		CreatedAt:   r.CreatedAt,
	}
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
