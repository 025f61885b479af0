package dbschema

import (
	"pantrypal.app/pantry-api-gateway/app/domain/user"
	"pantrypal.app/pantry-api-gateway/app/infrastructure/database"
)

func init() {
	database.RegisterSchemaForAutoMigrate(User{})
}

type User struct {
	BaseModel
	PublicID    string `gorm:"type:varchar(50);uniqueIndex;not null"`
	FirebaseUID string `gorm:"type:varchar(128);uniqueIndex;not null"`
	Email       string `gorm:"type:varchar(255);index"`
	DeviceToken string `gorm:"type:text"`
}

func NewSchemaUser(u *user.User) *User {
	return &User{
		BaseModel: BaseModel{
			ID:        u.ID,
			CreatedAt: u.CreatedAt,
		},
		PublicID:    u.PublicID,
		FirebaseUID: u.FirebaseUID,
		Email:       u.Email,
		DeviceToken: u.DeviceToken,
	}
}

func (u *User) EtoD() *user.User {
	return &user.User{
		ID:          u.ID,
		PublicID:    u.PublicID,
		FirebaseUID: u.FirebaseUID,
		Email:       u.Email,
		DeviceToken: u.DeviceToken,
		CreatedAt:   u.CreatedAt,
	}
}
