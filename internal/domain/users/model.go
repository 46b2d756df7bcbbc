package users

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// DefaultEmail identifies the single-user-mode account created on first login.
const DefaultEmail = "user@paper-tracker.local"

type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Email     *string   `gorm:"size:255;uniqueIndex" json:"email,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// EnsureDefault returns the single-user-mode account, creating it if missing.
func EnsureDefault(db *gorm.DB) (*User, error) {
	var user User
	err := db.Where("email = ?", DefaultEmail).First(&user).Error
	if err == nil {
		return &user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	email := DefaultEmail
	user = User{Email: &email}
	if err := db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Another request created it first.
			if lerr := db.Where("email = ?", DefaultEmail).First(&user).Error; lerr == nil {
				return &user, nil
			}
		}
		return nil, err
	}
	return &user, nil
}
