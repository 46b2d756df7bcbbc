package categories

import "time"

type Category struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index;uniqueIndex:uq_category_user_name" json:"-"`
	Name      string    `gorm:"size:100;not null;uniqueIndex:uq_category_user_name" json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
