package domain

import "time"

// Rating is a single 1..5 vote by a user on a photo. One vote per user per
// photo, enforced both in the service and by the composite unique index.
type Rating struct {
	ID    int64 `json:"id" gorm:"primaryKey"`
	Value int   `json:"value" gorm:"column:rating;not null"`

	UserID int64 `json:"user_id" gorm:"not null;uniqueIndex:idx_ratings_user_photo"`
	User   User  `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`

	PhotoID int64 `json:"photo_id" gorm:"not null;uniqueIndex:idx_ratings_user_photo"`
	Photo   Photo `json:"-" gorm:"foreignKey:PhotoID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `json:"created_at"`
}

func (Rating) TableName() string { return "ratings" }
