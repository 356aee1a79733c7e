package domain

import "time"

type Photo struct {
	ID          int64  `json:"id" gorm:"primaryKey"`
	URL         string `json:"url" gorm:"not null"`
	StorageKey  string `json:"-" gorm:"column:storage_key"`
	Description string `json:"description"`

	OwnerID int64 `json:"owner_id" gorm:"index;not null"`
	Owner   User  `json:"-" gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE"`

	Tags []Tag `json:"tags" gorm:"many2many:photo_tags"`

	CreatedAt time.Time `json:"created_at"`
}

func (Photo) TableName() string { return "photos" }

type Tag struct {
	ID   int64  `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"uniqueIndex;not null"`
}

func (Tag) TableName() string { return "tags" }

// TransformedImage records a derived rendition of a photo produced by the
// image provider (resize, filter). The original photo row is never touched.
type TransformedImage struct {
	ID              int64  `json:"id" gorm:"primaryKey"`
	OriginalPhotoID int64  `json:"original_photo_id" gorm:"index;not null"`
	OriginalPhoto   Photo  `json:"-" gorm:"foreignKey:OriginalPhotoID;constraint:OnDelete:CASCADE"`
	TransformedURL  string `json:"transformed_url" gorm:"not null"`
	QRCodeURL       string `json:"qr_code_url,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

func (TransformedImage) TableName() string { return "transformed_images" }
