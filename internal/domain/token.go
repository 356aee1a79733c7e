package domain

import "time"

// Token is a persisted record of an issued credential. Access and refresh
// tokens share this shape; they differ only in the TTL chosen at issuance.
//
// ExpiresAt is fixed at creation and never mutated afterwards.
type Token struct {
	ID int64 `json:"id" gorm:"primaryKey"`

	Value string `json:"-" gorm:"size:1024;uniqueIndex;not null"`

	OwnerID int64 `json:"owner_id" gorm:"index;not null"`
	Owner   User  `json:"-" gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at" gorm:"index;not null"`
}

func (Token) TableName() string { return "tokens" }

func (t *Token) IsExpired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}

// BlacklistedToken marks a token value as permanently unusable, regardless of
// its signed expiry. The set is independent of the tokens table: a value can
// stay blacklisted after its Token row has been swept.
type BlacklistedToken struct {
	Value         string    `json:"-" gorm:"column:token;size:1024;primaryKey"`
	BlacklistedOn time.Time `json:"blacklisted_on" gorm:"autoCreateTime"`
}

func (BlacklistedToken) TableName() string { return "blacklisted_tokens" }
