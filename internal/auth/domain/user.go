package domain

import "time"

// User is the identity record. Password-originated accounts carry a bcrypt
// hash and no GoogleID; OAuth-originated accounts carry a GoogleID and no
// hash. Both set at once is tolerated (a password added after OAuth signup).
type User struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	GoogleID  *string   `json:"-" gorm:"index"`
	Email     string    `json:"email" gorm:"uniqueIndex;not null"`
	Name      string    `json:"name" gorm:"not null"`
	AvatarURL string    `json:"avatar_url,omitempty"`
	Password  *string   `json:"-"` // bcrypt hash, nil for OAuth-only accounts
	FCMToken  *string   `json:"-"` // push-notification device token
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PublicView strips the user down to what API responses expose.
func (u *User) PublicView() map[string]interface{} {
	return map[string]interface{}{
		"id":         u.ID,
		"email":      u.Email,
		"name":       u.Name,
		"avatar_url": u.AvatarURL,
	}
}

// RefreshToken is a capability record: it is usable exactly while revoked is
// false and expires_at lies in the future. Multiple live tokens per user are
// allowed (one per device/session). Records are revoked, never deleted.
type RefreshToken struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	UserID    string    `json:"user_id" gorm:"index;not null"`
	Token     string    `json:"-" gorm:"type:text;not null;index"`
	ExpiresAt time.Time `json:"expires_at" gorm:"not null"`
	Revoked   bool      `json:"revoked" gorm:"not null;default:false"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PasswordResetToken has the same lifecycle as RefreshToken (active until
// expired or revoked, single use) but lives in its own table rather than
// overloading the session table.
type PasswordResetToken struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	UserID    string    `json:"user_id" gorm:"index;not null"`
	Token     string    `json:"-" gorm:"type:text;not null;index"`
	ExpiresAt time.Time `json:"expires_at" gorm:"not null"`
	Revoked   bool      `json:"revoked" gorm:"not null;default:false"`
	CreatedAt time.Time `json:"created_at"`
}
