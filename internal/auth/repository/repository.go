package repository

import (
	"time"

	authdomain "genprd-backend/internal/auth/domain"
)

// UserRepository is the credential store: users plus the token capability
// records that hang off them.
type UserRepository interface {
	CreateUser(user *authdomain.User) error
	FindUserByEmail(email string) (*authdomain.User, error)
	FindUserByGoogleID(googleID string) (*authdomain.User, error)
	FindUserByID(id string) (*authdomain.User, error)
	UpdateUser(user *authdomain.User) error

	SaveRefreshToken(token *authdomain.RefreshToken) error
	FindActiveRefreshToken(token string) (*authdomain.RefreshToken, error)
	RevokeRefreshToken(token *authdomain.RefreshToken) error
	RevokeAllForUser(userID string) error

	SavePasswordResetToken(token *authdomain.PasswordResetToken) error
	FindActivePasswordResetToken(token string) (*authdomain.PasswordResetToken, error)
	RevokePasswordResetToken(token *authdomain.PasswordResetToken) error
}

// now is indirected for the expiry comparisons in the gorm implementation.
var now = time.Now
