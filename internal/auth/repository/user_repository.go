package repository

import (
	"errors"
	"strings"
	"time"

	authdomain "genprd-backend/internal/auth/domain"
	"genprd-backend/pkg/apperror"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// userRepository implements UserRepository on gorm. Every call is a direct
// store round-trip; all mutations here are single-row writes.
type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) CreateUser(user *authdomain.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()
	if err := r.db.Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(err.Error(), "duplicate key") {
			return apperror.ErrDuplicateEmail
		}
		return err
	}
	return nil
}

func (r *userRepository) FindUserByEmail(email string) (*authdomain.User, error) {
	var user authdomain.User
	err := r.db.Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindUserByGoogleID(googleID string) (*authdomain.User, error) {
	var user authdomain.User
	err := r.db.Where("google_id = ?", googleID).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindUserByID(id string) (*authdomain.User, error) {
	var user authdomain.User
	err := r.db.Where("id = ?", id).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) UpdateUser(user *authdomain.User) error {
	user.UpdatedAt = time.Now()
	return r.db.Save(user).Error
}

func (r *userRepository) SaveRefreshToken(token *authdomain.RefreshToken) error {
	if token.ID == "" {
		token.ID = uuid.New().String()
	}
	token.CreatedAt = time.Now()
	token.UpdatedAt = time.Now()
	return r.db.Create(token).Error
}

// FindActiveRefreshToken returns a record only while it is usable: not
// revoked and not past its stored expiry. Everything else is not-found.
func (r *userRepository) FindActiveRefreshToken(token string) (*authdomain.RefreshToken, error) {
	var record authdomain.RefreshToken
	err := r.db.
		Where("token = ? AND revoked = ? AND expires_at > ?", token, false, now()).
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}
	return &record, nil
}

func (r *userRepository) RevokeRefreshToken(token *authdomain.RefreshToken) error {
	return r.db.Model(&authdomain.RefreshToken{}).
		Where("id = ?", token.ID).
		Updates(map[string]interface{}{"revoked": true, "updated_at": time.Now()}).Error
}

func (r *userRepository) RevokeAllForUser(userID string) error {
	return r.db.Model(&authdomain.RefreshToken{}).
		Where("user_id = ? AND revoked = ?", userID, false).
		Updates(map[string]interface{}{"revoked": true, "updated_at": time.Now()}).Error
}

func (r *userRepository) SavePasswordResetToken(token *authdomain.PasswordResetToken) error {
	if token.ID == "" {
		token.ID = uuid.New().String()
	}
	token.CreatedAt = time.Now()
	return r.db.Create(token).Error
}

func (r *userRepository) FindActivePasswordResetToken(token string) (*authdomain.PasswordResetToken, error) {
	var record authdomain.PasswordResetToken
	err := r.db.
		Where("token = ? AND revoked = ? AND expires_at > ?", token, false, now()).
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}
	return &record, nil
}

func (r *userRepository) RevokePasswordResetToken(token *authdomain.PasswordResetToken) error {
	return r.db.Model(&authdomain.PasswordResetToken{}).
		Where("id = ?", token.ID).
		Update("revoked", true).Error
}

// HashPassword hashes a password using bcrypt.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPasswordHash compares a password with a hash.
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
