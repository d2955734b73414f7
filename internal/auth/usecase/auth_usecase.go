package usecase

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	authdomain "genprd-backend/internal/auth/domain"
	authdto "genprd-backend/internal/auth/dto"
	"genprd-backend/internal/auth/repository"
	"genprd-backend/pkg/apperror"
	"genprd-backend/pkg/logger"
	"genprd-backend/pkg/token"
)

// resetTokenExpiry is deliberately short: a reset capability outlives a
// single email round-trip, nothing more.
const resetTokenExpiry = time.Hour

type authUsecase struct {
	userRepo repository.UserRepository
	codec    *token.Codec
	google   GoogleBridge
}

func NewAuthUsecase(userRepo repository.UserRepository, codec *token.Codec, google GoogleBridge) AuthUsecase {
	return &authUsecase{
		userRepo: userRepo,
		codec:    codec,
		google:   google,
	}
}

func (u *authUsecase) Register(req *authdto.RegisterRequest) (*authdto.TokenPair, error) {
	hashed, err := repository.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &authdomain.User{
		Email:    req.Email,
		Name:     req.Name,
		Password: &hashed,
	}
	if err := u.userRepo.CreateUser(user); err != nil {
		return nil, err
	}

	return u.issueTokenPair(user)
}

func (u *authUsecase) Login(req *authdto.LoginRequest) (*authdto.TokenPair, error) {
	// Absent account, OAuth-only account and wrong password all collapse
	// into the same error so responses don't reveal which emails exist.
	user, err := u.userRepo.FindUserByEmail(req.Email)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.ErrInvalidCredentials
		}
		return nil, err
	}
	if user.Password == nil {
		return nil, apperror.ErrInvalidCredentials
	}
	if !repository.CheckPasswordHash(req.Password, *user.Password) {
		return nil, apperror.ErrInvalidCredentials
	}

	return u.issueTokenPair(user)
}

func (u *authUsecase) GoogleAuthURL(redirectURI, state string) string {
	return u.google.AuthCodeURL(redirectURI, state)
}

func (u *authUsecase) OAuthLogin(ctx context.Context, code, redirectURI string) (*authdto.TokenPair, error) {
	profile, err := u.google.ExchangeCode(ctx, code, redirectURI)
	if err != nil {
		return nil, err
	}

	user, err := u.findOrCreateGoogleUser(profile.GoogleID, profile.Email, profile.Name, profile.AvatarURL)
	if err != nil {
		return nil, err
	}

	return u.issueTokenPair(user)
}

func (u *authUsecase) VerifyGoogleToken(ctx context.Context, idToken string) (*authdto.TokenPair, error) {
	profile, err := u.google.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, err
	}

	// Lookup is by email here: this path self-heals accounts created under
	// one federated id that later authenticate under a corrected one.
	user, err := u.userRepo.FindUserByEmail(profile.Email)
	switch {
	case err == nil:
		if user.GoogleID == nil || *user.GoogleID != profile.GoogleID {
			googleID := profile.GoogleID
			user.GoogleID = &googleID
			if err := u.userRepo.UpdateUser(user); err != nil {
				return nil, err
			}
		}
	case errors.Is(err, apperror.ErrNotFound):
		googleID := profile.GoogleID
		user = &authdomain.User{
			GoogleID:  &googleID,
			Email:     profile.Email,
			Name:      profile.Name,
			AvatarURL: profile.AvatarURL,
		}
		if err := u.userRepo.CreateUser(user); err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	return u.issueTokenPair(user)
}

func (u *authUsecase) findOrCreateGoogleUser(googleID, email, name, avatarURL string) (*authdomain.User, error) {
	user, err := u.userRepo.FindUserByGoogleID(googleID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, apperror.ErrNotFound) {
		return nil, err
	}

	// The email may already exist from a password signup; link the
	// federated id to it instead of failing the unique constraint.
	user, err = u.userRepo.FindUserByEmail(email)
	if err == nil {
		user.GoogleID = &googleID
		if updateErr := u.userRepo.UpdateUser(user); updateErr != nil {
			return nil, updateErr
		}
		return user, nil
	}
	if !errors.Is(err, apperror.ErrNotFound) {
		return nil, err
	}

	user = &authdomain.User{
		GoogleID:  &googleID,
		Email:     email,
		Name:      name,
		AvatarURL: avatarURL,
	}
	if err := u.userRepo.CreateUser(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (u *authUsecase) RefreshAccessToken(refreshToken string) (string, error) {
	claims, err := u.codec.VerifyRefresh(refreshToken)
	if err != nil {
		return "", err
	}

	// Second, independent expiry check: the stored record must still be
	// active even when the signature's own expiry claim verifies.
	if _, err := u.userRepo.FindActiveRefreshToken(refreshToken); err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return "", apperror.ErrInvalidRefreshToken
		}
		return "", err
	}

	user, err := u.userRepo.FindUserByID(claims.UserID)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return "", apperror.ErrInvalidRefreshToken
		}
		return "", err
	}

	// The refresh token itself is not rotated.
	return u.codec.IssueAccess(user.ID, user.Email)
}

// Logout is global: every live session for the user is revoked, regardless
// of which device initiated it.
func (u *authUsecase) Logout(userID string) error {
	return u.userRepo.RevokeAllForUser(userID)
}

func (u *authUsecase) RequestPasswordReset(email string) (string, error) {
	user, err := u.userRepo.FindUserByEmail(email)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			// Unknown email gets the same outward response as a known one.
			return "", nil
		}
		return "", err
	}

	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	plaintext := hex.EncodeToString(raw)

	record := &authdomain.PasswordResetToken{
		UserID:    user.ID,
		Token:     plaintext,
		ExpiresAt: time.Now().Add(resetTokenExpiry),
	}
	if err := u.userRepo.SavePasswordResetToken(record); err != nil {
		return "", err
	}

	logger.Log.WithField("user_id", user.ID).Info("password reset token issued")
	return plaintext, nil
}

func (u *authUsecase) ResetPassword(resetToken, newPassword string) error {
	record, err := u.userRepo.FindActivePasswordResetToken(resetToken)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return apperror.ErrInvalidOrExpiredToken
		}
		return err
	}

	user, err := u.userRepo.FindUserByID(record.UserID)
	if err != nil {
		return err
	}

	hashed, err := repository.HashPassword(newPassword)
	if err != nil {
		return err
	}
	user.Password = &hashed
	if err := u.userRepo.UpdateUser(user); err != nil {
		return err
	}

	// Single use, and a successful reset ends every existing session.
	if err := u.userRepo.RevokePasswordResetToken(record); err != nil {
		return err
	}
	return u.userRepo.RevokeAllForUser(user.ID)
}

func (u *authUsecase) ValidateAccessToken(accessToken string) (*token.AccessClaims, error) {
	return u.codec.VerifyAccess(accessToken)
}

func (u *authUsecase) GetProfile(userID string) (*authdomain.User, error) {
	return u.userRepo.FindUserByID(userID)
}

func (u *authUsecase) UpdateProfile(userID, name string) (*authdomain.User, error) {
	user, err := u.userRepo.FindUserByID(userID)
	if err != nil {
		return nil, err
	}
	// Email and avatar come from the identity provider; only the display
	// name is editable.
	user.Name = name
	if err := u.userRepo.UpdateUser(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (u *authUsecase) UpdateFCMToken(userID, fcmToken string) error {
	user, err := u.userRepo.FindUserByID(userID)
	if err != nil {
		return err
	}
	user.FCMToken = &fcmToken
	return u.userRepo.UpdateUser(user)
}

func (u *authUsecase) issueTokenPair(user *authdomain.User) (*authdto.TokenPair, error) {
	accessToken, err := u.codec.IssueAccess(user.ID, user.Email)
	if err != nil {
		return nil, err
	}

	refreshToken, err := u.codec.IssueRefresh(user.ID)
	if err != nil {
		return nil, err
	}

	// Additive: prior sessions stay valid, each device keeps its own token.
	record := &authdomain.RefreshToken{
		UserID:    user.ID,
		Token:     refreshToken,
		ExpiresAt: time.Now().Add(u.codec.RefreshExpiry()),
	}
	if err := u.userRepo.SaveRefreshToken(record); err != nil {
		return nil, err
	}

	return &authdto.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         user.PublicView(),
	}, nil
}
