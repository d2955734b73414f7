package usecase

import (
	"context"

	authdomain "genprd-backend/internal/auth/domain"
	authdto "genprd-backend/internal/auth/dto"
	"genprd-backend/pkg/googleauth"
	"genprd-backend/pkg/token"
)

// GoogleBridge is the slice of the OAuth provider integration the session
// manager needs. Satisfied by googleauth.Service.
type GoogleBridge interface {
	AuthCodeURL(redirectURI, state string) string
	ExchangeCode(ctx context.Context, code, redirectURI string) (*googleauth.Profile, error)
	VerifyIDToken(ctx context.Context, idToken string) (*googleauth.Profile, error)
}

// AuthUsecase orchestrates every session flow: password login, the two OAuth
// channels, refresh, logout and password reset.
type AuthUsecase interface {
	Register(req *authdto.RegisterRequest) (*authdto.TokenPair, error)
	Login(req *authdto.LoginRequest) (*authdto.TokenPair, error)

	GoogleAuthURL(redirectURI, state string) string
	OAuthLogin(ctx context.Context, code, redirectURI string) (*authdto.TokenPair, error)
	VerifyGoogleToken(ctx context.Context, idToken string) (*authdto.TokenPair, error)

	RefreshAccessToken(refreshToken string) (string, error)
	Logout(userID string) error

	// RequestPasswordReset returns the plaintext reset token so delivery can
	// hand it to an out-of-band channel (or expose it in development). The
	// token is empty when the email is unknown; the caller must respond
	// identically either way.
	RequestPasswordReset(email string) (string, error)
	ResetPassword(resetToken, newPassword string) error

	ValidateAccessToken(accessToken string) (*token.AccessClaims, error)

	GetProfile(userID string) (*authdomain.User, error)
	UpdateProfile(userID, name string) (*authdomain.User, error)
	UpdateFCMToken(userID, fcmToken string) error
}
