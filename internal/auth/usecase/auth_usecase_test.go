package usecase

import (
	"context"
	"testing"
	"time"

	authdomain "genprd-backend/internal/auth/domain"
	authdto "genprd-backend/internal/auth/dto"
	"genprd-backend/internal/auth/repository"
	"genprd-backend/pkg/apperror"
	"genprd-backend/pkg/googleauth"
	"genprd-backend/pkg/token"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryUserRepo is an in-memory credential store with the same active/
// revoked/expired semantics as the gorm implementation.
type memoryUserRepo struct {
	users       map[string]*authdomain.User
	refresh     map[string]*authdomain.RefreshToken
	resetTokens map[string]*authdomain.PasswordResetToken
}

func newMemoryUserRepo() *memoryUserRepo {
	return &memoryUserRepo{
		users:       map[string]*authdomain.User{},
		refresh:     map[string]*authdomain.RefreshToken{},
		resetTokens: map[string]*authdomain.PasswordResetToken{},
	}
}

func (m *memoryUserRepo) CreateUser(user *authdomain.User) error {
	for _, u := range m.users {
		if u.Email == user.Email {
			return apperror.ErrDuplicateEmail
		}
	}
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	user.CreatedAt = time.Now()
	m.users[user.ID] = user
	return nil
}

func (m *memoryUserRepo) FindUserByEmail(email string) (*authdomain.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, apperror.ErrNotFound
}

func (m *memoryUserRepo) FindUserByGoogleID(googleID string) (*authdomain.User, error) {
	for _, u := range m.users {
		if u.GoogleID != nil && *u.GoogleID == googleID {
			return u, nil
		}
	}
	return nil, apperror.ErrNotFound
}

func (m *memoryUserRepo) FindUserByID(id string) (*authdomain.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, apperror.ErrNotFound
}

func (m *memoryUserRepo) UpdateUser(user *authdomain.User) error {
	m.users[user.ID] = user
	return nil
}

func (m *memoryUserRepo) SaveRefreshToken(t *authdomain.RefreshToken) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	m.refresh[t.Token] = t
	return nil
}

func (m *memoryUserRepo) FindActiveRefreshToken(tok string) (*authdomain.RefreshToken, error) {
	t, ok := m.refresh[tok]
	if !ok || t.Revoked || !t.ExpiresAt.After(time.Now()) {
		return nil, apperror.ErrNotFound
	}
	return t, nil
}

func (m *memoryUserRepo) RevokeRefreshToken(t *authdomain.RefreshToken) error {
	t.Revoked = true
	return nil
}

func (m *memoryUserRepo) RevokeAllForUser(userID string) error {
	for _, t := range m.refresh {
		if t.UserID == userID {
			t.Revoked = true
		}
	}
	return nil
}

func (m *memoryUserRepo) SavePasswordResetToken(t *authdomain.PasswordResetToken) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	m.resetTokens[t.Token] = t
	return nil
}

func (m *memoryUserRepo) FindActivePasswordResetToken(tok string) (*authdomain.PasswordResetToken, error) {
	t, ok := m.resetTokens[tok]
	if !ok || t.Revoked || !t.ExpiresAt.After(time.Now()) {
		return nil, apperror.ErrNotFound
	}
	return t, nil
}

func (m *memoryUserRepo) RevokePasswordResetToken(t *authdomain.PasswordResetToken) error {
	t.Revoked = true
	return nil
}

var _ repository.UserRepository = (*memoryUserRepo)(nil)

// fakeBridge returns canned Google identities without network calls.
type fakeBridge struct {
	profile *googleauth.Profile
	err     error
}

func (f *fakeBridge) AuthCodeURL(redirectURI, state string) string {
	return "https://accounts.google.com/o/oauth2/auth?redirect_uri=" + redirectURI + "&state=" + state
}

func (f *fakeBridge) ExchangeCode(ctx context.Context, code, redirectURI string) (*googleauth.Profile, error) {
	return f.profile, f.err
}

func (f *fakeBridge) VerifyIDToken(ctx context.Context, idToken string) (*googleauth.Profile, error) {
	return f.profile, f.err
}

func newTestUsecase(t *testing.T) (AuthUsecase, *memoryUserRepo, *fakeBridge) {
	t.Helper()
	repo := newMemoryUserRepo()
	bridge := &fakeBridge{}
	codec := token.NewCodec("access-secret", "refresh-secret", time.Minute, time.Hour)
	return NewAuthUsecase(repo, codec, bridge), repo, bridge
}

func TestRegisterThenLogin(t *testing.T) {
	uc, _, _ := newTestUsecase(t)

	pair, err := uc.Register(&authdto.RegisterRequest{
		Email:    "alice@example.com",
		Password: "pw123456",
		Name:     "Alice",
	})
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)
	assert.Equal(t, "alice@example.com", pair.User["email"])

	loginPair, err := uc.Login(&authdto.LoginRequest{
		Email:    "alice@example.com",
		Password: "pw123456",
	})
	require.NoError(t, err)

	// The access token's claims decode back to the same user id.
	claims, err := uc.ValidateAccessToken(loginPair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, pair.User["id"], claims.UserID)
	assert.Equal(t, "alice@example.com", claims.Email)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	uc, _, _ := newTestUsecase(t)

	_, err := uc.Register(&authdto.RegisterRequest{Email: "a@b.com", Password: "pw123456", Name: "A"})
	require.NoError(t, err)

	_, err = uc.Register(&authdto.RegisterRequest{Email: "a@b.com", Password: "other-pw", Name: "B"})
	assert.ErrorIs(t, err, apperror.ErrDuplicateEmail)
}

func TestLoginGenericError(t *testing.T) {
	uc, repo, _ := newTestUsecase(t)

	_, err := uc.Register(&authdto.RegisterRequest{Email: "a@b.com", Password: "pw123456", Name: "A"})
	require.NoError(t, err)

	googleID := "g-123"
	require.NoError(t, repo.CreateUser(&authdomain.User{
		Email:    "oauth@b.com",
		Name:     "OAuth Only",
		GoogleID: &googleID,
	}))

	cases := []authdto.LoginRequest{
		{Email: "nobody@b.com", Password: "pw123456"}, // no such account
		{Email: "a@b.com", Password: "wrong-pw"},      // wrong password
		{Email: "oauth@b.com", Password: "pw123456"},  // no password hash
	}
	for _, req := range cases {
		_, err := uc.Login(&req)
		assert.ErrorIs(t, err, apperror.ErrInvalidCredentials)
	}
}

func TestRefreshAccessToken(t *testing.T) {
	uc, repo, _ := newTestUsecase(t)

	pair, err := uc.Register(&authdto.RegisterRequest{Email: "a@b.com", Password: "pw123456", Name: "A"})
	require.NoError(t, err)

	access, err := uc.RefreshAccessToken(pair.RefreshToken)
	require.NoError(t, err)
	claims, err := uc.ValidateAccessToken(access)
	require.NoError(t, err)
	assert.Equal(t, pair.User["id"], claims.UserID)

	// Revoked in store: the signature still verifies, the record check fails.
	record, err := repo.FindActiveRefreshToken(pair.RefreshToken)
	require.NoError(t, err)
	require.NoError(t, repo.RevokeRefreshToken(record))

	_, err = uc.RefreshAccessToken(pair.RefreshToken)
	assert.ErrorIs(t, err, apperror.ErrInvalidRefreshToken)
}

func TestRefreshWithForgedToken(t *testing.T) {
	uc, _, _ := newTestUsecase(t)

	other := token.NewCodec("wrong", "wrong", time.Minute, time.Hour)
	forged, err := other.IssueRefresh("someone")
	require.NoError(t, err)

	_, err = uc.RefreshAccessToken(forged)
	assert.ErrorIs(t, err, apperror.ErrInvalidOrExpiredToken)
}

func TestRefreshStoreExpiry(t *testing.T) {
	uc, repo, _ := newTestUsecase(t)

	pair, err := uc.Register(&authdto.RegisterRequest{Email: "a@b.com", Password: "pw123456", Name: "A"})
	require.NoError(t, err)

	// Store-side expiry is checked independently of the signature's claim.
	repo.refresh[pair.RefreshToken].ExpiresAt = time.Now().Add(-time.Minute)

	_, err = uc.RefreshAccessToken(pair.RefreshToken)
	assert.ErrorIs(t, err, apperror.ErrInvalidRefreshToken)
}

func TestLogoutRevokesAllSessions(t *testing.T) {
	uc, _, _ := newTestUsecase(t)

	first, err := uc.Register(&authdto.RegisterRequest{Email: "a@b.com", Password: "pw123456", Name: "A"})
	require.NoError(t, err)

	// Second concurrent session; logins are additive.
	second, err := uc.Login(&authdto.LoginRequest{Email: "a@b.com", Password: "pw123456"})
	require.NoError(t, err)
	_, err = uc.RefreshAccessToken(first.RefreshToken)
	require.NoError(t, err)

	userID, _ := first.User["id"].(string)
	require.NoError(t, uc.Logout(userID))

	_, err = uc.RefreshAccessToken(first.RefreshToken)
	assert.ErrorIs(t, err, apperror.ErrInvalidRefreshToken)
	_, err = uc.RefreshAccessToken(second.RefreshToken)
	assert.ErrorIs(t, err, apperror.ErrInvalidRefreshToken)
}

func TestOAuthLoginFindOrCreate(t *testing.T) {
	uc, repo, bridge := newTestUsecase(t)
	bridge.profile = &googleauth.Profile{
		GoogleID:  "g-42",
		Email:     "carol@example.com",
		Name:      "Carol",
		AvatarURL: "https://example.com/carol.png",
	}

	pair, err := uc.OAuthLogin(context.Background(), "code", "http://localhost:8080/cb")
	require.NoError(t, err)
	assert.Equal(t, "carol@example.com", pair.User["email"])

	created, err := repo.FindUserByGoogleID("g-42")
	require.NoError(t, err)

	// Second login reuses the record instead of creating another.
	_, err = uc.OAuthLogin(context.Background(), "code", "http://localhost:8080/cb")
	require.NoError(t, err)
	assert.Len(t, repo.users, 1)
	assert.Equal(t, created.ID, pair.User["id"])
}

func TestOAuthLoginLinksExistingEmail(t *testing.T) {
	uc, repo, bridge := newTestUsecase(t)

	_, err := uc.Register(&authdto.RegisterRequest{Email: "carol@example.com", Password: "pw123456", Name: "Carol"})
	require.NoError(t, err)

	bridge.profile = &googleauth.Profile{GoogleID: "g-42", Email: "carol@example.com", Name: "Carol"}
	_, err = uc.OAuthLogin(context.Background(), "code", "http://localhost:8080/cb")
	require.NoError(t, err)

	assert.Len(t, repo.users, 1)
	user, err := repo.FindUserByEmail("carol@example.com")
	require.NoError(t, err)
	require.NotNil(t, user.GoogleID)
	assert.Equal(t, "g-42", *user.GoogleID)
	assert.NotNil(t, user.Password) // password survives the link
}

func TestOAuthLoginExchangeFailure(t *testing.T) {
	uc, _, bridge := newTestUsecase(t)
	bridge.err = apperror.ErrOAuthExchangeFailed

	_, err := uc.OAuthLogin(context.Background(), "bad-code", "http://localhost:8080/cb")
	assert.ErrorIs(t, err, apperror.ErrOAuthExchangeFailed)
}

func TestVerifyGoogleTokenReconcilesGoogleID(t *testing.T) {
	uc, repo, bridge := newTestUsecase(t)

	staleID := "g-old"
	require.NoError(t, repo.CreateUser(&authdomain.User{
		Email:    "dave@example.com",
		Name:     "Dave",
		GoogleID: &staleID,
	}))

	bridge.profile = &googleauth.Profile{GoogleID: "g-new", Email: "dave@example.com", Name: "Dave"}
	_, err := uc.VerifyGoogleToken(context.Background(), "id-token")
	require.NoError(t, err)

	user, err := repo.FindUserByEmail("dave@example.com")
	require.NoError(t, err)
	assert.Equal(t, "g-new", *user.GoogleID)
}

func TestPasswordResetFlow(t *testing.T) {
	uc, _, _ := newTestUsecase(t)

	pair, err := uc.Register(&authdto.RegisterRequest{Email: "alice@example.com", Password: "pw123", Name: "Alice"})
	require.NoError(t, err)

	// Unknown email: same outward result, no token minted.
	unknown, err := uc.RequestPasswordReset("ghost@example.com")
	require.NoError(t, err)
	assert.Empty(t, unknown)

	resetToken, err := uc.RequestPasswordReset("alice@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, resetToken)

	require.NoError(t, uc.ResetPassword(resetToken, "pw456"))

	// Old refresh token is dead, old password rejected, new one works.
	_, err = uc.RefreshAccessToken(pair.RefreshToken)
	assert.ErrorIs(t, err, apperror.ErrInvalidRefreshToken)
	_, err = uc.Login(&authdto.LoginRequest{Email: "alice@example.com", Password: "pw123"})
	assert.ErrorIs(t, err, apperror.ErrInvalidCredentials)
	_, err = uc.Login(&authdto.LoginRequest{Email: "alice@example.com", Password: "pw456"})
	assert.NoError(t, err)

	// Single use.
	err = uc.ResetPassword(resetToken, "pw789")
	assert.ErrorIs(t, err, apperror.ErrInvalidOrExpiredToken)
}

func TestResetPasswordExpiredToken(t *testing.T) {
	uc, repo, _ := newTestUsecase(t)

	_, err := uc.Register(&authdto.RegisterRequest{Email: "alice@example.com", Password: "pw123", Name: "Alice"})
	require.NoError(t, err)

	resetToken, err := uc.RequestPasswordReset("alice@example.com")
	require.NoError(t, err)

	repo.resetTokens[resetToken].ExpiresAt = time.Now().Add(-time.Minute)

	err = uc.ResetPassword(resetToken, "pw456")
	assert.ErrorIs(t, err, apperror.ErrInvalidOrExpiredToken)
}

func TestUpdateProfileAndFCMToken(t *testing.T) {
	uc, repo, _ := newTestUsecase(t)

	pair, err := uc.Register(&authdto.RegisterRequest{Email: "a@b.com", Password: "pw123456", Name: "A"})
	require.NoError(t, err)
	userID, _ := pair.User["id"].(string)

	updated, err := uc.UpdateProfile(userID, "Renamed")
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)

	require.NoError(t, uc.UpdateFCMToken(userID, "device-token-1"))
	user, err := repo.FindUserByID(userID)
	require.NoError(t, err)
	require.NotNil(t, user.FCMToken)
	assert.Equal(t, "device-token-1", *user.FCMToken)
}
