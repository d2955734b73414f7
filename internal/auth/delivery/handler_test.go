package delivery

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	authdomain "genprd-backend/internal/auth/domain"
	authdto "genprd-backend/internal/auth/dto"
	"genprd-backend/pkg/config"
	"genprd-backend/pkg/token"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubAuthUsecase answers every flow with canned values; handler tests only
// exercise binding and response shaping.
type stubAuthUsecase struct {
	registered *authdto.RegisterRequest
	resetToken string
	resetPass  string
}

func (s *stubAuthUsecase) Register(req *authdto.RegisterRequest) (*authdto.TokenPair, error) {
	s.registered = req
	return &authdto.TokenPair{AccessToken: "access", RefreshToken: "refresh"}, nil
}

func (s *stubAuthUsecase) Login(req *authdto.LoginRequest) (*authdto.TokenPair, error) {
	return &authdto.TokenPair{AccessToken: "access", RefreshToken: "refresh"}, nil
}

func (s *stubAuthUsecase) GoogleAuthURL(redirectURI, state string) string { return "" }

func (s *stubAuthUsecase) OAuthLogin(ctx context.Context, code, redirectURI string) (*authdto.TokenPair, error) {
	return nil, nil
}

func (s *stubAuthUsecase) VerifyGoogleToken(ctx context.Context, idToken string) (*authdto.TokenPair, error) {
	return nil, nil
}

func (s *stubAuthUsecase) RefreshAccessToken(refreshToken string) (string, error) {
	return "access", nil
}

func (s *stubAuthUsecase) Logout(userID string) error { return nil }

func (s *stubAuthUsecase) RequestPasswordReset(email string) (string, error) {
	return "reset-token", nil
}

func (s *stubAuthUsecase) ResetPassword(resetToken, newPassword string) error {
	s.resetToken = resetToken
	s.resetPass = newPassword
	return nil
}

func (s *stubAuthUsecase) ValidateAccessToken(accessToken string) (*token.AccessClaims, error) {
	return &token.AccessClaims{UserID: "u1", Email: "alice@example.com"}, nil
}

func (s *stubAuthUsecase) GetProfile(userID string) (*authdomain.User, error) { return nil, nil }

func (s *stubAuthUsecase) UpdateProfile(userID, name string) (*authdomain.User, error) {
	return nil, nil
}

func (s *stubAuthUsecase) UpdateFCMToken(userID, fcmToken string) error { return nil }

func newTestRouter(stub *stubAuthUsecase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewAuthHandler(stub, &config.Config{Env: "development"})
	r := gin.New()
	r.POST("/api/auth/register", handler.Register)
	r.POST("/api/auth/reset-password", handler.ResetPassword)
	return r
}

func TestRegisterAcceptsShortPassword(t *testing.T) {
	stub := &stubAuthUsecase{}
	r := newTestRouter(stub)

	body := `{"email":"alice@example.com","password":"pw123","name":"Alice"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	require.NotNil(t, stub.registered)
	assert.Equal(t, "pw123", stub.registered.Password)
}

func TestResetPasswordAcceptsShortPassword(t *testing.T) {
	stub := &stubAuthUsecase{}
	r := newTestRouter(stub)

	body := `{"token":"reset-token","new_password":"pw456"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/reset-password", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "pw456", stub.resetPass)
}

func TestRegisterMissingFields(t *testing.T) {
	stub := &stubAuthUsecase{}
	r := newTestRouter(stub)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(`{"email":"alice@example.com"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Nil(t, stub.registered)
}
