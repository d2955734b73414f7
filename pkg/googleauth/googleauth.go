package googleauth

import (
	"context"
	"strings"

	"genprd-backend/pkg/apperror"
	"genprd-backend/pkg/logger"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/idtoken"
	oauth2api "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"
)

// Profile is the normalized identity returned by Google after either flow.
type Profile struct {
	GoogleID  string
	Name      string
	Email     string
	AvatarURL string
}

// Service completes the three-legged authorization-code flow and verifies
// natively obtained ID tokens.
type Service struct {
	clientID     string
	clientSecret string
}

func NewService(clientID, clientSecret string) *Service {
	return &Service{clientID: clientID, clientSecret: clientSecret}
}

func (s *Service) config(redirectURI string) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     s.clientID,
		ClientSecret: s.clientSecret,
		Endpoint:     google.Endpoint,
		RedirectURL:  redirectURI,
		Scopes:       []string{oauth2api.UserinfoEmailScope, oauth2api.UserinfoProfileScope},
	}
}

// AuthCodeURL builds the provider URL for the given callback. Offline access
// plus forced consent guarantees Google grants a refresh capability on every
// login, not just the first.
func (s *Service) AuthCodeURL(redirectURI, state string) string {
	return s.config(redirectURI).AuthCodeURL(state,
		oauth2.AccessTypeOffline,
		oauth2.ApprovalForce,
	)
}

// ExchangeCode redeems the authorization code and fetches the user profile.
// redirectURI must be byte-identical to the one used in AuthCodeURL; Google
// rejects the exchange otherwise.
func (s *Service) ExchangeCode(ctx context.Context, code, redirectURI string) (*Profile, error) {
	conf := s.config(redirectURI)

	tok, err := conf.Exchange(ctx, code)
	if err != nil {
		logger.Log.WithError(err).Warn("google code exchange failed")
		return nil, apperror.ErrOAuthExchangeFailed
	}

	svc, err := oauth2api.NewService(ctx, option.WithTokenSource(conf.TokenSource(ctx, tok)))
	if err != nil {
		return nil, apperror.ErrOAuthExchangeFailed
	}

	info, err := svc.Userinfo.Get().Do()
	if err != nil {
		logger.Log.WithError(err).Warn("google userinfo fetch failed")
		return nil, apperror.ErrOAuthExchangeFailed
	}

	return &Profile{
		GoogleID:  info.Id,
		Name:      info.Name,
		Email:     info.Email,
		AvatarURL: info.Picture,
	}, nil
}

// VerifyIDToken validates a provider-issued ID token directly, for clients
// that perform Google sign-in natively and post the token to the backend.
func (s *Service) VerifyIDToken(ctx context.Context, idToken string) (*Profile, error) {
	payload, err := idtoken.Validate(ctx, idToken, s.clientID)
	if err != nil {
		logger.Log.WithError(err).Warn("google id token validation failed")
		return nil, apperror.ErrInvalidOrExpiredToken
	}

	email, _ := payload.Claims["email"].(string)
	if email == "" {
		return nil, apperror.ErrInvalidOrExpiredToken
	}
	name, _ := payload.Claims["name"].(string)
	if name == "" {
		name = email
	}
	picture, _ := payload.Claims["picture"].(string)

	return &Profile{
		GoogleID:  payload.Subject,
		Name:      name,
		Email:     email,
		AvatarURL: picture,
	}, nil
}

// EmulatorHost rewrites a localhost base URL so the Android emulator can
// reach the host machine (the emulator resolves 10.0.2.2 to the host).
func EmulatorHost(baseURL string) string {
	return strings.Replace(baseURL, "localhost", "10.0.2.2", 1)
}
