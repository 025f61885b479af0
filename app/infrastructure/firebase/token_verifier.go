package firebase

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"

	oidc "github.com/coreos/go-oidc/v3/oidc"
	"pantrypal.app/pantry-api-gateway/app/domain/identity"
	"pantrypal.app/pantry-api-gateway/app/utils/logger"
	"pantrypal.app/pantry-api-gateway/config/environment_variables"
)

const (
	SecureTokenJWKSURL   = "https://www.googleapis.com/service_accounts/v1/jwk/securetoken@system.gserviceaccount.com"
	SecureTokenIssuerURL = "https://securetoken.google.com/"
)

// TokenVerifier checks Firebase ID tokens against Google's published signing keys.
type TokenVerifier struct {
	verifier *oidc.IDTokenVerifier
}

var _ identity.Verifier = (*TokenVerifier)(nil)

func NewTokenVerifier() *TokenVerifier {
	projectID := environment_variables.EnvironmentVariables.FIREBASE_PROJECT_ID
	if projectID == "" {
		logger.GetLogger().
			WithField("error_code", "0b7a4f5e-3f3c-4d0e-9e55-6e0f1b8a2c11").
			Warn("FIREBASE_PROJECT_ID is not set, every credential will be rejected")
	}
	keySet := oidc.NewRemoteKeySet(context.Background(), SecureTokenJWKSURL)
	return NewTokenVerifierWithKeySet(projectID, keySet)
}

func NewTokenVerifierWithKeySet(projectID string, keySet oidc.KeySet) *TokenVerifier {
	return &TokenVerifier{
		verifier: oidc.NewVerifier(SecureTokenIssuerURL+projectID, recordingKeySet{keySet}, &oidc.Config{
			ClientID: projectID,
		}),
	}
}

type keyFailureKey struct{}

// keyFailure receives the key set error of one Verify call. oidc flattens
// that error into a string, so it is captured before it reaches oidc.
type keyFailure struct {
	err error
}

type recordingKeySet struct {
	oidc.KeySet
}

func (k recordingKeySet) VerifySignature(ctx context.Context, rawToken string) ([]byte, error) {
	payload, err := k.KeySet.VerifySignature(ctx, rawToken)
	if err != nil && isTransient(ctx, err) {
		if f, ok := ctx.Value(keyFailureKey{}).(*keyFailure); ok {
			f.err = err
		}
	}
	return payload, err
}

// isTransient reports key set failures that say nothing about the token:
// network errors while fetching the keys and cancelled or expired contexts.
func isTransient(ctx context.Context, err error) bool {
	if ctx.Err() != nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	var urlErr *url.Error
	return errors.As(err, &netErr) || errors.As(err, &urlErr)
}

type firebaseClaims struct {
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
}

func (v *TokenVerifier) Verify(ctx context.Context, credential string) (*identity.VerifiedIdentity, error) {
	failure := &keyFailure{}
	token, err := v.verifier.Verify(context.WithValue(ctx, keyFailureKey{}, failure), credential)
	if err != nil {
		if failure.err != nil || ctx.Err() != nil {
			return nil, fmt.Errorf("%w: %v", identity.ErrVerifierUnavailable, err)
		}
		return nil, fmt.Errorf("%w: %v", identity.ErrInvalidCredential, err)
	}
	var claims firebaseClaims
	if err := token.Claims(&claims); err != nil {
		logger.GetLogger().Warnf("firebase: unable to decode claims of %s: %v", token.Subject, err)
	}
	return &identity.VerifiedIdentity{
		Subject: token.Subject,
		Email:   claims.Email,
		Expiry:  token.Expiry,
	}, nil
}
