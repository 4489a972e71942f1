package auth

import (
	"context"
	"fmt"
	"go-feedback-app/internal/config"

	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"
)

// Authenticator wires the OIDC provider, the OAuth2 code flow and the ID
// token verifier together for the provider login path. The OAuth2 config is
// embedded so callers get AuthCodeURL and Exchange directly.
type Authenticator struct {
	oauth2.Config

	verifier *oidc.IDTokenVerifier
}

// NewAuthenticator discovers the provider from the configured issuer URL and
// prepares the code-flow configuration. The openid, profile and email scopes
// cover the claims the account upsert needs (subject, name, email, picture).
func NewAuthenticator(cfg *config.OIDCConfig) (*Authenticator, error) {
	provider, err := oidc.NewProvider(context.Background(), cfg.IssuerURL)
	if err != nil {
		return nil, fmt.Errorf("failed to discover OIDC provider: %w", err)
	}

	return &Authenticator{
		Config: oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Endpoint:     provider.Endpoint(),
			Scopes:       []string{oidc.ScopeOpenID, "profile", "email"},
		},
		verifier: provider.Verifier(&oidc.Config{ClientID: cfg.ClientID}),
	}, nil
}

// Verify checks the raw ID token's signature and claims against the provider.
func (a *Authenticator) Verify(ctx context.Context, rawIDToken string) (*oidc.IDToken, error) {
	return a.verifier.Verify(ctx, rawIDToken)
}
