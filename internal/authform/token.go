package authform

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"connectorauth/internal/authctx"
	"connectorauth/internal/oauthgrant"
)

// ClientCredentials builds the client_credentials configuration of ctx's
// OAuth settings. The client secret must be known locally: an unchanged
// stored secret resolves to its retained plaintext.
func (e *Editor) ClientCredentials(entity authctx.EntityContext) (*clientcredentials.Config, error) {
	if !e.IsMounted(entity) {
		return nil, fmt.Errorf("%w: %s", ErrNotMounted, e.resolver.Describe(entity))
	}
	if grant := e.GrantType(entity); grant != oauthgrant.ClientCredentials {
		return nil, fmt.Errorf("grant type %s cannot fetch a token", grant)
	}

	cfg := e.oauthConfig(entity)
	if cfg.ClientID == "" || cfg.Endpoint.TokenURL == "" {
		return nil, fmt.Errorf("client id and token URL are required")
	}
	secret, err := e.plaintextSecret(entity, authctx.OAuthClientSecret)
	if err != nil {
		return nil, err
	}

	return &clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: secret,
		TokenURL:     cfg.Endpoint.TokenURL,
		Scopes:       cfg.Scopes,
		AuthStyle:    oauth2.AuthStyleAutoDetect,
	}, nil
}

// FetchToken requests an access token with the client_credentials grant.
func (e *Editor) FetchToken(ctx context.Context, entity authctx.EntityContext) (*oauth2.Token, error) {
	cc, err := e.ClientCredentials(entity)
	if err != nil {
		return nil, err
	}
	token, err := cc.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch token from %s: %w", cc.TokenURL, err)
	}
	e.reporter.Debugf("Fetched %s token for %s", token.Type(), e.resolver.Describe(entity))
	return token, nil
}

// plaintextSecret returns the value a secret input stands for. An unchanged
// stored secret yields its retained plaintext and fails when that is unknown.
func (e *Editor) plaintextSecret(entity authctx.EntityContext, base string) (string, error) {
	field := e.Field(entity, base)
	if field == nil {
		return "", nil
	}
	if !field.IsStoredSecret() || !e.unchangedSecret(field.Value(), field) {
		return field.Value(), nil
	}
	real, known := field.RealValue()
	if !known {
		return "", fmt.Errorf("stored value of %s is not available locally, enter it again", base)
	}
	return real.Reveal(), nil
}
