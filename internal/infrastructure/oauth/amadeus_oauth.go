package oauth

import (
	"context"
	"net/http"

	"skywatch-service/pkg/logger"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// AmadeusOAuth handles client-credentials authentication with the
// Amadeus Self-Service API. Tokens are short-lived (~30 minutes); the
// token source caches the current token and refreshes it single-flight,
// so concurrent quote calls never race on redundant refreshes.
type AmadeusOAuth struct {
	config *clientcredentials.Config
	logger logger.Logger
}

// NewAmadeusOAuth creates a new Amadeus OAuth handler
func NewAmadeusOAuth(apiKey, apiSecret, baseURL string, logger logger.Logger) *AmadeusOAuth {
	config := &clientcredentials.Config{
		ClientID:     apiKey,
		ClientSecret: apiSecret,
		TokenURL:     baseURL + "/v1/security/oauth2/token",
		AuthStyle:    oauth2.AuthStyleInParams,
	}

	return &AmadeusOAuth{
		config: config,
		logger: logger,
	}
}

// GetTokenSource returns a reusing token source for the Amadeus API
func (o *AmadeusOAuth) GetTokenSource(ctx context.Context) oauth2.TokenSource {
	return o.config.TokenSource(ctx)
}

// HTTPClient returns an HTTP client that attaches a bearer token to
// every request, refreshing it when expired.
func (o *AmadeusOAuth) HTTPClient(ctx context.Context) *http.Client {
	return oauth2.NewClient(ctx, o.GetTokenSource(ctx))
}

// Token performs one token grant, for credential smoke-testing.
func (o *AmadeusOAuth) Token(ctx context.Context) (*oauth2.Token, error) {
	token, err := o.config.Token(ctx)
	if err != nil {
		return nil, err
	}
	o.logger.Info("Amadeus authentication successful", "expiry", token.Expiry)
	return token, nil
}
