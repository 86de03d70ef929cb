package graph

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
	"golang.org/x/oauth2/microsoft"

	"github.com/custodia-labs/graphctl/internal/config"
)

// acquireToken performs a single client-credentials exchange and returns
// the bearer token. An empty tokenURL derives the endpoint from the tenant
// ID in the credentials.
func acquireToken(ctx context.Context, creds *config.Credentials, tokenURL string, httpClient *http.Client) (string, error) {
	if tokenURL == "" {
		tokenURL = microsoft.AzureADEndpoint(creds.TenantID).TokenURL
	}

	cc := clientcredentials.Config{
		ClientID:     creds.ClientID,
		ClientSecret: creds.ClientSecret,
		Scopes:       creds.Scope,
		TokenURL:     tokenURL,
	}

	if httpClient != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, httpClient)
	}

	token, err := cc.Token(ctx)
	if err != nil {
		var retrieveErr *oauth2.RetrieveError
		if errors.As(err, &retrieveErr) {
			return "", &AuthError{
				Description: tokenErrorDescription(retrieveErr),
				Err:         err,
			}
		}
		return "", &AuthError{Err: err}
	}

	if token.AccessToken == "" {
		return "", &AuthError{Description: "response contained no access token"}
	}
	return token.AccessToken, nil
}

// tokenErrorDescription extracts the provider's error_description, falling
// back to the raw response body.
func tokenErrorDescription(err *oauth2.RetrieveError) string {
	if err.ErrorDescription != "" {
		return err.ErrorDescription
	}
	return strings.TrimSpace(string(err.Body))
}
