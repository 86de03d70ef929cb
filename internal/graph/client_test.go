package graph

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/graphctl/internal/config"
)

// newTokenServer returns a stub token endpoint that issues accessToken.
func newTokenServer(t *testing.T, accessToken string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "client_credentials", r.PostForm.Get("grant_type"))

		w.Header().Set("Content-Type", "application/json")
		resp := map[string]any{
			"access_token": accessToken,
			"token_type":   "Bearer",
			"expires_in":   3599,
		}
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
}

func testCredentials() *config.Credentials {
	return &config.Credentials{
		TenantID:     "test-tenant",
		ClientID:     "test-client",
		ClientSecret: "test-secret",
		Scope:        []string{"https://graph.microsoft.com/.default"},
	}
}

// newTestClient constructs a client against stub token and API servers.
func newTestClient(t *testing.T, apiHandler http.HandlerFunc) *Client {
	t.Helper()

	tokenSrv := newTokenServer(t, "test-access-token")
	t.Cleanup(tokenSrv.Close)

	apiSrv := httptest.NewServer(apiHandler)
	t.Cleanup(apiSrv.Close)

	client, err := New(context.Background(), testCredentials(),
		WithTokenURL(tokenSrv.URL),
		WithBaseURL(apiSrv.URL),
	)
	require.NoError(t, err)
	return client
}

func TestNew_MissingCredentialFields(t *testing.T) {
	tests := []struct {
		name  string
		creds config.Credentials
	}{
		{
			name: "missing tenant_id",
			creds: config.Credentials{
				ClientID:     "c",
				ClientSecret: "s",
				Scope:        []string{"scope"},
			},
		},
		{
			name: "missing client_id",
			creds: config.Credentials{
				TenantID:     "t",
				ClientSecret: "s",
				Scope:        []string{"scope"},
			},
		},
		{
			name: "missing client_secret",
			creds: config.Credentials{
				TenantID: "t",
				ClientID: "c",
				Scope:    []string{"scope"},
			},
		},
		{
			name: "missing scope",
			creds: config.Credentials{
				TenantID:     "t",
				ClientID:     "c",
				ClientSecret: "s",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Token URL points nowhere reachable: validation must fail
			// before any network call is attempted.
			client, err := New(context.Background(), &tt.creds,
				WithTokenURL("http://127.0.0.1:0/token"))

			assert.Nil(t, client)
			assert.ErrorIs(t, err, config.ErrMissingField)
		})
	}
}

func TestNew_AcquiresToken(t *testing.T) {
	tokenSrv := newTokenServer(t, "acquired-token")
	defer tokenSrv.Close()

	client, err := New(context.Background(), testCredentials(),
		WithTokenURL(tokenSrv.URL))

	require.NoError(t, err)
	assert.Equal(t, "acquired-token", client.token)
	assert.Equal(t, defaultBaseURL, client.baseURL)
}

func TestNew_ProviderRejectsCredentials(t *testing.T) {
	tokenSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"invalid_client","error_description":"AADSTS7000215: Invalid client secret provided."}`))
	}))
	defer tokenSrv.Close()

	client, err := New(context.Background(), testCredentials(),
		WithTokenURL(tokenSrv.URL))

	assert.Nil(t, client)
	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Contains(t, authErr.Description, "AADSTS7000215")
}

func TestNew_EmptyAccessToken(t *testing.T) {
	tokenSrv := newTokenServer(t, "")
	defer tokenSrv.Close()

	client, err := New(context.Background(), testCredentials(),
		WithTokenURL(tokenSrv.URL))

	assert.Nil(t, client)
	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
}

func TestClient_Do_SendsBearerToken(t *testing.T) {
	var gotAuth, gotContentType, gotRequestID string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		gotRequestID = r.Header.Get("client-request-id")
		_, _ = w.Write([]byte(`{}`))
	})

	_, err := client.Do(context.Background(), http.MethodGet, "/users", nil)

	require.NoError(t, err)
	assert.Equal(t, "Bearer test-access-token", gotAuth)
	assert.Equal(t, "application/json", gotContentType)
	assert.NotEmpty(t, gotRequestID)
}

func TestClient_Do_SameTokenAcrossRequests(t *testing.T) {
	var tokens []string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		tokens = append(tokens, r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{}`))
	})

	for i := 0; i < 3; i++ {
		_, err := client.Do(context.Background(), http.MethodGet, "/users", nil)
		require.NoError(t, err)
	}

	require.Len(t, tokens, 3)
	for _, token := range tokens {
		assert.Equal(t, "Bearer test-access-token", token)
	}
}

func TestClient_Do_ErrorThreshold(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		wantErr    bool
	}{
		{name: "200 OK", statusCode: http.StatusOK, wantErr: false},
		{name: "201 Created", statusCode: http.StatusCreated, wantErr: false},
		{name: "204 No Content", statusCode: http.StatusNoContent, wantErr: false},
		{name: "400 Bad Request", statusCode: http.StatusBadRequest, wantErr: true},
		{name: "401 Unauthorised", statusCode: http.StatusUnauthorized, wantErr: true},
		{name: "404 Not Found", statusCode: http.StatusNotFound, wantErr: true},
		{name: "429 Too Many Requests", statusCode: http.StatusTooManyRequests, wantErr: true},
		{name: "500 Internal Server Error", statusCode: http.StatusInternalServerError, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.statusCode)
				if tt.statusCode != http.StatusNoContent {
					_, _ = w.Write([]byte(`{"error":{"message":"stub"}}`))
				}
			})

			result, err := client.Do(context.Background(), http.MethodGet, "/users", nil)

			if tt.wantErr {
				var apiErr *APIError
				require.ErrorAs(t, err, &apiErr)
				assert.Equal(t, tt.statusCode, apiErr.StatusCode)
				assert.Contains(t, apiErr.Body, "stub")
				assert.Nil(t, result)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestClient_Do_EmptyBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	result, err := client.Do(context.Background(), http.MethodDelete, "/users/abc-123", nil)

	require.NoError(t, err)
	assert.Nil(t, result)
}

func TestClient_Do_MarshalsBody(t *testing.T) {
	var gotBody map[string]any
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":"new"}`))
	})

	_, err := client.Do(context.Background(), http.MethodPost, "/users",
		map[string]any{"displayName": "Demo"})

	require.NoError(t, err)
	assert.Equal(t, "Demo", gotBody["displayName"])
}

func TestAPIError_Error(t *testing.T) {
	err := &APIError{StatusCode: 403, Body: `{"error":"forbidden"}`}
	assert.Contains(t, err.Error(), "403")
	assert.Contains(t, err.Error(), "forbidden")
}

func TestAuthError_Error(t *testing.T) {
	withDescription := &AuthError{Description: "bad secret"}
	assert.Contains(t, withDescription.Error(), "bad secret")

	empty := &AuthError{}
	assert.NotEmpty(t, empty.Error())
}

func TestDefaultBaseURL(t *testing.T) {
	assert.Equal(t, "https://graph.microsoft.com/v1.0", defaultBaseURL)
}
