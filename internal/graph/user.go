package graph

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// User represents a directory user from Microsoft Graph.
type User struct {
	ID                string `json:"id,omitempty"`
	DisplayName       string `json:"displayName,omitempty"`
	UserPrincipalName string `json:"userPrincipalName,omitempty"`
	Mail              string `json:"mail,omitempty"`
	MailNickname      string `json:"mailNickname,omitempty"`
	AccountEnabled    bool   `json:"accountEnabled,omitempty"`
}

// UserPage is one page of a user listing. The client does not follow
// @odata.nextLink; callers get the first page as the API returned it.
type UserPage struct {
	ODataContext  string `json:"@odata.context,omitempty"`
	ODataNextLink string `json:"@odata.nextLink,omitempty"`
	Value         []User `json:"value"`
}

// PasswordProfile is the password section of a user-creation payload.
type PasswordProfile struct {
	ForceChangePasswordNextSignIn bool   `json:"forceChangePasswordNextSignIn"`
	Password                      string `json:"password"`
}

// createUserRequest is the POST /users payload.
type createUserRequest struct {
	AccountEnabled    bool            `json:"accountEnabled"`
	DisplayName       string          `json:"displayName"`
	MailNickname      string          `json:"mailNickname"`
	UserPrincipalName string          `json:"userPrincipalName"`
	PasswordProfile   PasswordProfile `json:"passwordProfile"`
}

// newCreateUserRequest builds the creation payload. The mail nickname is
// the local part of the UPN; the account is enabled and the password is
// not forced to change at next sign-in.
func newCreateUserRequest(displayName, username, password string) createUserRequest {
	nickname, _, _ := strings.Cut(username, "@")
	return createUserRequest{
		AccountEnabled:    true,
		DisplayName:       displayName,
		MailNickname:      nickname,
		UserPrincipalName: username,
		PasswordProfile: PasswordProfile{
			ForceChangePasswordNextSignIn: false,
			Password:                      password,
		},
	}
}

// escapeODataLiteral doubles single quotes so a query cannot break out of
// an OData string literal.
func escapeODataLiteral(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

// SearchUsers finds users whose display name or UPN starts with query.
// Returns the first page of results as the API returned it.
func (c *Client) SearchUsers(ctx context.Context, query string) (*UserPage, error) {
	q := escapeODataLiteral(query)
	filter := fmt.Sprintf("startswith(displayName,'%s') or startswith(userPrincipalName,'%s')", q, q)

	params := url.Values{}
	params.Set("$filter", filter)

	result, err := c.Do(ctx, http.MethodGet, "/users?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	var page UserPage
	if err := json.Unmarshal(result, &page); err != nil {
		return nil, fmt.Errorf("decode user page: %w", err)
	}
	return &page, nil
}

// CreateUser creates a directory user. The username must be a full UPN
// (e.g. newuser@contoso.com) and the password must satisfy the tenant's
// password policy; the client performs no local validation, so policy
// violations surface as *APIError.
func (c *Client) CreateUser(ctx context.Context, displayName, username, password string) (*User, error) {
	payload := newCreateUserRequest(displayName, username, password)

	result, err := c.Do(ctx, http.MethodPost, "/users", payload)
	if err != nil {
		return nil, err
	}

	var user User
	if err := json.Unmarshal(result, &user); err != nil {
		return nil, fmt.Errorf("decode created user: %w", err)
	}
	return &user, nil
}

// DeleteUser deletes a user by object ID or UPN.
func (c *Client) DeleteUser(ctx context.Context, userID string) error {
	_, err := c.Do(ctx, http.MethodDelete, "/users/"+url.PathEscape(userID), nil)
	return err
}
