// Package graph provides a minimal Microsoft Graph directory client.
//
// This package provides:
//   - Client-credentials token acquisition against the Microsoft identity
//     platform (application permissions, no user context)
//   - A generic authenticated request method against the Graph v1.0 API
//   - User directory operations: search, create, delete
//
// The client authenticates once at construction and holds a single bearer
// token for its lifetime. There is no refresh on expiry; callers needing a
// fresh token construct a new client.
//
// # Authentication
//
// Tokens are acquired with the OAuth2 client-credentials grant:
//   - Authority: https://login.microsoftonline.com/{tenant}
//   - Token URL: https://login.microsoftonline.com/{tenant}/oauth2/v2.0/token
//
// Application permissions typically use the ".default" scope, e.g.
// "https://graph.microsoft.com/.default".
//
// # Error Handling
//
// The directory API returns errors as HTTP status codes. Any response with
// status >= 400 surfaces as an *APIError carrying the status code and the
// raw response body. There is no retry and no status-specific branching.
package graph
