package cli

import (
	"context"

	"github.com/custodia-labs/graphctl/internal/config"
	"github.com/custodia-labs/graphctl/internal/graph"
	"github.com/custodia-labs/graphctl/internal/history"
	"github.com/custodia-labs/graphctl/internal/logger"
)

// Directory is the directory API surface the CLI drives.
type Directory interface {
	SearchUsers(ctx context.Context, query string) (*graph.UserPage, error)
	CreateUser(ctx context.Context, displayName, username, password string) (*graph.User, error)
	DeleteUser(ctx context.Context, userID string) error
}

// HistoryStore records and lists mutating directory operations.
type HistoryStore interface {
	Record(ctx context.Context, entry history.Entry) error
	Recent(ctx context.Context, limit int) ([]history.Entry, error)
}

// historyStore is injected by main; nil disables history recording.
var historyStore HistoryStore

// SetHistory injects the operation history store.
func SetHistory(store HistoryStore) {
	historyStore = store
}

// dialDirectory loads credentials and constructs an authenticated client.
// Token acquisition happens here, once per invocation.
var dialDirectory = func(ctx context.Context) (Directory, error) {
	credsPath := credentialsPath
	if credsPath == "" {
		credsPath = settings.CredentialsFile
	}

	creds, err := config.LoadCredentials(credsPath)
	if err != nil {
		return nil, err
	}

	logger.Debugf("acquiring token for tenant %s", creds.TenantID)
	return graph.New(ctx, creds)
}

// recordHistory appends an operation to the history store when one is
// configured. Recording failures are logged, never surfaced: they must not
// mask the outcome of the directory call itself.
func recordHistory(ctx context.Context, action, target string, opErr error) {
	if historyStore == nil {
		return
	}

	entry := history.Entry{
		Action:    action,
		Target:    target,
		Succeeded: opErr == nil,
	}
	if opErr != nil {
		entry.Detail = opErr.Error()
	}

	if err := historyStore.Record(ctx, entry); err != nil {
		logger.Errorf("record history entry: %v", err)
	}
}
