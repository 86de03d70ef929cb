package cli

import (
	"bytes"
	"context"
	"time"

	"github.com/custodia-labs/graphctl/internal/graph"
	"github.com/custodia-labs/graphctl/internal/history"
)

// mockDirectory implements Directory for testing.
type mockDirectory struct {
	searchPage *graph.UserPage
	searchErr  error
	created    *graph.User
	createErr  error
	deleteErr  error

	gotQuery       string
	gotDisplayName string
	gotUsername    string
	gotPassword    string
	gotDeleteID    string
}

func (m *mockDirectory) SearchUsers(_ context.Context, query string) (*graph.UserPage, error) {
	m.gotQuery = query
	return m.searchPage, m.searchErr
}

func (m *mockDirectory) CreateUser(_ context.Context, displayName, username, password string) (*graph.User, error) {
	m.gotDisplayName = displayName
	m.gotUsername = username
	m.gotPassword = password
	return m.created, m.createErr
}

func (m *mockDirectory) DeleteUser(_ context.Context, userID string) error {
	m.gotDeleteID = userID
	return m.deleteErr
}

// mockHistoryStore implements HistoryStore for testing.
type mockHistoryStore struct {
	recorded []history.Entry
	entries  []history.Entry
	err      error
}

func (m *mockHistoryStore) Record(_ context.Context, entry history.Entry) error {
	if m.err != nil {
		return m.err
	}
	m.recorded = append(m.recorded, entry)
	return nil
}

func (m *mockHistoryStore) Recent(_ context.Context, limit int) ([]history.Entry, error) {
	if m.err != nil {
		return nil, m.err
	}
	if limit < len(m.entries) {
		return m.entries[:limit], nil
	}
	return m.entries, nil
}

// setupTestDirectory injects a mock directory and returns a cleanup func.
func setupTestDirectory(dir *mockDirectory) func() {
	oldDial := dialDirectory
	dialDirectory = func(_ context.Context) (Directory, error) {
		return dir, nil
	}
	return func() {
		dialDirectory = oldDial
	}
}

// executeCommand runs the root command with args and captures its output.
func executeCommand(args ...string) (string, error) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()
	return buf.String(), err
}

// resetOutputFormat restores output flag state mutated by PersistentPreRunE.
func resetOutputFormat() {
	outputFormat = ""
}

// resetUserCreateFlags clears flag values and Changed markers so required
// flags behave as on a fresh invocation.
func resetUserCreateFlags() {
	for _, name := range []string{"name", "upn", "password"} {
		flag := userCreateCmd.Flags().Lookup(name)
		_ = flag.Value.Set(flag.DefValue)
		flag.Changed = false
	}
	createDisplayName = ""
	createUPN = ""
	createPassword = ""
}

func testHistoryEntries() []history.Entry {
	return []history.Entry{
		{
			ID:        "op-2",
			Action:    history.ActionDelete,
			Target:    "old.user@contoso.com",
			Succeeded: true,
			CreatedAt: time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC),
		},
		{
			ID:        "op-1",
			Action:    history.ActionCreate,
			Target:    "demo.user@contoso.com",
			Succeeded: false,
			Detail:    "graph: API error 400",
			CreatedAt: time.Date(2026, 1, 31, 9, 0, 0, 0, time.UTC),
		},
	}
}
