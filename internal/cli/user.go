package cli

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/graphctl/internal/config"
	"github.com/custodia-labs/graphctl/internal/history"
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage directory users",
	Long:  `Search, create, or delete users in the Entra ID directory.`,
}

var userSearchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search users by display name or UPN prefix",
	Long: `Search for users whose display name or user principal name starts
with the given query. Returns the first page of results.

Examples:
  graphctl user search john
  graphctl user search "Jane D" -o table`,
	Args: cobra.ExactArgs(1),
	RunE: runUserSearch,
}

var userCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a directory user",
	Long: `Create a new directory user. The UPN must be a full user principal
name (e.g. newuser@contoso.com) and the password must meet the tenant's
password policy. If --password is omitted, the password is prompted for
without echo.

Examples:
  graphctl user create --name "Demo User" --upn demo.user@contoso.com
  graphctl user create --name "Demo User" --upn demo.user@contoso.com --password 'Pwd123!'`,
	RunE: runUserCreate,
}

var userDeleteCmd = &cobra.Command{
	Use:   "delete [id-or-upn]",
	Short: "Delete a user by object ID or UPN",
	Args:  cobra.ExactArgs(1),
	RunE:  runUserDelete,
}

// Flags for user create.
var (
	createDisplayName string
	createUPN         string
	createPassword    string
)

func init() {
	userCreateCmd.Flags().StringVar(&createDisplayName, "name", "", "Display name for the new user")
	userCreateCmd.Flags().StringVar(&createUPN, "upn", "", "User principal name (e.g. newuser@contoso.com)")
	userCreateCmd.Flags().StringVar(&createPassword, "password", "", "Initial password (prompted when omitted)")
	_ = userCreateCmd.MarkFlagRequired("name")
	_ = userCreateCmd.MarkFlagRequired("upn")

	userCmd.AddCommand(userSearchCmd)
	userCmd.AddCommand(userCreateCmd)
	userCmd.AddCommand(userDeleteCmd)
	rootCmd.AddCommand(userCmd)
}

func runUserSearch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	dir, err := dialDirectory(ctx)
	if err != nil {
		return err
	}

	page, err := dir.SearchUsers(ctx, args[0])
	if err != nil {
		return err
	}

	if outputFormat == config.OutputTable {
		cmd.Println(renderUserTable(page.Value))
		return nil
	}
	return printJSON(cmd, page)
}

func runUserCreate(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	password := createPassword
	if password == "" {
		var err error
		password, err = promptPassword(cmd)
		if err != nil {
			return err
		}
	}
	if password == "" {
		return errors.New("a password is required")
	}

	dir, err := dialDirectory(ctx)
	if err != nil {
		return err
	}

	user, opErr := dir.CreateUser(ctx, createDisplayName, createUPN, password)
	recordHistory(ctx, history.ActionCreate, createUPN, opErr)
	if opErr != nil {
		return opErr
	}

	if outputFormat == config.OutputTable {
		cmd.Printf("Created user %s (%s)\n", user.UserPrincipalName, user.ID)
		return nil
	}
	return printJSON(cmd, user)
}

func runUserDelete(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	target := args[0]

	dir, err := dialDirectory(ctx)
	if err != nil {
		return err
	}

	opErr := dir.DeleteUser(ctx, target)
	recordHistory(ctx, history.ActionDelete, target, opErr)
	if opErr != nil {
		return opErr
	}

	cmd.Printf("Deleted user %s\n", target)
	return nil
}

// printJSON writes v as indented JSON.
func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

// promptPassword reads a password without echo when stdin is a terminal,
// otherwise reads one line from the command's input (piped use, tests).
func promptPassword(cmd *cobra.Command) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		if err != nil && line == "" {
			return "", fmt.Errorf("read password: %w", err)
		}
		return strings.TrimRight(line, "\r\n"), nil
	}

	cmd.Print("Password: ")
	raw, err := term.ReadPassword(fd)
	cmd.Println()
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return string(raw), nil
}
