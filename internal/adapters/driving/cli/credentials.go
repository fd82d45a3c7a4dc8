package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/unical/internal/core/domain"
	"github.com/custodia-labs/unical/internal/core/services"
)

var authConnector string

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage stored connector credentials",
}

var authRefreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Refresh the stored access token if it is due",
	Long: `Refreshes the connector's access token when its remaining lifetime
requires it. Rotated tokens are persisted to the config file through the
connector's credential listener; a token that is still valid is left
untouched.`,
	RunE: runAuthRefresh,
}

var authRevokeCmd = &cobra.Command{
	Use:   "revoke",
	Short: "Revoke the stored credentials and forget them",
	RunE:  runAuthRevoke,
}

func init() {
	for _, c := range []*cobra.Command{authRefreshCmd, authRevokeCmd} {
		c.Flags().StringVarP(&authConnector, "connector", "c", "", "connector to act on (required)")
		_ = c.MarkFlagRequired("connector")
	}

	authCmd.AddCommand(authRefreshCmd)
	authCmd.AddCommand(authRevokeCmd)
	rootCmd.AddCommand(authCmd)
}

func runAuthRefresh(cmd *cobra.Command, _ []string) error {
	if err := requireSetup(); err != nil {
		return err
	}

	auth, err := loadAuth(authConnector)
	if err != nil {
		return err
	}

	result, err := registry.Dispatch(cmd.Context(), authConnector, services.MethodRefresh, auth, domain.Query{})
	if err != nil {
		return fmt.Errorf("refresh failed: %w", err)
	}

	refreshed, ok := result.(domain.Auth)
	if !ok {
		return fmt.Errorf("unexpected result type %T", result)
	}

	if refreshed.AccessToken == auth.AccessToken {
		cmd.Printf("Token still valid until %s.\n", refreshed.ExpirationDate.Format(time.RFC3339))
		return nil
	}

	cmd.Printf("Token rotated; new expiry %s.\n", refreshed.ExpirationDate.Format(time.RFC3339))
	return nil
}

func runAuthRevoke(cmd *cobra.Command, _ []string) error {
	if err := requireSetup(); err != nil {
		return err
	}

	auth, err := loadAuth(authConnector)
	if err != nil {
		return err
	}

	_, err = registry.Dispatch(cmd.Context(), authConnector, services.MethodRevoke, auth, domain.Query{})
	switch {
	case err == nil:
		cmd.Println("Credentials revoked.")
	case errors.Is(err, domain.ErrAlreadyRevoked):
		cmd.Println("Credentials were already revoked upstream.")
	default:
		return fmt.Errorf("revoke failed: %w", err)
	}

	if err := store.DeleteAuth(authConnector); err != nil {
		return fmt.Errorf("failed to forget stored credentials: %w", err)
	}
	cmd.Printf("Removed stored credentials for %s.\n", authConnector)
	return nil
}
