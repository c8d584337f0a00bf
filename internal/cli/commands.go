// Package cli implements the sessiontoken development tool, which creates
// session keys and issues tokens the server accepts.
package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/kritikayadav/screener-backend/internal/apperrors"
	"github.com/kritikayadav/screener-backend/internal/session"
	"github.com/kritikayadav/screener-backend/internal/version"
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "sessiontoken",
		Short: "Create session keys and tokens for the screener backend",
		Long: `sessiontoken manages the fernet session tokens verified by the screener backend.
Tokens are normally issued by the auth service; this tool issues them for local development and tests.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newKeyCmd())
	rootCmd.AddCommand(newIssueCmd())
	rootCmd.AddCommand(newDecodeCmd())
	rootCmd.AddCommand(newVersionCmd())

	// Global flags
	rootCmd.PersistentFlags().String("key", "", "Base64 fernet key (defaults to $SESSION_KEY)")

	return rootCmd
}

// newKeyCmd creates the key command
func newKeyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "key",
		Short: "Generate a new session key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			key, err := session.GenerateKey()
			if err != nil {
				return fmt.Errorf("generate key: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), key)
			return nil
		},
	}
}

// newIssueCmd creates the issue command
func newIssueCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "issue",
		Short: "Issue a session token",
		Long: `Issue a session token for a user.
Example: sessiontoken issue --user 42 --name "Test User" --admin`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			codec, err := codecFromFlags(cmd, 0)
			if err != nil {
				return err
			}

			userID, _ := cmd.Flags().GetString("user")
			name, _ := cmd.Flags().GetString("name")
			admin, _ := cmd.Flags().GetBool("admin")
			if userID == "" {
				return apperrors.ErrInvalidUserID
			}

			token, err := codec.Encode(session.Session{UserID: userID, Name: name, Admin: admin})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().String("user", "", "User ID")
	cmd.Flags().String("name", "", "Display name")
	cmd.Flags().Bool("admin", false, "Grant access to the admin pages")

	return cmd
}

// newDecodeCmd creates the decode command
func newDecodeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decode [TOKEN]",
		Short: "Verify a token and print its session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ttl, _ := cmd.Flags().GetDuration("ttl")
			codec, err := codecFromFlags(cmd, ttl)
			if err != nil {
				return err
			}

			sess, err := codec.Decode(args[0])
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(sess)
		},
	}

	cmd.Flags().Duration("ttl", 24*time.Hour, "Maximum token age; 0 disables the check")

	return cmd
}

// newVersionCmd creates the version command
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "sessiontoken %s\n", version.Version)
		},
	}
}

func codecFromFlags(cmd *cobra.Command, ttl time.Duration) (*session.Codec, error) {
	key, _ := cmd.Flags().GetString("key")
	if key == "" {
		key = os.Getenv("SESSION_KEY")
	}
	return session.NewCodec(ttl, key)
}
