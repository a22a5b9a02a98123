package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var sessionToken string

// sessionCmd represents the session command group
var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Session credential commands",
	Long: `Manage the stored session credential.

The token is persisted under the configured session.token_path and attached
to every API request as the X-Session-Token header.

Examples:
  planctl session login --token <token>
  planctl session show
  planctl session logout`,
}

// sessionLoginCmd stores a session token
var sessionLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Store a session token",
	RunE: func(cmd *cobra.Command, args []string) error {
		if sessionToken == "" {
			return fmt.Errorf("--token is required")
		}

		e, err := newEnv()
		if err != nil {
			return err
		}

		if err := e.session.SetToken(sessionToken); err != nil {
			return err
		}

		fmt.Println("Session token stored.")
		return nil
	},
}

// sessionShowCmd reports whether a token is stored
var sessionShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show session status",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEnv()
		if err != nil {
			return err
		}

		if e.session.Token() == "" {
			fmt.Println("No session token stored.")
			return nil
		}
		fmt.Printf("Session token stored at %s\n", e.cfg.Session.TokenPath)
		return nil
	},
}

// sessionLogoutCmd removes the stored token
var sessionLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove the stored session token",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEnv()
		if err != nil {
			return err
		}

		if err := e.session.Clear(); err != nil {
			return err
		}

		// Cached data belonged to the cleared session.
		e.projects.Evict()
		e.venues.Evict()
		e.templates.Evict()
		e.tags.Evict()

		fmt.Println("Session token removed.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sessionCmd)
	sessionCmd.AddCommand(sessionLoginCmd)
	sessionCmd.AddCommand(sessionShowCmd)
	sessionCmd.AddCommand(sessionLogoutCmd)

	sessionLoginCmd.Flags().StringVar(&sessionToken, "token", "", "session token (required)")
	sessionLoginCmd.MarkFlagRequired("token")
}
