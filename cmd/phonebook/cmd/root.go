// Package cmd implements the phonebook CLI. Every screen that touches
// contacts resolves its destination through the navigation guard first,
// so the auth and 2FA gating behaves exactly like the web client's
// router.
package cmd

import (
	"fmt"
	"os"

	"github.com/yogeshkerkar48/Phonebook-Application/internal/phonebook/app"
	"github.com/yogeshkerkar48/Phonebook-Application/internal/phonebook/guard"

	"github.com/spf13/cobra"
)

var (
	application *app.App

	flagAPIURL  string
	flagDataDir string
)

var rootCmd = &cobra.Command{
	Use:   "phonebook",
	Short: "Phonebook is a contact manager with 2FA-protected login",
	Long: `A client for the phonebook API: register, log in (optionally with
time-based one-time passwords), and manage personal contacts with search
and a local offline cache.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := app.LoadConfig()
		if flagAPIURL != "" {
			cfg.APIBaseURL = flagAPIURL
		}
		if flagDataDir != "" {
			cfg.DataDir = flagDataDir
		}

		var err error
		application, err = app.New(cfg)
		return err
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if application == nil {
			return nil
		}
		return application.Close()
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagAPIURL, "api-url", "", "phonebook API base URL (overrides PHONEBOOK_API_URL)")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "data directory (overrides PHONEBOOK_DATA_DIR)")
}

// navigate resolves dest through the guard and translates redirects into
// actionable errors. Commands call this before doing anything.
func navigate(cmd *cobra.Command, dest string) error {
	decision := application.Guard.Resolve(cmd.Context(), dest)
	if decision.Target == dest {
		return nil
	}

	switch decision.Target {
	case guard.RouteLogin:
		return fmt.Errorf("not logged in: run 'phonebook login' first")
	case guard.RouteTwoFactor:
		return fmt.Errorf("two-factor verification required: run 'phonebook 2fa verify <code>'")
	case guard.RouteDashboard:
		return fmt.Errorf("already logged in: run 'phonebook logout' first")
	default:
		return fmt.Errorf("redirected to %s", decision.Target)
	}
}
