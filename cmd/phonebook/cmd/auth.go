package cmd

import (
	"fmt"

	"github.com/yogeshkerkar48/Phonebook-Application/internal/phonebook/guard"

	"github.com/spf13/cobra"
)

var loginCmd = &cobra.Command{
	Use:   "login <email> <password>",
	Short: "Log in and store the session token",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := navigate(cmd, guard.RouteLogin); err != nil {
			return err
		}

		if err := application.Session.Login(cmd.Context(), args[0], args[1]); err != nil {
			return fmt.Errorf("login failed: %w", err)
		}

		fmt.Printf("Logged in as %s\n", args[0])

		if user := application.Session.User(); user != nil && user.Is2FAEnabled {
			fmt.Println("This account has two-factor authentication enabled.")
			fmt.Println("Run 'phonebook 2fa verify <code>' to unlock contact access.")
		}
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the stored session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		application.Session.Initialize(cmd.Context())
		application.Session.Logout()
		fmt.Println("Logged out")
		return nil
	},
}

var registerCmd = &cobra.Command{
	Use:   "register <email> <password>",
	Short: "Create an account (log in separately afterwards)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := navigate(cmd, guard.RouteRegister); err != nil {
			return err
		}

		if err := application.Session.Register(cmd.Context(), args[0], args[1]); err != nil {
			return fmt.Errorf("registration failed: %w", err)
		}

		fmt.Printf("Registered %s. Run 'phonebook login' to sign in.\n", args[0])
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		application.Session.Initialize(cmd.Context())

		if !application.Session.IsAuthenticated() {
			fmt.Println("Not logged in")
			return nil
		}

		user := application.Session.User()
		if user == nil {
			fmt.Println("Logged in (profile unavailable)")
			return nil
		}

		fmt.Printf("Logged in as %s\n", user.Email)
		if user.Is2FAEnabled {
			if application.Session.TwoFactorVerified() {
				fmt.Println("Two-factor: verified for this session")
			} else {
				fmt.Println("Two-factor: enabled, not yet verified this session")
			}
		} else {
			fmt.Println("Two-factor: disabled")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(loginCmd, logoutCmd, registerCmd, whoamiCmd)
}
