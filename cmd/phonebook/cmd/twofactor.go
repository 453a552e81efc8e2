package cmd

import (
	"fmt"
	"time"

	"github.com/yogeshkerkar48/Phonebook-Application/internal/phonebook/guard"

	"github.com/pquerna/otp/totp"
	"github.com/spf13/cobra"
)

var twoFactorCmd = &cobra.Command{
	Use:   "2fa",
	Short: "Manage two-factor authentication",
}

var twoFactorSetupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Start TOTP enrollment",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := navigate(cmd, guard.RouteSetup2FA); err != nil {
			return err
		}

		setup, err := application.Client.Setup2FA(cmd.Context())
		if err != nil {
			return fmt.Errorf("2fa setup failed: %w", err)
		}

		fmt.Println("Add this secret to your authenticator app:")
		fmt.Printf("  secret: %s\n", setup.Secret)
		fmt.Printf("  uri:    %s\n", setup.URI)
		fmt.Println("Then run 'phonebook 2fa confirm <code>' with a current code.")
		return nil
	},
}

var twoFactorConfirmCmd = &cobra.Command{
	Use:   "confirm <code>",
	Short: "Confirm enrollment with a code from your authenticator",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := navigate(cmd, guard.RouteSetup2FA); err != nil {
			return err
		}

		if err := application.Client.Verify2FASetup(cmd.Context(), args[0]); err != nil {
			return fmt.Errorf("2fa confirmation failed: %w", err)
		}

		// Enrollment ends the server-side session; mirror that locally.
		application.Session.Logout()

		fmt.Println("Two-factor authentication enabled.")
		fmt.Println("Your session has ended; log in again to continue.")
		return nil
	},
}

var twoFactorVerifyCmd = &cobra.Command{
	Use:   "verify <code>",
	Short: "Answer the login-time 2FA challenge",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := navigate(cmd, guard.RouteTwoFactor); err != nil {
			return err
		}

		if err := application.Client.Verify2FALogin(cmd.Context(), args[0]); err != nil {
			return fmt.Errorf("2fa verification failed: %w", err)
		}

		application.Session.MarkTwoFactorVerified()
		fmt.Println("Two-factor verification complete.")
		return nil
	},
}

var twoFactorCodeCmd = &cobra.Command{
	Use:   "code <secret>",
	Short: "Generate the current TOTP code for a secret",
	Long: `Generates the current time-based one-time password for a shared
secret, standing in for an authenticator app. Useful for scripted flows
and testing.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		code, err := totp.GenerateCode(args[0], time.Now())
		if err != nil {
			return fmt.Errorf("failed to generate code: %w", err)
		}

		fmt.Println(code)
		return nil
	},
}

func init() {
	twoFactorCmd.AddCommand(twoFactorSetupCmd, twoFactorConfirmCmd, twoFactorVerifyCmd, twoFactorCodeCmd)
	rootCmd.AddCommand(twoFactorCmd)
}
