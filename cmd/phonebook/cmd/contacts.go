package cmd

import (
	"fmt"
	"strconv"
	"time"

	"github.com/yogeshkerkar48/Phonebook-Application/internal/phonebook/guard"
	"github.com/yogeshkerkar48/Phonebook-Application/pkg/apiclient"

	"github.com/spf13/cobra"
)

// list and sync each bind their own limit variable: pflag assigns the
// default at registration time, so a shared variable would end up with
// whichever default registered last.
var (
	flagCached    bool
	flagListSkip  int
	flagListLimit int
	flagSyncLimit int
	flagName      string
	flagPhone     string
	flagEmail     string
	flagAddress   string
)

var contactsCmd = &cobra.Command{
	Use:   "contacts",
	Short: "Manage contacts",
}

var contactsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List contacts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := navigate(cmd, guard.RouteDashboard); err != nil {
			return err
		}

		if flagCached {
			contacts, err := application.Cache.List(cmd.Context())
			if err != nil {
				return err
			}
			printContacts(contacts)

			syncedAt, err := application.Cache.SyncedAt(cmd.Context())
			if err == nil && !syncedAt.IsZero() {
				fmt.Printf("Last synced %s\n", syncedAt.Local().Format(time.RFC822))
			}
			return nil
		}

		contacts, err := application.Client.ListContacts(cmd.Context(), flagListSkip, flagListLimit)
		if err != nil {
			return err
		}
		printContacts(contacts)
		return nil
	},
}

var contactsGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show a single contact",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := navigate(cmd, guard.RouteDashboard); err != nil {
			return err
		}

		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid contact id %q", args[0])
		}

		contact, err := application.Client.GetContact(cmd.Context(), id)
		if err != nil {
			return err
		}

		printContacts([]apiclient.Contact{*contact})
		return nil
	},
}

var contactsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a contact",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := navigate(cmd, guard.RouteAddContact); err != nil {
			return err
		}

		created, err := application.Client.CreateContact(cmd.Context(), apiclient.ContactCreate{
			Name:    flagName,
			Phone:   flagPhone,
			Email:   flagEmail,
			Address: flagAddress,
		})
		if err != nil {
			return fmt.Errorf("failed to add contact: %w", err)
		}

		fmt.Printf("Added contact %d: %s\n", created.ID, created.Name)
		return nil
	},
}

var contactsEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Update a contact (only the provided flags change)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := navigate(cmd, guard.RouteEditContact); err != nil {
			return err
		}

		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid contact id %q", args[0])
		}

		var update apiclient.ContactUpdate
		if cmd.Flags().Changed("name") {
			update.Name = &flagName
		}
		if cmd.Flags().Changed("phone") {
			update.Phone = &flagPhone
		}
		if cmd.Flags().Changed("email") {
			update.Email = &flagEmail
		}
		if cmd.Flags().Changed("address") {
			update.Address = &flagAddress
		}

		updated, err := application.Client.UpdateContact(cmd.Context(), id, update)
		if err != nil {
			return fmt.Errorf("failed to update contact: %w", err)
		}

		fmt.Printf("Updated contact %d: %s\n", updated.ID, updated.Name)
		return nil
	},
}

var contactsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a contact",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := navigate(cmd, guard.RouteDashboard); err != nil {
			return err
		}

		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid contact id %q", args[0])
		}

		if err := application.Client.DeleteContact(cmd.Context(), id); err != nil {
			return fmt.Errorf("failed to delete contact: %w", err)
		}

		fmt.Printf("Deleted contact %d\n", id)
		return nil
	},
}

var contactsSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search contacts by name, phone or email",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := navigate(cmd, guard.RouteDashboard); err != nil {
			return err
		}

		if flagCached {
			contacts, err := application.Cache.Search(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			printContacts(contacts)
			return nil
		}

		result, err := application.Client.SearchContacts(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		fmt.Printf("%d result(s)\n", result.Total)
		printContacts(result.Results)
		return nil
	},
}

var contactsSyncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Refresh the local contact cache from the API",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := navigate(cmd, guard.RouteDashboard); err != nil {
			return err
		}

		contacts, err := application.Client.ListContacts(cmd.Context(), 0, flagSyncLimit)
		if err != nil {
			return err
		}

		if err := application.Cache.ReplaceAll(cmd.Context(), contacts); err != nil {
			return fmt.Errorf("failed to update cache: %w", err)
		}

		fmt.Printf("Cached %d contact(s)\n", len(contacts))
		return nil
	},
}

func printContacts(contacts []apiclient.Contact) {
	if len(contacts) == 0 {
		fmt.Println("No contacts")
		return
	}

	for _, c := range contacts {
		line := fmt.Sprintf("%4d  %-24s %s", c.ID, c.Name, c.Phone)
		if c.Email != "" {
			line += "  " + c.Email
		}
		fmt.Println(line)
	}
}

func init() {
	contactsListCmd.Flags().BoolVar(&flagCached, "cached", false, "read from the local cache instead of the API")
	contactsListCmd.Flags().IntVar(&flagListSkip, "skip", 0, "number of contacts to skip")
	contactsListCmd.Flags().IntVar(&flagListLimit, "limit", 100, "maximum contacts to return")

	contactsSearchCmd.Flags().BoolVar(&flagCached, "cached", false, "search the local cache instead of the API")

	contactsSyncCmd.Flags().IntVar(&flagSyncLimit, "limit", 1000, "maximum contacts to fetch")

	for _, c := range []*cobra.Command{contactsAddCmd, contactsEditCmd} {
		c.Flags().StringVar(&flagName, "name", "", "contact name")
		c.Flags().StringVar(&flagPhone, "phone", "", "10-digit phone number")
		c.Flags().StringVar(&flagEmail, "email", "", "email address")
		c.Flags().StringVar(&flagAddress, "address", "", "postal address")
	}
	_ = contactsAddCmd.MarkFlagRequired("name")
	_ = contactsAddCmd.MarkFlagRequired("phone")

	contactsCmd.AddCommand(
		contactsListCmd, contactsGetCmd, contactsAddCmd, contactsEditCmd,
		contactsDeleteCmd, contactsSearchCmd, contactsSyncCmd,
	)
	rootCmd.AddCommand(contactsCmd)
}
