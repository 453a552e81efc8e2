package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/yogeshkerkar48/Phonebook-Application/internal/phonebook/guard"

	"github.com/spf13/cobra"
)

var routesCmd = &cobra.Command{
	Use:   "routes",
	Short: "Show the application's destinations and what they require",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Print(formatRoutes(guard.DefaultRoutes()))
		return nil
	},
}

// formatRoutes renders the route table one destination per line, sorted
// by name so the output is stable.
func formatRoutes(routes map[string]guard.Requirement) string {
	names := make([]string, 0, len(routes))
	for name := range routes {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	for _, name := range names {
		var needs []string
		req := routes[name]
		if req.RequiresAuth {
			needs = append(needs, "auth")
		}
		if req.RequiresTwoFactor {
			needs = append(needs, "2fa")
		}
		if req.GuestOnly {
			needs = append(needs, "guest-only")
		}
		if len(needs) == 0 {
			needs = append(needs, "open")
		}
		fmt.Fprintf(&b, "%-14s %s\n", name, strings.Join(needs, ", "))
	}
	return b.String()
}

func init() {
	rootCmd.AddCommand(routesCmd)
}
