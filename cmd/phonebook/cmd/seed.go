package cmd

import (
	"fmt"

	"github.com/yogeshkerkar48/Phonebook-Application/internal/phonebook/guard"
	"github.com/yogeshkerkar48/Phonebook-Application/internal/phonebook/seed"

	"github.com/spf13/cobra"
)

var (
	flagSeedCount int
	flagSeedRate  float64
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Populate the account with randomly generated contacts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := navigate(cmd, guard.RouteAddContact); err != nil {
			return err
		}

		seeder := seed.New(application.Client, flagSeedRate, application.Logger)
		created, err := seeder.Seed(cmd.Context(), flagSeedCount)
		if err != nil {
			return err
		}

		fmt.Printf("Created %d of %d contact(s)\n", created, flagSeedCount)
		return nil
	},
}

func init() {
	seedCmd.Flags().IntVar(&flagSeedCount, "count", 25, "number of contacts to create")
	seedCmd.Flags().Float64Var(&flagSeedRate, "rate", 5, "creates per second")
	rootCmd.AddCommand(seedCmd)
}
