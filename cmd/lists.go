package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var listsCmd = &cobra.Command{
	Use:   "lists",
	Short: "Show company lists",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		env, err := initEnv(ctx, "engine")
		if err != nil {
			return err
		}
		defer env.Close()

		lists, err := env.Tracker.Lists(ctx)
		if err != nil {
			return err
		}
		for _, l := range lists {
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%d)\n", l.Name, len(l.CompanyIDs)) //nolint:errcheck
			for _, id := range l.CompanyIDs {
				fmt.Fprintf(cmd.OutOrStdout(), "  - %s\n", id) //nolint:errcheck
			}
		}
		return nil
	},
}

var listsAddCmd = &cobra.Command{
	Use:   "add <list> <company>...",
	Short: "Add directory companies to a list, creating it if needed",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		env, err := initEnv(ctx, "engine")
		if err != nil {
			return err
		}
		defer env.Close()

		list, err := env.Tracker.AddToList(ctx, args[0], args[1:])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s now has %d companies\n", list.Name, len(list.CompanyIDs)) //nolint:errcheck
		return nil
	},
}

func init() {
	listsCmd.AddCommand(listsAddCmd)
	rootCmd.AddCommand(listsCmd)
}
