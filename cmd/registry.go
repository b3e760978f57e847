package main

import (
	"github.com/spf13/cobra"

	"github.com/sells-group/chain-tracker/internal/enterprise"
)

var (
	registryProvenance string
	registryStatus     string
	registryLimit      int
	registryJSON       bool
)

var registryCmd = &cobra.Command{
	Use:   "registry",
	Short: "Print the unified enterprise registry",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		f := enterprise.Filter{Status: enterprise.Status(registryStatus), Limit: registryLimit}
		if registryProvenance != "" {
			p, err := enterprise.ParseProvenance(registryProvenance)
			if err != nil {
				return err
			}
			f.Provenance = p
		}

		env, err := initEnv(ctx, "engine")
		if err != nil {
			return err
		}
		defer env.Close()

		es, err := env.Tracker.Enterprises(ctx, f)
		if err != nil {
			return err
		}
		if registryJSON {
			return printJSON(cmd.OutOrStdout(), es)
		}
		return printEnterprises(cmd.OutOrStdout(), es)
	},
}

var linkCmd = &cobra.Command{
	Use:   "link",
	Short: "Print directory partnerships per enterprise",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		env, err := initEnv(ctx, "engine")
		if err != nil {
			return err
		}
		defer env.Close()

		es, err := env.Tracker.Enterprises(ctx, enterprise.Filter{Status: enterprise.StatusStrategic})
		if err != nil {
			return err
		}
		printPartnerships(cmd.OutOrStdout(), es)
		return nil
	},
}

func init() {
	registryCmd.Flags().StringVar(&registryProvenance, "provenance", "", "filter by provenance (global, domestic, both)")
	registryCmd.Flags().StringVar(&registryStatus, "status", "", "filter by status (Strategic, Exploring, Evaluating)")
	registryCmd.Flags().IntVar(&registryLimit, "limit", 0, "max enterprises to print (0 = all)")
	registryCmd.Flags().BoolVar(&registryJSON, "json", false, "print JSON instead of a table")
	rootCmd.AddCommand(registryCmd, linkCmd)
}
