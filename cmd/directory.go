package main

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/chain-tracker/internal/company"
	"github.com/sells-group/chain-tracker/internal/fetcher"
)

var (
	groupsCategory string
	groupsRegion   string
	dedupeDryRun   bool
	importFile     string
)

var groupsCmd = &cobra.Command{
	Use:   "groups",
	Short: "Print the directory grouped into parents and subsidiaries",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		env, err := initEnv(ctx, "engine")
		if err != nil {
			return err
		}
		defer env.Close()

		groups, err := env.Tracker.Groups(ctx, company.Filter{Category: groupsCategory, Region: groupsRegion})
		if err != nil {
			return err
		}
		printGroups(cmd.OutOrStdout(), groups)
		return nil
	},
}

var dedupeCmd = &cobra.Command{
	Use:   "dedupe",
	Short: "Merge duplicate directory companies",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		env, err := initEnv(ctx, "engine")
		if err != nil {
			return err
		}
		defer env.Close()

		out := cmd.OutOrStdout()
		if dedupeDryRun {
			dups, err := env.Tracker.Duplicates(ctx)
			if err != nil {
				return err
			}
			for _, names := range dups {
				fmt.Fprintln(out, joinNames(names)) //nolint:errcheck
			}
			fmt.Fprintf(out, "%d duplicate groups\n", len(dups)) //nolint:errcheck
			return nil
		}

		res, err := env.Tracker.Dedupe(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "merged %d groups, removed %d records\n", res.Merged, res.Removed) //nolint:errcheck
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import directory companies from a CSV or XLSX file",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		tbl, err := fetcher.ReadTable(ctx, importFile)
		if err != nil {
			return eris.Wrap(err, "read import file")
		}

		env, err := initEnv(ctx, "engine")
		if err != nil {
			return err
		}
		defer env.Close()

		res, err := env.Tracker.Import(ctx, tbl.Records())
		if err != nil {
			return err
		}

		zap.L().Info("import complete",
			zap.String("file", importFile),
			zap.Int("added", res.Added),
			zap.Int("merged", res.Merged),
			zap.Int("skipped", res.Skipped),
		)
		return nil
	},
}

var removeCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Remove a company from the directory",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		env, err := initEnv(ctx, "engine")
		if err != nil {
			return err
		}
		defer env.Close()

		ok, err := env.Tracker.RemoveCompany(ctx, args[0])
		if err != nil {
			return err
		}
		if !ok {
			return eris.Errorf("no directory company named %q", args[0])
		}
		fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", args[0]) //nolint:errcheck
		return nil
	},
}

func init() {
	groupsCmd.Flags().StringVar(&groupsCategory, "category", "", "only companies with this category")
	groupsCmd.Flags().StringVar(&groupsRegion, "region", "", "only companies in this region")
	dedupeCmd.Flags().BoolVar(&dedupeDryRun, "dry-run", false, "list duplicate groups without merging")
	importCmd.Flags().StringVar(&importFile, "file", "", "path to a .csv, .tsv or .xlsx file (required)")
	_ = importCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(groupsCmd, dedupeCmd, importCmd, removeCmd)
}
