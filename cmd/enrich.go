package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/chain-tracker/internal/company"
	"github.com/sells-group/chain-tracker/internal/enterprise"
)

var researchTopN int

var enrichCmd = &cobra.Command{
	Use:   "enrich [name...]",
	Short: "Fill directory company profiles via Claude",
	Long:  "Enriches the named directory companies, or every company when no names are given.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		env, err := initEnv(ctx, "enrich")
		if err != nil {
			return err
		}
		defer env.Close()

		names := args
		if len(names) == 0 {
			dir, err := env.Tracker.Directory(ctx, company.Filter{})
			if err != nil {
				return err
			}
			for _, c := range dir {
				names = append(names, c.Name)
			}
		}

		results, err := initEnricher().EnrichCompanies(ctx, names, cfg.Research.Concurrency)
		if err != nil {
			return err
		}
		applied, err := env.Tracker.ApplyEnrichment(ctx, results)
		if err != nil {
			return err
		}
		failed := 0
		for _, r := range results {
			if r.Err != nil {
				failed++
			}
		}

		zap.L().Info("enrich complete",
			zap.Int("requested", len(names)),
			zap.Int("applied", applied),
			zap.Int("failed", failed),
		)
		return nil
	},
}

var researchCmd = &cobra.Command{
	Use:   "research [name...]",
	Short: "Research enterprise blockchain activity via Claude",
	Long: "Researches the named enterprises, or the top N by revenue when no names are given. " +
		"Results merge with earlier research and the last-scan time is updated.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		env, err := initEnv(ctx, "enrich")
		if err != nil {
			return err
		}
		defer env.Close()

		all, err := env.Tracker.Enterprises(ctx, enterprise.Filter{})
		if err != nil {
			return err
		}

		topN := researchTopN
		if topN == 0 {
			topN = cfg.Research.TopN
		}
		names, unknown := researchTargets(all, args, topN)
		if len(unknown) > 0 {
			fmt.Fprintf(cmd.ErrOrStderr(), "not in the registry: %s\n", joinNames(unknown)) //nolint:errcheck
		}

		results, err := initEnricher().ResearchEnterprises(ctx, names, cfg.Research.Concurrency)
		if err != nil {
			return err
		}
		applied, err := env.Tracker.ApplyResearch(ctx, all, results)
		if err != nil {
			return err
		}
		failed := 0
		for _, r := range results {
			if r.Err != nil {
				failed++
			}
		}

		zap.L().Info("research complete",
			zap.Int("requested", len(names)),
			zap.Int("applied", applied),
			zap.Int("failed", failed),
		)
		return nil
	},
}

// researchTargets resolves requested names against the registry, or picks
// the first topN enterprises when none are requested.
func researchTargets(all []enterprise.Enterprise, requested []string, topN int) (names, unknown []string) {
	if len(requested) == 0 {
		return enterprise.Names(enterprise.Select(all, enterprise.Filter{Limit: topN})), nil
	}
	for _, n := range requested {
		if _, ok := enterprise.FindByName(all, n); ok {
			names = append(names, n)
		} else {
			unknown = append(unknown, n)
		}
	}
	return names, unknown
}

func init() {
	researchCmd.Flags().IntVar(&researchTopN, "top", 0, "research the top N enterprises (default from config)")
	rootCmd.AddCommand(enrichCmd, researchCmd)
}
