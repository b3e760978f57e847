package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sells-group/chain-tracker/internal/model"
)

var (
	newsTitle   string
	newsURL     string
	newsSummary string
	newsSource  string
	newsDate    string
	newsRelated []string
)

var newsCmd = &cobra.Command{
	Use:   "news",
	Short: "Manage news items",
}

var newsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a news item",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		env, err := initEnv(ctx, "engine")
		if err != nil {
			return err
		}
		defer env.Close()

		item, err := env.Tracker.AddNews(ctx, model.NewsItem{
			Title:            newsTitle,
			URL:              newsURL,
			Summary:          newsSummary,
			Source:           newsSource,
			Date:             newsDate,
			RelatedCompanies: newsRelated,
		})
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), item.ID) //nolint:errcheck
		return nil
	},
}

var newsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List news items, newest first",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		env, err := initEnv(ctx, "engine")
		if err != nil {
			return err
		}
		defer env.Close()

		news, err := env.Tracker.News(ctx)
		if err != nil {
			return err
		}
		for _, n := range news {
			fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n", n.AddedAt.Format("2006-01-02"), n.Title) //nolint:errcheck
		}
		return nil
	},
}

func init() {
	newsAddCmd.Flags().StringVar(&newsTitle, "title", "", "headline (required)")
	newsAddCmd.Flags().StringVar(&newsURL, "url", "", "article URL")
	newsAddCmd.Flags().StringVar(&newsSummary, "summary", "", "short summary")
	newsAddCmd.Flags().StringVar(&newsSource, "source", "", "publisher")
	newsAddCmd.Flags().StringVar(&newsDate, "date", "", "publication date (YYYY-MM-DD)")
	newsAddCmd.Flags().StringSliceVar(&newsRelated, "related", nil, "related enterprise or company names")
	_ = newsAddCmd.MarkFlagRequired("title")

	newsCmd.AddCommand(newsAddCmd, newsListCmd)
	rootCmd.AddCommand(newsCmd)
}
