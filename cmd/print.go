package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/sells-group/chain-tracker/internal/company"
	"github.com/sells-group/chain-tracker/internal/enterprise"
)

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printEnterprises(w io.Writer, es []enterprise.Enterprise) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "KEY\tNAME\tREVENUE (USD)\tSTATUS\tPARTNERS") //nolint:errcheck
	for _, e := range es {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\n", //nolint:errcheck
			e.Key(), e.Name, formatUSD(e.RevenueUSD), e.Status, len(e.Partnerships))
	}
	return tw.Flush()
}

func printPartnerships(w io.Writer, es []enterprise.Enterprise) {
	for _, e := range es {
		if len(e.Partnerships) == 0 {
			continue
		}
		fmt.Fprintf(w, "%s (%s)\n", e.Name, e.Key()) //nolint:errcheck
		for _, p := range e.Partnerships {
			if p.Description != "" {
				fmt.Fprintf(w, "  - %s: %s\n", p.DirectoryCompany, p.Description) //nolint:errcheck
			} else {
				fmt.Fprintf(w, "  - %s\n", p.DirectoryCompany) //nolint:errcheck
			}
		}
	}
}

func printGroups(w io.Writer, groups []company.GroupedEntry) {
	for _, g := range groups {
		fmt.Fprintln(w, g.Parent.Name) //nolint:errcheck
		for _, s := range g.Subsidiaries {
			fmt.Fprintf(w, "  └ %s\n", s.Name) //nolint:errcheck
		}
	}
}

// formatUSD renders an absolute amount as $1.23B / $456.7M.
func formatUSD(v float64) string {
	switch {
	case v >= 1e12:
		return fmt.Sprintf("$%.2fT", v/1e12)
	case v >= 1e9:
		return fmt.Sprintf("$%.2fB", v/1e9)
	case v >= 1e6:
		return fmt.Sprintf("$%.1fM", v/1e6)
	case v > 0:
		return fmt.Sprintf("$%.0f", v)
	default:
		return "-"
	}
}

func joinNames(names []string) string {
	return strings.Join(names, ", ")
}
