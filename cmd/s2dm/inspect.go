package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/covesa/s2dm"
	"github.com/covesa/s2dm/internal/diff"
	"github.com/covesa/s2dm/internal/fsutil"
	"github.com/covesa/s2dm/internal/inspect"
)

// errBreaking reports a diff holding breaking changes.
var errBreaking = errors.New("breaking changes detected")

// group wraps the graphql subcommand of validate, diff, search, similar and
// stats.
func group(use, short string, sub *cobra.Command) *cobra.Command {
	cmd := &cobra.Command{Use: use, Short: short}
	cmd.AddCommand(sub)
	return cmd
}

func validateCmd(a *app) *cobra.Command {
	var (
		schemas []string
		output  string
	)
	sub := &cobra.Command{
		Use:   "graphql",
		Short: "Validate the composed GraphQL schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.composer.Compose(cmd.Context(), s2dm.Request{Paths: schemas})
			if err != nil {
				return err
			}
			gs, err := inspect.Validate("composed.graphql", res.SDL)
			if err != nil {
				return err
			}
			if output != "" {
				if err := fsutil.WriteFile(output, []byte(inspect.Format(gs)), 0o644); err != nil {
					return err
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Schema is valid (%d types)\n", len(gs.Types))
			return nil
		},
	}
	schemaFlag(sub, &schemas)
	outputFlag(sub, &output, false)
	return group("validate", "Validate schemas", sub)
}

func diffCmd(a *app) *cobra.Command {
	var (
		schemas []string
		against []string
		output  string
	)
	sub := &cobra.Command{
		Use:   "graphql",
		Short: "Diff for two GraphQL schemas",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a.logger.Info("comparing schemas", "schema", schemas, "val_schema", against, "output", output)
			old, _, err := a.composer.LoadSchema(cmd.Context(), schemas)
			if err != nil {
				return err
			}
			cur, _, err := a.composer.LoadSchema(cmd.Context(), against)
			if err != nil {
				return err
			}
			changes := diff.Compare(old, cur)
			if output != "" {
				data, err := diff.Marshal(changes)
				if err != nil {
					return err
				}
				if err := fsutil.WriteFile(output, data, 0o644); err != nil {
					return err
				}
			}
			fmt.Fprint(cmd.OutOrStdout(), diff.Format(changes))
			if diff.VersionBump(changes) == diff.Major {
				return errBreaking
			}
			return nil
		},
	}
	schemaFlag(sub, &schemas)
	outputFlag(sub, &output, false)
	sub.Flags().StringArrayVarP(&against, "val-schema", "v", nil, "The GraphQL schema file to validate against")
	_ = sub.MarkFlagRequired("val-schema")
	return group("diff", "Diff schemas", sub)
}

func searchCmd(a *app) *cobra.Command {
	var (
		schemas []string
		term    string
		opts    inspect.SearchOptions
	)
	sub := &cobra.Command{
		Use:   "graphql",
		Short: "Search for a type or field in the GraphQL schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, _, err := a.composer.LoadSchema(cmd.Context(), schemas)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			section(w, fmt.Sprintf("Search results for '%s'", term))
			matches := inspect.Search(s, term, opts)
			if len(matches) == 0 {
				fmt.Fprintf(w, "No matches found for '%s'.\n", term)
				return nil
			}
			for _, m := range matches {
				fmt.Fprintf(w, "%s: %v\n", m.Type, m.Fields)
			}
			return nil
		},
	}
	schemaFlag(sub, &schemas)
	sub.Flags().StringVarP(&term, "type", "t", "", "Type or field you want to search the graphql schema for")
	_ = sub.MarkFlagRequired("type")
	sub.Flags().BoolVarP(&opts.CaseInsensitive, "case-insensitive", "i", false, "Perform a case-insensitive search")
	sub.Flags().BoolVar(&opts.Exact, "exact", false, "Perform an exact match search")
	return group("search", "Search schemas", sub)
}

func similarCmd(a *app) *cobra.Command {
	var (
		schemas   []string
		keyword   string
		output    string
		threshold float64
	)
	sub := &cobra.Command{
		Use:   "graphql",
		Short: "Rate the similarity of type names, '-k all' compares every type",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, _, err := a.composer.LoadSchema(cmd.Context(), schemas)
			if err != nil {
				return err
			}
			k := keyword
			if k == "all" {
				k = ""
			}
			report, err := inspect.Similar(s, k, threshold)
			if err != nil {
				return err
			}
			if output != "" {
				a.logger.Info("writing similarity report", "path", output)
				data, err := json.MarshalIndent(report, "", "  ")
				if err != nil {
					return err
				}
				if err := fsutil.WriteFile(output, data, 0o644); err != nil {
					return err
				}
			}
			w := cmd.OutOrStdout()
			section(w, fmt.Sprintf("Search result for '%s'", keyword))
			fmt.Fprint(w, inspect.FormatSimilar(report))
			return nil
		},
	}
	schemaFlag(sub, &schemas)
	outputFlag(sub, &output, false)
	sub.Flags().StringVarP(&keyword, "keyword", "k", "", "Name of the type to compare, or 'all'")
	_ = sub.MarkFlagRequired("keyword")
	sub.Flags().Float64Var(&threshold, "threshold", inspect.DefaultThreshold, "Lowest rating reported")
	return group("similar", "Find similar types", sub)
}

func statsCmd(a *app) *cobra.Command {
	var schemas []string
	sub := &cobra.Command{
		Use:   "graphql",
		Short: "Get stats of schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, _, err := a.composer.LoadSchema(cmd.Context(), schemas)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			section(w, "GraphQL Schema Type Counts")
			return printJSON(w, inspect.Count(s))
		},
	}
	schemaFlag(sub, &schemas)
	return group("stats", "Schema statistics", sub)
}
