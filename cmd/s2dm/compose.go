package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/covesa/s2dm"
	"github.com/covesa/s2dm/internal/fsutil"
	"github.com/covesa/s2dm/internal/watch"
)

func composeCmd(a *app) *cobra.Command {
	var (
		schemas        []string
		rootType       string
		output         string
		references     bool
		noReferences   bool
		selectionQuery string
		requireQuery   bool
		watchMode      bool
	)

	cmd := &cobra.Command{
		Use:   "compose",
		Short: "Compose GraphQL schema files into a single output file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req := s2dm.Request{
				Paths:             schemas,
				RootType:          rootType,
				References:        references && !noReferences,
				RequireQueryField: requireQuery,
			}
			if selectionQuery != "" {
				data, err := os.ReadFile(selectionQuery)
				if err != nil {
					return fmt.Errorf("read selection query: %w", err)
				}
				req.SelectionQuery = string(data)
			}

			run := func(ctx context.Context) error {
				res, err := a.composer.Compose(ctx, req)
				if err != nil {
					return err
				}
				if err := fsutil.WriteFile(output, []byte(res.SDL), 0o644); err != nil {
					return err
				}
				if rootType != "" {
					fmt.Fprintf(cmd.OutOrStdout(), "✓ Successfully composed schema with root type '%s' to %s\n", rootType, output)
				} else {
					fmt.Fprintf(cmd.OutOrStdout(), "✓ Successfully composed schema to %s\n", output)
				}
				return nil
			}

			ctx := cmd.Context()
			if err := run(ctx); err != nil {
				return err
			}
			if !watchMode {
				return nil
			}

			w, err := watch.New(watch.Config{Paths: schemas, Debounce: a.config.Debounce, Logger: a.logger})
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()
			fmt.Fprintln(cmd.OutOrStdout(), "Watching for changes, press Ctrl+C to stop")
			return w.Run(ctx, func(ctx context.Context, changed []string) error {
				return run(ctx)
			})
		},
	}

	schemaFlag(cmd, &schemas)
	outputFlag(cmd, &output, true)
	cmd.Flags().StringVarP(&rootType, "root-type", "r", "", "Root type name for filtering the schema")
	cmd.Flags().BoolVar(&references, "references", true, "Annotate types with @reference(source: ...)")
	cmd.Flags().BoolVar(&noReferences, "no-references", false, "Do not annotate types with their source file")
	cmd.Flags().StringVar(&selectionQuery, "selection-query", "", "GraphQL query file whose selection the schema is pruned to")
	cmd.Flags().BoolVar(&requireQuery, "require-query-field", false, "Fail when no Query field returns the root type")
	cmd.Flags().BoolVar(&watchMode, "watch", false, "Compose again whenever a schema file changes")
	return cmd
}
