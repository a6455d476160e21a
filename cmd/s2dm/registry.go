package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/covesa/s2dm"
	"github.com/covesa/s2dm/ast"
	"github.com/covesa/s2dm/config"
	"github.com/covesa/s2dm/internal/exporter/concept"
	"github.com/covesa/s2dm/internal/exporter/id"
	"github.com/covesa/s2dm/internal/exporter/spechistory"
	"github.com/covesa/s2dm/internal/fsutil"
	"github.com/covesa/s2dm/internal/idgen"
)

// section prints a heading above one block of command output.
func section(w io.Writer, title string) {
	fmt.Fprintf(w, "\n%s\n%s\n", title, strings.Repeat("─", len([]rune(title))))
}

func printJSON(w io.Writer, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%s\n", data)
	return err
}

func registryCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "registry",
		Short: "Generate concept ids, concept URIs and spec history",
	}
	cmd.AddCommand(
		conceptURICmd(a),
		idCmd(a),
		registryInitCmd(a),
		registryUpdateCmd(a),
	)
	return cmd
}

func conceptURICmd(a *app) *cobra.Command {
	var (
		schemas           []string
		output            string
		namespace, prefix string
	)
	defaults := config.Default()

	cmd := &cobra.Command{
		Use:   "concept-uri",
		Short: "Generate concept URIs for a GraphQL schema and output as JSON-LD",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, _, err := a.composer.LoadSchema(cmd.Context(), schemas)
			if err != nil {
				return err
			}
			m := concept.NewURIModel(concept.Collect(s),
				stringOr(cmd, "namespace", namespace, a.config.ConceptNamespace),
				stringOr(cmd, "prefix", prefix, a.config.ConceptPrefix))

			w := cmd.OutOrStdout()
			if output != "" {
				data, err := json.MarshalIndent(m, "", "  ")
				if err != nil {
					return err
				}
				a.logger.Info("writing concept URIs", "path", output)
				if err := fsutil.WriteFile(output, data, 0o644); err != nil {
					return err
				}
				fmt.Fprintf(w, "Concept URIs written to %s\n", output)
			}
			section(w, "Concept URIs (JSON-LD)")
			return printJSON(w, m)
		},
	}
	schemaFlag(cmd, &schemas)
	outputFlag(cmd, &output, false)
	cmd.Flags().StringVar(&namespace, "namespace", defaults.ConceptNamespace, "The namespace for the URIs")
	cmd.Flags().StringVar(&prefix, "prefix", defaults.ConceptPrefix, "The prefix to use for the URIs")
	return cmd
}

func idCmd(a *app) *cobra.Command {
	var (
		schemas []string
		output  string
		units   string
		strict  bool
	)
	cmd := &cobra.Command{
		Use:   "id",
		Short: "Generate concept IDs for GraphQL schema fields and enums",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, _, err := a.composer.LoadSchema(cmd.Context(), schemas)
			if err != nil {
				return err
			}
			ids, err := a.conceptIDs(cmd.Context(), s, units, strict)
			if err != nil {
				return err
			}
			if output != "" {
				data, err := id.Marshal(ids)
				if err != nil {
					return err
				}
				if err := fsutil.WriteFile(output, data, 0o644); err != nil {
					return err
				}
			}
			w := cmd.OutOrStdout()
			section(w, "Concept IDs")
			return printJSON(w, ids)
		},
	}
	schemaFlag(cmd, &schemas)
	unitsFlag(cmd, &units)
	outputFlag(cmd, &output, false)
	cmd.Flags().BoolVar(&strict, "strict-mode", false, "Keep the case of the hashed concept text")
	cmd.Flags().Bool("no-strict-mode", false, "Lower-case the hashed concept text")
	cmd.MarkFlagsMutuallyExclusive("strict-mode", "no-strict-mode")
	return cmd
}

func unitsFlag(cmd *cobra.Command, units *string) {
	cmd.Flags().StringVarP(units, "units", "u", "", "Path to your units.yaml")
	_ = cmd.MarkFlagRequired("units")
}

func (a *app) conceptIDs(ctx context.Context, s *ast.Schema, unitsPath string, strict bool) (map[string]string, error) {
	units, err := idgen.LoadUnits(unitsPath)
	if err != nil {
		return nil, err
	}
	opts := []id.Option{id.WithUnits(units), id.WithLogger(a.logger)}
	if strict {
		opts = append(opts, id.Strict())
	}
	var ids map[string]string
	err = a.composer.Stage(ctx, "export", map[string]interface{}{"format": "id"}, func(context.Context) error {
		ids, err = id.Generate(s, opts...)
		return err
	})
	return ids, err
}

// historyRun holds what registry init and update share: the composed
// schema, its concept ids and URIs, and the archive next to the output.
type historyRun struct {
	ids     map[string]string
	model   *concept.URIModel
	archive *spechistory.Archive
}

type historyFlags struct {
	schemas           []string
	units             string
	output            string
	namespace, prefix string
}

func (f *historyFlags) register(cmd *cobra.Command) {
	defaults := config.Default()
	schemaFlag(cmd, &f.schemas)
	unitsFlag(cmd, &f.units)
	outputFlag(cmd, &f.output, true)
	cmd.Flags().StringVar(&f.namespace, "concept-namespace", defaults.ConceptNamespace, "The namespace for the concept URIs")
	cmd.Flags().StringVar(&f.prefix, "concept-prefix", defaults.ConceptPrefix, "The prefix to use for the concept URIs")
}

func (a *app) prepareHistory(cmd *cobra.Command, f *historyFlags) (*historyRun, error) {
	res, err := a.composer.Compose(cmd.Context(), s2dm.Request{Paths: f.schemas})
	if err != nil {
		return nil, err
	}
	ids, err := a.conceptIDs(cmd.Context(), res.Schema, f.units, false)
	if err != nil {
		return nil, err
	}
	m := concept.NewURIModel(concept.Collect(res.Schema),
		stringOr(cmd, "concept-namespace", f.namespace, a.config.ConceptNamespace),
		stringOr(cmd, "concept-prefix", f.prefix, a.config.ConceptPrefix))

	out, err := filepath.Abs(f.output)
	if err != nil {
		return nil, err
	}
	archive, err := spechistory.NewArchive(filepath.Join(filepath.Dir(out), "history"), res.SDL, a.logger)
	if err != nil {
		return nil, err
	}
	return &historyRun{ids: ids, model: m, archive: archive}, nil
}

func (a *app) writeHistory(cmd *cobra.Command, output string, run *historyRun, h *spechistory.History) error {
	data, err := spechistory.Marshal(h)
	if err != nil {
		return err
	}
	if err := fsutil.WriteFile(output, data, 0o644); err != nil {
		return err
	}
	w := cmd.OutOrStdout()
	section(w, "Concept IDs")
	if err := printJSON(w, run.ids); err != nil {
		return err
	}
	section(w, "Concept URIs")
	if err := printJSON(w, run.model); err != nil {
		return err
	}
	section(w, "Spec history (updated)")
	_, err = fmt.Fprintf(w, "%s\n", data)
	return err
}

func registryInitCmd(a *app) *cobra.Command {
	f := &historyFlags{}
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize your spec history with the given schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			run, err := a.prepareHistory(cmd, f)
			if err != nil {
				return err
			}
			h, err := spechistory.Init(run.model, run.ids,
				spechistory.WithArchive(run.archive),
				spechistory.WithLogger(a.logger))
			if err != nil {
				return err
			}
			return a.writeHistory(cmd, f.output, run, h)
		},
	}
	f.register(cmd)
	return cmd
}

func registryUpdateCmd(a *app) *cobra.Command {
	var previous string
	f := &historyFlags{}
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update a given spec history file with your new schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(previous)
			if err != nil {
				return fmt.Errorf("read spec history: %w", err)
			}
			h, err := spechistory.Load(data)
			if err != nil {
				return err
			}
			run, err := a.prepareHistory(cmd, f)
			if err != nil {
				return err
			}
			added, changed, err := spechistory.Update(h, run.model, run.ids,
				spechistory.WithArchive(run.archive),
				spechistory.WithLogger(a.logger))
			if err != nil {
				return err
			}
			a.logger.Info("updated spec history", "added", len(added), "changed", len(changed))
			return a.writeHistory(cmd, f.output, run, h)
		},
	}
	f.register(cmd)
	cmd.Flags().StringVar(&previous, "spec-history", "", "Path to the previously generated spec history file")
	_ = cmd.MarkFlagRequired("spec-history")
	return cmd
}
