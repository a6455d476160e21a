package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/covesa/s2dm/ast"
	"github.com/covesa/s2dm/config"
	"github.com/covesa/s2dm/internal/exporter/jsonschema"
	"github.com/covesa/s2dm/internal/exporter/shacl"
	"github.com/covesa/s2dm/internal/exporter/skos"
	"github.com/covesa/s2dm/internal/exporter/vspec"
	"github.com/covesa/s2dm/internal/fsutil"
	"github.com/covesa/s2dm/internal/idgen"
	"github.com/covesa/s2dm/internal/naming"
)

// loadNamed loads the schema at paths and applies the naming configuration
// stored at namingPath, if any.
func (a *app) loadNamed(ctx context.Context, paths []string, namingPath string) (*ast.Schema, config.Naming, error) {
	n, err := config.LoadNaming(namingPath)
	if err != nil {
		return nil, nil, err
	}
	s, _, err := a.composer.LoadSchema(ctx, paths)
	if err != nil {
		return nil, nil, err
	}
	return naming.Apply(s, n), n, nil
}

// export runs fn as a traced export stage and writes its output.
func (a *app) export(ctx context.Context, format, output string, fn func() ([]byte, error)) error {
	return a.composer.Stage(ctx, "export", map[string]interface{}{"format": format}, func(context.Context) error {
		data, err := fn()
		if err != nil {
			return err
		}
		return fsutil.WriteFile(output, data, 0o644)
	})
}

func stringOr(cmd *cobra.Command, flag, value, fallback string) string {
	if cmd.Flags().Changed(flag) {
		return value
	}
	return fallback
}

func exportCmd(a *app) *cobra.Command {
	var namingConfig string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the schema to other modelling languages",
	}
	cmd.PersistentFlags().StringVarP(&namingConfig, "naming-config", "n", "", "YAML file containing naming configuration")
	cmd.AddCommand(
		shaclCmd(a, &namingConfig),
		vspecCmd(a, &namingConfig),
		jsonschemaCmd(a, &namingConfig),
	)
	return cmd
}

func shaclCmd(a *app, namingConfig *string) *cobra.Command {
	var (
		schemas                []string
		output, format         string
		shapesNS, shapesPrefix string
		modelNS, modelPrefix   string
	)
	defaults := config.Default()

	cmd := &cobra.Command{
		Use:   "shacl",
		Short: "Generate SHACL shapes from a GraphQL schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, n, err := a.loadNamed(cmd.Context(), schemas, *namingConfig)
			if err != nil {
				return err
			}
			opts := shacl.Options{
				ShapesNamespace: stringOr(cmd, "shapes-namespace", shapesNS, a.config.ShapesNamespace),
				ShapesPrefix:    stringOr(cmd, "shapes-namespace-prefix", shapesPrefix, a.config.ShapesNamespacePrefix),
				ModelNamespace:  stringOr(cmd, "model-namespace", modelNS, a.config.ModelNamespace),
				ModelPrefix:     stringOr(cmd, "model-namespace-prefix", modelPrefix, a.config.ModelNamespacePrefix),
				Naming:          n,
				Logger:          a.logger,
			}
			return a.export(cmd.Context(), "shacl", output, func() ([]byte, error) {
				out, err := shacl.Export(s, opts, format)
				return []byte(out), err
			})
		},
	}

	schemaFlag(cmd, &schemas)
	outputFlag(cmd, &output, true)
	cmd.Flags().StringVarP(&format, "serialization-format", "f", "ttl", "RDF serialization format of the output file (ttl, nt)")
	cmd.Flags().StringVar(&shapesNS, "shapes-namespace", defaults.ShapesNamespace, "The namespace for SHACL shapes")
	cmd.Flags().StringVar(&shapesPrefix, "shapes-namespace-prefix", defaults.ShapesNamespacePrefix, "The prefix for the SHACL shapes")
	cmd.Flags().StringVar(&modelNS, "model-namespace", defaults.ModelNamespace, "The namespace for the data model")
	cmd.Flags().StringVar(&modelPrefix, "model-namespace-prefix", defaults.ModelNamespacePrefix, "The prefix for the data model")
	return cmd
}

func vspecCmd(a *app, namingConfig *string) *cobra.Command {
	var (
		schemas []string
		output  string
		units   string
	)
	cmd := &cobra.Command{
		Use:   "vspec",
		Short: "Generate VSPEC from a GraphQL schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, n, err := a.loadNamed(cmd.Context(), schemas, *namingConfig)
			if err != nil {
				return err
			}
			opts := vspec.Options{Naming: n, Logger: a.logger}
			if units != "" {
				u, err := idgen.LoadUnits(units)
				if err != nil {
					return err
				}
				opts.Units = u
			}
			return a.export(cmd.Context(), "vspec", output, func() ([]byte, error) {
				out, err := vspec.Export(s, opts)
				return []byte(out), err
			})
		},
	}
	schemaFlag(cmd, &schemas)
	outputFlag(cmd, &output, true)
	cmd.Flags().StringVarP(&units, "units", "u", "", "units.yaml extending the built-in unit symbols")
	return cmd
}

func jsonschemaCmd(a *app, namingConfig *string) *cobra.Command {
	var (
		schemas  []string
		output   string
		rootType string
		strict   bool
		expanded bool
	)
	cmd := &cobra.Command{
		Use:   "jsonschema",
		Short: "Generate JSON Schema from a GraphQL schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, n, err := a.loadNamed(cmd.Context(), schemas, *namingConfig)
			if err != nil {
				return err
			}
			opts := jsonschema.Options{
				RootType:          rootType,
				Strict:            strict,
				ExpandedInstances: expanded,
				Naming:            n,
				Logger:            a.logger,
			}
			return a.export(cmd.Context(), "jsonschema", output, func() ([]byte, error) {
				return jsonschema.Export(s, opts)
			})
		},
	}
	schemaFlag(cmd, &schemas)
	outputFlag(cmd, &output, true)
	cmd.Flags().StringVarP(&rootType, "root-type", "r", "", "Root type name for the JSON schema")
	cmd.Flags().BoolVarP(&strict, "strict", "S", false, "Enforce strict field nullability translation from GraphQL to JSON Schema")
	cmd.Flags().BoolVarP(&expanded, "expanded-instances", "e", false, "Expand instance tags into nested structure instead of arrays")
	return cmd
}

func generateCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate artifacts from a GraphQL schema",
	}
	cmd.AddCommand(skosCmd(a))
	return cmd
}

func skosCmd(a *app) *cobra.Command {
	var (
		schemas                     []string
		output                      string
		namespace, prefix, language string
	)
	defaults := config.Default()

	cmd := &cobra.Command{
		Use:   "skos-skeleton",
		Short: "Generate a SKOS skeleton RDF file from a GraphQL schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := skos.Options{
				Namespace: stringOr(cmd, "namespace", namespace, a.config.ConceptNamespace),
				Prefix:    stringOr(cmd, "prefix", prefix, a.config.ConceptPrefix),
				Language:  stringOr(cmd, "language", language, a.config.Language),
				Logger:    a.logger,
			}
			if err := skos.ValidateLanguage(opts.Language); err != nil {
				return err
			}
			s, _, err := a.composer.LoadSchema(cmd.Context(), schemas)
			if err != nil {
				return err
			}
			return a.export(cmd.Context(), "skos", output, func() ([]byte, error) {
				out, err := skos.Export(s, opts)
				if err != nil {
					return nil, fmt.Errorf("SKOS generation failed: %w", err)
				}
				return []byte(out), nil
			})
		},
	}
	schemaFlag(cmd, &schemas)
	outputFlag(cmd, &output, true)
	cmd.Flags().StringVar(&namespace, "namespace", defaults.ConceptNamespace, "The namespace for the concept URIs")
	cmd.Flags().StringVar(&prefix, "prefix", defaults.ConceptPrefix, "The prefix to use for the concept URIs")
	cmd.Flags().StringVar(&language, "language", defaults.Language, "BCP 47 language tag for prefLabels")
	return cmd
}

func schemaFlag(cmd *cobra.Command, schemas *[]string) {
	cmd.Flags().StringArrayVarP(schemas, "schema", "s", nil, "GraphQL schema file or directory, repeatable")
	_ = cmd.MarkFlagRequired("schema")
}

func outputFlag(cmd *cobra.Command, output *string, required bool) {
	cmd.Flags().StringVarP(output, "output", "o", "", "Output file")
	if required {
		_ = cmd.MarkFlagRequired("output")
	}
}
