package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/covesa/s2dm/internal/constraint"
	"github.com/covesa/s2dm/internal/diff"
)

// errConstraints reports violations already printed to the output.
var errConstraints = errors.New("constraint violations found")

func checkCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check version bumps and directive constraints",
	}
	cmd.AddCommand(versionBumpCmd(a), constraintsCmd(a))
	return cmd
}

func versionBumpCmd(a *app) *cobra.Command {
	var (
		schemas    []string
		previous   []string
		outputType bool
	)
	cmd := &cobra.Command{
		Use:   "version-bump",
		Short: "Check whether the schema changes need a version bump",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			old, _, err := a.composer.LoadSchema(cmd.Context(), previous)
			if err != nil {
				return err
			}
			cur, _, err := a.composer.LoadSchema(cmd.Context(), schemas)
			if err != nil {
				return err
			}
			changes := diff.Compare(old, cur)
			bump := diff.VersionBump(changes)
			a.logger.Debug("compared schemas", "changes", len(changes), "bump", string(bump))

			w := cmd.OutOrStdout()
			fmt.Fprintln(w, bump.Message())
			if outputType {
				fmt.Fprintln(w, bump)
			}
			return nil
		},
	}
	schemaFlag(cmd, &schemas)
	cmd.Flags().StringArrayVarP(&previous, "previous", "p", nil, "The GraphQL schema file to validate against")
	_ = cmd.MarkFlagRequired("previous")
	cmd.Flags().BoolVar(&outputType, "output-type", false, "Output the version bump type for pipeline usage")
	return cmd
}

func constraintsCmd(a *app) *cobra.Command {
	var schemas []string
	cmd := &cobra.Command{
		Use:   "constraints",
		Short: "Enforce intended use of custom directives",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, _, err := a.composer.LoadSchema(cmd.Context(), schemas)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			violations := constraint.Check(s)
			if len(violations) == 0 {
				fmt.Fprintln(w, "All constraints passed!")
				return nil
			}
			section(w, "Constraint Violations")
			for _, v := range violations {
				fmt.Fprintf(w, "- %s\n", v.Message)
			}
			return errConstraints
		},
	}
	schemaFlag(cmd, &schemas)
	return cmd
}
