// Command s2dm composes S2DM GraphQL schemas and exports them to other
// modelling languages.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	opentracing "github.com/opentracing/opentracing-go"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	jaegercfg "github.com/uber/jaeger-client-go/config"

	"github.com/covesa/s2dm"
	"github.com/covesa/s2dm/config"
	"github.com/covesa/s2dm/log"
	s2dmtracing "github.com/covesa/s2dm/trace/opentracing"
)

const (
	Version   = "0.1.0"
	appName   = "s2dm"
	envPrefix = "S2DM"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// app is the state shared by every command of one invocation.
type app struct {
	logLevel   string
	logFile    string
	logFormat  string
	configPath string
	trace      bool

	config   *config.Config
	logger   *slog.Logger
	composer *s2dm.Composer
	closers  []io.Closer
}

func rootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:           appName,
		Short:         "Simplified Semantic Data Modeling tooling",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := bindEnv(cmd); err != nil {
				return err
			}
			return a.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.close()
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&a.logLevel, "log-level", "l", "INFO", "Log level (DEBUG, INFO, WARNING, ERROR, CRITICAL)")
	flags.StringVar(&a.logFile, "log-file", "", "Log file, truncated on start")
	flags.StringVar(&a.logFormat, "log-format", "text", "Log format (text, json)")
	flags.StringVar(&a.configPath, "config", "", "YAML file overriding the exporter defaults")
	flags.BoolVar(&a.trace, "trace", false, "Report pipeline stages to a jaeger agent configured from JAEGER_* variables")

	cmd.AddCommand(
		composeCmd(a),
		exportCmd(a),
		generateCmd(a),
		registryCmd(a),
		checkCmd(a),
		validateCmd(a),
		diffCmd(a),
		searchCmd(a),
		similarCmd(a),
		statsCmd(a),
	)
	return cmd
}

func (a *app) setup(cmd *cobra.Command) error {
	w := cmd.ErrOrStderr()
	format := a.logFormat
	if a.logFile != "" {
		f, err := os.Create(a.logFile)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		a.closers = append(a.closers, f)
		w = f
		if !cmd.Flags().Changed("log-format") {
			format = "text"
		}
	}
	logger, err := log.New(w, a.logLevel, format)
	if err != nil {
		return err
	}
	a.logger = logger

	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	a.config = cfg

	a.composer = s2dm.NewComposer()
	a.composer.Logger = logger
	if a.trace {
		if err := a.startTracing(); err != nil {
			return err
		}
		a.composer.Tracer = s2dmtracing.Tracer{}
	}
	return nil
}

func (a *app) startTracing() error {
	cfg, err := jaegercfg.FromEnv()
	if err != nil {
		return fmt.Errorf("configure jaeger: %w", err)
	}
	if cfg.ServiceName == "" {
		cfg.ServiceName = appName
	}
	tracer, closer, err := cfg.NewTracer()
	if err != nil {
		return fmt.Errorf("start jaeger tracer: %w", err)
	}
	opentracing.SetGlobalTracer(tracer)
	// The tracer flushes before the log file closes.
	a.closers = append([]io.Closer{closer}, a.closers...)
	a.logger.Debug("tracing enabled", slog.String("service", cfg.ServiceName))
	return nil
}

func (a *app) close() error {
	var first error
	for _, c := range a.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	a.closers = nil
	return first
}

// bindEnv fills unset flags from the environment. Flags of the root command
// read S2DM_<FLAG>, others S2DM_<COMMAND>_<FLAG>: S2DM_LOG_LEVEL,
// S2DM_COMPOSE_ROOT_TYPE.
func bindEnv(cmd *cobra.Command) error {
	var err error
	set := func(prefix string) func(f *pflag.Flag) {
		return func(f *pflag.Flag) {
			if err != nil || f.Changed {
				return
			}
			name := envName(prefix, f.Name)
			if v, ok := os.LookupEnv(name); ok {
				if serr := f.Value.Set(v); serr != nil {
					err = fmt.Errorf("invalid %s: %w", name, serr)
					return
				}
				f.Changed = true
			}
		}
	}

	cmd.InheritedFlags().VisitAll(set(""))
	path := strings.TrimPrefix(cmd.CommandPath(), cmd.Root().Name())
	cmd.LocalNonPersistentFlags().VisitAll(set(path))
	return err
}

func envName(path, flag string) string {
	parts := append([]string{envPrefix}, strings.Fields(path)...)
	parts = append(parts, flag)
	return strings.ToUpper(strings.ReplaceAll(strings.Join(parts, "_"), "-", "_"))
}
