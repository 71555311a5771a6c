package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ajitpratap0/vrem/pkg/config"
	"github.com/ajitpratap0/vrem/pkg/importer"
	"github.com/ajitpratap0/vrem/pkg/logger"
	"github.com/ajitpratap0/vrem/pkg/metrics"
	"github.com/ajitpratap0/vrem/pkg/observability"
	"github.com/ajitpratap0/vrem/pkg/store"
)

var version = "0.1.0"

// exitMalformedSidecar is the process status when a sidecar file cannot be
// parsed. Nothing has been written to the database at that point.
const exitMalformedSidecar = 100

// storeOpener connects to the exhibition store
type storeOpener func(ctx context.Context, cfg config.DatabaseConfig, m *metrics.StoreCollector, log *zap.Logger) (store.Store, error)

func openMongoStore(ctx context.Context, cfg config.DatabaseConfig, m *metrics.StoreCollector, log *zap.Logger) (store.Store, error) {
	s, err := store.Connect(ctx, cfg, m, log)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// cli carries the state shared by all commands of one invocation
type cli struct {
	out        io.Writer
	openStore  storeOpener
	configFile string

	cfg      *config.Config
	logger   *zap.Logger
	metrics  *metrics.Collector
	shutdown observability.ShutdownFunc
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := execute(context.Background(), os.Stdout, openMongoStore, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(exitCode(err))
	}
}

func exitCode(err error) int {
	if importer.IsMalformedSidecar(err) {
		return exitMalformedSidecar
	}
	return 1
}

// execute runs one command line. Spans, metrics and logs are flushed even
// when the command fails.
func execute(ctx context.Context, out io.Writer, open storeOpener, args []string) error {
	c := &cli{out: out, openStore: open}
	root := c.rootCmd()
	root.SetArgs(args)

	err := root.ExecuteContext(ctx)
	if err != nil && c.logger != nil {
		c.logger.Debug("command failed", logger.ErrorFields(err)...)
	}
	if terr := c.teardown(); err == nil {
		err = terr
	}
	return err
}

func (c *cli) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "vrem",
		Short: "VREM - virtual reality exhibition manager",
		Long: `VREM turns a folder of images and metadata files into a virtual exhibition
and stores it in MongoDB, one document per exhibition.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.setup,
	}
	root.SetOut(c.out)

	flags := root.PersistentFlags()
	flags.StringVarP(&c.configFile, "config", "c", "", "Path to a YAML configuration file")
	flags.String("db-uri", "", "MongoDB connection string")
	flags.String("db-name", "", "MongoDB database name")
	flags.String("db-collection", "", "MongoDB collection holding exhibitions")
	flags.String("log-level", "", "Log level (debug, info, warn, error)")
	flags.String("log-encoding", "", "Log encoding (json, console)")
	flags.Bool("trace", false, "Export spans to stderr")
	flags.String("metrics-file", "", "Write Prometheus metrics to this file on exit")
	flags.String("reserved-prefix", "", "Skip room directories starting with this prefix")

	root.AddCommand(
		newImportCmd(c),
		newExportCmd(c),
		newShowCmd(c),
		newListCmd(c),
		newDeleteCmd(c),
		newConfigCmd(c),
		newVersionCmd(),
	)
	return root
}

// setup loads the configuration and starts logging, tracing and metrics
func (c *cli) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(c.configFile, cmd.Flags())
	if err != nil {
		return err
	}

	if err := logger.Init(cfg.Logging); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	ctx := logger.ContextWithRunID(cmd.Context(), uuid.NewString())
	ctx = logger.ContextWithCommand(ctx, cmd.CommandPath())
	cmd.SetContext(ctx)
	c.logger = logger.Get().With(zap.String("component", "vrem-cli"))

	tracing := cfg.Observability.Tracing
	if tracing.ServiceVersion == "" {
		tracing.ServiceVersion = version
	}
	c.shutdown, err = observability.Init(ctx, tracing)
	if err != nil {
		return fmt.Errorf("failed to initialize tracing: %w", err)
	}

	c.metrics = metrics.NewCollector()
	c.cfg = cfg
	return nil
}

// teardown flushes spans, metrics and logs. It is a no-op when setup did
// not complete.
func (c *cli) teardown() error {
	if c.cfg == nil {
		return nil
	}
	if c.shutdown != nil {
		if err := c.shutdown(context.Background()); err != nil {
			c.logger.Warn("failed to flush spans", zap.Error(err))
		}
	}
	if path := c.cfg.Observability.MetricsFile; path != "" {
		if err := c.metrics.WriteToTextfile(path); err != nil {
			return fmt.Errorf("failed to write metrics: %w", err)
		}
		c.logger.Debug("wrote metrics", zap.String("path", path))
	}
	_ = logger.Sync()
	return nil
}

// withStore opens the store, runs fn and closes the store
func (c *cli) withStore(ctx context.Context, fn func(store.Store) error) error {
	s, err := c.openStore(ctx, c.cfg.Database, c.metrics.Store, logger.FromContext(ctx, logger.Get()))
	if err != nil {
		return err
	}
	defer func() {
		if err := s.Close(context.Background()); err != nil {
			c.logger.Warn("failed to close store", zap.Error(err))
		}
	}()
	return fn(s)
}
