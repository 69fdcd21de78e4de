package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"text/tabwriter"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/Zachkp/portfolio/internal/config"
	"github.com/Zachkp/portfolio/internal/crud"
	"github.com/Zachkp/portfolio/internal/entities"
	"github.com/Zachkp/portfolio/internal/loader"
	"github.com/Zachkp/portfolio/internal/sections"
	"github.com/Zachkp/portfolio/internal/seed"
	"github.com/Zachkp/portfolio/internal/tui"
)

var (
	logLevel string

	seedFile  string
	seedPrune bool
)

var rootCmd = &cobra.Command{
	Use:   "portfolio",
	Short: "Portfolio site backed by a collection data service",
	Long: `Portfolio serves a single-page site whose projects, skills and passions
sections are loaded from a collection data service (SQLite, Postgres or a
remote instance over HTTP).

Run 'portfolio serve' to start the site.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if cmd.Flags().Changed("log-level") {
			cfg.App.LogLevel = logLevel
		}
		if cfg.IsProduction() {
			gin.SetMode(gin.ReleaseMode)
		}
		cmd.SetContext(withConfig(cmd.Context(), cfg))
		return nil
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the web server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := configFrom(cmd.Context())
		logger := newLogger(cfg, os.Stderr)

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		b, err := openBackend(ctx, cfg, logger)
		if err != nil {
			return err
		}
		defer b.Close()

		r, err := newRouter(cfg, b, logger)
		if err != nil {
			return fmt.Errorf("failed to build router: %w", err)
		}
		return serve(ctx, ":"+cfg.Server.Port, r, logger)
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the YAML content file into the data backend",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := configFrom(cmd.Context())
		logger := newLogger(cfg, os.Stderr)

		path := seedFile
		if path == "" {
			path = cfg.Data.ContentFile
		}
		content, err := seed.Load(path)
		if err != nil {
			return err
		}

		b, err := openBackend(cmd.Context(), cfg, logger)
		if err != nil {
			return err
		}
		defer b.Close()

		svc, err := b.writable()
		if err != nil {
			return err
		}

		report, err := seed.Apply(cmd.Context(), svc, content, seed.Options{Prune: seedPrune})
		printSeedReport(cmd.OutOrStdout(), report)
		if err != nil {
			return fmt.Errorf("seed failed: %w", err)
		}
		logger.Info("content seeded", "file", path, "prune", seedPrune)
		return nil
	},
}

var listCmd = &cobra.Command{
	Use:   "list [collection...]",
	Short: "Load collections concurrently and print their state",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := configFrom(cmd.Context())
		logger := newLogger(cfg, os.Stderr)

		b, err := openBackend(cmd.Context(), cfg, logger)
		if err != nil {
			return err
		}
		defer b.Close()

		if len(args) == 0 {
			args = []string{entities.CollectionProjects, entities.CollectionSkills, entities.CollectionPassions}
		}
		states := loadCollections(cmd.Context(), b.reader, args, loader.WithTimeout(cfg.Loader.Timeout), loader.WithLogger(logger))
		printStates(cmd.OutOrStdout(), args, states)
		return nil
	},
}

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Show the portfolio sections in the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := configFrom(cmd.Context())
		// the terminal belongs to the TUI; keep logs out of it
		logger := newLogger(cfg, io.Discard)

		b, err := openBackend(cmd.Context(), cfg, logger)
		if err != nil {
			return err
		}
		defer b.Close()

		profile := defaultProfile(cfg.Contact.Email)
		page := sections.Portfolio(b.reader, loader.WithTimeout(cfg.Loader.Timeout), loader.WithLogger(logger))
		return tui.Run(cmd.Context(), page, profile.FullName(), profile.Tagline())
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")

	seedCmd.Flags().StringVarP(&seedFile, "file", "f", "", "Content file (defaults to CONTENT_FILE)")
	seedCmd.Flags().BoolVar(&seedPrune, "prune", false, "Delete records the file no longer lists")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(tuiCmd)
}

// newLogger builds the command's logger and installs it as the slog default,
// which loaders and crud fall back to.
func newLogger(cfg *config.Config, w io.Writer) *slog.Logger {
	logger := cfg.NewLogger(w)
	slog.SetDefault(logger)
	return logger
}

type configKey struct{}

func withConfig(ctx context.Context, cfg *config.Config) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, configKey{}, cfg)
}

func configFrom(ctx context.Context) *config.Config {
	cfg, _ := ctx.Value(configKey{}).(*config.Config)
	return cfg
}

// loadCollections loads every named collection concurrently, one loader
// each, and returns the settled states in the same order.
func loadCollections(ctx context.Context, r crud.Reader, names []string, opts ...loader.Option) []loader.State[crud.Document] {
	states := make([]loader.State[crud.Document], len(names))
	fetch := crud.Fetcher[crud.Document](r)

	var g errgroup.Group
	for i, name := range names {
		g.Go(func() error {
			states[i] = loader.Load(ctx, name, fetch, opts...)
			return nil
		})
	}
	_ = g.Wait()
	return states
}

func printStates(w io.Writer, names []string, states []loader.State[crud.Document]) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "COLLECTION\tSTATUS\tITEMS\tERROR")
	for i, st := range states {
		items := "-"
		if st.Status == loader.StatusLoaded {
			items = fmt.Sprint(len(st.Items))
		}
		errText := st.ErrorText()
		if errText == "" {
			errText = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", names[i], st.Status, items, errText)
	}
	tw.Flush()
}

func printSeedReport(w io.Writer, report map[string]seed.Stats) {
	names := make([]string, 0, len(report))
	for name := range report {
		names = append(names, name)
	}
	sort.Strings(names)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "COLLECTION\tCREATED\tUPDATED\tDELETED")
	for _, name := range names {
		st := report[name]
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\n", name, st.Created, st.Updated, st.Deleted)
	}
	tw.Flush()
}
