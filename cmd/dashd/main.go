package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/sandeepkv93/dashd/internal/config"
	"github.com/sandeepkv93/dashd/internal/export"
	"github.com/sandeepkv93/dashd/internal/logging"
	"github.com/sandeepkv93/dashd/internal/model"
	"github.com/sandeepkv93/dashd/internal/source"
	"github.com/sandeepkv93/dashd/internal/storage"
	"github.com/sandeepkv93/dashd/internal/update"
)

// app holds what every subcommand needs once flags and config are resolved.
type app struct {
	v          *viper.Viper
	configPath string
	cfg        config.Config
	logger     *zap.Logger
	store      storage.KV
	client     *source.Client
	session    update.Session
}

func main() {
	a := newApp()
	if err := execute(a, newRootCmd(a), os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "dashd failed: %v\n", err)
		os.Exit(1)
	}
}

func newApp() *app {
	return &app{v: config.New()}
}

// execute runs root and releases the store and logger whether or not the
// command failed.
func execute(a *app, root *cobra.Command, args []string) error {
	root.SetArgs(args)
	runErr := root.Execute()
	closeErr := a.close()
	if runErr != nil {
		return runErr
	}
	return closeErr
}

func newRootCmd(a *app) *cobra.Command {

	root := &cobra.Command{
		Use:           "dashd",
		Short:         "Terminal view of your personalized learning dashboard",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd.Context())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runTUI()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "path to a YAML config file")
	flags.String("api-url", "", "dashboard backend base URL")
	flags.String("user-id", "", "user id to load the dashboard for")
	flags.String("user-name", "", "display name used in the header and export filenames")
	flags.String("store", "", "state backend: sqlite, file or redis")
	flags.String("store-path", "", "sqlite database or JSON state file path")
	flags.String("redis-url", "", "redis URL for the redis backend")
	flags.String("theme", "", "light, dark or system")
	flags.String("export-dir", "", "directory for exported files")
	flags.String("log-file", "", "write JSON logs to this file")
	flags.Int("refresh-minutes", 0, "reload the dashboard every N minutes (0 disables)")
	flags.Bool("debug", false, "enable debug logging")
	for _, name := range []string{
		"api-url", "user-id", "user-name", "store", "store-path", "redis-url",
		"theme", "export-dir", "log-file", "refresh-minutes", "debug",
	} {
		_ = a.v.BindPFlag(strings.ReplaceAll(name, "-", "_"), flags.Lookup(name))
	}

	root.AddCommand(newSectionsCmd(a))
	root.AddCommand(newExportCmd(a))
	return root
}

func (a *app) setup(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := config.ReadFile(a.v, a.configPath); err != nil {
		return err
	}
	a.cfg = config.Load(a.v)

	logger, err := logging.New(a.cfg.LogFile, a.cfg.Debug)
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	a.logger = logger

	if a.cfg.Store != string(storage.BackendRedis) {
		if err := ensureParentDir(a.cfg.StorePath); err != nil {
			return fmt.Errorf("prepare store: %w", err)
		}
	}
	store, err := storage.Open(storage.OpenOptions{
		Backend:  storage.Backend(a.cfg.Store),
		Path:     a.cfg.StorePath,
		RedisURL: a.cfg.RedisURL,
	})
	if err != nil {
		return fmt.Errorf("open %s store: %w", a.cfg.Store, err)
	}
	a.store = store

	a.session = a.resolveSession(ctx)
	a.client = source.NewClient(a.cfg.APIURL,
		source.WithHTTPClient(newHTTPClient(a.cfg.HTTPTimeout)),
		source.WithLogger(a.logger),
	)
	a.logger.Info("dashd starting",
		zap.String("api_url", a.cfg.APIURL),
		zap.String("store", a.cfg.Store),
		zap.Bool("has_user", a.session.UserID != ""),
		zap.String("theme", string(a.session.Theme)))
	return nil
}

// resolveSession prefers configured values and falls back to what the store
// remembers from a previous run.
func (a *app) resolveSession(ctx context.Context) update.Session {
	session := update.Session{UserID: a.cfg.UserID, UserName: a.cfg.UserName}
	if session.UserID != "" {
		if err := storage.SaveUserID(ctx, a.store, session.UserID); err != nil {
			a.logger.Warn("persist user id failed", zap.Error(err))
		}
	} else {
		session.UserID = storage.LoadUserID(ctx, a.store)
	}
	if a.cfg.Theme != "" {
		session.Theme = model.ParseTheme(a.cfg.Theme)
	} else {
		session.Theme = storage.LoadTheme(ctx, a.store)
	}
	return session
}

func (a *app) close() error {
	if a.logger != nil {
		_ = a.logger.Sync()
	}
	if a.store == nil {
		return nil
	}
	err := a.store.Close()
	a.store = nil
	return err
}

func (a *app) runTUI() error {
	m := update.NewModel(update.Deps{
		Store:           a.store,
		Fetcher:         a.client,
		Exporter:        export.New(export.ChromePrinter{}),
		Logger:          a.logger,
		ExportDir:       a.cfg.ExportDir,
		RefreshInterval: a.cfg.RefreshInterval(),
	}, a.session)
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
