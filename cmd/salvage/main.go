// Package main provides the salvage command-line interface.
// Without arguments it starts the interactive disk recovery UI; subcommands
// expose each recovery operation for scripting.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/Cyclone1070/salvage/internal/app"
	"github.com/Cyclone1070/salvage/internal/config"
	"github.com/Cyclone1070/salvage/internal/disk"
	"github.com/Cyclone1070/salvage/internal/file"
	"github.com/Cyclone1070/salvage/internal/history"
	"github.com/Cyclone1070/salvage/internal/logging"
	"github.com/Cyclone1070/salvage/internal/service/executor"
	"github.com/Cyclone1070/salvage/internal/service/fs"
	"github.com/Cyclone1070/salvage/internal/service/hash"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Global flags
	verbose    bool
	configPath string
	mountRoot  string
	output     string

	// Built by PersistentPreRunE
	deps *Dependencies
)

// commandRunner is what the disk manager and privilege check need from the executor.
type commandRunner interface {
	Run(ctx context.Context, command []string) (*executor.Result, error)
	RunCombined(ctx context.Context, command []string) (*executor.Result, error)
}

// newRunner creates the command runner. Tests replace it with a scripted fake.
var newRunner = func(cfg *config.Config, logger *zap.Logger) commandRunner {
	return executor.NewOSCommandExecutor(cfg, logger)
}

// Dependencies holds the components required to run the application.
type Dependencies struct {
	Config  *config.Config
	Logger  *zap.Logger
	History *history.Store
	FS      *fs.OSFileSystem
	Runner  commandRunner
	Disks   *disk.Manager
	Files   *file.Handler
	App     *app.Application
}

// Close flushes the logger and closes the history store.
func (d *Dependencies) Close() error {
	_ = d.Logger.Sync()
	if d.History != nil {
		return d.History.Close()
	}
	return nil
}

// loadConfig reads the config file and applies flag overrides.
func loadConfig() (*config.Config, error) {
	loader := config.NewLoader()
	var (
		cfg *config.Config
		err error
	)
	if configPath != "" {
		cfg, err = loader.LoadFrom(configPath)
		if err == nil && cfg.History.Path == "" {
			home, _ := os.UserHomeDir()
			cfg.History.Path = defaultHistoryPath(home)
		}
	} else {
		cfg, err = loader.Load()
	}
	if err != nil {
		return nil, err
	}

	if mountRoot != "" {
		cfg.Disk.MountRoot = mountRoot
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

func defaultHistoryPath(home string) string {
	if home == "" {
		home = os.TempDir()
	}
	return filepath.Join(home, ".local", "state", config.ConfigDir, config.HistoryFile)
}

// newDependencies wires every component. Log lines go to logOut; a nil
// logOut keeps logging to the history store only.
func newDependencies(cfg *config.Config, logOut io.Writer) (*Dependencies, error) {
	var store *history.Store
	if cfg.History.Enabled {
		var err error
		store, err = history.Open(cfg.History.Path)
		if err != nil {
			return nil, err
		}
	}

	opts := logging.Options{Verbose: verbose}
	if logOut != nil {
		opts.Output = zapcore.AddSync(logOut)
	}
	if store != nil {
		opts.Sink = store
	}
	logger, err := logging.New(cfg.Log, opts)
	if err != nil {
		if store != nil {
			_ = store.Close()
		}
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	osFS := fs.NewOSFileSystem()
	hasher, err := hash.New(cfg.Files.HashAlgorithm, cfg.Files.ChunkSize)
	if err != nil {
		if store != nil {
			_ = store.Close()
		}
		return nil, err
	}
	runner := newRunner(cfg, logger)

	disks := disk.NewManager(runner, osFS, cfg, logger)
	files := file.NewHandler(osFS, hasher, cfg, logger)

	return &Dependencies{
		Config:  cfg,
		Logger:  logger,
		History: store,
		FS:      osFS,
		Runner:  runner,
		Disks:   disks,
		Files:   files,
		App:     app.New(disks, files, runner, osFS, nil, logger),
	}, nil
}

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "salvage",
	Short: "salvage - recover files from failing disks",
	Long: `salvage detects block devices, mounts them read-only, checks their
filesystems and SMART health, and copies files off them with verification.

Run without arguments to start the interactive interface.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		// The interactive UI owns the terminal, so only the history store sees logs.
		var logOut io.Writer = cmd.ErrOrStderr()
		if cmd == cmd.Root() {
			logOut = nil
		}

		deps, err = newDependencies(cfg, logOut)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		closeDependencies()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInteractive(cmd.Context(), deps)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: ~/.config/salvage/config.json)")
	rootCmd.PersistentFlags().StringVar(&mountRoot, "mount-root", "", "Directory disks are mounted under (overrides config)")
	rootCmd.PersistentFlags().StringVarP(&output, "output", "o", formatTable, "Output format: table, json or yaml")

	addCommands(rootCmd)
}

// closeDependencies releases what PersistentPreRunE opened. Cobra skips the
// post-run hooks when RunE fails, so execute calls it as well.
func closeDependencies() {
	if deps != nil {
		_ = deps.Close()
		deps = nil
	}
}

// execute runs the command line in args.
func execute(ctx context.Context, args []string) error {
	defer closeDependencies()
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(ctx)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := execute(ctx, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
