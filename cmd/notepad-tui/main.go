package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"notepad-tui/internal/app"
	"notepad-tui/internal/config"
	"notepad-tui/internal/fs"
	"notepad-tui/internal/logging"
)

// Version is set during build with -ldflags
var version = "dev"

var (
	configPath string
	themeName  string
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:   "notepad-tui [file]",
	Short: "A small terminal notepad",
	Long:  `notepad-tui edits one plain text document with a line-number gutter, a filename field and New/Open/Save actions.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		var startFile string
		if len(args) == 1 {
			startFile = args[0]
		}
		return run(startFile)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of notepad-tui",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("notepad-tui version %s\n", version)
	},
}

func init() {
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "path to config.yaml")
	rootCmd.Flags().StringVar(&themeName, "theme", "", "color theme: dark or light")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn or error")
	rootCmd.AddCommand(versionCmd)
}

func loadConfig() (*config.Config, error) {
	if configPath != "" {
		return config.LoadFile(configPath)
	}
	return config.Load()
}

func run(startFile string) error {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: using default config: %v\n", err)
	}
	if themeName != "" {
		cfg.Theme = themeName
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	if cfg.Files.StartDir == "" {
		if wd, err := os.Getwd(); err == nil {
			cfg.Files.StartDir = wd
		}
	}
	if startFile != "" {
		if abs, err := filepath.Abs(startFile); err == nil {
			startFile = abs
		}
	}

	log, closer, err := logging.New(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: logging disabled: %v\n", err)
		log, closer = logging.Discard(), io.NopCloser(nil)
	}
	defer closer.Close()
	log.Info("starting", "version", version, "file", startFile)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(c)
	go func() {
		select {
		case <-c:
			cancel()
		case <-ctx.Done():
		}
	}()

	var watcher *fs.DirWatcher
	if cfg.Files.WatchDirs {
		watcher, err = fs.NewDirWatcher(ctx, log)
		if err != nil {
			log.Warn("directory watching disabled", "err", err)
			watcher = nil
		} else {
			defer watcher.Close()
		}
	}

	application := app.New(cfg, app.Options{
		Fs:        afero.NewOsFs(),
		Logger:    log,
		Watcher:   watcher,
		StartFile: startFile,
	})
	defer application.Close()

	program := tea.NewProgram(
		application,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	go func() {
		<-ctx.Done()
		program.Quit()
	}()

	if _, err := program.Run(); err != nil {
		log.Error("program failed", "err", err)
		return fmt.Errorf("run: %w", err)
	}
	log.Info("stopped")
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
