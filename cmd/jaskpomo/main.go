package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jask/jaskpomo/internal/config"
	"github.com/jask/jaskpomo/internal/logging"
	"github.com/jask/jaskpomo/internal/timer"
	"github.com/jask/jaskpomo/internal/tui"
)

var version = "dev"

var (
	configPath string
	modeFlag   string
	logFile    string
	debug      bool
)

var rootCmd = &cobra.Command{
	Use:   "jaskpomo",
	Short: "Pomodoro timer for the terminal",
	Long: `jaskpomo is a full-screen Pomodoro timer.

Pick a mode (work, short break, long break), start or pause the countdown
and reset it. Press ? inside the timer for the key bindings.`,
	SilenceUsage: true,
	Args:         cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := runOptions{
			configPath: configPath,
			logFile:    logFile,
			debug:      debug,
		}
		if cmd.Flags().Changed("mode") {
			opts.mode = modeFlag
		}
		return runTimer(opts)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "jaskpomo %s\n", version)
	},
}

func init() {
	rootCmd.Flags().StringVar(&configPath, "config", "", "config file (default "+config.DefaultPath()+")")
	rootCmd.Flags().StringVarP(&modeFlag, "mode", "m", "", "start mode: work, shortBreak or longBreak")
	rootCmd.Flags().StringVar(&logFile, "log-file", "", "log file (default from config)")
	rootCmd.Flags().BoolVar(&debug, "debug", false, "log at debug level")
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type runOptions struct {
	configPath string
	mode       string
	logFile    string
	debug      bool
}

// prepare loads config and builds the widget without touching the terminal.
func prepare(opts runOptions) (*tui.App, *zap.Logger, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("config: %w", err)
	}

	mode, err := cfg.Mode()
	if opts.mode != "" {
		mode, err = timer.ParseMode(opts.mode)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("mode: %w", err)
	}

	path := cfg.Log.File
	if opts.logFile != "" {
		path = opts.logFile
	}
	logger, err := logging.New(path, cfg.Log.Level, opts.debug)
	if err != nil {
		return nil, nil, fmt.Errorf("log: %w", err)
	}

	keys := tui.NewKeyRegistry()
	if err := keys.ApplyOverrides(cfg.Keys); err != nil {
		_ = logger.Sync()
		return nil, nil, fmt.Errorf("keys: %w", err)
	}

	app := tui.New(tui.Options{
		State:  timer.NewWithMode(cfg.Durations.Timer(), mode),
		Keys:   keys,
		Logger: logger,
	})
	return app, logger, nil
}

func runTimer(opts runOptions) error {
	app, logger, err := prepare(opts)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		logger.Error("program exited", zap.Error(err))
		return fmt.Errorf("run: %w", err)
	}
	return nil
}
