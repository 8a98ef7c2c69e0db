package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/tutordesk/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "tutordesk",
	Short: "Terminal dashboard for learners and coaches",
	Long:  "tutordesk: quiz, progress and coaching dashboards for a tutoring backend, in the terminal.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDashboard(cmd)
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "Path to config file (overrides TUTORDESK_CONFIG env var)")
	flags.String("role", "", "Dashboard to open: learner or coach")
	flags.String("base-url", "", "Backend base URL")
	flags.String("user", "", "Name shown in the header")
	flags.String("log-file", "", "Log file path (overrides TUTORDESK_LOG env var)")
	flags.String("log-level", "", "Log level: debug, info, warn or error")

	rootCmd.AddCommand(dashboardCmd)
	rootCmd.AddCommand(progressCmd)
	rootCmd.AddCommand(demoCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads the config file and applies flag overrides. Flags win
// over the environment, which wins over the file.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	flagPath, _ := cmd.Flags().GetString("config")
	path, err := config.ResolvePath(flagPath)
	if err != nil {
		return nil, fmt.Errorf("resolve config path: %w", err)
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	if v, _ := cmd.Flags().GetString("role"); v != "" {
		cfg.Role = config.Role(v)
	}
	if v, _ := cmd.Flags().GetString("base-url"); v != "" {
		cfg.BaseURL = v
	}
	if v, _ := cmd.Flags().GetString("user"); v != "" {
		cfg.UserName = v
	}
	if v, _ := cmd.Flags().GetString("log-file"); v != "" {
		cfg.LogFile = v
	}
	if v, _ := cmd.Flags().GetString("log-level"); v != "" {
		cfg.LogLevel = v
	}
	return cfg, nil
}

// validate rejects broken configs. An unknown role is left for the
// dashboard to handle when allowUnknownRole is set.
func validate(cfg *config.Config, allowUnknownRole bool) error {
	err := cfg.Validate()
	if err == nil || (allowUnknownRole && errors.Is(err, config.ErrUnknownRole)) {
		return nil
	}
	return fmt.Errorf("invalid config: %w", err)
}

// openLogger opens the log file for append. The TUI owns the terminal, so
// logs never go to stderr while it runs.
func openLogger(cfg *config.Config) (*slog.Logger, func(), error) {
	path := cfg.LogFile
	if path == "" {
		p, err := config.DefaultLogPath()
		if err != nil {
			return nil, nil, fmt.Errorf("resolve log path: %w", err)
		}
		path = p
	} else if err := config.EnsureDir(path); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: parseLevel(cfg.LogLevel)}))
	return logger, func() { f.Close() }, nil
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
