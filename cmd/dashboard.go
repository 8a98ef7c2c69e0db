package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/tutordesk/internal/api"
	"github.com/abhisek/tutordesk/internal/app"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Open the dashboard for the configured role",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDashboard(cmd)
	},
}

// runDashboard loads config, opens the log and launches the TUI.
func runDashboard(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := validate(cfg, true); err != nil {
		return err
	}
	timeout, _ := cfg.Timeout()

	logger, closeLog, err := openLogger(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Logging disabled:", err)
		logger, closeLog = nil, func() {}
	}
	defer closeLog()

	opts := app.Options{Role: cfg.RoleContext(), Logger: logger}
	if logger != nil {
		logger.Info("dashboard starting", "role", cfg.Role, "base_url", cfg.BaseURL)
		opts.Client = app.NewClient(logger, api.WithTimeout(timeout))
	} else {
		opts.Client = api.NewClient(api.WithTimeout(timeout))
	}
	return app.Run(opts)
}
