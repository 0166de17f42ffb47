package commands

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/ncobase/envelope/cmd/envelope/server"
	"github.com/ncobase/envelope/config"
	"github.com/ncobase/envelope/logging/logger"
	"github.com/ncobase/envelope/version"
	"github.com/spf13/cobra"
)

// NewServeCommand creates the serve command
func NewServeCommand() *cobra.Command {
	var (
		configPath string
		watch      bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the widget API",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger.StdLogger().SetVersion(version.GetVersionInfo().Version)

			app, cleanup, err := server.InitializeApp(configPath)
			if err != nil {
				return fmt.Errorf("failed to initialize app: %w", err)
			}
			defer cleanup()

			if watch {
				if err := config.Watch(app.Reload); err != nil {
					return fmt.Errorf("failed to watch config: %w", err)
				}
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return app.Run(ctx)
		},
	}

	cmd.Flags().StringVarP(&configPath, "conf", "c", "", "config file path")
	cmd.Flags().BoolVar(&watch, "watch", false, "reload response settings when the config file changes")

	return cmd
}

