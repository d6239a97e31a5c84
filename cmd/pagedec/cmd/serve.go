package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/opencgm/pagedec/pkg/api"
	"github.com/opencgm/pagedec/pkg/archive"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start the pagedec REST API server over the local record archive.

The API is read-only: records enter the archive through
'pagedec archive', and the server exposes them as JSON along with
Prometheus metrics.

Examples:
  pagedec serve --port 8080 --data-dir ./data
  pagedec serve --api-key mysecretkey`,
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := loadSettings(cmd)
		if err != nil {
			return err
		}

		port, _ := cmd.Flags().GetInt("port")
		if port == 0 {
			port = settings.cfg.Port
		}
		bind, _ := cmd.Flags().GetString("bind")
		if bind == "" {
			bind = settings.cfg.Bind
		}
		apiKey, _ := cmd.Flags().GetString("api-key")

		store, err := archive.Open(settings.archivePath(), settings.epoch)
		if err != nil {
			return fmt.Errorf("failed to open archive: %w", err)
		}
		defer store.Close()

		config := api.ServerConfig{
			Port:   port,
			Bind:   bind,
			APIKey: apiKey,
		}
		return api.StartServer(store, config)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntP("port", "p", 0, "Port to listen on (default from config)")
	serveCmd.Flags().String("bind", "", "Address to bind to (default from config)")
	serveCmd.Flags().String("api-key", "", "API key; empty serves unauthenticated")
}
