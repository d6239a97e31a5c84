package cmd

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/opencgm/pagedec/pkg/config"
	"github.com/opencgm/pagedec/pkg/devicetime"
	"github.com/opencgm/pagedec/pkg/records"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "pagedec",
	Short: "pagedec - CGM receiver page decoder",
	Long: `pagedec decodes the fixed-size binary records stored in CGM
receiver memory pages: glucose readings, calibrations, events,
sensor insertions and user settings.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Config file (default is ~/.config/pagedec/config.yaml)")
	rootCmd.PersistentFlags().StringP("generation", "g", "", "Receiver generation: legacy or rev2")
	rootCmd.PersistentFlags().String("epoch", "", "Device epoch override, as an RFC3339 instant")
	rootCmd.PersistentFlags().StringP("data-dir", "d", "", "Data directory for the record archive")
}

// settings is the effective configuration for one invocation: the
// config file merged with any command line overrides.
type settings struct {
	cfg        *config.Config
	generation records.Generation
	epoch      devicetime.Epoch
}

func loadSettings(cmd *cobra.Command) (*settings, error) {
	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		configPath = config.GetDefaultConfigPath()
	}

	cfg := config.DefaultConfig()
	if config.ConfigExists(configPath) {
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if generation, _ := cmd.Flags().GetString("generation"); generation != "" {
		cfg.Receiver.Generation = generation
	}
	if epoch, _ := cmd.Flags().GetString("epoch"); epoch != "" {
		cfg.Receiver.Epoch = epoch
	}
	if dataDir, _ := cmd.Flags().GetString("data-dir"); dataDir != "" {
		cfg.DataDir = dataDir
	}

	gen, err := cfg.Generation()
	if err != nil {
		return nil, err
	}
	epoch, err := cfg.Epoch()
	if err != nil {
		return nil, err
	}

	return &settings{cfg: cfg, generation: gen, epoch: epoch}, nil
}

// recordType resolves a record type name against the configured
// generation: a plain "calibration" means the legacy layout on a
// legacy receiver.
func (s *settings) recordType(name string) (records.Type, error) {
	t, err := records.ParseType(name)
	if err != nil {
		return 0, err
	}
	if t == records.TypeCalibration && s.generation == records.GenerationLegacy {
		return records.TypeLegacyCalibration, nil
	}
	return t, nil
}

// archivePath is where the record archive lives under the data dir.
func (s *settings) archivePath() string {
	return filepath.Join(s.cfg.DataDir, "archive")
}
