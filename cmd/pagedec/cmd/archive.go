package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/opencgm/pagedec/pkg/archive"
	"github.com/opencgm/pagedec/pkg/pagefile"
)

// archiveCmd represents the archive command
var archiveCmd = &cobra.Command{
	Use:   "archive <page-file>",
	Short: "Decode a page dump into the record archive",
	Long: `Decode a receiver page dump and store every valid record in the
local archive under the data directory. Archived records are served
by 'pagedec serve'.

Example:
  pagedec archive --type egv --data-dir ./data pages/egv_data.bin`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := loadSettings(cmd)
		if err != nil {
			return err
		}

		typeName, _ := cmd.Flags().GetString("type")
		recordType, err := settings.recordType(typeName)
		if err != nil {
			return err
		}

		if err := os.MkdirAll(settings.cfg.DataDir, 0755); err != nil {
			return fmt.Errorf("failed to create data dir: %w", err)
		}
		store, err := archive.Open(settings.archivePath(), settings.epoch)
		if err != nil {
			return fmt.Errorf("failed to open archive: %w", err)
		}
		defer store.Close()

		reader, err := pagefile.NewReader(pagefile.ReaderConfig{
			FilePath: args[0],
			Type:     recordType,
		})
		if err != nil {
			return err
		}
		defer reader.Close()

		stored, skipped := 0, 0
		for {
			rec, err := reader.Next()
			if err == io.EOF {
				break
			}
			if err != nil {
				fmt.Fprintf(os.Stderr, "pagedec: %v\n", err)
				skipped++
				continue
			}
			if _, err := store.Put(recordType, rec); err != nil {
				return fmt.Errorf("failed to archive record: %w", err)
			}
			stored++
		}

		cmd.Printf("Archived %d %s records (%d skipped)\n", stored, recordType, skipped)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(archiveCmd)
	archiveCmd.Flags().StringP("type", "t", "", "Record type of the page (see 'pagedec types')")
	_ = archiveCmd.MarkFlagRequired("type")
}
