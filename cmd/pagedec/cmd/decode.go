package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/opencgm/pagedec/pkg/pagefile"
)

// decodeCmd represents the decode command
var decodeCmd = &cobra.Command{
	Use:   "decode <page-file>",
	Short: "Decode a page dump to JSON",
	Long: `Decode a receiver page dump and print one JSON document per
record to stdout. Records that fail their checksum are reported on
stderr and skipped; decoding continues with the next record.

Example:
  pagedec decode --type egv pages/egv_data.bin
  pagedec decode --type calibration --generation legacy pages/cal_data.bin`,
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
		startIndex, _ := cmd.Flags().GetInt("start")

		reader, err := pagefile.NewReader(pagefile.ReaderConfig{
			FilePath:   args[0],
			Type:       recordType,
			StartIndex: startIndex,
		})
		if err != nil {
			return err
		}
		defer reader.Close()

		enc := json.NewEncoder(cmd.OutOrStdout())
		decoded, skipped := 0, 0
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
			if err := enc.Encode(rec.Export(settings.epoch)); err != nil {
				return err
			}
			decoded++
		}

		if skipped > 0 {
			fmt.Fprintf(os.Stderr, "pagedec: decoded %d records, skipped %d\n", decoded, skipped)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(decodeCmd)
	decodeCmd.Flags().StringP("type", "t", "", "Record type of the page (see 'pagedec types')")
	decodeCmd.Flags().Int("start", 0, "Record index to start decoding from")
	_ = decodeCmd.MarkFlagRequired("type")
}
