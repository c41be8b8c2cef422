package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/BielosX/wombat/pokedex/src/export"
)

var (
	exportOffset int32
	exportLimit  int32
	exportDir    string
	exportBucket string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a page of creatures to Parquet and CSV",
	Long: `Export fetches one page of creatures with their generation and writes
pokemons/<first>_<last>.parquet and .csv to a directory or an S3 bucket.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if exportDir != "" && exportBucket != "" {
			return errors.New("--dir and --bucket are mutually exclusive")
		}
		if exportBucket == "" && exportDir == "" {
			exportBucket = cfg.Export.Bucket
		}
		var store export.Store
		if exportBucket != "" {
			client, err := newS3Client(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			store = export.NewS3Store(client, exportBucket)
		} else {
			if exportDir == "" {
				exportDir = cfg.Export.Dir
			}
			store = export.NewDirStore(exportDir)
		}
		exporter := export.NewExporter(newPokeAPIClient(cfg, sugar), store, sugar)
		result, err := exporter.Run(cmd.Context(), export.Schedule{Offset: exportOffset, Limit: exportLimit})
		if err != nil {
			return err
		}
		if result == nil {
			fmt.Fprintln(cmd.OutOrStdout(), "No creatures in this page")
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n%s\n", result.ParquetFileName, result.CsvFileName)
		return nil
	},
}

func init() {
	exportCmd.Flags().Int32Var(&exportOffset, "offset", 0, "First creature offset")
	exportCmd.Flags().Int32Var(&exportLimit, "limit", 20, "Number of creatures to export")
	exportCmd.Flags().StringVar(&exportDir, "dir", "", "Write into this directory (default export.dir)")
	exportCmd.Flags().StringVar(&exportBucket, "bucket", "", "Upload to this S3 bucket (default BUCKET_NAME)")
}
