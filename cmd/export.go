package cmd

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"tabloide-mp/authz"
)

var (
	exportFormat string
	exportOut    string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the catalog as a price table",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		out, err := a.Export.Export(cmd.Context(), authz.System, exportFormat)
		if err != nil {
			return err
		}
		path := exportOut
		if path == "" {
			path = out.FileName
		}
		if err := writeOutput(path, out.Data); err != nil {
			return err
		}
		log.Info().Str("file", path).Msg("✅ Catalog exported")
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "csv", "Output format: csv or xlsx")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "Output file, - for stdout")
}
