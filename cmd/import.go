package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"tabloide-mp/authz"
)

var importFile string

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import a CSV or XLSX price table into the catalog",
	Long: `Import a price table. Columns are matched by header (codigo, nome, preco,
codigo de barras, descricao), ignoring case and accents. The whole file is
applied in one transaction.`,
	RunE: runImport,
}

func init() {
	importCmd.Flags().StringVarP(&importFile, "file", "f", "", "Price table to import (required)")
	importCmd.MarkFlagRequired("file")
}

func runImport(cmd *cobra.Command, args []string) error {
	f, err := os.Open(importFile)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", importFile, err)
	}
	defer f.Close()

	a, err := loadApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	imp, err := a.Imports.Import(cmd.Context(), authz.System, importFile, f)
	if err != nil {
		return err
	}
	if !imp.Processed {
		return fmt.Errorf("import %s failed: %s", imp.ID, imp.Error)
	}

	log.Info().Str("import_id", imp.ID.String()).Msgf("🎉 Imported %s: %d created, %d updated, %d skipped",
		imp.FileName, imp.Created, imp.Updated, imp.Skipped)
	return nil
}
