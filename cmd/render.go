package cmd

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"tabloide-mp/authz"
	"tabloide-mp/service"
)

var (
	renderTemplate int64
	renderFormat   string
	renderOut      string
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a flyer to a file",
	Long: `Render a template as pdf, jpeg or html. Without --template, or when the
template does not exist, the first template is used; with no templates at all
the example flyer is drawn.`,
	RunE: runRender,
}

func init() {
	renderCmd.Flags().Int64VarP(&renderTemplate, "template", "t", 0, "Template id")
	renderCmd.Flags().StringVar(&renderFormat, "format", "pdf", "Output format: pdf, jpeg or html")
	renderCmd.Flags().StringVarP(&renderOut, "out", "o", "", "Output file, - for stdout (defaults to the rendered file name)")
}

func runRender(cmd *cobra.Command, args []string) error {
	format, err := service.ParseFormat(renderFormat)
	if err != nil {
		return err
	}

	a, err := loadApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	var templateID *int64
	if renderTemplate > 0 {
		templateID = &renderTemplate
	}
	out, err := a.Flyers.Render(cmd.Context(), authz.System, templateID, format)
	if err != nil {
		return err
	}

	path := renderOut
	if path == "" {
		path = out.FileName
	}
	if err := writeOutput(path, out.Data); err != nil {
		return err
	}
	log.Info().Str("file", path).Int("bytes", len(out.Data)).Msg("✅ Flyer rendered")
	return nil
}
