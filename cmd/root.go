package cmd

import (
	"context"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"tabloide-mp/app"
	"tabloide-mp/config"
	"tabloide-mp/logging"
)

var rootCmd = &cobra.Command{
	Use:   "tabloide",
	Short: "Catalog, price import and promotional flyer service",
	Long: `tabloide manages a product catalog, imports supplier price tables
and renders promotional flyers (tabloides) as PDF, JPEG or HTML.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal().Err(err).Msg("❌ Command failed")
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(syncImagesCmd)
	rootCmd.AddCommand(tokenCmd)
}

func initConfig() {
	config.LoadEnv()
	logging.Setup(os.Getenv("LOG_LEVEL"), os.Getenv("ENV") != "production")
}

// loadApp reads the configuration and wires every service
func loadApp(ctx context.Context) (*app.App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return app.Initialize(ctx, cfg)
}

// writeOutput writes data to path, or to stdout when path is "-"
func writeOutput(path string, data []byte) error {
	if path == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0644)
}
