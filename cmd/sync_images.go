package cmd

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"tabloide-mp/authz"
)

var (
	syncFolder   string
	syncDownload bool
)

var syncImagesCmd = &cobra.Command{
	Use:   "sync-images",
	Short: "Link Google Drive images to products by code",
	Long: `List a Google Drive folder and link every image named <code>.jpg|.png to the
product with that code. With --download the images are optimized and copied
under MEDIA_ROOT instead of being referenced on Drive.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		stats, err := a.Sync.SyncProductImages(cmd.Context(), authz.System, syncFolder, syncDownload)
		if err != nil {
			return err
		}
		for _, e := range stats.Errors {
			log.Warn().Msg(e)
		}
		return nil
	},
}

func init() {
	syncImagesCmd.Flags().StringVar(&syncFolder, "folder", "", "Drive folder id (defaults to BASE_GOOGLE_DRIVE_FOLDER_ID)")
	syncImagesCmd.Flags().BoolVar(&syncDownload, "download", false, "Copy images locally instead of linking them")
}
