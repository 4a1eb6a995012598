package controller

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"tabloide-mp/app/httpx"
	"tabloide-mp/authz"
	"tabloide-mp/service"
)

// ImageSyncController handles HTTP requests for the Drive image sync
type ImageSyncController struct {
	syncService service.SyncServiceInterface
}

// NewImageSyncController creates a new ImageSyncController
func NewImageSyncController(syncService service.SyncServiceInterface) *ImageSyncController {
	return &ImageSyncController{syncService: syncService}
}

// SyncImages handles POST /produtos/imagens/sync?folderId=&download=
func (c *ImageSyncController) SyncImages(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	folderID := strings.TrimSpace(r.URL.Query().Get("folderId"))
	download, _ := strconv.ParseBool(r.URL.Query().Get("download"))

	log.Ctx(ctx).Info().Str("folder_id", folderID).Bool("download", download).Msg("📥 Image sync requested")

	stats, err := c.syncService.SyncProductImages(ctx, authz.ActorFromContext(ctx), folderID, download)
	if errors.Is(err, service.ErrDriveNotConfigured) {
		httpx.Message(ctx, w, http.StatusServiceUnavailable, err.Error())
		return
	}
	if err != nil {
		httpx.Error(ctx, w, err)
		return
	}
	httpx.JSON(ctx, w, http.StatusOK, stats)
}
