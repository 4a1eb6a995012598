package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"tabloide-mp/authz"
	"tabloide-mp/models"
	"tabloide-mp/repository"
	"tabloide-mp/utils"
)

// SyncService links Drive images to catalog items by product code
type SyncService struct {
	driveService DriveServiceInterface
	items        repository.CatalogRepositoryInterface
	assets       *AssetStore
	folderID     string
}

// NewSyncService creates a new SyncService. defaultFolderID is used when a call passes no folder.
func NewSyncService(driveService DriveServiceInterface, items repository.CatalogRepositoryInterface, assets *AssetStore, defaultFolderID string) *SyncService {
	return &SyncService{
		driveService: driveService,
		items:        items,
		assets:       assets,
		folderID:     defaultFolderID,
	}
}

// Ensure SyncService implements SyncServiceInterface
var _ SyncServiceInterface = (*SyncService)(nil)

func (s *SyncService) SyncProductImages(ctx context.Context, actor *authz.Actor, folderID string, download bool) (*SyncStats, error) {
	if err := authz.Check(actor, authz.ManageCatalog, authz.Any); err != nil {
		return nil, err
	}
	if s.driveService == nil {
		return nil, ErrDriveNotConfigured
	}
	if folderID == "" {
		folderID = s.folderID
	}
	if folderID == "" {
		return nil, models.NewValidationError("folderId", nil, "is required")
	}

	logger := log.Ctx(ctx)
	logger.Info().Str("folder_id", folderID).Bool("download", download).Msg("🔄 Starting product image sync")

	files, err := s.driveService.ListImages(ctx, folderID)
	if err != nil {
		return nil, fmt.Errorf("failed to list images from Drive: %w", err)
	}

	stats := &SyncStats{Total: len(files)}
	seen := make(map[string]bool, len(files))
	for _, file := range files {
		code, err := utils.ParseProductCode(file.Name)
		if err != nil {
			logger.Debug().Str("file", file.Name).Msg("⏭️  Skipping file without product code")
			stats.Unmatched++
			continue
		}
		if seen[code] {
			logger.Debug().Str("file", file.Name).Msg("⏭️  Skipping duplicate code in folder")
			stats.Unchanged++
			continue
		}
		seen[code] = true

		item, err := s.items.GetByCode(ctx, code)
		if errors.Is(err, models.ErrNotFound) {
			stats.Unmatched++
			continue
		}
		if err != nil {
			stats.Errors = append(stats.Errors, fmt.Sprintf("%s: %v", file.Name, err))
			continue
		}

		ref := DriveRefPrefix + file.ID
		if download {
			ref, err = s.copyLocal(ctx, file, item.ID)
			if err != nil {
				logger.Error().Err(err).Str("file", file.Name).Msg("❌ Failed to copy image")
				stats.Errors = append(stats.Errors, fmt.Sprintf("%s: %v", file.Name, err))
				continue
			}
		}

		if item.ImageRef != nil && *item.ImageRef == ref {
			stats.Unchanged++
			continue
		}
		if err := s.items.SetImage(ctx, item.ID, ref); err != nil {
			stats.Errors = append(stats.Errors, fmt.Sprintf("%s: %v", file.Name, err))
			continue
		}
		stats.Linked++
	}

	logger.Info().Int("total", stats.Total).Int("linked", stats.Linked).Int("unchanged", stats.Unchanged).
		Int("unmatched", stats.Unmatched).Int("errors", len(stats.Errors)).Msg("🎉 Product image sync completed")
	return stats, nil
}

func (s *SyncService) copyLocal(ctx context.Context, file DriveFile, itemID int64) (string, error) {
	data, err := s.driveService.DownloadImage(ctx, file.ID)
	if err != nil {
		return "", err
	}
	optimized, err := OptimizeImage(data, PresetProduct)
	if err != nil {
		return "", err
	}
	return s.assets.Save(productImageDir, fmt.Sprintf("%d.jpg", itemID), optimized)
}
