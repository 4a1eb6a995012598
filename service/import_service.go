package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"tabloide-mp/authz"
	"tabloide-mp/importer"
	"tabloide-mp/models"
	"tabloide-mp/repository"
)

// maxImportSize bounds uploaded price tables
const maxImportSize = 32 << 20

// ImportService ingests price tables into the catalog
type ImportService struct {
	items   repository.CatalogRepositoryInterface
	imports repository.ImportRepositoryInterface
	assets  *AssetStore
}

// NewImportService creates a new ImportService
func NewImportService(items repository.CatalogRepositoryInterface, imports repository.ImportRepositoryInterface, assets *AssetStore) *ImportService {
	return &ImportService{items: items, imports: imports, assets: assets}
}

// Import stores the uploaded file and applies it in a single transaction.
// File and parse failures are not returned: they leave the catalog untouched and are
// recorded on the import with Processed=false. Only authorization failures and a
// failure to save the record itself come back as errors.
func (s *ImportService) Import(ctx context.Context, actor *authz.Actor, filename string, r io.Reader) (*models.PriceImport, error) {
	if err := authz.Check(actor, authz.ImportPrices, authz.Any); err != nil {
		return nil, err
	}

	logger := log.Ctx(ctx)
	imp := &models.PriceImport{ID: uuid.New(), FileName: filepath.Base(filename)}

	stats, err := s.apply(ctx, imp, r)
	if err != nil {
		logger.Error().Err(err).Str("import_id", imp.ID.String()).Str("file", imp.FileName).Msg("❌ Price import failed")
		imp.Error = err.Error()
	} else {
		imp.Processed = true
		imp.Created, imp.Updated, imp.Skipped = stats.Created, stats.Updated, stats.Skipped
		logger.Info().Str("import_id", imp.ID.String()).Int("created", stats.Created).Int("updated", stats.Updated).
			Int("skipped", stats.Skipped).Msg("✓ Price import processed")
	}

	if err := s.imports.Insert(ctx, imp); err != nil {
		return nil, fmt.Errorf("failed to record import: %w", err)
	}
	return imp, nil
}

func (s *ImportService) apply(ctx context.Context, imp *models.PriceImport, r io.Reader) (importer.Stats, error) {
	var stats importer.Stats

	data, err := io.ReadAll(io.LimitReader(r, maxImportSize+1))
	if err != nil {
		return stats, fmt.Errorf("failed to read upload: %w", err)
	}
	if len(data) > maxImportSize {
		return stats, fmt.Errorf("file is larger than %d MB", maxImportSize>>20)
	}

	ext := strings.ToLower(filepath.Ext(imp.FileName))
	ref, err := s.assets.Save(importDir, imp.ID.String()+ext, data)
	if err != nil {
		return stats, err
	}
	imp.StoredPath = ref

	sheet, err := importer.Read(imp.FileName, bytes.NewReader(data))
	if err != nil {
		return stats, err
	}

	err = s.items.RunImport(ctx, func(store importer.ItemStore) error {
		var err error
		stats, err = importer.Apply(ctx, store, sheet)
		return err
	})
	if err != nil {
		return importer.Stats{}, err
	}
	return stats, nil
}

func (s *ImportService) Get(ctx context.Context, actor *authz.Actor, id uuid.UUID) (*models.PriceImport, error) {
	if err := authz.Check(actor, authz.ImportPrices, authz.Any); err != nil {
		return nil, err
	}
	return s.imports.GetByID(ctx, id)
}

// List returns the most recent imports
func (s *ImportService) List(ctx context.Context, actor *authz.Actor) ([]models.PriceImport, error) {
	if err := authz.Check(actor, authz.ImportPrices, authz.Any); err != nil {
		return nil, err
	}
	return s.imports.List(ctx, models.DefaultPerPage)
}
