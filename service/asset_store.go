package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/rs/zerolog/log"
)

// DriveRefPrefix marks asset references stored on Google Drive
const DriveRefPrefix = "drive:"

var (
	ErrDriveNotConfigured = errors.New("google drive is not configured")
	ErrInvalidAssetRef    = errors.New("invalid asset reference")
)

// AssetLoader opens images referenced by catalog items and templates
type AssetLoader interface {
	LoadImage(ctx context.Context, ref string) (image.Image, error)
}

// AssetStore resolves asset references: paths relative to the media root, or drive:<fileID>.
// Drive downloads are cached under the media root.
type AssetStore struct {
	mediaRoot string
	drive     DriveServiceInterface
}

// Ensure AssetStore implements AssetLoader
var _ AssetLoader = (*AssetStore)(nil)

// NewAssetStore creates an AssetStore. drive may be nil when Drive is not configured.
func NewAssetStore(mediaRoot string, drive DriveServiceInterface) *AssetStore {
	return &AssetStore{mediaRoot: mediaRoot, drive: drive}
}

// Read returns the raw bytes of an asset
func (a *AssetStore) Read(ctx context.Context, ref string) ([]byte, error) {
	if fileID, ok := strings.CutPrefix(ref, DriveRefPrefix); ok {
		return a.readDrive(ctx, fileID)
	}

	path, err := a.path(ref)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read asset %s: %w", ref, err)
	}
	return data, nil
}

func (a *AssetStore) readDrive(ctx context.Context, fileID string) ([]byte, error) {
	if fileID == "" {
		return nil, ErrInvalidAssetRef
	}
	cachePath := filepath.Join(a.mediaRoot, "cache", "drive", filepath.Base(fileID))
	if cacheExists(cachePath) {
		return os.ReadFile(cachePath)
	}
	if a.drive == nil {
		return nil, ErrDriveNotConfigured
	}

	data, err := a.drive.DownloadImage(ctx, fileID)
	if err != nil {
		return nil, err
	}
	if err := saveToCache(cachePath, data); err != nil {
		log.Ctx(ctx).Warn().Err(err).Str("file_id", fileID).Msg("⚠️  Could not cache drive image")
	}
	return data, nil
}

// LoadImage reads and decodes an image asset
func (a *AssetStore) LoadImage(ctx context.Context, ref string) (image.Image, error) {
	data, err := a.Read(ctx, ref)
	if err != nil {
		return nil, err
	}
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode asset %s: %w", ref, err)
	}
	return img, nil
}

// Save writes data to dir/name under the media root and returns its reference
func (a *AssetStore) Save(dir, name string, data []byte) (string, error) {
	ref := filepath.ToSlash(filepath.Join(dir, filepath.Base(name)))
	path, err := a.path(ref)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("failed to create media directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write asset %s: %w", ref, err)
	}
	return ref, nil
}

// Path returns the absolute path of a local reference
func (a *AssetStore) Path(ref string) (string, error) {
	return a.path(ref)
}

// path rejects references escaping the media root
func (a *AssetStore) path(ref string) (string, error) {
	if ref == "" || filepath.IsAbs(ref) {
		return "", fmt.Errorf("%w: %q", ErrInvalidAssetRef, ref)
	}
	clean := filepath.Clean(filepath.FromSlash(ref))
	if clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %q", ErrInvalidAssetRef, ref)
	}
	return filepath.Join(a.mediaRoot, clean), nil
}
