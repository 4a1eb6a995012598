package service

import (
	"bytes"
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/rs/zerolog/log"
)

// ImagePreset is a max dimension and JPEG quality pair
type ImagePreset struct {
	MaxDim  int
	Quality int
}

var (
	// PresetProduct is used for product photos
	PresetProduct = ImagePreset{MaxDim: 800, Quality: 85}
	// PresetBackground keeps enough resolution for a 300 DPI tabloid sheet
	PresetBackground = ImagePreset{MaxDim: 5100, Quality: 90}
)

// OptimizeImage decodes any supported image, shrinks it to fit the preset and re-encodes it as JPEG
func OptimizeImage(imageData []byte, preset ImagePreset) ([]byte, error) {
	img, format, err := image.Decode(bytes.NewReader(imageData))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width > preset.MaxDim || height > preset.MaxDim {
		// Fit keeps the aspect ratio
		img = imaging.Fit(img, preset.MaxDim, preset.MaxDim, imaging.Lanczos)
		log.Debug().Str("format", format).Msgf("🔄 Resizing image: %dx%d -> %dx%d", width, height, img.Bounds().Dx(), img.Bounds().Dy())
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(preset.Quality)); err != nil {
		return nil, fmt.Errorf("failed to encode to JPEG: %w", err)
	}
	return buf.Bytes(), nil
}

// cacheExists checks if a cached file exists
func cacheExists(cachePath string) bool {
	_, err := os.Stat(cachePath)
	return err == nil
}

// saveToCache saves a file to the cache, creating parent directories
func saveToCache(cachePath string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(cachePath), 0755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}
	if err := os.WriteFile(cachePath, data, 0644); err != nil {
		return fmt.Errorf("failed to write to cache: %w", err)
	}
	log.Debug().Str("path", cachePath).Msg("✓ Image cached")
	return nil
}
