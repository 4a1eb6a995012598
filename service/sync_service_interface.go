package service

import (
	"context"

	"tabloide-mp/authz"
)

// SyncStats counts the outcome of an image sync.
// linked = products whose image now points to the file, unmatched = files with no product of that code.
type SyncStats struct {
	Total     int      `json:"total"`
	Linked    int      `json:"linked"`
	Unchanged int      `json:"unchanged"`
	Unmatched int      `json:"unmatched"`
	Errors    []string `json:"errors,omitempty"`
}

// SyncServiceInterface defines the contract for product image synchronization
type SyncServiceInterface interface {
	// SyncProductImages links every image of a Drive folder named after a product code to that product.
	// With download set, images are optimized and copied under the media root instead of referenced on Drive.
	SyncProductImages(ctx context.Context, actor *authz.Actor, folderID string, download bool) (*SyncStats, error)
}
