package storage

import (
	"context"
	"io"
)

// Storage caches mask images referenced by segmentation results so overlay
// rendering does not depend on the remote mask host staying up.
type Storage interface {
	SaveMask(ctx context.Context, objectID, maskURL string) (string, error)
	OpenMask(path string) (io.ReadSeekCloser, error)
	DeleteMask(path string) error
}
