package models

import (
	"time"

	"github.com/google/uuid"
)

// DefaultFPS is assumed when a source does not report a frame rate.
const DefaultFPS = 30.0

// VideoAsset is one media item known to the editor. FPS is filled in by the
// upstream probe step; zero means the source reported no frame rate and
// consumers fall back to DefaultFPS.
type VideoAsset struct {
	ID            string
	Title         string
	Filename      string
	ContentType   string
	Size          int64
	FPS           float64
	DisplayWidth  int
	DisplayHeight int
	Duration      float64
	UploadTime    time.Time
}

func NewVideoAsset(title, filename, contentType string, size int64) *VideoAsset {
	return &VideoAsset{
		ID:          uuid.New().String(),
		Title:       title,
		Filename:    filename,
		ContentType: contentType,
		Size:        size,
		UploadTime:  time.Now(),
	}
}

// EffectiveFPS returns the asset frame rate, or DefaultFPS when unset.
func (v *VideoAsset) EffectiveFPS() float64 {
	if v.FPS > 0 {
		return v.FPS
	}
	return DefaultFPS
}
