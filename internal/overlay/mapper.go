package overlay

import (
	"math"

	"github.com/clipsight/clipsight/internal/models"
)

// DisplayRect is the on-screen geometry of the rendered video element, in
// the same pixel space as incoming click points.
type DisplayRect struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// FrameAt converts a playback instant into a source frame number for an
// element placed at elementStart on the timeline with trimStart seconds cut
// from the head of its source. A non-positive fps falls back to the default.
func FrameAt(playbackTime, elementStart, trimStart, fps float64) int {
	if fps <= 0 {
		fps = models.DefaultFPS
	}
	return int(math.Floor((playbackTime - elementStart + trimStart) * fps))
}

// MapClick turns a pixel click inside rect into a normalized ClickCoordinate
// stamped with the playback time and derived frame. Pure; gating of whether
// the click should do anything happens in the selection session.
func MapClick(clickX, clickY float64, rect DisplayRect, playbackTime, elementStart, trimStart, fps float64) models.ClickCoordinate {
	return models.ClickCoordinate{
		X:         (clickX - rect.Left) / rect.Width,
		Y:         (clickY - rect.Top) / rect.Height,
		Timestamp: playbackTime,
		Frame:     FrameAt(playbackTime, elementStart, trimStart, fps),
	}
}
