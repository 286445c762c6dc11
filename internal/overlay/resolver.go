package overlay

import "github.com/clipsight/clipsight/internal/models"

// frameTolerance matches a stored sample to a query frame when their
// distance is strictly below this value, absorbing jitter between the sparse
// recorded frames and the continuous playback clock.
const frameTolerance = 2

// Resolve returns the bounding box to display for obj at queryFrame, or
// false when the object has no sample near that frame and should be treated
// as not visible. Boxes are scanned in storage order (ascending frame, as
// delivered by the segmentation service) and the first one within the
// tolerance window wins; no interpolation between samples is performed.
func Resolve(obj *models.SegmentedObject, queryFrame int) (models.BoundingBox, bool) {
	if obj == nil {
		return models.BoundingBox{}, false
	}
	for _, box := range obj.BoundingBoxes {
		d := box.Frame - queryFrame
		if d < 0 {
			d = -d
		}
		if d < frameTolerance {
			return box, true
		}
	}
	return models.BoundingBox{}, false
}
