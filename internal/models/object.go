package models

import "time"

type ObjectStatus string

const (
	StatusSegmenting ObjectStatus = "segmenting"
	StatusTracking   ObjectStatus = "tracking"
	StatusReady      ObjectStatus = "ready"
	StatusError      ObjectStatus = "error"
)

// BoundingBox is a normalized rectangle describing an object's extent at one
// frame. All four values live in the unit square of the displayed frame.
type BoundingBox struct {
	Frame  int     `json:"frame"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// SegmentedObject is a tracked object produced by the segmentation service.
// Frames is an increasing sequence of distinct frame numbers; BoundingBoxes
// is meant to match it 1:1 by frame value, but the correspondence is not
// checked at write time — a frame with no box simply renders as not visible.
type SegmentedObject struct {
	ID            string        `json:"id"`
	VideoID       string        `json:"videoId"`
	TrackID       string        `json:"trackId,omitempty"`
	Name          string        `json:"name"`
	Frames        []int         `json:"frames"`
	BoundingBoxes []BoundingBox `json:"boundingBoxes"`
	MaskURL       string        `json:"maskUrl,omitempty"`
	Confidence    float64       `json:"confidence"`
	CreatedAt     time.Time     `json:"createdAt"`
	Status        ObjectStatus  `json:"status"`
}

// ObjectUpdate carries a partial mutation of a SegmentedObject. Nil fields
// are left untouched by the merge.
type ObjectUpdate struct {
	Name          *string
	TrackID       *string
	Frames        []int
	BoundingBoxes []BoundingBox
	MaskURL       *string
	Confidence    *float64
	Status        *ObjectStatus
}
