package timeline

import (
	"errors"
	"fmt"
	"log"

	"github.com/clipsight/clipsight/internal/models"
)

var ErrTrackNotFound = errors.New("track not found")

// minElementDuration is the hard floor for bound elements; a single-frame
// object still gets a grabbable strip on the timeline.
const minElementDuration = 0.1

// TrackStore is the slice of the timeline engine the binder needs.
type TrackStore interface {
	FindTrackByKind(kind string) (string, bool)
	CreateTrack(kind string) string
	InsertElement(trackID string, el Element) error
}

// Binder projects newly registered objects onto an "object" track.
type Binder struct {
	tracks TrackStore
}

func NewBinder(tracks TrackStore) *Binder {
	return &Binder{tracks: tracks}
}

// Bind inserts a timeline element covering the object's tracked frame range
// and returns the id of the track it landed on. A binding failure is logged
// and reported as an empty track id: the object stays registered and
// selectable even without a timeline representation.
func (b *Binder) Bind(obj *models.SegmentedObject, fps float64) string {
	trackID, err := b.bind(obj, fps)
	if err != nil {
		log.Printf("[BIND] object %s not bound to timeline: %v", obj.ID, err)
		return ""
	}
	return trackID
}

func (b *Binder) bind(obj *models.SegmentedObject, fps float64) (string, error) {
	if len(obj.Frames) == 0 {
		return "", fmt.Errorf("object has no tracked frames")
	}
	if fps <= 0 {
		fps = models.DefaultFPS
	}

	startFrame := obj.Frames[0]
	endFrame := obj.Frames[0]
	for _, f := range obj.Frames[1:] {
		if f < startFrame {
			startFrame = f
		}
		if f > endFrame {
			endFrame = f
		}
	}

	duration := float64(endFrame-startFrame+1) / fps
	if duration < minElementDuration {
		duration = minElementDuration
	}

	trackID, ok := b.tracks.FindTrackByKind(TrackKindObject)
	if !ok {
		trackID = b.tracks.CreateTrack(TrackKindObject)
	}

	el := Element{
		ObjectID:   obj.ID,
		VideoID:    obj.VideoID,
		Name:       obj.Name,
		Confidence: obj.Confidence,
		StartTime:  float64(startFrame) / fps,
		Duration:   duration,
		Visible:    true,
		Operation:  OperationNone,
	}
	if err := b.tracks.InsertElement(trackID, el); err != nil {
		return "", fmt.Errorf("inserting element: %w", err)
	}
	return trackID, nil
}
