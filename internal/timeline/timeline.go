// Package timeline holds the editor's track and element model. The binder
// in this package projects newly segmented objects into it; everything else
// treats the engine as read-only.
package timeline

import (
	"sync"

	"github.com/google/uuid"
)

const (
	TrackKindVideo  = "video"
	TrackKindAudio  = "audio"
	TrackKindObject = "object"
)

// OperationNone marks an element with no edit operation applied.
const OperationNone = "none"

type Element struct {
	ID         string  `json:"id"`
	ObjectID   string  `json:"objectId,omitempty"`
	VideoID    string  `json:"videoId,omitempty"`
	Name       string  `json:"name"`
	Confidence float64 `json:"confidence,omitempty"`
	StartTime  float64 `json:"startTime"`
	Duration   float64 `json:"duration"`
	TrimStart  float64 `json:"trimStart"`
	TrimEnd    float64 `json:"trimEnd"`
	Visible    bool    `json:"visible"`
	Operation  string  `json:"operation"`
}

type Track struct {
	ID       string    `json:"id"`
	Kind     string    `json:"kind"`
	Elements []Element `json:"elements"`
}

// Engine is an in-memory track store. The selection core only ever calls
// FindTrackByKind, CreateTrack and InsertElement on it.
type Engine struct {
	mu     sync.RWMutex
	tracks []*Track
}

func NewEngine() *Engine {
	return &Engine{}
}

// FindTrackByKind returns the id of the first track of the given kind in
// creation order, or false when none exists.
func (e *Engine) FindTrackByKind(kind string) (string, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	for _, tr := range e.tracks {
		if tr.Kind == kind {
			return tr.ID, true
		}
	}
	return "", false
}

// CreateTrack appends a new empty track of the given kind and returns its id.
func (e *Engine) CreateTrack(kind string) string {
	e.mu.Lock()
	defer e.mu.Unlock()

	tr := &Track{ID: uuid.New().String(), Kind: kind}
	e.tracks = append(e.tracks, tr)
	return tr.ID
}

// InsertElement appends el to the track with the given id.
func (e *Engine) InsertElement(trackID string, el Element) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, tr := range e.tracks {
		if tr.ID == trackID {
			if el.ID == "" {
				el.ID = uuid.New().String()
			}
			if el.Operation == "" {
				el.Operation = OperationNone
			}
			tr.Elements = append(tr.Elements, el)
			return nil
		}
	}
	return ErrTrackNotFound
}

// RemoveElementByObject deletes the element bound to objectID, if any.
func (e *Engine) RemoveElementByObject(objectID string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, tr := range e.tracks {
		for i, el := range tr.Elements {
			if el.ObjectID == objectID {
				tr.Elements = append(tr.Elements[:i], tr.Elements[i+1:]...)
				return
			}
		}
	}
}

// Tracks returns a snapshot of all tracks for the read-side API.
func (e *Engine) Tracks() []Track {
	e.mu.RLock()
	defer e.mu.RUnlock()

	out := make([]Track, 0, len(e.tracks))
	for _, tr := range e.tracks {
		copied := Track{ID: tr.ID, Kind: tr.Kind}
		copied.Elements = append(copied.Elements, tr.Elements...)
		out = append(out, copied)
	}
	return out
}
