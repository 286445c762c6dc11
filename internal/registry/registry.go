// Package registry owns the identity and lifetime of segmented objects: a
// primary index by object id, a secondary per-video ordering, and the
// current selection. All three are updated together under one lock so no
// caller can observe a partially applied mutation.
package registry

import (
	"log"
	"sync"

	"github.com/clipsight/clipsight/internal/models"
)

type Registry struct {
	mu       sync.RWMutex
	objects  map[string]*models.SegmentedObject
	byVideo  map[string][]string
	selected []string
}

func New() *Registry {
	return &Registry{
		objects: make(map[string]*models.SegmentedObject),
		byVideo: make(map[string][]string),
	}
}

// Insert registers an object and appends its id to the owning video's
// ordering. Re-inserting an id overwrites the primary entry but still
// appends to the video bucket; callers are expected to Remove first, so a
// re-insert is logged as a likely bug upstream.
func (r *Registry) Insert(obj *models.SegmentedObject) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.objects[obj.ID]; exists {
		log.Printf("[REG] duplicate insert for object %s; video ordering for %s now holds it twice", obj.ID, obj.VideoID)
	}
	r.objects[obj.ID] = obj
	r.byVideo[obj.VideoID] = append(r.byVideo[obj.VideoID], obj.ID)
}

// Update shallow-merges the non-nil fields of upd into the stored object.
// Unknown ids are a no-op. Because selection holds ids, the merged object is
// what any selection read returns afterwards; the view never goes stale.
func (r *Registry) Update(id string, upd models.ObjectUpdate) {
	r.mu.Lock()
	defer r.mu.Unlock()

	obj, ok := r.objects[id]
	if !ok {
		return
	}
	if upd.Name != nil {
		obj.Name = *upd.Name
	}
	if upd.TrackID != nil {
		obj.TrackID = *upd.TrackID
	}
	if upd.Frames != nil {
		obj.Frames = upd.Frames
	}
	if upd.BoundingBoxes != nil {
		obj.BoundingBoxes = upd.BoundingBoxes
	}
	if upd.MaskURL != nil {
		obj.MaskURL = *upd.MaskURL
	}
	if upd.Confidence != nil {
		obj.Confidence = *upd.Confidence
	}
	if upd.Status != nil {
		obj.Status = *upd.Status
	}
}

// Remove deletes the object from the primary index, its video's ordering
// and the selection in one step.
func (r *Registry) Remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.removeLocked(id)
}

func (r *Registry) removeLocked(id string) {
	obj, ok := r.objects[id]
	if !ok {
		return
	}
	delete(r.objects, id)
	r.byVideo[obj.VideoID] = removeID(r.byVideo[obj.VideoID], id)
	if len(r.byVideo[obj.VideoID]) == 0 {
		delete(r.byVideo, obj.VideoID)
	}
	r.selected = removeID(r.selected, id)
}

// RemoveByVideo drops every object owned by videoID. Used when the video
// asset itself is deleted.
func (r *Registry) RemoveByVideo(videoID string) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	ids := append([]string(nil), r.byVideo[videoID]...)
	for _, id := range ids {
		r.removeLocked(id)
	}
	return len(ids)
}

// Get returns the object for id, or nil.
func (r *Registry) Get(id string) *models.SegmentedObject {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.objects[id]
}

// Select adds id to the selection. Selecting an already-selected or unknown
// id is a no-op.
func (r *Registry) Select(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.objects[id]; !ok {
		return
	}
	for _, sel := range r.selected {
		if sel == id {
			return
		}
	}
	r.selected = append(r.selected, id)
}

// Deselect removes id from the selection if present.
func (r *Registry) Deselect(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.selected = removeID(r.selected, id)
}

// ClearSelection empties the selection without touching the objects.
func (r *Registry) ClearSelection() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.selected = nil
}

// DeselectByVideo drops videoID's objects from the selection, leaving other
// videos' selections alone. Used when one video's selection session ends.
func (r *Registry) DeselectByVideo(videoID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var kept []string
	for _, id := range r.selected {
		if obj, ok := r.objects[id]; ok && obj.VideoID == videoID {
			continue
		}
		kept = append(kept, id)
	}
	r.selected = kept
}

// Selected returns the selected objects in selection order.
func (r *Registry) Selected() []*models.SegmentedObject {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*models.SegmentedObject, 0, len(r.selected))
	for _, id := range r.selected {
		if obj, ok := r.objects[id]; ok {
			out = append(out, obj)
		}
	}
	return out
}

// FirstSelected returns the first selected object, or nil when the
// selection is empty.
func (r *Registry) FirstSelected() *models.SegmentedObject {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, id := range r.selected {
		if obj, ok := r.objects[id]; ok {
			return obj
		}
	}
	return nil
}

// QueryByVideo returns the objects for videoID in insertion order. Ids with
// no primary entry are skipped; under the registry invariant that never
// happens.
func (r *Registry) QueryByVideo(videoID string) []*models.SegmentedObject {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := r.byVideo[videoID]
	out := make([]*models.SegmentedObject, 0, len(ids))
	for _, id := range ids {
		if obj, ok := r.objects[id]; ok {
			out = append(out, obj)
		}
	}
	return out
}

// Len reports the number of registered objects.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.objects)
}

func removeID(ids []string, id string) []string {
	for i, v := range ids {
		if v == id {
			return append(ids[:i:i], ids[i+1:]...)
		}
	}
	return ids
}
