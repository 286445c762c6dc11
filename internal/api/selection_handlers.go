package api

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/clipsight/clipsight/internal/models"
	"github.com/clipsight/clipsight/internal/overlay"
	"github.com/clipsight/clipsight/internal/selection"
)

func (app *App) EnableSelectionHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	app.Selection.EnableSelection(id)
	writeJSON(w, http.StatusOK, map[string]string{"state": string(app.Selection.SessionState(id))})
}

func (app *App) DisableSelectionHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	app.Selection.DisableSelection(id)
	writeJSON(w, http.StatusOK, map[string]string{"state": string(app.Selection.SessionState(id))})
}

func (app *App) SelectionStateHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	writeJSON(w, http.StatusOK, map[string]string{"state": string(app.Selection.SessionState(id))})
}

type clickRequest struct {
	ClickX float64             `json:"clickX"`
	ClickY float64             `json:"clickY"`
	Rect   overlay.DisplayRect `json:"rect"`
	// Pointer so an explicit click at t=0 stays distinguishable from an
	// omitted field; nil falls back to the clock's last reported position.
	PlaybackTime *float64 `json:"playbackTime"`
	ElementStart float64  `json:"elementStart"`
	TrimStart    float64  `json:"trimStart"`
}

// ClickHandler feeds a pointer click into the selection session. The
// playback time defaults to the clock's last reported position; the player
// may pass an exact instant instead.
func (app *App) ClickHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req clickRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Rect.Width <= 0 || req.Rect.Height <= 0 {
		writeError(w, http.StatusBadRequest, "display rect is required")
		return
	}

	in := selection.ClickInput{
		ClickX:       req.ClickX,
		ClickY:       req.ClickY,
		Rect:         req.Rect,
		PlaybackTime: app.Clock.Position(id),
		ElementStart: req.ElementStart,
		TrimStart:    req.TrimStart,
	}
	if req.PlaybackTime != nil {
		in.PlaybackTime = *req.PlaybackTime
	}

	accepted, err := app.Selection.HandleClick(id, in)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}

	// A dropped click is not an error: selection mode was off or a request
	// was already in flight.
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"accepted": accepted,
		"state":    string(app.Selection.SessionState(id)),
	})
}

func (app *App) ListObjectsHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	objects := app.Registry.QueryByVideo(id)
	if objects == nil {
		objects = []*models.SegmentedObject{}
	}
	writeJSON(w, http.StatusOK, objects)
}

// OverlaysHandler resolves the visible bounding boxes for the playback
// instant. Hit once per render tick, so it stays read-only and allocates
// only the response.
func (app *App) OverlaysHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	playbackTime := parseFloatQuery(r, "time", app.Clock.Position(id))
	elementStart := parseFloatQuery(r, "elementStart", 0)
	trimStart := parseFloatQuery(r, "trimStart", 0)

	boxes := app.Selection.ResolveOverlays(id, playbackTime, elementStart, trimStart)
	if boxes == nil {
		boxes = []selection.OverlayBox{}
	}
	writeJSON(w, http.StatusOK, boxes)
}

type updateObjectRequest struct {
	Name   *string `json:"name"`
	Status *string `json:"status"`
}

func (app *App) UpdateObjectHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if app.Registry.Get(id) == nil {
		writeError(w, http.StatusNotFound, "object not found")
		return
	}

	var req updateObjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	upd := models.ObjectUpdate{Name: req.Name}
	if req.Status != nil {
		status := models.ObjectStatus(*req.Status)
		switch status {
		case models.StatusSegmenting, models.StatusTracking, models.StatusReady, models.StatusError:
			upd.Status = &status
		default:
			writeError(w, http.StatusBadRequest, "unknown status")
			return
		}
	}

	app.Registry.Update(id, upd)
	writeJSON(w, http.StatusOK, app.Registry.Get(id))
}

func (app *App) RemoveObjectHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if app.Registry.Get(id) == nil {
		writeError(w, http.StatusNotFound, "object not found")
		return
	}

	app.Registry.Remove(id)
	app.Timeline.RemoveElementByObject(id)
	log.Printf("[API] removed object %s", id)
	w.WriteHeader(http.StatusNoContent)
}

func (app *App) SelectObjectHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if app.Registry.Get(id) == nil {
		writeError(w, http.StatusNotFound, "object not found")
		return
	}
	app.Registry.Select(id)
	w.WriteHeader(http.StatusNoContent)
}

func (app *App) DeselectObjectHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	app.Registry.Deselect(id)
	w.WriteHeader(http.StatusNoContent)
}

func (app *App) FirstSelectedHandler(w http.ResponseWriter, r *http.Request) {
	first := app.Registry.FirstSelected()
	if first == nil {
		writeError(w, http.StatusNotFound, "nothing selected")
		return
	}
	writeJSON(w, http.StatusOK, first)
}
