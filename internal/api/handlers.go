package api

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/clipsight/clipsight/internal/database"
	"github.com/clipsight/clipsight/internal/models"
	"github.com/clipsight/clipsight/internal/playback"
	"github.com/clipsight/clipsight/internal/registry"
	"github.com/clipsight/clipsight/internal/selection"
	"github.com/clipsight/clipsight/internal/storage"
	"github.com/clipsight/clipsight/internal/timeline"
)

type App struct {
	DB        *database.DB
	AssetRepo *database.AssetRepository
	Registry  *registry.Registry
	Selection *selection.Service
	Timeline  *timeline.Engine
	Clock     *playback.Clock
	Masks     storage.Storage
}

func PingHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("pong"))
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[API] error encoding response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

type registerVideoRequest struct {
	Title         string  `json:"title"`
	Filename      string  `json:"filename"`
	ContentType   string  `json:"contentType"`
	Size          int64   `json:"size"`
	FPS           float64 `json:"fps"`
	DisplayWidth  int     `json:"displayWidth"`
	DisplayHeight int     `json:"displayHeight"`
	Duration      float64 `json:"duration"`
}

// RegisterVideoHandler records an already uploaded video's metadata. Upload
// and validation happen upstream; this service only needs the timing and
// geometry to drive selection.
func (app *App) RegisterVideoHandler(w http.ResponseWriter, r *http.Request) {
	var req registerVideoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Title == "" || req.Filename == "" {
		writeError(w, http.StatusBadRequest, "title and filename are required")
		return
	}

	asset := models.NewVideoAsset(req.Title, req.Filename, req.ContentType, req.Size)
	asset.FPS = req.FPS
	asset.DisplayWidth = req.DisplayWidth
	asset.DisplayHeight = req.DisplayHeight
	asset.Duration = req.Duration

	if err := app.AssetRepo.InsertAsset(asset); err != nil {
		log.Printf("[API] error inserting video: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to register video")
		return
	}

	writeJSON(w, http.StatusCreated, asset)
}

func (app *App) ListVideosHandler(w http.ResponseWriter, r *http.Request) {
	assets, err := app.AssetRepo.ListAssets()
	if err != nil {
		log.Printf("[API] error listing videos: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to list videos")
		return
	}
	writeJSON(w, http.StatusOK, assets)
}

func (app *App) GetVideoHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	asset, err := app.AssetRepo.GetAssetByID(id)
	if err == database.ErrAssetNotFound {
		writeError(w, http.StatusNotFound, "video not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get video")
		return
	}
	writeJSON(w, http.StatusOK, asset)
}

// DeleteVideoHandler removes a video and cascades into everything the engine
// holds for it: registered objects, their timeline elements, the selection
// session and the playback position.
func (app *App) DeleteVideoHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := app.AssetRepo.DeleteAsset(id); err != nil {
		if err == database.ErrAssetNotFound {
			writeError(w, http.StatusNotFound, "video not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to delete video")
		return
	}

	for _, obj := range app.Registry.QueryByVideo(id) {
		app.Timeline.RemoveElementByObject(obj.ID)
	}
	removed := app.Registry.RemoveByVideo(id)
	app.Selection.DisableSelection(id)
	app.Clock.Forget(id)

	log.Printf("[API] deleted video %s and %d tracked objects", id, removed)
	writeJSON(w, http.StatusOK, map[string]interface{}{"removedObjects": removed})
}

type probeRequest struct {
	FPS           float64 `json:"fps"`
	DisplayWidth  int     `json:"displayWidth"`
	DisplayHeight int     `json:"displayHeight"`
	Duration      float64 `json:"duration"`
}

func (app *App) ProbeVideoHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req probeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	err := app.AssetRepo.UpdateProbe(id, req.FPS, req.DisplayWidth, req.DisplayHeight, req.Duration)
	if err == database.ErrAssetNotFound {
		writeError(w, http.StatusNotFound, "video not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to update video")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type playbackRequest struct {
	Position float64 `json:"position"`
}

func (app *App) ReportPlaybackHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req playbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	app.Clock.Report(id, req.Position)
	w.WriteHeader(http.StatusNoContent)
}

func (app *App) SeekHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req playbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	app.Clock.Seek(id, req.Position)
	w.WriteHeader(http.StatusNoContent)
}

func (app *App) TimelineHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, app.Timeline.Tracks())
}

func (app *App) MaskHandler(w http.ResponseWriter, r *http.Request) {
	filename := chi.URLParam(r, "filename")

	file, err := app.Masks.OpenMask(filename)
	if err != nil {
		writeError(w, http.StatusNotFound, "mask not found")
		return
	}
	defer file.Close()

	w.Header().Set("Content-Type", "image/png")
	if _, err := io.Copy(w, file); err != nil {
		log.Printf("[API] error streaming mask %s: %v", filename, err)
	}
}

// parseFloatQuery reads a float query parameter, falling back to def when
// absent or malformed.
func parseFloatQuery(r *http.Request, key string, def float64) float64 {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return def
	}
	return v
}
