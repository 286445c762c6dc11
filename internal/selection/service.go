package selection

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/clipsight/clipsight/internal/models"
	"github.com/clipsight/clipsight/internal/overlay"
	"github.com/clipsight/clipsight/internal/registry"
	"github.com/clipsight/clipsight/internal/segmentation"
	"github.com/clipsight/clipsight/internal/timeline"
)

// AssetDirectory is the read-only slice of the media library the service
// needs: frame rate and display geometry per video.
type AssetDirectory interface {
	GetAssetByID(id string) (*models.VideoAsset, error)
}

// MaskStore caches mask images referenced by segmentation results. Nil-able
// dependency; caching failures never affect the registered object.
type MaskStore interface {
	SaveMask(ctx context.Context, objectID, maskURL string) (string, error)
}

// Service drives selection sessions: it gates clicks, dispatches them to the
// segmentation service, and writes resolved objects into the registry and
// onto the timeline.
type Service struct {
	registry  *registry.Registry
	binder    *timeline.Binder
	segmenter segmentation.Segmenter
	assets    AssetDirectory
	masks     MaskStore

	sessionsMu sync.Mutex
	sessions   map[string]*Session
}

func NewService(reg *registry.Registry, binder *timeline.Binder, segmenter segmentation.Segmenter, assets AssetDirectory, masks MaskStore) *Service {
	return &Service{
		registry:  reg,
		binder:    binder,
		segmenter: segmenter,
		assets:    assets,
		masks:     masks,
		sessions:  make(map[string]*Session),
	}
}

// ClickInput is a raw pointer click on the rendered video element, together
// with the element's timing and the playback instant it happened at.
type ClickInput struct {
	ClickX       float64             `json:"clickX"`
	ClickY       float64             `json:"clickY"`
	Rect         overlay.DisplayRect `json:"rect"`
	PlaybackTime float64             `json:"playbackTime"`
	ElementStart float64             `json:"elementStart"`
	TrimStart    float64             `json:"trimStart"`
}

func (s *Service) session(videoID string) *Session {
	sess, ok := s.sessions[videoID]
	if !ok {
		sess = newSession(videoID)
		s.sessions[videoID] = sess
	}
	return sess
}

// EnableSelection turns selection mode on for a video.
func (s *Service) EnableSelection(videoID string) {
	s.sessionsMu.Lock()
	defer s.sessionsMu.Unlock()
	s.session(videoID).enable()
}

// DisableSelection exits selection mode: the pending click and the video's
// selected objects are cleared and any in-flight segmentation request is
// aborted through its cancel handle. Other videos' sessions and selections
// are untouched.
func (s *Service) DisableSelection(videoID string) {
	s.sessionsMu.Lock()
	defer s.sessionsMu.Unlock()
	s.session(videoID).disable()
	s.registry.DeselectByVideo(videoID)
}

// SessionState reports the current state of a video's selection session.
func (s *Service) SessionState(videoID string) State {
	s.sessionsMu.Lock()
	defer s.sessionsMu.Unlock()
	return s.session(videoID).State()
}

// HandleClick maps the click into normalized coordinates and a frame number,
// then runs it through the session gate. A click while selection mode is off
// or while another request is in flight is dropped silently; accepted
// reports whether this click was dispatched.
func (s *Service) HandleClick(videoID string, in ClickInput) (accepted bool, err error) {
	asset, err := s.assets.GetAssetByID(videoID)
	if err != nil {
		return false, fmt.Errorf("looking up video: %w", err)
	}

	click := overlay.MapClick(in.ClickX, in.ClickY, in.Rect, in.PlaybackTime, in.ElementStart, in.TrimStart, asset.EffectiveFPS())

	s.sessionsMu.Lock()
	defer s.sessionsMu.Unlock()

	sess := s.session(videoID)
	if err := sess.acceptClick(click); err != nil {
		log.Printf("[SEL] click on %s dropped: %v", videoID, err)
		return false, nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	d, err := sess.beginProcessing(cancel)
	if err != nil {
		cancel()
		return false, err
	}

	log.Printf("[SEL] dispatching click (%.3f, %.3f) frame %d for video %s", click.X, click.Y, click.Frame, videoID)
	go s.runSegmentation(ctx, sess, d, asset, click)

	return true, nil
}

// runSegmentation is the single asynchronous leg: it awaits the external
// service, then applies the result under the session lock. d is the
// goroutine's ownership token; a dispatch detached by disable finds the
// session no longer owns it and discards its outcome.
func (s *Service) runSegmentation(ctx context.Context, sess *Session, d *dispatch, asset *models.VideoAsset, click models.ClickCoordinate) {
	result, err := s.segmenter.Segment(ctx, segmentation.SegmentRequest{
		VideoID: asset.ID,
		Point:   click,
	})

	// Mask caching happens outside the session lock; it is slow and its
	// failure never affects the registered object.
	if err == nil && s.masks != nil && result.MaskURL != "" {
		if path, maskErr := s.masks.SaveMask(ctx, result.ObjectID, result.MaskURL); maskErr != nil {
			log.Printf("[SEL] mask for object %s not cached: %v", result.ObjectID, maskErr)
		} else {
			log.Printf("[SEL] cached mask for object %s at %s", result.ObjectID, path)
		}
	}

	s.sessionsMu.Lock()
	defer s.sessionsMu.Unlock()

	if !sess.owns(d) {
		// Selection mode was disabled (and possibly re-entered) while this
		// request was in flight; its outcome belongs to nobody now and is
		// discarded rather than applied to whatever the session is doing.
		log.Printf("[SEL] stale segmentation outcome for video %s discarded", asset.ID)
		sess.failProcessing(d)
		return
	}
	if err != nil {
		log.Printf("[SEL] segmentation failed for video %s: %v", asset.ID, err)
		sess.failProcessing(d)
		return
	}

	obj := &models.SegmentedObject{
		ID:            result.ObjectID,
		VideoID:       asset.ID,
		Name:          fmt.Sprintf("Object %d", len(s.registry.QueryByVideo(asset.ID))+1),
		Frames:        result.Frames,
		BoundingBoxes: result.BoundingBoxes,
		MaskURL:       result.MaskURL,
		Confidence:    result.Confidence,
		CreatedAt:     time.Now(),
		Status:        models.StatusReady,
	}

	s.registry.Insert(obj)
	s.registry.Select(obj.ID)

	if trackID := s.binder.Bind(obj, asset.EffectiveFPS()); trackID != "" {
		s.registry.Update(obj.ID, models.ObjectUpdate{TrackID: &trackID})
	}

	log.Printf("[SEL] registered object %s (%d frames, confidence %.2f) for video %s",
		obj.ID, len(obj.Frames), obj.Confidence, asset.ID)
	sess.completeProcessing(d)
}

// ResolveOverlays returns, for the playback instant, the visible bounding
// box of every object of the video. Objects with no sample near the current
// frame are omitted. Called once per render tick; read-only.
func (s *Service) ResolveOverlays(videoID string, playbackTime, elementStart, trimStart float64) []OverlayBox {
	asset, err := s.assets.GetAssetByID(videoID)
	if err != nil {
		return nil
	}
	queryFrame := overlay.FrameAt(playbackTime, elementStart, trimStart, asset.EffectiveFPS())

	var out []OverlayBox
	for _, obj := range s.registry.QueryByVideo(videoID) {
		if box, ok := overlay.Resolve(obj, queryFrame); ok {
			out = append(out, OverlayBox{ObjectID: obj.ID, Name: obj.Name, Box: box})
		}
	}
	return out
}

// OverlayBox is one object's geometry at the queried instant.
type OverlayBox struct {
	ObjectID string             `json:"objectId"`
	Name     string             `json:"name"`
	Box      models.BoundingBox `json:"box"`
}

// inflight returns the done channel of the video's in-flight dispatch, or
// nil. Test hook for waiting out the asynchronous leg.
func (s *Service) inflight(videoID string) chan struct{} {
	s.sessionsMu.Lock()
	defer s.sessionsMu.Unlock()
	if d := s.session(videoID).current; d != nil {
		return d.done
	}
	return nil
}
