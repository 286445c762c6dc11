package segmentation

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/clipsight/clipsight/internal/models"
)

func TestClientSegment(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" || r.URL.Path != "/v1/segment" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("Authorization = %q", got)
		}

		var req SegmentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decoding request: %v", err)
		}
		if req.VideoID != "vid-1" || req.Point.Frame != 60 {
			t.Errorf("unexpected request payload: %+v", req)
		}

		json.NewEncoder(w).Encode(SegmentResult{
			ObjectID:      "obj-1",
			Frames:        []int{60, 61, 62},
			BoundingBoxes: []models.BoundingBox{{Frame: 60}, {Frame: 61}, {Frame: 62}},
			Confidence:    0.87,
			MaskURL:       "http://masks/obj-1.png",
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key")
	result, err := client.Segment(context.Background(), SegmentRequest{
		VideoID: "vid-1",
		Point:   models.ClickCoordinate{X: 0.5, Y: 0.5, Timestamp: 2.0, Frame: 60},
	})
	if err != nil {
		t.Fatalf("Segment failed: %v", err)
	}

	if result.ObjectID != "obj-1" {
		t.Errorf("ObjectID = %q, want obj-1", result.ObjectID)
	}
	if len(result.Frames) != 3 || len(result.BoundingBoxes) != 3 {
		t.Errorf("got %d frames / %d boxes, want 3 / 3", len(result.Frames), len(result.BoundingBoxes))
	}
	if result.Confidence != 0.87 {
		t.Errorf("Confidence = %f, want 0.87", result.Confidence)
	}
}

func TestClientSegmentServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model overloaded", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewClient(server.URL, "")
	if _, err := client.Segment(context.Background(), SegmentRequest{VideoID: "vid-1"}); err == nil {
		t.Fatal("expected an error on 503")
	}
}

func TestClientSegmentEmptyObjectID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(SegmentResult{})
	}))
	defer server.Close()

	client := NewClient(server.URL, "")
	if _, err := client.Segment(context.Background(), SegmentRequest{VideoID: "vid-1"}); err == nil {
		t.Fatal("expected an error when the service returns no object id")
	}
}

func TestClientSegmentCancelled(t *testing.T) {
	started := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(started)
		<-r.Context().Done()
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		<-started
		cancel()
	}()

	client := NewClient(server.URL, "")
	if _, err := client.Segment(ctx, SegmentRequest{VideoID: "vid-1"}); err == nil {
		t.Fatal("expected an error after context cancellation")
	}
}
