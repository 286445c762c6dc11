// Package segmentation talks to the external segmentation/tracking service.
// The service is a black box: one request per click, no retry or backoff.
package segmentation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/clipsight/clipsight/internal/models"
)

// SegmentRequest asks the service to segment and track whatever object sits
// under the clicked point at the given frame.
type SegmentRequest struct {
	VideoID string                 `json:"videoId"`
	Point   models.ClickCoordinate `json:"point"`
}

// SegmentResult is the service's answer. Frames and BoundingBoxes are meant
// to correspond 1:1; the engine tolerates a mismatch by rendering uncovered
// frames as not visible.
type SegmentResult struct {
	ObjectID      string               `json:"objectId"`
	Frames        []int                `json:"frames"`
	BoundingBoxes []models.BoundingBox `json:"boundingBoxes"`
	Confidence    float64              `json:"confidence"`
	MaskURL       string               `json:"maskUrl,omitempty"`
}

// Segmenter is what the selection service depends on; satisfied by Client
// and by test fakes.
type Segmenter interface {
	Segment(ctx context.Context, req SegmentRequest) (*SegmentResult, error)
}

type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (c *Client) Segment(ctx context.Context, req SegmentRequest) (*SegmentResult, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encoding request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/v1/segment", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("segmentation service returned status %d", resp.StatusCode)
	}

	var result SegmentResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	if result.ObjectID == "" {
		return nil, fmt.Errorf("segmentation service returned no object id")
	}

	return &result, nil
}
