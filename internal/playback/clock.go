// Package playback tracks the player's reported position per video. The
// engine only reads it; the player pushes updates and seeks through the API.
package playback

import "sync"

// Clock holds the last reported playback position, in seconds, for each
// video. Positions are clamped at zero.
type Clock struct {
	mu        sync.RWMutex
	positions map[string]float64
}

func NewClock() *Clock {
	return &Clock{positions: make(map[string]float64)}
}

// Position returns the current playback time for videoID. An unknown video
// reads as position zero.
func (c *Clock) Position(videoID string) float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.positions[videoID]
}

// Report records the player's current position for videoID.
func (c *Clock) Report(videoID string, seconds float64) {
	if seconds < 0 {
		seconds = 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.positions[videoID] = seconds
}

// Seek moves the stored position. Identical to Report today; kept separate
// so seeks stay distinguishable at call sites.
func (c *Clock) Seek(videoID string, seconds float64) {
	c.Report(videoID, seconds)
}

// Forget drops the stored position for a removed video.
func (c *Clock) Forget(videoID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.positions, videoID)
}
