package selection

import (
	"context"
	"errors"

	"github.com/clipsight/clipsight/internal/models"
)

// State is the selection session's mode. Transitions only happen through
// the methods below, so "at most one request in flight" holds by
// construction rather than by convention.
type State string

const (
	StateIdle         State = "idle"
	StateModeActive   State = "mode_active"
	StatePendingClick State = "pending_click"
	StateProcessing   State = "processing"
	StateError        State = "error"
)

var (
	errSelectionOff = errors.New("selection mode is off")
	errBusy         = errors.New("a selection request is already in flight")
	errBadState     = errors.New("invalid session state transition")
)

// dispatch is one outbound segmentation request. The goroutine awaiting the
// external service holds it as its ownership token: only the session's
// current dispatch may move the state machine, so a request that was
// detached by disable cannot corrupt a later dispatch's session.
type dispatch struct {
	cancel context.CancelFunc
	done   chan struct{}
}

// Session is the per-video selection lifecycle: enabling selection mode,
// one pending click at a time, and the handle to cancel a dispatched
// segmentation call. Callers hold the service lock; Session itself has none.
type Session struct {
	VideoID      string
	state        State
	pendingClick *models.ClickCoordinate
	current      *dispatch
}

func newSession(videoID string) *Session {
	return &Session{VideoID: videoID, state: StateIdle}
}

func (s *Session) State() State { return s.state }

// PendingClick returns the click awaiting or undergoing processing, if any.
func (s *Session) PendingClick() *models.ClickCoordinate { return s.pendingClick }

// owns reports whether d is the session's current in-flight dispatch.
func (s *Session) owns(d *dispatch) bool { return s.current == d }

// enable turns selection mode on. Valid from Idle and from Error, where it
// is the only recovery path.
func (s *Session) enable() {
	if s.state == StateIdle || s.state == StateError {
		s.state = StateModeActive
	}
}

// disable is the unconditional any-state → Idle cancellation: the pending
// click is dropped and any dispatched segmentation call is aborted through
// its cancel handle and detached, so its eventual completion cannot touch
// whatever the session is doing by then.
func (s *Session) disable() {
	if s.current != nil {
		s.current.cancel()
		s.current = nil
	}
	s.pendingClick = nil
	s.state = StateIdle
}

// acceptClick admits a click when selection mode is on and nothing is
// pending or processing; any other state drops the click silently.
func (s *Session) acceptClick(click models.ClickCoordinate) error {
	switch s.state {
	case StateModeActive:
		s.pendingClick = &click
		s.state = StatePendingClick
		return nil
	case StateIdle, StateError:
		return errSelectionOff
	default:
		return errBusy
	}
}

// beginProcessing marks the pending click as dispatched and hands the
// goroutine its ownership token.
func (s *Session) beginProcessing(cancel context.CancelFunc) (*dispatch, error) {
	if s.state != StatePendingClick {
		return nil, errBadState
	}
	s.state = StateProcessing
	s.current = &dispatch{cancel: cancel, done: make(chan struct{})}
	return s.current, nil
}

// completeProcessing clears the pending state after a resolved request and
// returns the session to ModeActive. A dispatch the session no longer owns
// only marks itself finished; the state machine is left alone.
func (s *Session) completeProcessing(d *dispatch) {
	close(d.done)
	if !s.owns(d) {
		return
	}
	s.pendingClick = nil
	s.current = nil
	if s.state == StateProcessing {
		s.state = StateModeActive
	}
}

// failProcessing clears the pending state after a failed request. There is
// no automatic retry; re-enabling selection mode is the recovery path.
// Like completeProcessing, a disowned dispatch cannot move the state.
func (s *Session) failProcessing(d *dispatch) {
	close(d.done)
	if !s.owns(d) {
		return
	}
	s.pendingClick = nil
	s.current = nil
	if s.state == StateProcessing {
		s.state = StateError
	}
}
