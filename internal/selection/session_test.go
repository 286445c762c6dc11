package selection

import (
	"context"
	"testing"

	"github.com/clipsight/clipsight/internal/models"
)

func TestSessionTransitions(t *testing.T) {
	s := newSession("vid-1")
	if s.State() != StateIdle {
		t.Fatalf("fresh session state = %s, want idle", s.State())
	}

	// Clicks before enabling are rejected.
	if err := s.acceptClick(models.ClickCoordinate{}); err != errSelectionOff {
		t.Errorf("acceptClick in idle = %v, want errSelectionOff", err)
	}

	s.enable()
	if s.State() != StateModeActive {
		t.Fatalf("state = %s, want mode_active", s.State())
	}

	if err := s.acceptClick(models.ClickCoordinate{Frame: 60}); err != nil {
		t.Fatalf("acceptClick failed: %v", err)
	}
	if s.State() != StatePendingClick || s.PendingClick() == nil {
		t.Fatal("accepted click must be pending")
	}

	// A second click while one is pending is rejected, not queued.
	if err := s.acceptClick(models.ClickCoordinate{}); err != errBusy {
		t.Errorf("acceptClick while pending = %v, want errBusy", err)
	}

	_, cancel := context.WithCancel(context.Background())
	d, err := s.beginProcessing(cancel)
	if err != nil {
		t.Fatalf("beginProcessing failed: %v", err)
	}
	if s.State() != StateProcessing {
		t.Fatalf("state = %s, want processing", s.State())
	}
	if err := s.acceptClick(models.ClickCoordinate{}); err != errBusy {
		t.Errorf("acceptClick while processing = %v, want errBusy", err)
	}

	s.completeProcessing(d)
	if s.State() != StateModeActive || s.PendingClick() != nil {
		t.Error("completed request must return the session to mode_active with no pending click")
	}
	select {
	case <-d.done:
	default:
		t.Error("completed dispatch must have a closed done channel")
	}
}

func TestSessionFailureAndRecovery(t *testing.T) {
	s := newSession("vid-1")
	s.enable()
	s.acceptClick(models.ClickCoordinate{})
	_, cancel := context.WithCancel(context.Background())
	d, _ := s.beginProcessing(cancel)

	s.failProcessing(d)
	if s.State() != StateError || s.PendingClick() != nil {
		t.Error("failed request must land in error with no pending click")
	}

	// enable is the only way out of error.
	s.enable()
	if s.State() != StateModeActive {
		t.Errorf("state = %s, want mode_active after re-enable", s.State())
	}
}

func TestSessionDisableFromAnyState(t *testing.T) {
	for _, prep := range []func(*Session){
		func(s *Session) {},
		func(s *Session) { s.enable() },
		func(s *Session) { s.enable(); s.acceptClick(models.ClickCoordinate{}) },
		func(s *Session) {
			s.enable()
			s.acceptClick(models.ClickCoordinate{})
			_, cancel := context.WithCancel(context.Background())
			s.beginProcessing(cancel)
		},
	} {
		s := newSession("vid-1")
		prep(s)
		s.disable()
		if s.State() != StateIdle {
			t.Errorf("state = %s after disable, want idle", s.State())
		}
		if s.PendingClick() != nil {
			t.Error("disable must clear the pending click")
		}
	}
}

func TestSessionDisownedDispatchCannotMoveState(t *testing.T) {
	s := newSession("vid-1")
	s.enable()
	s.acceptClick(models.ClickCoordinate{})
	_, cancel1 := context.WithCancel(context.Background())
	d1, _ := s.beginProcessing(cancel1)

	// Disable detaches d1; a second click dispatches d2.
	s.disable()
	s.enable()
	s.acceptClick(models.ClickCoordinate{})
	_, cancel2 := context.WithCancel(context.Background())
	d2, _ := s.beginProcessing(cancel2)

	// d1's late failure must not touch d2's session.
	s.failProcessing(d1)
	if s.State() != StateProcessing {
		t.Errorf("state = %s after stale failure, want processing", s.State())
	}
	if !s.owns(d2) {
		t.Error("the session must still own the second dispatch")
	}
	select {
	case <-d1.done:
	default:
		t.Error("stale dispatch must still mark itself finished")
	}

	// A stale completion is equally inert.
	s.disable()
	s.enable()
	s.acceptClick(models.ClickCoordinate{})
	_, cancel3 := context.WithCancel(context.Background())
	d3, _ := s.beginProcessing(cancel3)
	s.completeProcessing(d2)
	if s.State() != StateProcessing || !s.owns(d3) {
		t.Error("stale completion must not move the state machine")
	}

	s.completeProcessing(d3)
	if s.State() != StateModeActive {
		t.Errorf("state = %s, want mode_active after the owning dispatch completes", s.State())
	}
}

func TestSessionBeginProcessingRequiresPendingClick(t *testing.T) {
	s := newSession("vid-1")
	s.enable()
	if _, err := s.beginProcessing(func() {}); err != errBadState {
		t.Errorf("beginProcessing without a pending click = %v, want errBadState", err)
	}
}
