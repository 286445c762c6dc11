package overlay

import (
	"math"
	"testing"
)

func TestFrameAt(t *testing.T) {
	tests := []struct {
		name         string
		playbackTime float64
		elementStart float64
		trimStart    float64
		fps          float64
		want         int
	}{
		{"two seconds at 30fps", 2.0, 0, 0, 30, 60},
		{"element offset subtracted", 5.0, 3.0, 0, 30, 60},
		{"trim start added back", 2.0, 0, 1.0, 30, 90},
		{"floor not round", 0.999, 0, 0, 30, 29},
		{"zero fps falls back to 30", 2.0, 0, 0, 0, 60},
		{"negative fps falls back to 30", 1.0, 0, 0, -24, 30},
		{"24fps source", 2.0, 0, 0, 24, 48},
		{"start of element", 3.0, 3.0, 0, 30, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FrameAt(tt.playbackTime, tt.elementStart, tt.trimStart, tt.fps)
			if got != tt.want {
				t.Errorf("FrameAt() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestFrameAtDeterministic(t *testing.T) {
	for i := 0; i < 100; i++ {
		a := FrameAt(1.2345, 0.5, 0.25, 29.97)
		b := FrameAt(1.2345, 0.5, 0.25, 29.97)
		if a != b {
			t.Fatalf("FrameAt not deterministic: %d vs %d", a, b)
		}
	}
}

func TestFrameAtNonNegative(t *testing.T) {
	// Whenever playbackTime >= elementStart - trimStart the frame must not
	// be negative.
	for pt := 0.0; pt < 3.0; pt += 0.1 {
		frame := FrameAt(pt, 0, 0, 30)
		if frame < 0 {
			t.Errorf("FrameAt(%f) = %d, want >= 0", pt, frame)
		}
	}
}

func TestMapClick(t *testing.T) {
	rect := DisplayRect{Left: 100, Top: 50, Width: 640, Height: 360}

	click := MapClick(420, 230, rect, 2.0, 0, 0, 30)

	if math.Abs(click.X-0.5) > 1e-9 {
		t.Errorf("X = %f, want 0.5", click.X)
	}
	if math.Abs(click.Y-0.5) > 1e-9 {
		t.Errorf("Y = %f, want 0.5", click.Y)
	}
	if click.Timestamp != 2.0 {
		t.Errorf("Timestamp = %f, want 2.0", click.Timestamp)
	}
	if click.Frame != 60 {
		t.Errorf("Frame = %d, want 60", click.Frame)
	}
}

func TestMapClickCorners(t *testing.T) {
	rect := DisplayRect{Left: 0, Top: 0, Width: 1920, Height: 1080}

	topLeft := MapClick(0, 0, rect, 0, 0, 0, 30)
	if topLeft.X != 0 || topLeft.Y != 0 {
		t.Errorf("top-left = (%f, %f), want (0, 0)", topLeft.X, topLeft.Y)
	}

	bottomRight := MapClick(1920, 1080, rect, 0, 0, 0, 30)
	if bottomRight.X != 1 || bottomRight.Y != 1 {
		t.Errorf("bottom-right = (%f, %f), want (1, 1)", bottomRight.X, bottomRight.Y)
	}
}
