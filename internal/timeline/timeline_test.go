package timeline

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestFindTrackByKind(t *testing.T) {
	e := NewEngine()

	if _, ok := e.FindTrackByKind(TrackKindObject); ok {
		t.Error("empty engine must report no track")
	}

	videoID := e.CreateTrack(TrackKindVideo)
	objectID := e.CreateTrack(TrackKindObject)
	e.CreateTrack(TrackKindObject)

	got, ok := e.FindTrackByKind(TrackKindObject)
	if !ok {
		t.Fatal("expected an object track")
	}
	if got != objectID {
		t.Error("FindTrackByKind must return the first track of the kind in creation order")
	}

	got, ok = e.FindTrackByKind(TrackKindVideo)
	if !ok || got != videoID {
		t.Error("expected the video track")
	}
}

func TestInsertElement(t *testing.T) {
	e := NewEngine()
	trackID := e.CreateTrack(TrackKindObject)

	err := e.InsertElement(trackID, Element{Name: "cup", StartTime: 1, Duration: 2, Visible: true})
	if err != nil {
		t.Fatalf("InsertElement failed: %v", err)
	}

	tracks := e.Tracks()
	if len(tracks) != 1 || len(tracks[0].Elements) != 1 {
		t.Fatal("expected one track holding one element")
	}
	if tracks[0].Elements[0].ID == "" {
		t.Error("inserted element must be assigned an id")
	}

	if err := e.InsertElement("missing", Element{}); err != ErrTrackNotFound {
		t.Errorf("expected ErrTrackNotFound, got %v", err)
	}
}

func TestInsertElementDefaultsOperation(t *testing.T) {
	e := NewEngine()
	trackID := e.CreateTrack(TrackKindObject)
	e.InsertElement(trackID, Element{Name: "cup"})

	el := e.Tracks()[0].Elements[0]
	if el.Operation != OperationNone {
		t.Errorf("Operation = %q, want %q", el.Operation, OperationNone)
	}

	// The field must survive serialization rather than being omitted.
	data, err := json.Marshal(el)
	if err != nil {
		t.Fatalf("marshaling element: %v", err)
	}
	if !strings.Contains(string(data), `"operation":"none"`) {
		t.Errorf("serialized element missing operation field: %s", data)
	}
}

func TestRemoveElementByObject(t *testing.T) {
	e := NewEngine()
	trackID := e.CreateTrack(TrackKindObject)
	e.InsertElement(trackID, Element{ObjectID: "obj-1", Name: "cup"})
	e.InsertElement(trackID, Element{ObjectID: "obj-2", Name: "plate"})

	e.RemoveElementByObject("obj-1")

	tracks := e.Tracks()
	if len(tracks[0].Elements) != 1 || tracks[0].Elements[0].ObjectID != "obj-2" {
		t.Error("RemoveElementByObject must drop only the named object's element")
	}
}
