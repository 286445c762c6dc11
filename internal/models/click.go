package models

// ClickCoordinate is a click on the displayed frame, normalized to the unit
// square, stamped with the playback instant and the derived frame number.
// It only lives while a selection request is pending.
type ClickCoordinate struct {
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Timestamp float64 `json:"timestamp"`
	Frame     int     `json:"frame"`
}
