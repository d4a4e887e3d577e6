// Package replay records per-tick inputs and plays them back, so a run
// with the same seed, course, and tuning reproduces the rider's
// trajectory exactly.
package replay

// FrameInput records one tick's input with compact field tags. Neutral
// frames are recorded too so frame indices stay dense.
type FrameInput struct {
	F  int     `json:"f"`            // frame number
	S  float64 `json:"s,omitempty"`  // steer
	T  float64 `json:"t,omitempty"`  // throttle
	JP bool    `json:"jp,omitempty"` // jump pressed
	TF bool    `json:"tf,omitempty"` // trick forward held
	TB bool    `json:"tb,omitempty"` // trick backward held
	SP bool    `json:"sp,omitempty"` // stomp pressed
	DX float64 `json:"dx,omitempty"` // drop vector x
	DY float64 `json:"dy,omitempty"` // drop vector y
}

// Data is a complete recording.
type Data struct {
	Version   string       `json:"version"`
	Seed      int64        `json:"seed"`
	Course    string       `json:"course"`
	StartTime string       `json:"startTime"`
	Frames    []FrameInput `json:"frames"`
}
