package replay

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Input is one played-back tick, mirroring FrameInput with full names.
// The scene converts it to the simulation's input type.
type Input struct {
	Steer         float64
	Throttle      float64
	JumpPressed   bool
	TrickForward  bool
	TrickBackward bool
	StompPressed  bool
	DropX, DropY  float64
}

// Replayer feeds recorded inputs back one frame at a time.
type Replayer struct {
	data  Data
	frame int
}

// NewReplayer creates a replayer over the given recording.
func NewReplayer(data Data) *Replayer {
	return &Replayer{data: data}
}

// Load reads a recording from a file.
func Load(filename string) (*Data, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open replay: %w", err)
	}
	defer func() { _ = file.Close() }()

	var data Data
	if err := json.NewDecoder(file).Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode replay: %w", err)
	}
	return &data, nil
}

// Next returns the input for the current frame and advances. The bool
// is false once the recording is exhausted.
func (r *Replayer) Next() (Input, bool) {
	if r.frame >= len(r.data.Frames) {
		return Input{}, false
	}
	fi := r.data.Frames[r.frame]
	r.frame++

	return Input{
		Steer:         fi.S,
		Throttle:      fi.T,
		JumpPressed:   fi.JP,
		TrickForward:  fi.TF,
		TrickBackward: fi.TB,
		StompPressed:  fi.SP,
		DropX:         fi.DX,
		DropY:         fi.DY,
	}, true
}

// CurrentFrame returns the next frame index to play.
func (r *Replayer) CurrentFrame() int {
	return r.frame
}

// TotalFrames returns the recording's length in frames.
func (r *Replayer) TotalFrames() int {
	return len(r.data.Frames)
}

// Seed returns the seed the recording was made with.
func (r *Replayer) Seed() int64 {
	return r.data.Seed
}

// Course returns the course name the recording was made on.
func (r *Replayer) Course() string {
	return r.data.Course
}

// Reset rewinds to the first frame.
func (r *Replayer) Reset() {
	r.frame = 0
}

// Recorder appends one FrameInput per tick.
type Recorder struct {
	data      Data
	recording bool
}

// NewRecorder starts a recording with the given seed and course name.
func NewRecorder(seed int64, course string) *Recorder {
	return &Recorder{
		data: Data{
			Version:   "1.0",
			Seed:      seed,
			Course:    course,
			StartTime: time.Now().Format(time.RFC3339),
			Frames:    make([]FrameInput, 0, 3600),
		},
		recording: true,
	}
}

// RecordFrame appends one tick's input.
func (r *Recorder) RecordFrame(in Input) {
	if !r.recording {
		return
	}
	r.data.Frames = append(r.data.Frames, FrameInput{
		F:  len(r.data.Frames),
		S:  in.Steer,
		T:  in.Throttle,
		JP: in.JumpPressed,
		TF: in.TrickForward,
		TB: in.TrickBackward,
		SP: in.StompPressed,
		DX: in.DropX,
		DY: in.DropY,
	})
}

// Stop ends the recording.
func (r *Recorder) Stop() {
	r.recording = false
}

// FrameCount returns how many frames were recorded.
func (r *Recorder) FrameCount() int {
	return len(r.data.Frames)
}

// Data returns the recording so far.
func (r *Recorder) Data() Data {
	return r.data
}

// Save writes the recording to a file.
func (r *Recorder) Save(filename string) error {
	if len(r.data.Frames) == 0 {
		return fmt.Errorf("no frames to save")
	}
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create replay: %w", err)
	}
	defer func() { _ = file.Close() }()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r.data); err != nil {
		return fmt.Errorf("failed to encode replay: %w", err)
	}
	return nil
}
