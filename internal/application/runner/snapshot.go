package runner

// Snapshot is the immutable telemetry value the controller publishes
// each tick: everything the HUD and the websocket feed show, nothing
// they can mutate.
type Snapshot struct {
	Distance      float64 `json:"distance"`
	Speed         float64 `json:"speed"`
	HitPhase      string  `json:"hitPhase"`
	HitProgress   float64 `json:"hitProgress"`
	Visible       bool    `json:"visible"`
	ForkBranch    int     `json:"forkBranch"`
	Jumping       bool    `json:"jumping"`
	Dropping      bool    `json:"dropping"`
	BoostActive   bool    `json:"boostActive"`
	BoostFraction float64 `json:"boostFraction"`
	MagnetActive  bool    `json:"magnetActive"`
	Combo         int     `json:"combo"`
	Score         int     `json:"score"`
}
