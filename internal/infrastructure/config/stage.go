package config

import "fmt"

// CourseConfig is the root config for course JSON files: tube geometry,
// fork zones, and everything placed along the way.
type CourseConfig struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Length float64 `json:"length"`
	Radius float64 `json:"radius"`

	Weave UndulationConfig `json:"weave"` // lateral
	Dip   UndulationConfig `json:"dip"`   // vertical, drives slope bias

	Forks   []ForkConfig    `json:"forks"`
	Coins   []PlacedConfig  `json:"coins"`
	Hazards []HazardConfig  `json:"hazards"`
	Gates   []GateConfig    `json:"gates"`
}

// UndulationConfig is one sinusoid of the centerline.
type UndulationConfig struct {
	Amplitude float64 `json:"amplitude"`
	Period    float64 `json:"period"`
}

// ForkConfig places a fork zone on the course.
type ForkConfig struct {
	Start    float64        `json:"start"`
	Length   float64        `json:"length"`
	Branches []BranchConfig `json:"branches"`
}

// BranchConfig is one arm of a fork.
type BranchConfig struct {
	EntryAngle float64 `json:"entryAngle"`
	Offset     float64 `json:"offset"`
	Radius     float64 `json:"radius"`
}

// PlacedConfig pins something to a distance and cross-section angle.
type PlacedConfig struct {
	Distance float64 `json:"distance"`
	Angle    float64 `json:"angle"`
}

// HazardConfig places an obstacle. Type is one of barrier, goo, spikes.
type HazardConfig struct {
	Type     string  `json:"type"`
	Distance float64 `json:"distance"`
	Angle    float64 `json:"angle"`
}

// GateConfig places a mode trigger. Type is one of boost, magnet, drop.
type GateConfig struct {
	Type     string  `json:"type"`
	Distance float64 `json:"distance"`
}

// Validate rejects geometry the course builder cannot express.
func (c *CourseConfig) Validate() error {
	if c.Length <= 0 || c.Radius <= 0 {
		return fmt.Errorf("course %s: length and radius must be positive", c.ID)
	}
	for i, f := range c.Forks {
		if f.Length <= 0 {
			return fmt.Errorf("course %s: fork %d has non-positive length", c.ID, i)
		}
		if f.Start < 0 || f.Start+f.Length > c.Length {
			return fmt.Errorf("course %s: fork %d lies outside the course", c.ID, i)
		}
		if len(f.Branches) == 0 {
			return fmt.Errorf("course %s: fork %d has no branches", c.ID, i)
		}
	}
	for i, h := range c.Hazards {
		switch h.Type {
		case "barrier", "goo", "spikes":
		default:
			return fmt.Errorf("course %s: hazard %d has unknown type %q", c.ID, i, h.Type)
		}
	}
	for i, g := range c.Gates {
		switch g.Type {
		case "boost", "magnet", "drop":
		default:
			return fmt.Errorf("course %s: gate %d has unknown type %q", c.ID, i, g.Type)
		}
	}
	return nil
}
