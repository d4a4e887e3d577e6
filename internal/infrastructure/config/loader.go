package config

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
)

// GameConfig holds all loaded configurations.
type GameConfig struct {
	Tuning  *TuningConfig
	Pickups *PickupsConfig
}

// Loader loads game configuration from JSON files using the fs.FS interface.
type Loader struct {
	fsys     fs.FS
	basePath string
}

// NewLoader creates a config loader rooted at a filesystem path.
func NewLoader(basePath string) *Loader {
	return &Loader{
		fsys:     os.DirFS(basePath),
		basePath: basePath,
	}
}

// NewFSLoader creates a config loader from an fs.FS (embedded configs,
// test fixtures).
func NewFSLoader(fsys fs.FS, basePath string) *Loader {
	return &Loader{
		fsys:     fsys,
		basePath: basePath,
	}
}

// LoadTuning loads and validates tuning.json.
func (l *Loader) LoadTuning() (*TuningConfig, error) {
	data, err := fs.ReadFile(l.fsys, "tuning.json")
	if err != nil {
		return nil, fmt.Errorf("failed to read tuning.json: %w", err)
	}

	var cfg TuningConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse tuning.json: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid tuning.json: %w", err)
	}

	return &cfg, nil
}

// LoadPickups loads and validates pickups.json.
func (l *Loader) LoadPickups() (*PickupsConfig, error) {
	data, err := fs.ReadFile(l.fsys, "pickups.json")
	if err != nil {
		return nil, fmt.Errorf("failed to read pickups.json: %w", err)
	}

	var cfg PickupsConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse pickups.json: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid pickups.json: %w", err)
	}

	return &cfg, nil
}

// LoadCourse loads and validates a course JSON file by name.
func (l *Loader) LoadCourse(name string) (*CourseConfig, error) {
	path := "courses/" + name + ".json"
	data, err := fs.ReadFile(l.fsys, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read course %s: %w", name, err)
	}

	var cfg CourseConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse course %s: %w", name, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid course %s: %w", name, err)
	}

	return &cfg, nil
}

// LoadAll loads the base configurations (tuning, pickups).
func (l *Loader) LoadAll() (*GameConfig, error) {
	tuning, err := l.LoadTuning()
	if err != nil {
		return nil, err
	}

	pickups, err := l.LoadPickups()
	if err != nil {
		return nil, err
	}

	return &GameConfig{
		Tuning:  tuning,
		Pickups: pickups,
	}, nil
}
