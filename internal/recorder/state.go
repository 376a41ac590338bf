// Package recorder stores solve attempts as they are played.
package recorder

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/SeamusWaldron/cubesim"
)

// AppState represents the persistent application state.
type AppState struct {
	DBPath            string `json:"db_path,omitempty"`
	TurnDurationMs    int    `json:"turn_duration_ms,omitempty"`
	ScrambleLength    int    `json:"scramble_length,omitempty"`
	ActiveSolveID     string `json:"active_solve_id,omitempty"`
	LastDeviceAddress string `json:"last_device_address,omitempty"`
	LastDeviceName    string `json:"last_device_name,omitempty"`
}

// TurnDuration returns the saved turn duration, or the default.
func (s AppState) TurnDuration() time.Duration {
	if s.TurnDurationMs <= 0 {
		return cubesim.DefaultTurnDuration
	}
	return time.Duration(s.TurnDurationMs) * time.Millisecond
}

// Scramble returns the saved scramble length, or the default.
func (s AppState) Scramble() int {
	if s.ScrambleLength <= 0 {
		return cubesim.DefaultScrambleLength
	}
	return s.ScrambleLength
}

// StateFile manages the application state file.
type StateFile struct {
	path  string
	state AppState
}

// DefaultStatePath returns the default state file path.
func DefaultStatePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".cubesim", "state.json"), nil
}

// NewStateFile loads the state file at path. A missing file is an empty state.
func NewStateFile(path string) (*StateFile, error) {
	sf := &StateFile{path: path}
	if err := sf.Load(); err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	return sf, nil
}

// NewDefaultStateFile creates a state file manager with the default path.
func NewDefaultStateFile() (*StateFile, error) {
	path, err := DefaultStatePath()
	if err != nil {
		return nil, err
	}
	return NewStateFile(path)
}

// Load loads the state from disk.
func (sf *StateFile) Load() error {
	data, err := os.ReadFile(sf.path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, &sf.state); err != nil {
		return fmt.Errorf("failed to parse state file: %w", err)
	}
	return nil
}

// Save saves the state to disk.
func (sf *StateFile) Save() error {
	data, err := json.MarshalIndent(sf.state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(sf.path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(sf.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write state file: %w", err)
	}
	return nil
}

// State returns the current state.
func (sf *StateFile) State() AppState {
	return sf.state
}

// SetDBPath sets the database path.
func (sf *StateFile) SetDBPath(path string) error {
	sf.state.DBPath = path
	return sf.Save()
}

// SetActiveSolve sets the active solve ID.
func (sf *StateFile) SetActiveSolve(solveID string) error {
	sf.state.ActiveSolveID = solveID
	return sf.Save()
}

// ClearActiveSolve clears the active solve ID.
func (sf *StateFile) ClearActiveSolve() error {
	return sf.SetActiveSolve("")
}

// SetLastDevice remembers the last smart cube connected.
func (sf *StateFile) SetLastDevice(address, name string) error {
	sf.state.LastDeviceAddress = address
	sf.state.LastDeviceName = name
	return sf.Save()
}
