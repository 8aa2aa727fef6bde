package rates

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"CarrySentinel/internal/model"
)

// State is the persisted form of the rate book.
type State struct {
	Rates     model.RateMap `json:"rates"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// LoadState reads the rate state from a JSON file. Returns an empty state if the file doesn't exist.
func LoadState(filePath string) (*State, error) {
	if filePath == "" {
		return &State{Rates: model.RateMap{}}, nil
	}
	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return &State{Rates: model.RateMap{}}, nil
		}
		return nil, fmt.Errorf("read rate state: %w", err)
	}
	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("decode rate state: %w", err)
	}
	for c := range state.Rates {
		if _, err := model.ParseCurrency(string(c)); err != nil {
			return nil, fmt.Errorf("rate state: %w", err)
		}
	}
	if state.Rates == nil {
		state.Rates = model.RateMap{}
	}
	return &state, nil
}

// SaveState writes the rate state to a JSON file.
func SaveState(filePath string, state *State) error {
	state.UpdatedAt = time.Now()
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}
	if dir := filepath.Dir(filePath); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create state dir: %w", err)
		}
	}
	return os.WriteFile(filePath, data, 0644)
}
