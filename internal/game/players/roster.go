package players

import (
	"encoding/json"
	"fmt"
	"os"
)

// LoadRoster reads the initial player list from a JSON file. The records go
// through Registry.Initialize unchanged, which sorts them by turn order.
func LoadRoster(path string) ([]State, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read roster: %w", err)
	}
	var states []State
	if err := json.Unmarshal(data, &states); err != nil {
		return nil, fmt.Errorf("parse roster %s: %w", path, err)
	}
	for _, s := range states {
		if s.ID == "" {
			return nil, fmt.Errorf("parse roster %s: player with empty id", path)
		}
	}
	return states, nil
}
