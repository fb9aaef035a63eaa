package history

import (
	"fmt"
	"path/filepath"

	"zero-pass/internal/config"
)

// NewRecorderFromConfig creates a Recorder based on the history config type.
func NewRecorderFromConfig(cfg config.HistoryConfig) (Recorder, error) {
	switch cfg.Type {
	case "", "none":
		return NopRecorder{}, nil
	case "memory":
		return NewSQLiteRecorder(":memory:", nil, nil)
	case "sqlite":
		if cfg.DataDir == "" {
			return nil, fmt.Errorf("data_dir required for sqlite history")
		}
		return NewSQLiteRecorder(filepath.Join(cfg.DataDir, "history.db"), nil, nil)
	default:
		return nil, fmt.Errorf("unknown history type: %s", cfg.Type)
	}
}
