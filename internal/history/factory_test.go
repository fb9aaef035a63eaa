package history

import (
	"context"
	"testing"

	"zero-pass/internal/config"
)

func TestNewRecorderFromConfig(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.HistoryConfig
		wantErr bool
		wantNop bool
	}{
		{name: "empty type disables history", cfg: config.HistoryConfig{}, wantNop: true},
		{name: "none", cfg: config.HistoryConfig{Type: "none"}, wantNop: true},
		{name: "memory", cfg: config.HistoryConfig{Type: "memory"}},
		{name: "sqlite", cfg: config.HistoryConfig{Type: "sqlite", DataDir: t.TempDir()}},
		{name: "sqlite without data dir", cfg: config.HistoryConfig{Type: "sqlite"}, wantErr: true},
		{name: "unknown type", cfg: config.HistoryConfig{Type: "postgres"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := NewRecorderFromConfig(tt.cfg)
			if tt.wantErr {
				if err == nil {
					t.Fatal("NewRecorderFromConfig() expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("NewRecorderFromConfig() error = %v", err)
			}
			defer r.Close()

			if _, ok := r.(NopRecorder); ok != tt.wantNop {
				t.Errorf("recorder type = %T, wantNop %v", r, tt.wantNop)
			}
			if _, err := r.Record(context.Background(), "Base64", 1, "stdout"); err != nil {
				t.Errorf("Record() error = %v", err)
			}
		})
	}
}
