package history

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Run is one successful derivation. It never carries secrets or the result.
type Run struct {
	ID     string
	RanAt  time.Time
	Method string
	Repeat uint8
	Sink   string
}

// Recorder stores and lists runs.
type Recorder interface {
	Record(ctx context.Context, method string, repeat uint8, sink string) (*Run, error)
	// Recent returns up to limit runs, newest first.
	Recent(ctx context.Context, limit int) ([]*Run, error)
	Close() error
}

// Clock abstracts time retrieval so recorded timestamps are deterministic in tests.
type Clock interface {
	Now() time.Time
}

// RealClock returns the actual current time.
type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }

// IDGenerator abstracts run ID generation so tests are deterministic.
type IDGenerator interface {
	New() string
}

// UUIDGenerator produces random UUIDs.
type UUIDGenerator struct{}

func (UUIDGenerator) New() string { return uuid.New().String() }

// NopRecorder discards runs.
type NopRecorder struct{}

var _ Recorder = NopRecorder{}

func (NopRecorder) Record(context.Context, string, uint8, string) (*Run, error) { return nil, nil }
func (NopRecorder) Recent(context.Context, int) ([]*Run, error)                { return nil, nil }
func (NopRecorder) Close() error                                                { return nil }
