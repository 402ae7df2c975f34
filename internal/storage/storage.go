package storage

import (
	"context"
	"errors"
	"time"

	"github.com/louisbranch/stalinopoly/internal/game/state"
)

// ErrNotFound indicates a requested record is missing.
var ErrNotFound = errors.New("record not found")

// ErrCorrupt indicates a stored payload failed verification.
var ErrCorrupt = errors.New("record is corrupt")

// SnapshotRecord is one stored snapshot with its bookkeeping.
type SnapshotRecord struct {
	GameID   string
	Round    int
	Phase    state.GamePhase
	Snapshot state.Snapshot
	// Checksum is the hex blake3 digest of the uncompressed payload.
	Checksum  string
	UpdatedAt time.Time
}

// SnapshotStore persists the latest snapshot of each game.
type SnapshotStore interface {
	Save(ctx context.Context, snapshot state.Snapshot) (SnapshotRecord, error)
	Load(ctx context.Context, gameID string) (SnapshotRecord, error)
	List(ctx context.Context) ([]SnapshotRecord, error)
	Delete(ctx context.Context, gameID string) error
}
