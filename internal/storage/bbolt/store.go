// Package bbolt provides a BoltDB-backed snapshot store.
package bbolt

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"go.etcd.io/bbolt"

	"github.com/louisbranch/stalinopoly/internal/game/state"
	"github.com/louisbranch/stalinopoly/internal/storage"
)

const snapshotBucket = "snapshots"

// record is the stored form of a snapshot; Payload holds the compressed
// snapshot produced by storage.EncodeSnapshot.
type record struct {
	Round     int    `json:"round"`
	Phase     string `json:"phase"`
	Version   int    `json:"version"`
	Checksum  string `json:"checksum"`
	Payload   []byte `json:"payload"`
	UpdatedAt int64  `json:"updated_at"`
}

// Store persists game snapshots in a BoltDB file.
type Store struct {
	db  *bbolt.DB
	now func() time.Time
}

var _ storage.SnapshotStore = (*Store)(nil)

// Open opens a BoltDB-backed store at the provided path.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	cleanPath := filepath.Clean(path)
	db, err := bbolt.Open(cleanPath, 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open storage db: %w", err)
	}

	store := &Store{db: db, now: time.Now}
	if err := store.ensureBuckets(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

// Close closes the underlying BoltDB database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Save stores snapshot as the latest state of its game.
func (s *Store) Save(ctx context.Context, snapshot state.Snapshot) (storage.SnapshotRecord, error) {
	if err := s.ready(ctx); err != nil {
		return storage.SnapshotRecord{}, err
	}
	gameID := strings.TrimSpace(snapshot.GameID)
	if gameID == "" {
		return storage.SnapshotRecord{}, fmt.Errorf("game id is required")
	}

	payload, sum, err := storage.EncodeSnapshot(snapshot)
	if err != nil {
		return storage.SnapshotRecord{}, err
	}
	updatedAt := s.now().UTC()
	rec := record{
		Round:     snapshot.Round,
		Phase:     string(snapshot.Phase),
		Version:   snapshot.Version,
		Checksum:  sum,
		Payload:   payload,
		UpdatedAt: updatedAt.UnixMilli(),
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return storage.SnapshotRecord{}, fmt.Errorf("marshal snapshot record: %w", err)
	}

	err = s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(snapshotBucket))
		if bucket == nil {
			return fmt.Errorf("snapshot bucket is missing")
		}
		return bucket.Put(snapshotKey(gameID), data)
	})
	if err != nil {
		return storage.SnapshotRecord{}, fmt.Errorf("save snapshot: %w", err)
	}
	return storage.SnapshotRecord{
		GameID:    gameID,
		Round:     snapshot.Round,
		Phase:     snapshot.Phase,
		Snapshot:  snapshot,
		Checksum:  sum,
		UpdatedAt: time.UnixMilli(rec.UpdatedAt).UTC(),
	}, nil
}

// Load returns the latest snapshot of a game, verifying its checksum.
func (s *Store) Load(ctx context.Context, gameID string) (storage.SnapshotRecord, error) {
	if err := s.ready(ctx); err != nil {
		return storage.SnapshotRecord{}, err
	}
	gameID = strings.TrimSpace(gameID)
	if gameID == "" {
		return storage.SnapshotRecord{}, fmt.Errorf("game id is required")
	}

	var rec record
	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(snapshotBucket))
		if bucket == nil {
			return fmt.Errorf("snapshot bucket is missing")
		}
		data := bucket.Get(snapshotKey(gameID))
		if data == nil {
			return storage.ErrNotFound
		}
		if err := json.Unmarshal(data, &rec); err != nil {
			return fmt.Errorf("%w: unmarshal record: %v", storage.ErrCorrupt, err)
		}
		return nil
	})
	if err != nil {
		return storage.SnapshotRecord{}, err
	}

	snapshot, err := storage.DecodeSnapshot(rec.Payload, rec.Checksum)
	if err != nil {
		return storage.SnapshotRecord{}, err
	}
	return rec.toStorage(gameID, snapshot), nil
}

// List returns the stored games, most recently saved first, without
// decoding payloads.
func (s *Store) List(ctx context.Context) ([]storage.SnapshotRecord, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}

	var recs []storage.SnapshotRecord
	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(snapshotBucket))
		if bucket == nil {
			return fmt.Errorf("snapshot bucket is missing")
		}
		return bucket.ForEach(func(k, v []byte) error {
			var rec record
			if err := json.Unmarshal(v, &rec); err != nil {
				return fmt.Errorf("%w: unmarshal record %s: %v", storage.ErrCorrupt, k, err)
			}
			recs = append(recs, rec.toStorage(string(k), state.Snapshot{}))
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	sort.SliceStable(recs, func(i, j int) bool {
		if !recs[i].UpdatedAt.Equal(recs[j].UpdatedAt) {
			return recs[i].UpdatedAt.After(recs[j].UpdatedAt)
		}
		return recs[i].GameID < recs[j].GameID
	})
	return recs, nil
}

// Delete removes a game's snapshot.
func (s *Store) Delete(ctx context.Context, gameID string) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(snapshotBucket))
		if bucket == nil {
			return fmt.Errorf("snapshot bucket is missing")
		}
		key := snapshotKey(strings.TrimSpace(gameID))
		if bucket.Get(key) == nil {
			return storage.ErrNotFound
		}
		return bucket.Delete(key)
	})
}

func (s *Store) ready(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.db == nil {
		return fmt.Errorf("storage is not configured")
	}
	return nil
}

func (s *Store) ensureBuckets() error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(snapshotBucket))
		if err != nil {
			return fmt.Errorf("create snapshot bucket: %w", err)
		}
		return nil
	})
}

func (r record) toStorage(gameID string, snapshot state.Snapshot) storage.SnapshotRecord {
	return storage.SnapshotRecord{
		GameID:    gameID,
		Round:     r.Round,
		Phase:     state.GamePhase(r.Phase),
		Snapshot:  snapshot,
		Checksum:  r.Checksum,
		UpdatedAt: time.UnixMilli(r.UpdatedAt).UTC(),
	}
}

func snapshotKey(id string) []byte {
	return []byte(id)
}
