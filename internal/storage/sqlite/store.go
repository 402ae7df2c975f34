// Package sqlite provides a SQLite-backed snapshot store.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	_ "modernc.org/sqlite"

	"github.com/louisbranch/stalinopoly/internal/game/state"
	platformotel "github.com/louisbranch/stalinopoly/internal/platform/otel"
	"github.com/louisbranch/stalinopoly/internal/platform/storage/sqlitemigrate"
	"github.com/louisbranch/stalinopoly/internal/storage"
	"github.com/louisbranch/stalinopoly/internal/storage/sqlite/migrations"
)

// Store persists game snapshots in SQLite.
type Store struct {
	sqlDB  *sql.DB
	tracer trace.Tracer
	now    func() time.Time
}

var _ storage.SnapshotStore = (*Store)(nil)

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens a SQLite snapshot store and applies embedded migrations.
func Open(ctx context.Context, path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	dsn := "file:" + cleanPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := sqlitemigrate.ApplyMigrations(ctx, sqlDB, migrations.FS, "."); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB, tracer: platformotel.Tracer("storage/sqlite"), now: time.Now}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Save stores snapshot as the latest state of its game, replacing any
// earlier one.
func (s *Store) Save(ctx context.Context, snapshot state.Snapshot) (rec storage.SnapshotRecord, err error) {
	ctx, span := s.start(ctx, "snapshot.save", snapshot.GameID)
	defer func() { end(span, err) }()

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
	span.SetAttributes(attribute.Int("snapshot.bytes", len(payload)), attribute.Int("game.round", snapshot.Round))

	_, err = s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO game_snapshots (game_id, round, phase, version, checksum, payload, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(game_id) DO UPDATE SET
		   round = excluded.round,
		   phase = excluded.phase,
		   version = excluded.version,
		   checksum = excluded.checksum,
		   payload = excluded.payload,
		   updated_at = excluded.updated_at`,
		gameID,
		snapshot.Round,
		string(snapshot.Phase),
		snapshot.Version,
		sum,
		payload,
		toMillis(updatedAt),
	)
	if err != nil {
		return storage.SnapshotRecord{}, fmt.Errorf("save snapshot: %w", err)
	}
	return storage.SnapshotRecord{
		GameID:    gameID,
		Round:     snapshot.Round,
		Phase:     snapshot.Phase,
		Snapshot:  snapshot,
		Checksum:  sum,
		UpdatedAt: fromMillis(toMillis(updatedAt)),
	}, nil
}

// Load returns the latest snapshot of a game, verifying its checksum.
func (s *Store) Load(ctx context.Context, gameID string) (rec storage.SnapshotRecord, err error) {
	ctx, span := s.start(ctx, "snapshot.load", gameID)
	defer func() { end(span, err) }()

	if err := s.ready(ctx); err != nil {
		return storage.SnapshotRecord{}, err
	}
	gameID = strings.TrimSpace(gameID)
	if gameID == "" {
		return storage.SnapshotRecord{}, fmt.Errorf("game id is required")
	}

	var (
		phase     string
		payload   []byte
		updatedAt int64
	)
	rec.GameID = gameID
	row := s.sqlDB.QueryRowContext(ctx,
		`SELECT round, phase, checksum, payload, updated_at FROM game_snapshots WHERE game_id = ?`,
		gameID,
	)
	if err := row.Scan(&rec.Round, &phase, &rec.Checksum, &payload, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.SnapshotRecord{}, storage.ErrNotFound
		}
		return storage.SnapshotRecord{}, fmt.Errorf("load snapshot: %w", err)
	}
	rec.Phase = state.GamePhase(phase)
	rec.UpdatedAt = fromMillis(updatedAt)
	rec.Snapshot, err = storage.DecodeSnapshot(payload, rec.Checksum)
	if err != nil {
		return storage.SnapshotRecord{}, err
	}
	return rec, nil
}

// List returns the stored games, most recently saved first. Payloads are
// not decoded; Snapshot is left empty.
func (s *Store) List(ctx context.Context) (recs []storage.SnapshotRecord, err error) {
	ctx, span := s.start(ctx, "snapshot.list", "")
	defer func() { end(span, err) }()

	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT game_id, round, phase, checksum, updated_at FROM game_snapshots ORDER BY updated_at DESC, game_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			rec       storage.SnapshotRecord
			phase     string
			updatedAt int64
		)
		if err := rows.Scan(&rec.GameID, &rec.Round, &phase, &rec.Checksum, &updatedAt); err != nil {
			return nil, fmt.Errorf("scan snapshot: %w", err)
		}
		rec.Phase = state.GamePhase(phase)
		rec.UpdatedAt = fromMillis(updatedAt)
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	span.SetAttributes(attribute.Int("snapshot.count", len(recs)))
	return recs, nil
}

// Delete removes a game's snapshot.
func (s *Store) Delete(ctx context.Context, gameID string) (err error) {
	ctx, span := s.start(ctx, "snapshot.delete", gameID)
	defer func() { end(span, err) }()

	if err := s.ready(ctx); err != nil {
		return err
	}
	res, err := s.sqlDB.ExecContext(ctx, `DELETE FROM game_snapshots WHERE game_id = ?`, strings.TrimSpace(gameID))
	if err != nil {
		return fmt.Errorf("delete snapshot: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete snapshot: %w", err)
	}
	if n == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (s *Store) ready(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	return nil
}

func (s *Store) start(ctx context.Context, name, gameID string) (context.Context, trace.Span) {
	tracer := platformotel.Tracer("storage/sqlite")
	if s != nil && s.tracer != nil {
		tracer = s.tracer
	}
	ctx, span := tracer.Start(ctx, name, trace.WithSpanKind(trace.SpanKindClient))
	span.SetAttributes(attribute.String("db.system", "sqlite"))
	if gameID != "" {
		span.SetAttributes(attribute.String("game.id", gameID))
	}
	return ctx, span
}

func end(span trace.Span, err error) {
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
