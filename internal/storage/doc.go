// Package storage defines the persistence contract for game snapshots.
//
// The engine itself is storage-agnostic; a snapshot store keeps the durable
// part of a game (see state.Snapshot) so it can be restored later. The
// sqlite and bbolt subpackages implement SnapshotStore over the shared
// codec in this package.
//
// # Error Types
//
//   - ErrNotFound: no snapshot is stored for the requested game.
//   - ErrCorrupt: a stored payload failed its checksum or could not be
//     decoded.
package storage
