package storage

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"

	"github.com/pierrec/lz4/v4"
	"lukechampine.com/blake3"

	"github.com/louisbranch/stalinopoly/internal/game/state"
)

// EncodeSnapshot returns the compressed payload and the checksum of its
// JSON form.
func EncodeSnapshot(snapshot state.Snapshot) ([]byte, string, error) {
	raw, err := json.Marshal(snapshot)
	if err != nil {
		return nil, "", fmt.Errorf("marshal snapshot: %w", err)
	}
	var buf bytes.Buffer
	zw := lz4.NewWriter(&buf)
	if _, err := zw.Write(raw); err != nil {
		return nil, "", fmt.Errorf("compress snapshot: %w", err)
	}
	if err := zw.Close(); err != nil {
		return nil, "", fmt.Errorf("compress snapshot: %w", err)
	}
	return buf.Bytes(), checksum(raw), nil
}

// DecodeSnapshot reverses EncodeSnapshot and verifies the checksum.
func DecodeSnapshot(payload []byte, want string) (state.Snapshot, error) {
	raw, err := io.ReadAll(lz4.NewReader(bytes.NewReader(payload)))
	if err != nil {
		return state.Snapshot{}, fmt.Errorf("%w: decompress: %v", ErrCorrupt, err)
	}
	if got := checksum(raw); got != want {
		return state.Snapshot{}, fmt.Errorf("%w: checksum %s, want %s", ErrCorrupt, got, want)
	}
	var snapshot state.Snapshot
	if err := json.Unmarshal(raw, &snapshot); err != nil {
		return state.Snapshot{}, fmt.Errorf("%w: decode: %v", ErrCorrupt, err)
	}
	return snapshot, nil
}

func checksum(data []byte) string {
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:])
}
