package storage

import (
	"errors"
	"testing"

	"github.com/louisbranch/stalinopoly/internal/game/state"
)

func TestSnapshotCodec(t *testing.T) {
	snap := state.Snapshot{Version: state.SnapshotVersion, GameID: "game-1", Round: 3, Treasury: 4800}

	payload, sum, err := EncodeSnapshot(snap)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if len(sum) != 64 {
		t.Fatalf("checksum length = %d, want 64", len(sum))
	}

	got, err := DecodeSnapshot(payload, sum)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.GameID != "game-1" || got.Round != 3 || got.Treasury != 4800 {
		t.Fatalf("snapshot = %+v", got)
	}
}

func TestDecodeSnapshotRejectsBadInput(t *testing.T) {
	payload, sum, err := EncodeSnapshot(state.Snapshot{GameID: "game-1"})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	tests := []struct {
		name    string
		payload []byte
		sum     string
	}{
		{name: "checksum", payload: payload, sum: "00"},
		{name: "payload", payload: []byte("not lz4"), sum: sum},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeSnapshot(tt.payload, tt.sum); !errors.Is(err, ErrCorrupt) {
				t.Fatalf("err = %v, want ErrCorrupt", err)
			}
		})
	}
}
