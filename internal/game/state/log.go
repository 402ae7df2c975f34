package state

import (
	apperrors "github.com/louisbranch/stalinopoly/internal/platform/errors"
	"github.com/louisbranch/stalinopoly/internal/platform/i18n/catalog"
)

// LogKind classifies a log entry for display.
type LogKind string

const (
	LogSystem      LogKind = "system"
	LogRoll        LogKind = "roll"
	LogMove        LogKind = "move"
	LogSpace       LogKind = "space"
	LogPurchase    LogKind = "purchase"
	LogPayment     LogKind = "payment"
	LogCard        LogKind = "card"
	LogGulag       LogKind = "gulag"
	LogTribunal    LogKind = "tribunal"
	LogTrade       LogKind = "trade"
	LogBribe       LogKind = "bribe"
	LogAbility     LogKind = "ability"
	LogCollective  LogKind = "collective"
	LogElimination LogKind = "elimination"
	LogRejection   LogKind = "rejection"
)

// LogEntry is one line of the append-only game log.
type LogEntry struct {
	Seq      int     `json:"seq"`
	Round    int     `json:"round"`
	Kind     LogKind `json:"kind"`
	PlayerID string  `json:"playerId,omitempty"`
	Message  string  `json:"message"`
}

// Logf appends a narration entry rendered from the catalog key in the game's
// locale.
func (g *Game) Logf(kind LogKind, playerID string, key string, args ...any) {
	msg := catalog.Default().Printer(g.Locale).Sprintf(key, args...)
	g.appendLog(kind, playerID, msg)
}

// LogRejection appends the localized rejection message for err.
func (g *Game) LogRejection(playerID string, err error) {
	g.appendLog(LogRejection, playerID, apperrors.LocalizedMessage(err, g.Locale))
}

// LogSince returns the entries appended after seq.
func (g *Game) LogSince(seq int) []LogEntry {
	for i, entry := range g.Log {
		if entry.Seq > seq {
			return append([]LogEntry(nil), g.Log[i:]...)
		}
	}
	return nil
}

func (g *Game) appendLog(kind LogKind, playerID, msg string) {
	seq := 1
	if n := len(g.Log); n > 0 {
		seq = g.Log[n-1].Seq + 1
	}
	g.Log = append(g.Log, LogEntry{
		Seq:      seq,
		Round:    g.Round,
		Kind:     kind,
		PlayerID: playerID,
		Message:  msg,
	})
}
