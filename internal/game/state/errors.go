package state

import (
	"fmt"

	apperrors "github.com/louisbranch/stalinopoly/internal/platform/errors"
)

var (
	// ErrGameNotStarted indicates an operation before StartGame.
	ErrGameNotStarted = apperrors.New(apperrors.CodeGameNotStarted, "game has not started")
	// ErrGameOver indicates an operation after the game ended.
	ErrGameOver = apperrors.New(apperrors.CodeGameOver, "game is over")
	// ErrInvalidAmount indicates a non-positive currency amount.
	ErrInvalidAmount = apperrors.New(apperrors.CodeInvalidAmount, "amount must be positive")
)

// PlayerNotFound reports an unknown player id.
func PlayerNotFound(id string) error {
	return apperrors.WithMetadata(apperrors.CodePlayerNotFound,
		fmt.Sprintf("player %q not found", id),
		map[string]string{"PlayerID": id})
}

// PropertyNotFound reports a space id that is not ownable.
func PropertyNotFound(spaceID int) error {
	return apperrors.WithMetadata(apperrors.CodePropertyNotFound,
		fmt.Sprintf("property %d not found", spaceID),
		map[string]string{"SpaceID": fmt.Sprint(spaceID)})
}

// PlayerError builds a player-facing rejection naming the player.
func PlayerError(code apperrors.Code, p *Player, message string, extra ...string) error {
	meta := map[string]string{"Player": p.Name}
	for i := 0; i+1 < len(extra); i += 2 {
		meta[extra[i]] = extra[i+1]
	}
	return apperrors.WithMetadata(code, fmt.Sprintf("%s: %s", p.ID, message), meta)
}

// InsufficientFunds reports that p cannot cover amount.
func InsufficientFunds(p *Player, amount int) error {
	return PlayerError(apperrors.CodeInsufficientFunds, p,
		fmt.Sprintf("needs %d, holds %d", amount, p.Wealth),
		"Amount", fmt.Sprint(amount), "Wealth", fmt.Sprint(p.Wealth))
}
