package bot

import "errors"

var (
	// ErrNotPlayerTurn means the snapshot's current player is not this bot.
	ErrNotPlayerTurn = errors.New("not this player's turn")
	// ErrAlreadyProcessing means a turn execution is already in flight.
	ErrAlreadyProcessing = errors.New("already processing a turn")
	// ErrInvalidGameState means the engine returned an unusable snapshot.
	ErrInvalidGameState = errors.New("invalid game state")
)
