// internal/game/errors.go
package game

import "errors"

// ErrDeckExhausted is returned by Deck.Draw when, even after reshuffling the
// discard pile, not enough cards remain to satisfy the draw.
var ErrDeckExhausted = errors.New("deck exhausted")

// ErrorCode identifies why an event was rejected. Every code is recoverable
// and maps 1:1 to a user-facing response in the transport layer.
type ErrorCode string

const (
	CodeUnknownEvent     ErrorCode = "UNKNOWN_EVENT"
	CodePlayerNotFound   ErrorCode = "PLAYER_NOT_FOUND"
	CodeAlreadyJoined    ErrorCode = "ALREADY_JOINED"
	CodeNotEnoughPlayers ErrorCode = "NOT_ENOUGH_PLAYERS"
	CodeInvalidState     ErrorCode = "INVALID_STATE"
	CodeNotYourTurn      ErrorCode = "NOT_YOUR_TURN"
	CodeIllegalPlay      ErrorCode = "ILLEGAL_PLAY"
	CodeCardNotInHand    ErrorCode = "CARD_NOT_IN_HAND"
	CodeDeckExhausted    ErrorCode = "DECK_EXHAUSTED"
	CodeGameOver         ErrorCode = "GAME_OVER"
)
