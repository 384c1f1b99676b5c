// internal/game/events.go
package game

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/cardtable/uno/internal/models"
)

// Event is the closed set of inputs DispatchEvent accepts. Each variant is a
// plain struct so dispatch is an exhaustive type switch rather than a string
// comparison on a tag field.
type Event interface {
	isEvent()
	Player() uuid.UUID
}

// JoinGame seats a new player.
type JoinGame struct {
	PlayerID uuid.UUID
}

// LeaveGame removes a seated player, at any point in the game's life.
type LeaveGame struct {
	PlayerID uuid.UUID
}

// StartGame deals hands, flips the first discard and opens play.
type StartGame struct {
	PlayerID uuid.UUID
}

// PlayCard plays one card from the current player's hand. ChosenColor must
// be set to a concrete color when Card is wild.
type PlayCard struct {
	PlayerID    uuid.UUID
	Card        models.Card
	ChosenColor *models.Color
	DeclareUno  bool
}

// DrawCard draws one card voluntarily, or absorbs the entire pending draw if
// one is owed.
type DrawCard struct {
	PlayerID uuid.UUID
}

func (JoinGame) isEvent()  {}
func (LeaveGame) isEvent() {}
func (StartGame) isEvent() {}
func (PlayCard) isEvent()  {}
func (DrawCard) isEvent()  {}

func (e JoinGame) Player() uuid.UUID  { return e.PlayerID }
func (e LeaveGame) Player() uuid.UUID { return e.PlayerID }
func (e StartGame) Player() uuid.UUID { return e.PlayerID }
func (e PlayCard) Player() uuid.UUID  { return e.PlayerID }
func (e DrawCard) Player() uuid.UUID  { return e.PlayerID }

// Wire-format event kinds.
const (
	KindJoinGame  = "JOIN_GAME"
	KindLeaveGame = "LEAVE_GAME"
	KindStartGame = "START_GAME"
	KindPlayCard  = "PLAY_CARD"
	KindDrawCard  = "DRAW_CARD"
)

// eventEnvelope is the raw JSON shape clients send.
type eventEnvelope struct {
	Kind        string       `json:"kind"`
	PlayerID    uuid.UUID    `json:"playerId"`
	Card        *models.Card `json:"card,omitempty"`
	ChosenColor *string      `json:"chosenColor,omitempty"`
	DeclareUno  bool         `json:"declareUno,omitempty"`
}

// DecodeEvent parses a wire event into its typed variant. Malformed payloads
// and unknown kinds come back as errors; the dispatcher never sees them.
func DecodeEvent(data []byte) (Event, error) {
	var env eventEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("malformed event payload: %w", err)
	}
	if env.PlayerID == uuid.Nil {
		return nil, fmt.Errorf("event is missing playerId")
	}
	switch env.Kind {
	case KindJoinGame:
		return JoinGame{PlayerID: env.PlayerID}, nil
	case KindLeaveGame:
		return LeaveGame{PlayerID: env.PlayerID}, nil
	case KindStartGame:
		return StartGame{PlayerID: env.PlayerID}, nil
	case KindPlayCard:
		if env.Card == nil {
			return nil, fmt.Errorf("PLAY_CARD event is missing card")
		}
		ev := PlayCard{PlayerID: env.PlayerID, Card: *env.Card, DeclareUno: env.DeclareUno}
		if env.ChosenColor != nil {
			color, err := models.ColorByName(*env.ChosenColor)
			if err != nil {
				return nil, err
			}
			ev.ChosenColor = &color
		}
		return ev, nil
	case KindDrawCard:
		return DrawCard{PlayerID: env.PlayerID}, nil
	default:
		return nil, fmt.Errorf("unknown event kind %q", env.Kind)
	}
}

// ResultKind says whether a dispatch succeeded.
type ResultKind string

const (
	ResultSuccess ResultKind = "SUCCESS"
	ResultError   ResultKind = "ERROR"
)

// SideEffect is a request the engine hands back to its caller instead of
// touching external state itself. The transport layer executes them against
// its own store after a successful dispatch.
type SideEffect interface{ isSideEffect() }

// BindActiveGame asks the caller to point the player's session at this game.
type BindActiveGame struct {
	PlayerID uuid.UUID
	GameID   uuid.UUID
}

// ClearActiveGame asks the caller to drop the player's active-game pointer.
type ClearActiveGame struct {
	PlayerID uuid.UUID
}

func (BindActiveGame) isSideEffect()  {}
func (ClearActiveGame) isSideEffect() {}

// EventResult reports the outcome of a dispatch. An Error result guarantees
// the game was left untouched.
type EventResult struct {
	Kind    ResultKind  `json:"kind"`
	Code    ErrorCode   `json:"code,omitempty"`
	Message string      `json:"message"`
	Effect  *TurnEffect `json:"effect,omitempty"`

	SideEffects []SideEffect `json:"-"`
}

// Ok reports whether the dispatch succeeded.
func (r EventResult) Ok() bool {
	return r.Kind == ResultSuccess
}

func successResult(message string) EventResult {
	return EventResult{Kind: ResultSuccess, Message: message}
}

func errorResult(code ErrorCode, message string) EventResult {
	return EventResult{Kind: ResultError, Code: code, Message: message}
}
