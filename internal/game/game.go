// internal/game/game.go
package game

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/cardtable/uno/internal/models"
)

// State is the game-level lifecycle phase.
type State string

const (
	StateWaitingForPlayers State = "WAITING_FOR_PLAYERS"
	StateInProgress        State = "IN_PROGRESS"
	StateFinished          State = "FINISHED"
)

func (s State) MarshalJSON() ([]byte, error)  { return json.Marshal(string(s)) }
func (s *State) UnmarshalJSON(d []byte) error { return json.Unmarshal(d, (*string)(s)) }

// Game holds the entire state of one table. All mutation goes through
// DispatchEvent; everything else is read-only projection.
//
// A Game performs no locking of its own. The host must serialize dispatches
// per game id (see GameStore.WithGame); two interleaved dispatches on the
// same game would corrupt turn order and card conservation. Distinct games
// share nothing and may run in parallel.
type Game struct {
	ID    uuid.UUID
	Rules Rules

	Players []*models.Player
	Deck    *Deck

	CurrentPlayerIndex int
	Direction          Direction
	ActiveColor        models.Color
	PendingDraw        int

	State    State
	WinnerID *uuid.UUID
}

// NewGame builds a fresh table in WaitingForPlayers with a shuffled deck.
func NewGame() *Game {
	return newGame(NewDeck())
}

// NewGameFromSeed is NewGame with a deterministic deck, for tests.
func NewGameFromSeed(seed int64) *Game {
	return newGame(NewDeckFromSeed(seed))
}

func newGame(deck *Deck) *Game {
	id, _ := uuid.NewRandom()
	return &Game{
		ID:        id,
		Rules:     DefaultRules(),
		Deck:      deck,
		Direction: Clockwise,
		State:     StateWaitingForPlayers,
	}
}

// DispatchEvent validates ev against the rules and current state, applies it
// atomically and reports the outcome. It is the single mutation entry point.
//
// The event is applied to a private clone that replaces the receiver only on
// success, so an Error result always leaves the game exactly as it was.
func (g *Game) DispatchEvent(ev Event) EventResult {
	next := g.clone()
	res := next.apply(ev)
	if res.Ok() {
		*g = *next
	}
	return res
}

func (g *Game) apply(ev Event) EventResult {
	switch e := ev.(type) {
	case JoinGame:
		return g.handleJoin(e)
	case LeaveGame:
		return g.handleLeave(e)
	case StartGame:
		return g.handleStart(e)
	case PlayCard:
		return g.handlePlay(e)
	case DrawCard:
		return g.handleDraw(e)
	default:
		return errorResult(CodeUnknownEvent, "unknown event")
	}
}

func (g *Game) handleJoin(ev JoinGame) EventResult {
	if g.State == StateFinished {
		return errorResult(CodeGameOver, "game is over")
	}
	if _, ok := g.playerIndex(ev.PlayerID); ok {
		return errorResult(CodeAlreadyJoined, "player already joined this game")
	}
	p := &models.Player{ID: ev.PlayerID, Hand: []models.Card{}}
	if g.State == StateInProgress {
		// Late joiner: seat them with a full hand right away. Everyone else
		// was dealt at StartGame.
		hand, err := g.Deck.Draw(g.Rules.InitialHandSize)
		if err != nil {
			return errorResult(CodeDeckExhausted, "not enough cards to deal a hand")
		}
		p.Hand = hand
	}
	g.Players = append(g.Players, p)
	res := successResult("player joined")
	res.SideEffects = []SideEffect{BindActiveGame{PlayerID: ev.PlayerID, GameID: g.ID}}
	return res
}

func (g *Game) handleLeave(ev LeaveGame) EventResult {
	// Leaving is the one mutation allowed even after the game has finished,
	// so the host can archive the table once everyone is gone.
	idx, ok := g.playerIndex(ev.PlayerID)
	if !ok {
		return errorResult(CodePlayerNotFound, "player not found")
	}

	leaver := g.Players[idx]
	wasCurrent := idx == g.CurrentPlayerIndex

	// The leaver's cards go under the draw pile so card conservation holds.
	g.Deck.returnToBottom(leaver.Hand)
	g.removePlayerAt(idx)

	if wasCurrent && g.State == StateInProgress {
		// A forced draw owed by the leaver does not transfer to whoever
		// inherits the turn.
		g.PendingDraw = 0
	}
	if len(g.Players) == 0 && g.State != StateFinished {
		g.State = StateFinished
		g.WinnerID = nil
	}

	res := successResult("player left")
	res.SideEffects = []SideEffect{ClearActiveGame{PlayerID: ev.PlayerID}}
	return res
}

func (g *Game) handleStart(ev StartGame) EventResult {
	if g.State == StateFinished {
		return errorResult(CodeGameOver, "game is over")
	}
	if g.State != StateWaitingForPlayers {
		return errorResult(CodeInvalidState, "game has already started")
	}
	if len(g.Players) < 2 {
		return errorResult(CodeNotEnoughPlayers, "at least 2 players are required")
	}

	for _, p := range g.Players {
		hand, err := g.Deck.Draw(g.Rules.InitialHandSize)
		if err != nil {
			return errorResult(CodeDeckExhausted, "not enough cards to deal hands")
		}
		p.Hand = hand
		p.CalledUno = false
	}
	if !g.flipFirstDiscard() {
		return errorResult(CodeDeckExhausted, "no card left to open the discard pile")
	}

	g.State = StateInProgress
	g.CurrentPlayerIndex = 0
	g.Direction = Clockwise
	g.PendingDraw = 0
	return successResult("game started")
}

// flipFirstDiscard turns the opening card. Action and wild cards are cycled
// to the bottom of the draw pile until a number card surfaces, so the game
// always opens on a plain color with no effect owed. Reports false if the
// remaining pile holds no number card at all.
func (g *Game) flipFirstDiscard() bool {
	for attempts := len(g.Deck.DrawPile); attempts > 0; attempts-- {
		cards, err := g.Deck.Draw(1)
		if err != nil {
			return false
		}
		card := cards[0]
		if card.Kind == models.KindNumber {
			g.Deck.Discard(card)
			g.ActiveColor = card.Color
			return true
		}
		g.Deck.returnToBottom([]models.Card{card})
	}
	return false
}

func (g *Game) handlePlay(ev PlayCard) EventResult {
	if g.State == StateFinished {
		return errorResult(CodeGameOver, "game is over")
	}
	if g.State != StateInProgress {
		return errorResult(CodeInvalidState, "game has not started")
	}
	idx, ok := g.playerIndex(ev.PlayerID)
	if !ok {
		return errorResult(CodePlayerNotFound, "player not found")
	}
	if idx != g.CurrentPlayerIndex {
		return errorResult(CodeNotYourTurn, "not your turn")
	}
	player := g.Players[idx]
	if !player.HasCard(ev.Card) {
		return errorResult(CodeCardNotInHand, fmt.Sprintf("card %s is not in your hand", ev.Card))
	}

	top, _ := g.Deck.Top()
	if !g.Rules.IsLegalPlay(top, g.ActiveColor, ev.Card, g.PendingDraw) {
		return errorResult(CodeIllegalPlay, fmt.Sprintf("card %s cannot be played on %s (%s in force)", ev.Card, top, g.ActiveColor))
	}

	chosen := g.ActiveColor
	if ev.Card.IsWild() {
		if ev.ChosenColor == nil || !ev.ChosenColor.IsConcrete() {
			return errorResult(CodeIllegalPlay, "a wild play must choose a concrete color")
		}
		chosen = *ev.ChosenColor
	}

	player.RemoveCard(ev.Card)
	player.CalledUno = ev.DeclareUno && len(player.Hand) == 1
	g.Deck.Discard(ev.Card)

	eff := g.Rules.EffectOf(ev.Card, chosen)
	g.ActiveColor = eff.NextColor
	g.PendingDraw += eff.ForcedDraw

	if len(player.Hand) == 0 {
		g.State = StateFinished
		winner := player.ID
		g.WinnerID = &winner
		res := successResult("card played, game won")
		res.Effect = &eff
		return res
	}

	g.advanceTurn(eff)
	res := successResult("card played")
	res.Effect = &eff
	return res
}

func (g *Game) handleDraw(ev DrawCard) EventResult {
	if g.State == StateFinished {
		return errorResult(CodeGameOver, "game is over")
	}
	if g.State != StateInProgress {
		return errorResult(CodeInvalidState, "game has not started")
	}
	idx, ok := g.playerIndex(ev.PlayerID)
	if !ok {
		return errorResult(CodePlayerNotFound, "player not found")
	}
	if idx != g.CurrentPlayerIndex {
		return errorResult(CodeNotYourTurn, "not your turn")
	}
	player := g.Players[idx]

	if g.PendingDraw > 0 {
		cards, err := g.Deck.Draw(g.PendingDraw)
		if err != nil {
			return errorResult(CodeDeckExhausted, "no cards left to draw")
		}
		player.Hand = append(player.Hand, cards...)
		player.CalledUno = false
		g.PendingDraw = 0
		// Absorbing a forced draw forfeits the play.
		g.advanceTurn(TurnEffect{Kind: EffectNone})
		return successResult(fmt.Sprintf("drew %d forced cards", len(cards)))
	}

	cards, err := g.Deck.Draw(1)
	if err != nil {
		return errorResult(CodeDeckExhausted, "no cards left to draw")
	}
	player.Hand = append(player.Hand, cards...)
	player.CalledUno = false
	// A voluntary draw keeps the turn: the player may still play the card
	// they just picked up.
	return successResult("drew a card")
}

// playerIndex locates a player by identity.
func (g *Game) playerIndex(id uuid.UUID) (int, bool) {
	for i, p := range g.Players {
		if p.ID == id {
			return i, true
		}
	}
	return 0, false
}

// CurrentPlayer returns the player whose turn it is, or nil outside of play.
func (g *Game) CurrentPlayer() *models.Player {
	if g.State != StateInProgress || len(g.Players) == 0 {
		return nil
	}
	return g.Players[g.CurrentPlayerIndex]
}

// clone deep-copies everything dispatch may mutate.
func (g *Game) clone() *Game {
	ng := *g
	ng.Players = make([]*models.Player, len(g.Players))
	for i, p := range g.Players {
		cp := *p
		cp.Hand = append([]models.Card(nil), p.Hand...)
		ng.Players[i] = &cp
	}
	ng.Deck = g.Deck.clone()
	if g.WinnerID != nil {
		w := *g.WinnerID
		ng.WinnerID = &w
	}
	return &ng
}
