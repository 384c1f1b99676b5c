// internal/game/snapshot.go
package game

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/cardtable/uno/internal/models"
)

// Snapshot is the plain-data form of a Game, the shape that goes to and from
// storage. A snapshot on its own cannot dispatch events; Rehydrate turns it
// back into a live Game. Any load path that skips Rehydrate hands the caller
// an inert record, which is exactly the bug the round-trip exists to prevent.
type Snapshot struct {
	ID                 uuid.UUID       `json:"id"`
	Rules              Rules           `json:"rules"`
	Players            []models.Player `json:"players"`
	DrawPile           []models.Card   `json:"drawPile"`
	DiscardPile        []models.Card   `json:"discardPile"`
	CurrentPlayerIndex int             `json:"currentPlayerIndex"`
	Direction          Direction       `json:"direction"`
	ActiveColor        models.Color    `json:"activeColor"`
	PendingDraw        int             `json:"pendingDraw"`
	State              State           `json:"state"`
	WinnerID           *uuid.UUID      `json:"winnerId,omitempty"`
}

// Snapshot captures the game as plain data.
func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		ID:                 g.ID,
		Rules:              g.Rules,
		Players:            make([]models.Player, len(g.Players)),
		DrawPile:           append([]models.Card(nil), g.Deck.DrawPile...),
		DiscardPile:        append([]models.Card(nil), g.Deck.DiscardPile...),
		CurrentPlayerIndex: g.CurrentPlayerIndex,
		Direction:          g.Direction,
		ActiveColor:        g.ActiveColor,
		PendingDraw:        g.PendingDraw,
		State:              g.State,
	}
	for i, p := range g.Players {
		cp := *p
		cp.Hand = append([]models.Card(nil), p.Hand...)
		cp.User = nil
		s.Players[i] = cp
	}
	if g.WinnerID != nil {
		w := *g.WinnerID
		s.WinnerID = &w
	}
	return s
}

// Rehydrate reconstructs a dispatch-capable Game from the snapshot,
// validating the structural invariants a stored record could have lost.
func (s Snapshot) Rehydrate() (*Game, error) {
	if s.ID == uuid.Nil {
		return nil, fmt.Errorf("snapshot has no game id")
	}
	switch s.State {
	case StateWaitingForPlayers, StateInProgress, StateFinished:
	default:
		return nil, fmt.Errorf("snapshot has unknown state %q", s.State)
	}
	seen := make(map[uuid.UUID]bool, len(s.Players))
	for _, p := range s.Players {
		if seen[p.ID] {
			return nil, fmt.Errorf("snapshot has duplicate player id %s", p.ID)
		}
		seen[p.ID] = true
	}
	if s.State == StateInProgress {
		if len(s.Players) == 0 {
			return nil, fmt.Errorf("snapshot is in progress with no players")
		}
		if s.CurrentPlayerIndex < 0 || s.CurrentPlayerIndex >= len(s.Players) {
			return nil, fmt.Errorf("snapshot current player index %d out of range", s.CurrentPlayerIndex)
		}
		if !s.ActiveColor.IsConcrete() {
			return nil, fmt.Errorf("snapshot active color %s is not concrete", s.ActiveColor)
		}
	}
	if s.Direction != Clockwise && s.Direction != CounterClockwise {
		return nil, fmt.Errorf("snapshot has invalid direction")
	}

	rules := s.Rules
	if rules.InitialHandSize == 0 {
		rules = DefaultRules()
	}
	g := &Game{
		ID:    s.ID,
		Rules: rules,
		Deck: &Deck{
			DrawPile:    append([]models.Card(nil), s.DrawPile...),
			DiscardPile: append([]models.Card(nil), s.DiscardPile...),
			rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
		},
		CurrentPlayerIndex: s.CurrentPlayerIndex,
		Direction:          s.Direction,
		ActiveColor:        s.ActiveColor,
		PendingDraw:        s.PendingDraw,
		State:              s.State,
	}
	g.Players = make([]*models.Player, len(s.Players))
	for i := range s.Players {
		cp := s.Players[i]
		cp.Hand = append([]models.Card(nil), cp.Hand...)
		g.Players[i] = &cp
	}
	if s.WinnerID != nil {
		w := *s.WinnerID
		g.WinnerID = &w
	}
	return g, nil
}
