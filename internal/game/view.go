// internal/game/view.go
package game

import (
	"github.com/google/uuid"

	"github.com/cardtable/uno/internal/models"
)

// PlayerView is one seat as visible to a particular player. Only the
// requesting player's own hand is revealed; everyone else shows as a count.
type PlayerView struct {
	ID            uuid.UUID     `json:"id"`
	HandSize      int           `json:"handSize"`
	Hand          []models.Card `json:"hand,omitempty"`
	CalledUno     bool          `json:"calledUno"`
	IsCurrentTurn bool          `json:"isCurrentTurn"`
}

// StateView is the read-only projection broadcast to each player after every
// successful dispatch.
type StateView struct {
	GameID          uuid.UUID    `json:"gameId"`
	State           State        `json:"state"`
	Players         []PlayerView `json:"players"`
	CurrentPlayerID *uuid.UUID   `json:"currentPlayerId,omitempty"`
	Direction       Direction    `json:"direction"`
	ActiveColor     models.Color `json:"activeColor"`
	PendingDraw     int          `json:"pendingDraw"`
	DiscardTop      *models.Card `json:"discardTop,omitempty"`
	DrawPileSize    int          `json:"drawPileSize"`
	WinnerID        *uuid.UUID   `json:"winnerId,omitempty"`
}

// View projects the game for one player, hiding all other hands.
func (g *Game) View(forPlayer uuid.UUID) StateView {
	v := StateView{
		GameID:       g.ID,
		State:        g.State,
		Direction:    g.Direction,
		ActiveColor:  g.ActiveColor,
		PendingDraw:  g.PendingDraw,
		DrawPileSize: len(g.Deck.DrawPile),
		WinnerID:     g.WinnerID,
	}
	if top, ok := g.Deck.Top(); ok {
		v.DiscardTop = &top
	}
	if cur := g.CurrentPlayer(); cur != nil {
		id := cur.ID
		v.CurrentPlayerID = &id
	}
	for i, p := range g.Players {
		pv := PlayerView{
			ID:            p.ID,
			HandSize:      len(p.Hand),
			CalledUno:     p.CalledUno,
			IsCurrentTurn: g.State == StateInProgress && i == g.CurrentPlayerIndex,
		}
		if p.ID == forPlayer {
			pv.Hand = append([]models.Card(nil), p.Hand...)
		}
		v.Players = append(v.Players, pv)
	}
	return v
}
