package models

import (
	"github.com/google/uuid"
)

// Player is a seat in a game. ID is the player's stable external identity;
// the session layer maps an authenticated user to it. Hand order carries no
// meaning, only the card counts do.
type Player struct {
	ID        uuid.UUID `json:"id"`
	Hand      []Card    `json:"hand"`
	CalledUno bool      `json:"calledUno"`

	User *User `json:"-"`
}

// HasCard reports whether the player holds at least one copy of card.
func (p *Player) HasCard(card Card) bool {
	for _, c := range p.Hand {
		if c == card {
			return true
		}
	}
	return false
}

// RemoveCard removes a single copy of card from the hand. It reports whether
// a copy was found.
func (p *Player) RemoveCard(card Card) bool {
	for i, c := range p.Hand {
		if c == card {
			p.Hand = append(p.Hand[:i], p.Hand[i+1:]...)
			return true
		}
	}
	return false
}
