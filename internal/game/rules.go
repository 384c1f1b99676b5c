// internal/game/rules.go
package game

import (
	"github.com/cardtable/uno/internal/models"
)

// Rules is the rule resolver: pure functions from the visible table state to
// legality and effects, plus the variant knobs a table can toggle.
type Rules struct {
	// InitialHandSize is the number of cards dealt to each player.
	InitialHandSize int `json:"initialHandSize"`

	// StackDrawCards allows answering a DrawTwo with a DrawTwo (and a
	// WildDrawFour with a WildDrawFour), pushing the accumulated penalty to
	// the next player. When false, a pending draw must be absorbed before
	// any card can be played. A Wild is never a legal answer to a pending
	// draw either way.
	StackDrawCards bool `json:"stackDrawCards"`
}

// DefaultRules is the standard table configuration.
func DefaultRules() Rules {
	return Rules{InitialHandSize: 7, StackDrawCards: false}
}

// IsLegalPlay decides whether candidate may be played on top given the color
// in force and any pending forced draw.
//
// With no pending draw, a card is legal if its color matches the active
// color, its kind matches the top card's kind (same number for number
// cards), or it is wild. With a pending draw, only a same-kind draw card is
// legal, and only when stacking is enabled.
func (r Rules) IsLegalPlay(top models.Card, activeColor models.Color, candidate models.Card, pendingDraw int) bool {
	if pendingDraw > 0 {
		if !r.StackDrawCards {
			return false
		}
		if candidate.Kind != models.KindDrawTwo && candidate.Kind != models.KindWildDrawFour {
			return false
		}
		return candidate.Kind == top.Kind
	}
	if candidate.Color == models.ColorWild {
		return true
	}
	if candidate.Color == activeColor {
		return true
	}
	if candidate.Kind != top.Kind {
		return false
	}
	if candidate.Kind == models.KindNumber {
		return candidate.Number == top.Number
	}
	return true
}

// EffectKind names the structural consequence of a played card.
type EffectKind string

const (
	EffectNone         EffectKind = "none"
	EffectSkip         EffectKind = "skip"
	EffectReverse      EffectKind = "reverse"
	EffectDrawTwo      EffectKind = "draw_two"
	EffectWild         EffectKind = "wild"
	EffectWildDrawFour EffectKind = "wild_draw_four"
)

// TurnEffect describes what a successful play does to turn order, the
// pending-draw counter and the active color.
type TurnEffect struct {
	Kind EffectKind `json:"kind"`

	// SkipNext skips the player who would otherwise act next.
	SkipNext bool `json:"skipNext,omitempty"`

	// Reverse flips the direction of play.
	Reverse bool `json:"reverse,omitempty"`

	// ForcedDraw is added to the pending draw the next player must absorb.
	ForcedDraw int `json:"forcedDraw,omitempty"`

	// NextColor is the color in force after the play.
	NextColor models.Color `json:"nextColor"`
}

// EffectOf maps a played card to its turn effect. For wild cards chosen is
// the color the player selected; for all other cards the card's own color
// becomes the color in force.
func (r Rules) EffectOf(card models.Card, chosen models.Color) TurnEffect {
	switch card.Kind {
	case models.KindSkip:
		return TurnEffect{Kind: EffectSkip, SkipNext: true, NextColor: card.Color}
	case models.KindReverse:
		return TurnEffect{Kind: EffectReverse, Reverse: true, NextColor: card.Color}
	case models.KindDrawTwo:
		return TurnEffect{Kind: EffectDrawTwo, ForcedDraw: 2, NextColor: card.Color}
	case models.KindWild:
		return TurnEffect{Kind: EffectWild, NextColor: chosen}
	case models.KindWildDrawFour:
		return TurnEffect{Kind: EffectWildDrawFour, ForcedDraw: 4, NextColor: chosen}
	default:
		return TurnEffect{Kind: EffectNone, NextColor: card.Color}
	}
}
