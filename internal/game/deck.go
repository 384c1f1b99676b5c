// internal/game/deck.go
package game

import (
	"math/rand"
	"time"

	"github.com/cardtable/uno/internal/models"
)

// DeckSize is the canonical card count of a full deck.
const DeckSize = 108

// Deck holds the two ordered piles of a game. The last element of each slice
// is the top: DrawPile's top is the next card drawn, DiscardPile's top is the
// currently active card.
type Deck struct {
	DrawPile    []models.Card
	DiscardPile []models.Card

	rng *rand.Rand
}

// NewDeck builds the canonical 108-card multiset and shuffles it with a
// time-seeded source.
func NewDeck() *Deck {
	return NewDeckFromSeed(time.Now().UnixNano())
}

// NewDeckFromSeed is NewDeck with a fixed seed, for reproducible games.
func NewDeckFromSeed(seed int64) *Deck {
	d := &Deck{rng: rand.New(rand.NewSource(seed))}
	d.DrawPile = fullDeck()
	d.shuffle(d.DrawPile)
	return d
}

// fullDeck returns the canonical multiset: per color one 0, two each of 1-9,
// two skips, two reverses, two draw-twos; plus four wilds and four wild
// draw-fours.
func fullDeck() []models.Card {
	cards := make([]models.Card, 0, DeckSize)
	for _, color := range models.ConcreteColors {
		cards = append(cards, models.NumberCard(color, 0))
		for n := 1; n <= 9; n++ {
			cards = append(cards, models.NumberCard(color, n), models.NumberCard(color, n))
		}
		cards = append(cards,
			models.Card{Color: color, Kind: models.KindSkip},
			models.Card{Color: color, Kind: models.KindSkip},
			models.Card{Color: color, Kind: models.KindReverse},
			models.Card{Color: color, Kind: models.KindReverse},
			models.Card{Color: color, Kind: models.KindDrawTwo},
			models.Card{Color: color, Kind: models.KindDrawTwo},
		)
	}
	for i := 0; i < 4; i++ {
		cards = append(cards,
			models.Card{Color: models.ColorWild, Kind: models.KindWild},
			models.Card{Color: models.ColorWild, Kind: models.KindWildDrawFour},
		)
	}
	return cards
}

func (d *Deck) shuffle(cards []models.Card) {
	d.rng.Shuffle(len(cards), func(i, j int) {
		cards[i], cards[j] = cards[j], cards[i]
	})
}

// Draw removes n cards from the top of the draw pile. When the draw pile
// underflows, everything below the discard top is reshuffled into a fresh
// draw pile first. Draw fails with ErrDeckExhausted only if fewer than n
// cards exist outside hands and the discard top; no cards are removed on
// failure.
func (d *Deck) Draw(n int) ([]models.Card, error) {
	if len(d.DrawPile) < n {
		d.reshuffle()
	}
	if len(d.DrawPile) < n {
		return nil, ErrDeckExhausted
	}
	top := len(d.DrawPile) - n
	cards := make([]models.Card, n)
	copy(cards, d.DrawPile[top:])
	d.DrawPile = d.DrawPile[:top]
	return cards, nil
}

// reshuffle folds all discards except the active top card back into the draw
// pile.
func (d *Deck) reshuffle() {
	if len(d.DiscardPile) < 2 {
		return
	}
	top := d.DiscardPile[len(d.DiscardPile)-1]
	recycled := append(d.DrawPile, d.DiscardPile[:len(d.DiscardPile)-1]...)
	d.shuffle(recycled)
	d.DrawPile = recycled
	d.DiscardPile = []models.Card{top}
}

// Discard pushes card onto the discard pile, making it the active card.
// Legality has already been validated by the caller.
func (d *Deck) Discard(card models.Card) {
	d.DiscardPile = append(d.DiscardPile, card)
}

// Top returns the active discard card, if any.
func (d *Deck) Top() (models.Card, bool) {
	if len(d.DiscardPile) == 0 {
		return models.Card{}, false
	}
	return d.DiscardPile[len(d.DiscardPile)-1], true
}

// returnToBottom slides cards under the draw pile. Used when a player leaves
// mid-game so card conservation holds.
func (d *Deck) returnToBottom(cards []models.Card) {
	if len(cards) == 0 {
		return
	}
	d.DrawPile = append(append([]models.Card{}, cards...), d.DrawPile...)
}

// Size is the number of cards in both piles combined.
func (d *Deck) Size() int {
	return len(d.DrawPile) + len(d.DiscardPile)
}

// clone copies both piles. The random source is shared: it is not part of
// the observable game state.
func (d *Deck) clone() *Deck {
	return &Deck{
		DrawPile:    append([]models.Card(nil), d.DrawPile...),
		DiscardPile: append([]models.Card(nil), d.DiscardPile...),
		rng:         d.rng,
	}
}
