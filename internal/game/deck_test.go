// internal/game/deck_test.go
package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardtable/uno/internal/models"
)

func TestNewDeckComposition(t *testing.T) {
	d := NewDeckFromSeed(1)
	require.Len(t, d.DrawPile, DeckSize)
	require.Empty(t, d.DiscardPile)

	kindCounts := map[models.Kind]int{}
	colorCounts := map[models.Color]int{}
	for _, c := range d.DrawPile {
		kindCounts[c.Kind]++
		colorCounts[c.Color]++
	}

	assert.Equal(t, 76, kindCounts[models.KindNumber])
	assert.Equal(t, 8, kindCounts[models.KindSkip])
	assert.Equal(t, 8, kindCounts[models.KindReverse])
	assert.Equal(t, 8, kindCounts[models.KindDrawTwo])
	assert.Equal(t, 4, kindCounts[models.KindWild])
	assert.Equal(t, 4, kindCounts[models.KindWildDrawFour])

	for _, color := range models.ConcreteColors {
		assert.Equal(t, 25, colorCounts[color], "each color has 25 cards")
	}
	assert.Equal(t, 8, colorCounts[models.ColorWild])
}

func TestNewDeckFromSeedIsDeterministic(t *testing.T) {
	a := NewDeckFromSeed(7)
	b := NewDeckFromSeed(7)
	assert.Equal(t, a.DrawPile, b.DrawPile)
}

func TestDeckDraw(t *testing.T) {
	d := NewDeckFromSeed(3)
	cards, err := d.Draw(7)
	require.NoError(t, err)
	assert.Len(t, cards, 7)
	assert.Len(t, d.DrawPile, DeckSize-7)
}

func TestDeckDrawReshufflesDiscard(t *testing.T) {
	d := NewDeckFromSeed(5)
	top := models.NumberCard(models.ColorRed, 7)

	// Empty draw pile, five discards (four beneath the top).
	d.DrawPile = nil
	d.DiscardPile = []models.Card{
		models.NumberCard(models.ColorBlue, 1),
		models.NumberCard(models.ColorBlue, 2),
		models.NumberCard(models.ColorGreen, 3),
		models.NumberCard(models.ColorYellow, 4),
		top,
	}

	cards, err := d.Draw(1)
	require.NoError(t, err)
	assert.Len(t, cards, 1)

	// The active top card never gets recycled.
	gotTop, ok := d.Top()
	require.True(t, ok)
	assert.Equal(t, top, gotTop)
	assert.Len(t, d.DiscardPile, 1)
	assert.Len(t, d.DrawPile, 3)
}

func TestDeckDrawExhausted(t *testing.T) {
	d := NewDeckFromSeed(5)
	d.DrawPile = []models.Card{models.NumberCard(models.ColorRed, 1)}
	d.DiscardPile = []models.Card{models.NumberCard(models.ColorRed, 2)}

	// Two cards exist but one is the active top: asking for two must fail,
	// and fail without removing anything.
	_, err := d.Draw(2)
	require.ErrorIs(t, err, ErrDeckExhausted)
	assert.Len(t, d.DrawPile, 1)
	assert.Len(t, d.DiscardPile, 1)

	cards, err := d.Draw(1)
	require.NoError(t, err)
	assert.Len(t, cards, 1)
}

func TestDeckReturnToBottom(t *testing.T) {
	d := NewDeckFromSeed(2)
	size := len(d.DrawPile)
	returned := []models.Card{
		models.NumberCard(models.ColorRed, 9),
		{Color: models.ColorGreen, Kind: models.KindSkip},
	}
	d.returnToBottom(returned)
	require.Len(t, d.DrawPile, size+2)
	assert.Equal(t, returned[0], d.DrawPile[0])
	assert.Equal(t, returned[1], d.DrawPile[1])
}
