// internal/game/rules_test.go
package game

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cardtable/uno/internal/models"
)

func TestIsLegalPlay(t *testing.T) {
	rules := DefaultRules()
	redSeven := models.NumberCard(models.ColorRed, 7)

	tests := []struct {
		name      string
		top       models.Card
		active    models.Color
		candidate models.Card
		pending   int
		want      bool
	}{
		{
			name:      "matching color",
			top:       redSeven,
			active:    models.ColorRed,
			candidate: models.NumberCard(models.ColorRed, 5),
			want:      true,
		},
		{
			name:      "matching number across colors",
			top:       redSeven,
			active:    models.ColorRed,
			candidate: models.NumberCard(models.ColorBlue, 7),
			want:      true,
		},
		{
			name:      "matching action kind across colors",
			top:       models.Card{Color: models.ColorRed, Kind: models.KindSkip},
			active:    models.ColorRed,
			candidate: models.Card{Color: models.ColorGreen, Kind: models.KindSkip},
			want:      true,
		},
		{
			name:      "wild is always playable",
			top:       redSeven,
			active:    models.ColorRed,
			candidate: models.Card{Color: models.ColorWild, Kind: models.KindWild},
			want:      true,
		},
		{
			name:      "color and kind both differ",
			top:       redSeven,
			active:    models.ColorRed,
			candidate: models.NumberCard(models.ColorBlue, 3),
			want:      false,
		},
		{
			name:      "same kind different number",
			top:       redSeven,
			active:    models.ColorRed,
			candidate: models.NumberCard(models.ColorBlue, 8),
			want:      false,
		},
		{
			name:      "active color overrides wild top",
			top:       models.Card{Color: models.ColorWild, Kind: models.KindWild},
			active:    models.ColorGreen,
			candidate: models.NumberCard(models.ColorGreen, 2),
			want:      true,
		},
		{
			name:      "pending draw blocks everything without stacking",
			top:       models.Card{Color: models.ColorRed, Kind: models.KindDrawTwo},
			active:    models.ColorRed,
			candidate: models.Card{Color: models.ColorRed, Kind: models.KindDrawTwo},
			pending:   2,
			want:      false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := rules.IsLegalPlay(tt.top, tt.active, tt.candidate, tt.pending)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIsLegalPlayStacking(t *testing.T) {
	rules := Rules{InitialHandSize: 7, StackDrawCards: true}
	drawTwoTop := models.Card{Color: models.ColorRed, Kind: models.KindDrawTwo}
	wildFourTop := models.Card{Color: models.ColorWild, Kind: models.KindWildDrawFour}

	// Same stacking family is legal.
	assert.True(t, rules.IsLegalPlay(drawTwoTop, models.ColorRed,
		models.Card{Color: models.ColorGreen, Kind: models.KindDrawTwo}, 2))
	assert.True(t, rules.IsLegalPlay(wildFourTop, models.ColorRed,
		models.Card{Color: models.ColorWild, Kind: models.KindWildDrawFour}, 4))

	// Cross-family and plain cards are not.
	assert.False(t, rules.IsLegalPlay(drawTwoTop, models.ColorRed,
		models.Card{Color: models.ColorWild, Kind: models.KindWildDrawFour}, 2))
	assert.False(t, rules.IsLegalPlay(drawTwoTop, models.ColorRed,
		models.NumberCard(models.ColorRed, 2), 2))

	// A plain Wild never answers a pending draw.
	assert.False(t, rules.IsLegalPlay(drawTwoTop, models.ColorRed,
		models.Card{Color: models.ColorWild, Kind: models.KindWild}, 2))
}

func TestEffectOf(t *testing.T) {
	rules := DefaultRules()

	eff := rules.EffectOf(models.NumberCard(models.ColorRed, 4), models.ColorRed)
	assert.Equal(t, EffectNone, eff.Kind)
	assert.Equal(t, models.ColorRed, eff.NextColor)

	eff = rules.EffectOf(models.Card{Color: models.ColorBlue, Kind: models.KindSkip}, models.ColorBlue)
	assert.Equal(t, EffectSkip, eff.Kind)
	assert.True(t, eff.SkipNext)

	eff = rules.EffectOf(models.Card{Color: models.ColorBlue, Kind: models.KindReverse}, models.ColorBlue)
	assert.Equal(t, EffectReverse, eff.Kind)
	assert.True(t, eff.Reverse)

	eff = rules.EffectOf(models.Card{Color: models.ColorBlue, Kind: models.KindDrawTwo}, models.ColorBlue)
	assert.Equal(t, EffectDrawTwo, eff.Kind)
	assert.Equal(t, 2, eff.ForcedDraw)
	assert.Equal(t, models.ColorBlue, eff.NextColor)

	eff = rules.EffectOf(models.Card{Color: models.ColorWild, Kind: models.KindWild}, models.ColorGreen)
	assert.Equal(t, EffectWild, eff.Kind)
	assert.Equal(t, models.ColorGreen, eff.NextColor)

	eff = rules.EffectOf(models.Card{Color: models.ColorWild, Kind: models.KindWildDrawFour}, models.ColorYellow)
	assert.Equal(t, EffectWildDrawFour, eff.Kind)
	assert.Equal(t, 4, eff.ForcedDraw)
	assert.Equal(t, models.ColorYellow, eff.NextColor)
}
