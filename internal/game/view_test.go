// internal/game/view_test.go
package game

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestViewHidesOtherHands(t *testing.T) {
	g, ids := startedGame(t, 3, 200)

	v := g.View(ids[1])
	require.Len(t, v.Players, 3)
	for _, pv := range v.Players {
		assert.Equal(t, 7, pv.HandSize)
		if pv.ID == ids[1] {
			assert.Len(t, pv.Hand, 7, "the requesting player sees their own cards")
		} else {
			assert.Nil(t, pv.Hand, "other hands show as counts only")
		}
	}

	require.NotNil(t, v.CurrentPlayerID)
	assert.Equal(t, ids[0], *v.CurrentPlayerID)
	require.NotNil(t, v.DiscardTop)
	assert.Equal(t, g.ActiveColor, v.ActiveColor)
	assert.Equal(t, len(g.Deck.DrawPile), v.DrawPileSize)
}

func TestViewForSpectator(t *testing.T) {
	g, _ := startedGame(t, 2, 201)

	v := g.View(uuid.New())
	for _, pv := range v.Players {
		assert.Nil(t, pv.Hand)
	}
}

func TestViewBeforeStart(t *testing.T) {
	g := NewGameFromSeed(202)
	ids := seatPlayers(t, g, 2)

	v := g.View(ids[0])
	assert.Equal(t, StateWaitingForPlayers, v.State)
	assert.Nil(t, v.CurrentPlayerID)
	assert.Nil(t, v.DiscardTop)
	for _, pv := range v.Players {
		assert.False(t, pv.IsCurrentTurn)
	}
}
