// internal/game/turn_test.go
package game

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardtable/uno/internal/models"
)

func rosterOf(n int) []*models.Player {
	players := make([]*models.Player, n)
	for i := range players {
		players[i] = &models.Player{ID: uuid.New()}
	}
	return players
}

func TestAdvanceTurnWraps(t *testing.T) {
	g := &Game{Players: rosterOf(3), Direction: Clockwise, CurrentPlayerIndex: 2}

	g.advanceTurn(TurnEffect{Kind: EffectNone})
	assert.Equal(t, 0, g.CurrentPlayerIndex)

	g.Direction = CounterClockwise
	g.advanceTurn(TurnEffect{Kind: EffectNone})
	assert.Equal(t, 2, g.CurrentPlayerIndex)
}

func TestAdvanceTurnSkip(t *testing.T) {
	g := &Game{Players: rosterOf(4), Direction: Clockwise}

	g.advanceTurn(TurnEffect{Kind: EffectSkip, SkipNext: true})
	assert.Equal(t, 2, g.CurrentPlayerIndex)
}

func TestAdvanceTurnReverse(t *testing.T) {
	g := &Game{Players: rosterOf(4), Direction: Clockwise, CurrentPlayerIndex: 1}

	g.advanceTurn(TurnEffect{Kind: EffectReverse, Reverse: true})
	assert.Equal(t, CounterClockwise, g.Direction)
	assert.Equal(t, 0, g.CurrentPlayerIndex)
}

func TestRemovePlayerAtBeforeCurrent(t *testing.T) {
	players := rosterOf(4)
	g := &Game{Players: players, Direction: Clockwise, CurrentPlayerIndex: 2}
	current := players[2].ID

	g.removePlayerAt(0)
	require.Len(t, g.Players, 3)
	assert.Equal(t, current, g.Players[g.CurrentPlayerIndex].ID)
}

func TestRemovePlayerAtCurrent(t *testing.T) {
	players := rosterOf(3)
	g := &Game{Players: players, Direction: Clockwise, CurrentPlayerIndex: 1}
	successor := players[2].ID

	g.removePlayerAt(1)
	require.Len(t, g.Players, 2)
	assert.Equal(t, successor, g.Players[g.CurrentPlayerIndex].ID)
}

func TestRemoveLastSeatWrapsTurn(t *testing.T) {
	players := rosterOf(3)
	g := &Game{Players: players, Direction: Clockwise, CurrentPlayerIndex: 2}
	successor := players[0].ID

	g.removePlayerAt(2)
	require.Len(t, g.Players, 2)
	assert.Equal(t, successor, g.Players[g.CurrentPlayerIndex].ID)
}

func TestRemoveOnlyPlayer(t *testing.T) {
	g := &Game{Players: rosterOf(1), Direction: Clockwise}

	g.removePlayerAt(0)
	assert.Empty(t, g.Players)
	assert.Equal(t, 0, g.CurrentPlayerIndex)
}

func TestDirectionJSON(t *testing.T) {
	data, err := json.Marshal(CounterClockwise)
	require.NoError(t, err)
	assert.Equal(t, `"counter_clockwise"`, string(data))

	var d Direction
	require.NoError(t, json.Unmarshal([]byte(`"clockwise"`), &d))
	assert.Equal(t, Clockwise, d)

	assert.Error(t, json.Unmarshal([]byte(`"sideways"`), &d))
}
