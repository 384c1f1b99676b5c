// internal/game/events_test.go
package game

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardtable/uno/internal/models"
)

func TestDecodeEventKinds(t *testing.T) {
	id := uuid.New()

	tests := []struct {
		kind string
		want Event
	}{
		{KindJoinGame, JoinGame{PlayerID: id}},
		{KindLeaveGame, LeaveGame{PlayerID: id}},
		{KindStartGame, StartGame{PlayerID: id}},
		{KindDrawCard, DrawCard{PlayerID: id}},
	}
	for _, tc := range tests {
		t.Run(tc.kind, func(t *testing.T) {
			raw := fmt.Sprintf(`{"kind":%q,"playerId":%q}`, tc.kind, id)
			ev, err := DecodeEvent([]byte(raw))
			require.NoError(t, err)
			assert.Equal(t, tc.want, ev)
			assert.Equal(t, id, ev.Player())
		})
	}
}

func TestDecodeEventPlayCard(t *testing.T) {
	id := uuid.New()
	raw := fmt.Sprintf(`{"kind":"PLAY_CARD","playerId":%q,"card":{"color":"red","kind":"number","number":5},"declareUno":true}`, id)

	ev, err := DecodeEvent([]byte(raw))
	require.NoError(t, err)
	play, ok := ev.(PlayCard)
	require.True(t, ok)
	assert.Equal(t, id, play.PlayerID)
	assert.Equal(t, models.NumberCard(models.ColorRed, 5), play.Card)
	assert.Nil(t, play.ChosenColor)
	assert.True(t, play.DeclareUno)
}

func TestDecodeEventPlayCardChosenColor(t *testing.T) {
	id := uuid.New()
	raw := fmt.Sprintf(`{"kind":"PLAY_CARD","playerId":%q,"card":{"color":"wild","kind":"wild"},"chosenColor":"green"}`, id)

	ev, err := DecodeEvent([]byte(raw))
	require.NoError(t, err)
	play, ok := ev.(PlayCard)
	require.True(t, ok)
	require.NotNil(t, play.ChosenColor)
	assert.Equal(t, models.ColorGreen, *play.ChosenColor)
}

func TestDecodeEventErrors(t *testing.T) {
	id := uuid.New()

	tests := []struct {
		name string
		raw  string
	}{
		{"malformed json", `{"kind":`},
		{"unknown kind", fmt.Sprintf(`{"kind":"SHOUT","playerId":%q}`, id)},
		{"missing player id", `{"kind":"JOIN_GAME"}`},
		{"play without card", fmt.Sprintf(`{"kind":"PLAY_CARD","playerId":%q}`, id)},
		{"bad chosen color", fmt.Sprintf(`{"kind":"PLAY_CARD","playerId":%q,"card":{"color":"wild","kind":"wild"},"chosenColor":"plaid"}`, id)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ev, err := DecodeEvent([]byte(tc.raw))
			require.Error(t, err)
			assert.Nil(t, ev)
		})
	}
}
