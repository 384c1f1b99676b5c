// internal/game/snapshot_test.go
package game

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardtable/uno/internal/models"
)

func TestSnapshotRoundTrip(t *testing.T) {
	g, ids := startedGame(t, 3, 100)
	snap := g.Snapshot()

	restored, err := snap.Rehydrate()
	require.NoError(t, err)
	assert.Equal(t, snap, restored.Snapshot(), "rehydration loses nothing")

	// The restored game is live: it accepts dispatches, not just reads.
	res := restored.DispatchEvent(DrawCard{PlayerID: ids[0]})
	require.True(t, res.Ok(), res.Message)
}

func TestSnapshotJSONRoundTrip(t *testing.T) {
	g, _ := startedGame(t, 2, 101)
	snap := g.Snapshot()

	data, err := json.Marshal(snap)
	require.NoError(t, err)

	var decoded Snapshot
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, snap, decoded)

	restored, err := decoded.Rehydrate()
	require.NoError(t, err)
	assert.Equal(t, snap, restored.Snapshot())
}

func TestSnapshotDoesNotAliasGame(t *testing.T) {
	g, ids := startedGame(t, 2, 102)
	snap := g.Snapshot()
	handBefore := append([]models.Card(nil), snap.Players[0].Hand...)

	res := g.DispatchEvent(DrawCard{PlayerID: ids[0]})
	require.True(t, res.Ok())
	assert.Equal(t, handBefore, snap.Players[0].Hand, "the snapshot is a copy, not a view")
}

func TestRehydrateRejectsInvalidSnapshots(t *testing.T) {
	base := func() Snapshot {
		g, _ := startedGame(t, 2, 103)
		return g.Snapshot()
	}

	tests := []struct {
		name   string
		mutate func(*Snapshot)
	}{
		{"missing id", func(s *Snapshot) { s.ID = uuid.Nil }},
		{"unknown state", func(s *Snapshot) { s.State = "PAUSED" }},
		{"index out of range", func(s *Snapshot) { s.CurrentPlayerIndex = len(s.Players) }},
		{"negative index", func(s *Snapshot) { s.CurrentPlayerIndex = -1 }},
		{"wild active color", func(s *Snapshot) { s.ActiveColor = models.ColorWild }},
		{"duplicate players", func(s *Snapshot) { s.Players[1].ID = s.Players[0].ID }},
		{"no players in progress", func(s *Snapshot) { s.Players = nil; s.CurrentPlayerIndex = 0 }},
		{"invalid direction", func(s *Snapshot) { s.Direction = 0 }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := base()
			tc.mutate(&s)
			_, err := s.Rehydrate()
			require.Error(t, err)
		})
	}
}

func TestRehydrateDefaultsRules(t *testing.T) {
	g, _ := startedGame(t, 2, 104)
	snap := g.Snapshot()
	snap.Rules = Rules{}

	restored, err := snap.Rehydrate()
	require.NoError(t, err)
	assert.Equal(t, DefaultRules(), restored.Rules)
}
