// internal/game/turn.go
package game

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// Direction is the order in which turns pass around the table.
type Direction int8

const (
	Clockwise        Direction = 1
	CounterClockwise Direction = -1
)

func (d Direction) String() string {
	if d == CounterClockwise {
		return "counter_clockwise"
	}
	return "clockwise"
}

// flip returns the opposite direction.
func (d Direction) flip() Direction {
	return -d
}

func (d Direction) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Direction) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch s {
	case "clockwise":
		*d = Clockwise
	case "counter_clockwise":
		*d = CounterClockwise
	default:
		return fmt.Errorf("unknown direction %q", s)
	}
	return nil
}

// stepIndex moves one seat from idx in the current direction, wrapping over
// the live roster.
func (g *Game) stepIndex(idx int) int {
	n := len(g.Players)
	return (idx + int(g.Direction) + n) % n
}

// advanceTurn moves the current-player index past the just-finished turn,
// honoring the played card's effect. A reverse at a two-player table acts as
// a skip: the direction flips and the same player goes again.
func (g *Game) advanceTurn(eff TurnEffect) {
	if len(g.Players) == 0 {
		return
	}
	steps := 1
	if eff.Reverse {
		g.Direction = g.Direction.flip()
		if len(g.Players) == 2 {
			steps = 2
		}
	}
	if eff.SkipNext {
		steps = 2
	}
	for i := 0; i < steps; i++ {
		g.CurrentPlayerIndex = g.stepIndex(g.CurrentPlayerIndex)
	}
}

// removePlayerAt drops the seat at idx and renormalizes the current-player
// index by identity, so the turn pointer survives departures from anywhere
// in the roster.
func (g *Game) removePlayerAt(idx int) {
	leavingCurrent := idx == g.CurrentPlayerIndex

	// Identify who acts next before the roster shifts underneath us.
	var nextID uuid.UUID
	if leavingCurrent && len(g.Players) > 1 {
		nextID = g.Players[g.stepIndex(idx)].ID
	} else if len(g.Players) > 1 {
		nextID = g.Players[g.CurrentPlayerIndex].ID
	}

	g.Players = append(g.Players[:idx], g.Players[idx+1:]...)
	if len(g.Players) == 0 {
		g.CurrentPlayerIndex = 0
		return
	}
	for i, p := range g.Players {
		if p.ID == nextID {
			g.CurrentPlayerIndex = i
			return
		}
	}
	// The identified successor left in the same shuffle; clamp to a valid seat.
	g.CurrentPlayerIndex = 0
}
