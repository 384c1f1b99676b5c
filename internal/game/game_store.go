// internal/game/game_store.go
package game

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// GameStore keeps live games in memory and provides the per-game
// serialization the engine requires: dispatches for one game id never
// overlap, while distinct games proceed in parallel.
type GameStore struct {
	mu    sync.Mutex
	games map[uuid.UUID]*storeEntry
}

type storeEntry struct {
	mu   sync.Mutex
	game *Game
}

func NewGameStore() *GameStore {
	return &GameStore{
		games: make(map[uuid.UUID]*storeEntry),
	}
}

// AddGame registers a live game.
func (s *GameStore) AddGame(g *Game) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.games[g.ID] = &storeEntry{game: g}
}

// GetGame returns the live game for id, if present.
func (s *GameStore) GetGame(id uuid.UUID) (*Game, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.games[id]
	if !ok {
		return nil, false
	}
	return e.game, true
}

// DeleteGame drops a game from the store, e.g. once finished and empty.
func (s *GameStore) DeleteGame(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.games, id)
}

// WithGame runs fn with exclusive access to the game. All dispatches must go
// through here; holding the per-game lock for the whole of fn lets callers
// dispatch and snapshot as one atomic unit.
func (s *GameStore) WithGame(id uuid.UUID, fn func(*Game) error) error {
	s.mu.Lock()
	e, ok := s.games[id]
	s.mu.Unlock()
	if !ok {
		return fmt.Errorf("game %s not found", id)
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return fn(e.game)
}
