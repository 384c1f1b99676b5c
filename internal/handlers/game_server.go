// internal/handlers/game_server.go
package handlers

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/google/uuid"

	"github.com/cardtable/uno/internal/cache"
	"github.com/cardtable/uno/internal/database"
	"github.com/cardtable/uno/internal/game"
)

// GameServer owns the live game store and the per-player connection registry.
// It is the serialization point the engine's concurrency contract requires:
// every dispatch for a game goes through Store.WithGame.
type GameServer struct {
	Store *game.GameStore

	connMu sync.Mutex
	conns  map[uuid.UUID]*websocket.Conn
}

func NewGameServer() *GameServer {
	return &GameServer{
		Store: game.NewGameStore(),
		conns: make(map[uuid.UUID]*websocket.Conn),
	}
}

// RegisterConn binds a live websocket to a player for fan-out.
func (gs *GameServer) RegisterConn(playerID uuid.UUID, c *websocket.Conn) {
	gs.connMu.Lock()
	defer gs.connMu.Unlock()
	gs.conns[playerID] = c
}

// UnregisterConn drops the player's connection if it is still the one given.
func (gs *GameServer) UnregisterConn(playerID uuid.UUID, c *websocket.Conn) {
	gs.connMu.Lock()
	defer gs.connMu.Unlock()
	if gs.conns[playerID] == c {
		delete(gs.conns, playerID)
	}
}

func (gs *GameServer) conn(playerID uuid.UUID) (*websocket.Conn, bool) {
	gs.connMu.Lock()
	defer gs.connMu.Unlock()
	c, ok := gs.conns[playerID]
	return c, ok
}

// resolveGame finds the live game, falling back to the stored snapshot. A
// game loaded from storage is rehydrated into a dispatch-capable value and
// cached in the store, so a restarted instance resumes games transparently.
func (gs *GameServer) resolveGame(ctx context.Context, id uuid.UUID) (*game.Game, bool) {
	if g, ok := gs.Store.GetGame(id); ok {
		return g, true
	}
	g, err := database.LoadGame(ctx, id)
	if err != nil {
		if err != database.ErrGameNotFound {
			log.Warnf("failed to load game %s from storage: %v", id, err)
		}
		return nil, false
	}
	gs.Store.AddGame(g)
	return g, true
}

// propagateChanges sends each seated player their own view of the settled
// state. Players without a live connection get the view parked in Redis for
// their next sync.
func (gs *GameServer) propagateChanges(ctx context.Context, g *game.Game) {
	views := make(map[uuid.UUID]game.StateView, len(g.Players))
	for _, p := range g.Players {
		views[p.ID] = g.View(p.ID)
	}

	for playerID, view := range views {
		if c, ok := gs.conn(playerID); ok {
			wctx, cancel := context.WithTimeout(ctx, 5*time.Second)
			err := wsjson.Write(wctx, c, view)
			cancel()
			if err == nil {
				continue
			}
			log.Warnf("failed to push state to player %s: %v", playerID, err)
		}
		if cache.Rdb == nil {
			continue
		}
		if err := cache.EnqueueNotification(ctx, playerID, view); err != nil {
			log.Warnf("failed to park state for player %s: %v", playerID, err)
		}
	}
}

// applySideEffects executes the engine's side-effect requests against the
// session store. The engine never touches storage itself.
func (gs *GameServer) applySideEffects(ctx context.Context, effects []game.SideEffect) {
	for _, eff := range effects {
		var err error
		switch e := eff.(type) {
		case game.BindActiveGame:
			err = database.SetActiveGame(ctx, e.PlayerID, e.GameID)
		case game.ClearActiveGame:
			err = database.ClearActiveGame(ctx, e.PlayerID)
		}
		if err != nil {
			log.Warnf("failed to apply side effect %T: %v", eff, err)
		}
	}
}

// logAction ships the dispatched event and its outcome to the archiver queue.
func (gs *GameServer) logAction(gameID, actorID uuid.UUID, rawEvent []byte, res game.EventResult) {
	if cache.Rdb == nil {
		return
	}
	rec := cache.GameActionRecord{
		GameID:     gameID,
		ActorID:    actorID,
		ResultKind: string(res.Kind),
		ErrorCode:  string(res.Code),
		RawEvent:   json.RawMessage(rawEvent),
		Timestamp:  time.Now().UnixMilli(),
	}
	var env struct {
		Kind string `json:"kind"`
	}
	if json.Unmarshal(rawEvent, &env) == nil {
		rec.EventKind = env.Kind
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := cache.PublishGameAction(ctx, rec); err != nil {
			log.Warnf("failed to publish game action for %s: %v", gameID, err)
		}
	}()
}

// finishDispatch runs everything a successful dispatch owes the outside
// world: session side effects, snapshot persistence, player fan-out.
func (gs *GameServer) finishDispatch(ctx context.Context, g *game.Game, res game.EventResult) {
	gs.applySideEffects(ctx, res.SideEffects)
	if err := database.SaveGameSnapshot(ctx, g.Snapshot()); err != nil {
		log.Errorf("failed to persist game %s: %v", g.ID, err)
	}
	gs.propagateChanges(ctx, g)
}
