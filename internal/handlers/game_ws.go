// internal/handlers/game_ws.go
package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/cardtable/uno/internal/cache"
	"github.com/cardtable/uno/internal/game"
	"github.com/cardtable/uno/internal/middleware"
)

// GameWSHandler upgrades the connection for realtime play on one game:
// incoming messages are game events, outgoing messages are per-player state
// views pushed after every successful dispatch. GET /game/ws/{game_id}.
func GameWSHandler(logger *logrus.Logger, gs *GameServer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		gameIDStr := strings.TrimPrefix(r.URL.Path, "/game/ws/")
		gameID, err := uuid.Parse(strings.TrimSuffix(gameIDStr, "/"))
		if err != nil {
			http.Error(w, "invalid game_id format", http.StatusBadRequest)
			return
		}

		g, found := gs.resolveGame(r.Context(), gameID)
		if !found {
			http.Error(w, "game not found", http.StatusNotFound)
			return
		}

		userID, err := EnsureEphemeralUser(w, r)
		if err != nil {
			logger.Warnf("user authentication failed for game %s: %v", gameID, err)
			http.Error(w, "authentication failed", http.StatusForbidden)
			return
		}

		c, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			Subprotocols:   []string{"game"},
			OriginPatterns: []string{"*"},
		})
		if err != nil {
			logger.Warnf("websocket accept error for game %s: %v", gameID, err)
			return
		}
		defer c.Close(websocket.StatusInternalError, "internal error")

		if c.Subprotocol() != "game" {
			c.Close(websocket.StatusPolicyViolation, "client must use the 'game' subprotocol")
			return
		}
		middleware.LogWebSocketConnect(logger, r.RemoteAddr, r.URL.Path)

		gs.RegisterConn(userID, c)
		defer gs.UnregisterConn(userID, c)

		ctx := context.Background()

		// Catch the player up: parked notifications first, then the live view.
		if cache.Rdb != nil {
			parked, err := cache.DrainNotifications(ctx, userID)
			if err != nil {
				logger.Warnf("failed to drain notifications for %s: %v", userID, err)
			}
			for _, msg := range parked {
				wctx, cancel := context.WithTimeout(ctx, 5*time.Second)
				err := c.Write(wctx, websocket.MessageText, msg)
				cancel()
				if err != nil {
					middleware.LogWebSocketDisconnect(logger, r.RemoteAddr, r.URL.Path, err)
					return
				}
			}
		}
		var view game.StateView
		_ = gs.Store.WithGame(g.ID, func(g *game.Game) error {
			view = g.View(userID)
			return nil
		})
		wctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		err = wsjson.Write(wctx, c, view)
		cancel()
		if err != nil {
			middleware.LogWebSocketDisconnect(logger, r.RemoteAddr, r.URL.Path, err)
			return
		}

		for {
			_, data, err := c.Read(ctx)
			if err != nil {
				middleware.LogWebSocketDisconnect(logger, r.RemoteAddr, r.URL.Path, err)
				return
			}

			ev, err := game.DecodeEvent(data)
			if err != nil {
				werr := wsjson.Write(ctx, c, game.EventResult{
					Kind:    game.ResultError,
					Code:    game.CodeUnknownEvent,
					Message: err.Error(),
				})
				if werr != nil {
					return
				}
				continue
			}
			if ev.Player() != userID {
				werr := wsjson.Write(ctx, c, game.EventResult{
					Kind:    game.ResultError,
					Code:    game.CodeUnknownEvent,
					Message: "event playerId does not match session",
				})
				if werr != nil {
					return
				}
				continue
			}

			var res game.EventResult
			_ = gs.Store.WithGame(g.ID, func(g *game.Game) error {
				res = g.DispatchEvent(ev)
				if res.Ok() {
					gs.finishDispatch(ctx, g, res)
				}
				return nil
			})
			gs.logAction(g.ID, userID, data, res)

			if !res.Ok() {
				if werr := wsjson.Write(ctx, c, res); werr != nil {
					return
				}
			}
		}
	}
}
