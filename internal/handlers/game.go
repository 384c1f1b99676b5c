// internal/handlers/game.go
package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/google/uuid"

	"github.com/cardtable/uno/internal/database"
	"github.com/cardtable/uno/internal/game"
)

// statusForCode maps the engine's error taxonomy to HTTP statuses, 1:1. The
// engine reports errors as data; nothing here inspects message text.
func statusForCode(code game.ErrorCode) int {
	switch code {
	case game.CodePlayerNotFound:
		return http.StatusNotFound
	case game.CodeUnknownEvent:
		return http.StatusBadRequest
	case game.CodeGameOver:
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}

// CreateGameHandler creates a fresh game, seats the caller, and returns
// their view of it. POST /game/create.
func CreateGameHandler(gs *GameServer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := requireUser(w, r)
		if !ok {
			return
		}
		if user.ActiveGameID != nil {
			writeError(w, http.StatusBadRequest, "user is already playing a game")
			return
		}

		g := game.NewGame()
		gs.Store.AddGame(g)

		var res game.EventResult
		var view game.StateView
		err := gs.Store.WithGame(g.ID, func(g *game.Game) error {
			res = g.DispatchEvent(game.JoinGame{PlayerID: user.ID})
			if res.Ok() {
				gs.finishDispatch(r.Context(), g, res)
				view = g.View(user.ID)
			}
			return nil
		})
		if err != nil || !res.Ok() {
			writeError(w, http.StatusInternalServerError, "failed to create game")
			return
		}

		writeJSON(w, http.StatusOK, map[string]interface{}{
			"message":   "game created successfully",
			"gameState": view,
		})
	}
}

// JoinGameHandler seats the caller in an existing game by id.
// POST /game/join with {"gameId": "..."}.
func JoinGameHandler(gs *GameServer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := requireUser(w, r)
		if !ok {
			return
		}
		if user.ActiveGameID != nil {
			writeError(w, http.StatusBadRequest, "user is already playing a game")
			return
		}

		var req struct {
			GameID uuid.UUID `json:"gameId"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.GameID == uuid.Nil {
			writeError(w, http.StatusBadRequest, "invalid join payload")
			return
		}

		g, found := gs.resolveGame(r.Context(), req.GameID)
		if !found {
			writeError(w, http.StatusNotFound, "game not found")
			return
		}

		var res game.EventResult
		var view game.StateView
		_ = gs.Store.WithGame(g.ID, func(g *game.Game) error {
			res = g.DispatchEvent(game.JoinGame{PlayerID: user.ID})
			if res.Ok() {
				gs.finishDispatch(r.Context(), g, res)
				view = g.View(user.ID)
			}
			return nil
		})
		if !res.Ok() {
			writeError(w, statusForCode(res.Code), res.Message)
			return
		}

		writeJSON(w, http.StatusOK, map[string]interface{}{
			"message":   "game joined successfully",
			"gameState": view,
		})
	}
}

// GameEventHandler is the single mutation endpoint: it decodes one typed
// event, dispatches it against the caller's active game, and reports the
// result. POST /game/event.
func GameEventHandler(gs *GameServer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := requireUser(w, r)
		if !ok {
			return
		}
		if user.ActiveGameID == nil {
			writeError(w, http.StatusNotFound, "user is not actively playing any game")
			return
		}

		body, err := io.ReadAll(io.LimitReader(r.Body, 1<<16))
		if err != nil {
			writeError(w, http.StatusBadRequest, "failed to read request body")
			return
		}

		g, found := gs.resolveGame(r.Context(), *user.ActiveGameID)
		if !found {
			writeError(w, http.StatusNotFound, "game not found")
			return
		}

		ev, err := game.DecodeEvent(body)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		// The session, not the payload, decides who is acting.
		if ev.Player() != user.ID {
			writeError(w, http.StatusForbidden, "event playerId does not match session")
			return
		}

		var res game.EventResult
		_ = gs.Store.WithGame(g.ID, func(g *game.Game) error {
			res = g.DispatchEvent(ev)
			if res.Ok() {
				gs.finishDispatch(r.Context(), g, res)
			}
			return nil
		})
		gs.logAction(g.ID, user.ID, body, res)

		if !res.Ok() {
			writeError(w, statusForCode(res.Code), res.Message)
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"message": "event propagated to clients",
			"result":  res,
		})
	}
}

// GameStateHandler returns the caller's view of their active game.
// GET /game/state.
func GameStateHandler(gs *GameServer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := requireUser(w, r)
		if !ok {
			return
		}
		if user.ActiveGameID == nil {
			writeError(w, http.StatusNotFound, "user is not actively playing any game")
			return
		}
		g, found := gs.resolveGame(r.Context(), *user.ActiveGameID)
		if !found {
			// Stale pointer: the game is gone, release the session binding.
			if err := database.ClearActiveGame(r.Context(), user.ID); err != nil {
				log.Warnf("failed to clear stale active game for %s: %v", user.ID, err)
			}
			writeError(w, http.StatusNotFound, "game not found")
			return
		}
		var view game.StateView
		_ = gs.Store.WithGame(g.ID, func(g *game.Game) error {
			view = g.View(user.ID)
			return nil
		})
		writeJSON(w, http.StatusOK, view)
	}
}
