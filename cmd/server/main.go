// cmd/server/main.go
package main

import (
	"log"
	"net/http"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/sirupsen/logrus"

	"github.com/cardtable/uno/internal/auth"
	"github.com/cardtable/uno/internal/cache"
	"github.com/cardtable/uno/internal/database"
	"github.com/cardtable/uno/internal/handlers"
	"github.com/cardtable/uno/internal/middleware"
)

func main() {
	auth.Init()
	database.ConnectDB()

	logger := logrus.New()
	logger.SetLevel(logrus.DebugLevel)

	if err := cache.ConnectRedis(); err != nil {
		// The server runs without Redis; parked notifications and the
		// action archive are simply skipped.
		logger.Warnf("redis unavailable: %v", err)
	}

	mux := http.NewServeMux()

	// user endpoints
	mux.HandleFunc("/user/create", handlers.CreateUserHandler)
	mux.HandleFunc("/user/login", handlers.LoginHandler)

	// game server: in-memory store + per-player connections
	srv := handlers.NewGameServer()

	withLog := middleware.LogMiddleware(logger)

	// game endpoints
	mux.Handle("/game/create", withLog(handlers.CreateGameHandler(srv)))
	mux.Handle("/game/join", withLog(handlers.JoinGameHandler(srv)))
	mux.Handle("/game/event", withLog(handlers.GameEventHandler(srv)))
	mux.Handle("/game/state", withLog(handlers.GameStateHandler(srv)))

	// realtime play
	mux.Handle("/game/ws/", withLog(handlers.GameWSHandler(logger, srv)))

	addr := ":8080"
	if port := os.Getenv("PORT"); port != "" {
		addr = ":" + port
	}
	logger.Infof("Running on %s", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}
