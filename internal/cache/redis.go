// internal/cache/redis.go
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Rdb is the global Redis client. Connect it once at application startup.
var Rdb *redis.Client

// DefaultActionQueue is the Redis list the archiver drains game actions from.
var DefaultActionQueue = "uno_actions"

// GameActionRecord is one dispatched event as seen by the archiver service.
type GameActionRecord struct {
	GameID     uuid.UUID       `json:"game_id"`
	ActorID    uuid.UUID       `json:"actor_id"`
	EventKind  string          `json:"event_kind"`
	ResultKind string          `json:"result_kind"`
	ErrorCode  string          `json:"error_code,omitempty"`
	RawEvent   json.RawMessage `json:"raw_event,omitempty"`
	Timestamp  int64           `json:"timestamp"`
}

// ConnectRedis initializes the global Redis client with environment variables:
//   - REDIS_ADDR (default "localhost:6379")
//   - REDIS_DB (optional, default 0)
func ConnectRedis() error {
	addr := getEnv("REDIS_ADDR", "localhost:6379")
	dbIdx := getEnvInt("REDIS_DB", 0)

	Rdb = redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   dbIdx,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := Rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to connect to Redis at %s: %w", addr, err)
	}
	return nil
}

// PublishGameAction pushes one action record onto the archiver queue.
func PublishGameAction(ctx context.Context, record GameActionRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal GameActionRecord: %w", err)
	}

	queueName := getEnv("ACTION_QUEUE_NAME", DefaultActionQueue)
	if err := Rdb.RPush(ctx, queueName, data).Err(); err != nil {
		return fmt.Errorf("failed to RPush to Redis list '%s': %w", queueName, err)
	}
	return nil
}

// EnqueueNotification parks a state view for a player who has no live
// connection, so they can catch up on reconnect. Each player has their own
// list, capped to the most recent entries.
func EnqueueNotification(ctx context.Context, playerID uuid.UUID, view interface{}) error {
	data, err := json.Marshal(view)
	if err != nil {
		return fmt.Errorf("failed to marshal state view: %w", err)
	}
	key := notificationKey(playerID)
	pipe := Rdb.TxPipeline()
	pipe.RPush(ctx, key, data)
	pipe.LTrim(ctx, key, -50, -1)
	pipe.Expire(ctx, key, 24*time.Hour)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to enqueue notification for %s: %w", playerID, err)
	}
	return nil
}

// DrainNotifications pops every parked state view for the player.
func DrainNotifications(ctx context.Context, playerID uuid.UUID) ([]json.RawMessage, error) {
	key := notificationKey(playerID)
	vals, err := Rdb.LRange(ctx, key, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read notifications for %s: %w", playerID, err)
	}
	if err := Rdb.Del(ctx, key).Err(); err != nil {
		return nil, fmt.Errorf("failed to clear notifications for %s: %w", playerID, err)
	}
	out := make([]json.RawMessage, len(vals))
	for i, v := range vals {
		out[i] = json.RawMessage(v)
	}
	return out, nil
}

func notificationKey(playerID uuid.UUID) string {
	return "uno_notify:" + playerID.String()
}

// getEnv is a helper to read an environment variable or return a default value.
func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

// getEnvInt is a helper to parse an environment variable as integer, else a default value.
func getEnvInt(key string, def int) int {
	s := os.Getenv(key)
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}
