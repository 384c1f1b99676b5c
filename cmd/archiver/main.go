// cmd/archiver/main.go is an asynchronous archiver service that pops action
// records from the Redis queue and persists them to PostgreSQL, giving every
// game a durable event log independent of the serving process.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/redis/go-redis/v9"

	"github.com/cardtable/uno/internal/cache"
	"github.com/cardtable/uno/internal/database"
)

// ArchiverService drains the Redis action queue in batches and flushes them
// to the database.
type ArchiverService struct {
	redisClient *redis.Client
	batchSize   int
	flushDelay  time.Duration

	batchMu sync.Mutex
	batch   []cache.GameActionRecord

	ctx      context.Context
	cancelFn context.CancelFunc
}

// NewArchiverService constructs an ArchiverService from environment
// variables or defaults.
func NewArchiverService() *ArchiverService {
	batchSize := getEnvInt("ARCHIVER_BATCH_SIZE", 20)
	flushMs := getEnvInt("ARCHIVER_FLUSH_MS", 500)

	rdb := redis.NewClient(&redis.Options{
		Addr: getEnv("REDIS_ADDR", "localhost:6379"),
	})

	ctx, cancel := context.WithCancel(context.Background())
	return &ArchiverService{
		redisClient: rdb,
		batchSize:   batchSize,
		flushDelay:  time.Duration(flushMs) * time.Millisecond,
		batch:       make([]cache.GameActionRecord, 0, batchSize),
		ctx:         ctx,
		cancelFn:    cancel,
	}
}

// Run connects to the database and drains the queue until the context ends.
func (as *ArchiverService) Run() {
	database.ConnectDB()

	go as.readRedisLoop()

	log.Println("uno-archiver service started.")
	<-as.ctx.Done()
	as.flushBatch()
	log.Println("uno-archiver shutting down.")
}

// readRedisLoop pops records with BLPop, batches them, and flushes on a
// timer or when the batch fills.
func (as *ArchiverService) readRedisLoop() {
	ticker := time.NewTicker(as.flushDelay)
	defer ticker.Stop()

	queueName := getEnv("ACTION_QUEUE_NAME", cache.DefaultActionQueue)

	for {
		select {
		case <-as.ctx.Done():
			return

		case <-ticker.C:
			as.flushBatch()

		default:
			res, err := as.redisClient.BLPop(as.ctx, 3*time.Second, queueName).Result()
			if err != nil && !errors.Is(err, redis.Nil) {
				if as.ctx.Err() != nil {
					return
				}
				log.Printf("[ERROR] BLPop: %v", err)
				continue
			}
			if len(res) < 2 {
				continue
			}

			var record cache.GameActionRecord
			if err := json.Unmarshal([]byte(res[1]), &record); err != nil {
				log.Printf("invalid action record: %v", err)
				continue
			}
			as.appendToBatch(record)
		}
	}
}

func (as *ArchiverService) appendToBatch(record cache.GameActionRecord) {
	as.batchMu.Lock()
	as.batch = append(as.batch, record)
	full := len(as.batch) >= as.batchSize
	as.batchMu.Unlock()
	if full {
		as.flushBatch()
	}
}

func (as *ArchiverService) flushBatch() {
	as.batchMu.Lock()
	if len(as.batch) == 0 {
		as.batchMu.Unlock()
		return
	}
	batchCopy := make([]cache.GameActionRecord, len(as.batch))
	copy(batchCopy, as.batch)
	as.batch = as.batch[:0]
	as.batchMu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := database.InsertGameActions(ctx, batchCopy); err != nil {
		log.Printf("[ERROR] flushBatch: %v", err)
		return
	}
	log.Printf("Flushed %d actions to DB.", len(batchCopy))
}

func main() {
	as := NewArchiverService()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt)
	go func() {
		<-sigs
		as.cancelFn()
	}()

	as.Run()
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

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
