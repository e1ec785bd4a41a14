//go:build ignore

package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type scenarioRunEvent struct {
	RequestID uuid.UUID          `json:"request_id"`
	Policy    string             `json:"policy,omitempty"`
	Mode      string             `json:"mode"`
	Basins    []string           `json:"basins,omitempty"`
	Regions   []string           `json:"regions,omitempty"`
	Weights   map[string]float64 `json:"weights,omitempty"`
	Limit     string             `json:"limit,omitempty"`
}

func main() {
	redisAddr := flag.String("redis", "localhost:6379", "Redis address for streams")
	mode := flag.String("mode", "basin", "AOI mode")
	basins := flag.String("basins", "Neuse,Tar-Pamlico", "comma-separated basin names")
	limit := flag.String("limit", "5", "top-N")
	flag.Parse()

	client := redis.NewClient(&redis.Options{Addr: *redisAddr})
	defer client.Close()

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	event := scenarioRunEvent{
		RequestID: uuid.New(),
		Mode:      *mode,
		Basins:    strings.Split(*basins, ","),
		Weights:   map[string]float64{"carbon": 1, "biodiversity": 2},
		Limit:     *limit,
	}

	data, err := json.Marshal(event)
	if err != nil {
		log.Fatalf("Failed to marshal event: %v", err)
	}

	id, err := client.XAdd(ctx, &redis.XAddArgs{
		Stream: "stream:scenario:run",
		Values: map[string]interface{}{"data": string(data)},
	}).Result()
	if err != nil {
		log.Fatalf("Failed to publish event: %v", err)
	}

	fmt.Printf("Published %s (request %s)\n", id, event.RequestID)
	fmt.Println("Waiting for stream:scenario:done...")

	deadline := time.Now().Add(30 * time.Second)
	lastID := "0"
	for time.Now().Before(deadline) {
		res, err := client.XRead(ctx, &redis.XReadArgs{
			Streams: []string{"stream:scenario:done", lastID},
			Count:   10,
			Block:   time.Second,
		}).Result()
		if err != nil && err != redis.Nil {
			log.Fatalf("Failed to read: %v", err)
		}

		for _, s := range res {
			for _, msg := range s.Messages {
				lastID = msg.ID
				raw, _ := msg.Values["data"].(string)

				var done struct {
					RequestID uuid.UUID       `json:"request_id"`
					Result    json.RawMessage `json:"result"`
					Error     string          `json:"error"`
				}
				if json.Unmarshal([]byte(raw), &done) != nil || done.RequestID != event.RequestID {
					continue
				}
				if done.Error != "" {
					fmt.Printf("Scenario failed: %s\n", done.Error)
					return
				}
				var pretty map[string]interface{}
				_ = json.Unmarshal(done.Result, &pretty)
				out, _ := json.MarshalIndent(pretty["top"], "", "  ")
				fmt.Printf("Top units:\n%s\n", out)
				return
			}
		}
	}
	fmt.Println("Timeout waiting for response")
}
