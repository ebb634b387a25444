package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/kim-DL/onnuri-inven/internal/service"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	QueueExpiryScan = "jobs:expiry-scan"
)

// Job is the generic envelope for all async tasks.
type Job struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Dispatcher enqueues async jobs into Redis lists.
// The worker pool dequeues them via BRPOP.
type Dispatcher struct {
	rdb *redis.Client
}

func NewDispatcher(rdb *redis.Client) *Dispatcher {
	return &Dispatcher{rdb: rdb}
}

// EnqueueExpiryScan pushes an expiry-scan job to Redis.
func (d *Dispatcher) EnqueueExpiryScan(ctx context.Context) error {
	return d.enqueue(ctx, QueueExpiryScan, "expiry-scan", struct{}{})
}

func (d *Dispatcher) enqueue(ctx context.Context, queue, jobType string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	job := Job{Type: jobType, Payload: data}
	encoded, err := json.Marshal(job)
	if err != nil {
		return err
	}
	return d.rdb.LPush(ctx, queue, encoded).Err()
}

// Handlers holds the services the workers call into.
type Handlers struct {
	Dashboard service.DashboardService
}

// StartWorkerPool launches numWorkers goroutines consuming the job queues.
// Each goroutine blocks on BRPOP — zero CPU when idle.
func StartWorkerPool(ctx context.Context, rdb *redis.Client, numWorkers int, h Handlers) {
	for i := 0; i < numWorkers; i++ {
		go runWorker(ctx, rdb, i, h)
	}
	log.Info().Msgf("worker pool started with %d workers", numWorkers)
}

func runWorker(ctx context.Context, rdb *redis.Client, id int, h Handlers) {
	queues := []string{QueueExpiryScan}
	for {
		select {
		case <-ctx.Done():
			log.Info().Msgf("worker %d shutting down", id)
			return
		default:
			// Blocking pop — waits up to 5s then loops to check ctx
			result, err := rdb.BRPop(ctx, 5*time.Second, queues...).Result()
			if err != nil {
				continue // timeout or context cancelled
			}
			if len(result) < 2 {
				continue
			}
			processJob(ctx, result[0], result[1], h)
		}
	}
}

func processJob(ctx context.Context, queue, raw string, h Handlers) {
	var job Job
	if err := json.Unmarshal([]byte(raw), &job); err != nil {
		log.Error().Str("queue", queue).Err(err).Msg("failed to unmarshal job")
		return
	}

	switch job.Type {
	case "expiry-scan":
		resp, err := h.Dashboard.RefreshExpiryAlerts(ctx)
		if err != nil {
			log.Error().Err(err).Msg("expiry scan failed")
			return
		}
		log.Info().Int("alerts", len(resp.Alerts)).Msg("expiry scan published")
	default:
		log.Warn().Str("type", job.Type).Str("queue", queue).Msg("unknown job type")
	}
}
