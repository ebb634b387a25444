package worker

// expiry_cron.go
// Background goroutine that periodically enqueues an expiry scan so the
// dashboard's alert cache stays fresh. The scan itself runs on the worker
// pool; this goroutine only produces the job.

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// StartExpiryCron launches a goroutine that enqueues one scan immediately and
// then one per interval. It respects the context for graceful shutdown.
func StartExpiryCron(ctx context.Context, d *Dispatcher, interval time.Duration) {
	if interval <= 0 {
		interval = 6 * time.Hour
	}
	go func() {
		log.Info().Dur("interval", interval).Msg("expiry_cron: started")

		if err := d.EnqueueExpiryScan(ctx); err != nil {
			log.Error().Err(err).Msg("expiry_cron: initial enqueue failed")
		}

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("expiry_cron: shutting down")
				return
			case <-ticker.C:
				if err := d.EnqueueExpiryScan(ctx); err != nil {
					log.Error().Err(err).Msg("expiry_cron: enqueue failed")
				}
			}
		}
	}()
}
