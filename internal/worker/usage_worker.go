package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/acadex/gradepoint-backend/internal/config"
	"github.com/acadex/gradepoint-backend/internal/model"
	"github.com/acadex/gradepoint-backend/internal/repository"
)

const (
	UsageBatchSize    = 100
	UsageBatchTimeout = 2 * time.Second
	UsagePollTimeout  = 1 * time.Second
)

// UsageWorker drains the telemetry queue and folds the events into the
// usage_daily table.
type UsageWorker struct {
	usageRepo *repository.UsageRepository
	rdb       *redis.Client
	log       zerolog.Logger
}

func NewUsageWorker(usageRepo *repository.UsageRepository, rdb *redis.Client, log zerolog.Logger) *UsageWorker {
	return &UsageWorker{
		usageRepo: usageRepo,
		rdb:       rdb,
		log:       log.With().Str("component", "usage_worker").Logger(),
	}
}

// ----------------------------------------------------------------
// Worker loop with batching
// ----------------------------------------------------------------

func (w *UsageWorker) Start(ctx context.Context) {
	w.log.Info().Msg("UsageWorker started")

	batch := make([]*model.UsageEvent, 0, UsageBatchSize)
	lastFlush := time.Now()

	for {
		// Should flush?
		if len(batch) > 0 &&
			(len(batch) >= UsageBatchSize || time.Since(lastFlush) >= UsageBatchTimeout) {

			w.flushSafe(ctx, batch)
			batch = batch[:0]
			lastFlush = time.Now()
		}

		select {
		case <-ctx.Done():
			w.log.Info().Msg("Shutdown requested. Flushing remaining batch...")
			w.flushSafe(context.Background(), batch)
			return

		default:
			item, err := w.rdb.BLPop(ctx, UsagePollTimeout, config.WorkerKey.UsageEventsQueue).Result()
			if err != nil {
				if err != redis.Nil && ctx.Err() == nil {
					w.log.Error().Err(err).Msg("BLPop error")
				}
				continue
			}

			if len(item) < 2 {
				continue
			}

			var ev model.UsageEvent
			if err := json.Unmarshal([]byte(item[1]), &ev); err != nil {
				w.log.Error().Err(err).Msg("Invalid JSON payload")
				continue
			}

			if ev.Kind == "" || ev.Source == "" {
				w.log.Debug().Msg("Dropping event without kind/source")
				continue
			}
			if ev.OccurredAt.IsZero() {
				ev.OccurredAt = time.Now().UTC()
			}

			batch = append(batch, &ev)
		}
	}
}

// ----------------------------------------------------------------
// Batch Upsert Wrapper
// ----------------------------------------------------------------

func (w *UsageWorker) flushSafe(ctx context.Context, batch []*model.UsageEvent) {
	if len(batch) == 0 {
		return
	}

	cells := aggregate(batch)
	incs := make([]model.UsageIncrement, 0, len(cells))
	for _, cell := range cells {
		incs = append(incs, cell.inc)
	}

	if err := w.usageRepo.BulkIncrement(ctx, incs); err != nil {
		w.log.Warn().Err(err).Msg("bulk usage upsert failed, using fallback")

		for _, cell := range cells {
			if err := w.usageRepo.Increment(ctx, cell.inc); err != nil {
				w.log.Error().Err(err).Msg("single usage upsert failed, requeueing events")
				for _, ev := range cell.events {
					raw, _ := json.Marshal(ev)
					w.rdb.RPush(ctx, config.WorkerKey.UsageEventsQueue, raw)
				}
			}
		}
		return
	}

	w.log.Debug().
		Int("events", len(batch)).
		Int("cells", len(cells)).
		Msg("usage batch applied")
}

// ----------------------------------------------------------------
// Aggregation into (day, kind, source) cells
// ----------------------------------------------------------------

type usageCell struct {
	inc    model.UsageIncrement
	events []*model.UsageEvent
}

// aggregate folds raw events into one increment per (day, kind, source),
// preserving first-seen order. The original events ride along so a failed
// cell can be requeued whole.
func aggregate(batch []*model.UsageEvent) []*usageCell {
	type cellKey struct {
		day    time.Time
		kind   string
		source string
	}

	cells := make(map[cellKey]*usageCell)
	order := make([]*usageCell, 0, len(batch))

	for _, ev := range batch {
		k := cellKey{
			day:    ev.OccurredAt.UTC().Truncate(24 * time.Hour),
			kind:   ev.Kind,
			source: ev.Source,
		}

		cell, ok := cells[k]
		if !ok {
			cell = &usageCell{inc: model.UsageIncrement{
				Day:    k.day,
				Kind:   k.kind,
				Source: k.source,
			}}
			cells[k] = cell
			order = append(order, cell)
		}

		cell.inc.Count++
		cell.events = append(cell.events, ev)
	}

	return order
}
