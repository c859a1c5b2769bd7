package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/acadex/gradepoint-backend/internal/model"
)

type UsageRepository struct {
	pool *pgxpool.Pool
}

func NewUsageRepository(pool *pgxpool.Pool) *UsageRepository {
	return &UsageRepository{pool: pool}
}

// BulkIncrement applies a batch of counter deltas in a single round trip
// using UNNEST, upserting the (day, kind, source) cells.
func (r *UsageRepository) BulkIncrement(ctx context.Context, incs []model.UsageIncrement) error {
	n := len(incs)
	if n == 0 {
		return nil
	}

	days := make([]time.Time, 0, n)
	kinds := make([]string, 0, n)
	sources := make([]string, 0, n)
	counts := make([]int64, 0, n)

	for _, inc := range incs {
		days = append(days, inc.Day)
		kinds = append(kinds, inc.Kind)
		sources = append(sources, inc.Source)
		counts = append(counts, inc.Count)
	}

	query := `
		INSERT INTO usage_daily (day, kind, source, count)
		SELECT u.day, u.kind, u.source, u.count
		FROM UNNEST(
			$1::date[],
			$2::text[],
			$3::text[],
			$4::bigint[]
		) AS u (day, kind, source, count)
		ON CONFLICT (day, kind, source)
		DO UPDATE SET count = usage_daily.count + EXCLUDED.count,
		              updated_at = NOW()
	`

	_, err := r.pool.Exec(ctx, query, days, kinds, sources, counts)
	return err
}

// Increment applies one counter delta. Used as the fallback when a bulk
// apply fails.
func (r *UsageRepository) Increment(ctx context.Context, inc model.UsageIncrement) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO usage_daily (day, kind, source, count)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (day, kind, source)
		 DO UPDATE SET count = usage_daily.count + EXCLUDED.count,
		               updated_at = NOW()`,
		inc.Day, inc.Kind, inc.Source, inc.Count)
	return err
}

// Report returns the aggregated rows for the trailing window of days,
// newest day first, along with the total event count across the window.
func (r *UsageRepository) Report(ctx context.Context, days int) ([]model.UsageDay, int64, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT day, kind, source, count
		 FROM usage_daily
		 WHERE day >= CURRENT_DATE - ($1::int - 1)
		 ORDER BY day DESC, kind ASC, source ASC`,
		days)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var (
		report []model.UsageDay
		total  int64
	)
	for rows.Next() {
		var (
			day time.Time
			row model.UsageDay
		)
		if err := rows.Scan(&day, &row.Kind, &row.Source, &row.Count); err != nil {
			return nil, 0, err
		}
		row.Day = day.Format("2006-01-02")
		report = append(report, row)
		total += row.Count
	}
	return report, total, rows.Err()
}
