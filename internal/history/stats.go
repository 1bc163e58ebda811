package history

import (
	"context"
	"fmt"
	"time"
)

// Stats contains aggregated conversion statistics
type Stats struct {
	TotalConversions int
	Succeeded        int
	Failed           int
	SuccessRate      float64
	AvgDuration      time.Duration
	// PerFormat counts successful conversions by target format
	PerFormat map[string]int
}

// Stats aggregates conversion history into summary statistics.
func (s *Store) Stats(ctx context.Context) (*Stats, error) {
	stats := &Stats{
		PerFormat: make(map[string]int),
	}

	row := s.db.QueryRowContext(ctx, `SELECT
		COUNT(*),
		COALESCE(SUM(success), 0),
		COALESCE(AVG(duration_ms), 0)
		FROM conversions`)

	var avgMs float64
	if err := row.Scan(&stats.TotalConversions, &stats.Succeeded, &avgMs); err != nil {
		return nil, fmt.Errorf("aggregate conversions: %w", err)
	}
	stats.Failed = stats.TotalConversions - stats.Succeeded
	stats.AvgDuration = time.Duration(avgMs) * time.Millisecond
	if stats.TotalConversions > 0 {
		stats.SuccessRate = (float64(stats.Succeeded) / float64(stats.TotalConversions)) * 100
	}

	rows, err := s.db.QueryContext(ctx, `SELECT target_format, COUNT(*)
		FROM conversions WHERE success = 1
		GROUP BY target_format`)
	if err != nil {
		return nil, fmt.Errorf("query per-format counts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var format string
		var count int
		if err := rows.Scan(&format, &count); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		stats.PerFormat[format] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}

	return stats, nil
}
