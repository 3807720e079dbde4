// Copyright (c) 2025 Vida com Deus
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package dbstats collects storage statistics straight from PostgreSQL for
// the operator-facing admin commands. It complements the backend's storage
// metrics endpoint with a direct view of the database the platform runs on.
package dbstats

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// TableSize is the on-disk footprint of one relation.
type TableSize struct {
	Schema     string
	Name       string
	TotalBytes int64
}

// Report is a point-in-time storage snapshot of the connected database.
type Report struct {
	Database      string
	DatabaseBytes int64
	Connections   int
	Tables        []TableSize
	CollectedAt   time.Time
}

// DatabaseGB returns the database size in gigabytes.
func (r *Report) DatabaseGB() float64 {
	return float64(r.DatabaseBytes) / (1024 * 1024 * 1024)
}

// Connect opens a pgx pool for the given DSN and verifies connectivity.
func Connect(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("open connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("verify connection: %w", err)
	}
	return pool, nil
}

// Collect gathers the storage report: database size, connection count and
// the largest user tables (up to topTables entries).
func Collect(ctx context.Context, pool *pgxpool.Pool, topTables int) (*Report, error) {
	if topTables <= 0 {
		topTables = 10
	}

	report := &Report{CollectedAt: time.Now().UTC()}

	row := pool.QueryRow(ctx,
		`SELECT current_database(), pg_database_size(current_database())`)
	if err := row.Scan(&report.Database, &report.DatabaseBytes); err != nil {
		return nil, fmt.Errorf("query database size: %w", err)
	}

	row = pool.QueryRow(ctx,
		`SELECT count(*) FROM pg_stat_activity WHERE datname = current_database()`)
	if err := row.Scan(&report.Connections); err != nil {
		return nil, fmt.Errorf("query connection count: %w", err)
	}

	rows, err := pool.Query(ctx,
		`SELECT schemaname, relname, pg_total_relation_size(relid)
		   FROM pg_catalog.pg_stat_user_tables
		  ORDER BY pg_total_relation_size(relid) DESC
		  LIMIT $1`, topTables)
	if err != nil {
		return nil, fmt.Errorf("query table sizes: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var t TableSize
		if err := rows.Scan(&t.Schema, &t.Name, &t.TotalBytes); err != nil {
			return nil, fmt.Errorf("scan table size: %w", err)
		}
		report.Tables = append(report.Tables, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate table sizes: %w", err)
	}

	return report, nil
}

// FormatBytes renders a byte count in a human-readable unit.
func FormatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
