package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// ErrSchemaNotReady is returned by Health when the customers table is missing.
var ErrSchemaNotReady = errors.New("customers table not found, migrations not applied")

// HealthStatus reports database reachability, schema readiness and pool usage.
type HealthStatus struct {
	Status          string `json:"status"`
	ResponseTime    int64  `json:"response_time_ms"`
	SchemaReady     bool   `json:"schema_ready"`
	PoolSaturated   bool   `json:"pool_saturated"`
	OpenConnections int    `json:"open_connections"`
	InUse           int    `json:"in_use"`
	Idle            int    `json:"idle"`
	WaitCount       int64  `json:"wait_count"`
	WaitDuration    int64  `json:"wait_duration_ms"`
	MaxOpenConns    int    `json:"max_open_conns"`
}

const schemaProbe = `SELECT to_regclass('customers') IS NOT NULL`

// Health pings the database and checks that the customers table exists in
// the current search_path. A non-nil error always comes with an unhealthy status.
func Health(ctx context.Context, db *sql.DB) (*HealthStatus, error) {
	start := time.Now()
	status := &HealthStatus{Status: "unhealthy"}

	if err := db.PingContext(ctx); err != nil {
		status.ResponseTime = time.Since(start).Milliseconds()
		return status, err
	}

	if err := db.QueryRowContext(ctx, schemaProbe).Scan(&status.SchemaReady); err != nil {
		status.ResponseTime = time.Since(start).Milliseconds()
		return status, fmt.Errorf("schema probe failed: %w", err)
	}
	status.ResponseTime = time.Since(start).Milliseconds()

	stats := db.Stats()
	status.OpenConnections = stats.OpenConnections
	status.InUse = stats.InUse
	status.Idle = stats.Idle
	status.WaitCount = stats.WaitCount
	status.WaitDuration = stats.WaitDuration.Milliseconds()
	status.MaxOpenConns = stats.MaxOpenConnections
	status.PoolSaturated = stats.MaxOpenConnections > 0 && stats.InUse >= stats.MaxOpenConnections

	if !status.SchemaReady {
		return status, ErrSchemaNotReady
	}
	status.Status = "healthy"
	return status, nil
}
