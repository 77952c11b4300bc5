// Package health reports whether the vault's storage can serve requests.
package health

import (
	"context"
	"database/sql"
	"time"
)

// Result is what the readiness endpoint returns.
type Result struct {
	Healthy bool   `json:"healthy"`
	Storage string `json:"storage"`
	Error   string `json:"error,omitempty"`
}

type Checker interface {
	Check(ctx context.Context) Result
}

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// DBChecker pings the database with its own timeout.
type DBChecker struct {
	db      Pinger
	timeout time.Duration
}

func NewDBChecker(db *sql.DB, timeout time.Duration) *DBChecker {
	return newDBChecker(db, timeout)
}

func newDBChecker(p Pinger, timeout time.Duration) *DBChecker {
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return &DBChecker{db: p, timeout: timeout}
}

func (c *DBChecker) Check(ctx context.Context) Result {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if err := c.db.PingContext(ctx); err != nil {
		// The driver message may carry host names; keep it generic.
		return Result{Healthy: false, Storage: "postgres", Error: "database unreachable"}
	}
	return Result{Healthy: true, Storage: "postgres"}
}

// StaticChecker always reports healthy. It backs the in-memory storage.
type StaticChecker struct {
	Storage string
}

func (c StaticChecker) Check(context.Context) Result {
	return Result{Healthy: true, Storage: c.Storage}
}
