package postgres

import (
	"context"
	"fmt"
)

const createUsersTable = `
CREATE TABLE IF NOT EXISTS users (
    id SERIAL PRIMARY KEY,
    name VARCHAR(100) NOT NULL,
    email VARCHAR(100) UNIQUE NOT NULL,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
)`

// EnsureSchema idempotently creates the users table. It is safe to call on
// every startup; any failure (connectivity, privileges) must abort boot,
// since requests would otherwise fail unpredictably later.
func EnsureSchema(ctx context.Context, pool ConnPool) error {
	ctx, cancel := pool.CommandContext(ctx)
	defer cancel()

	conn, err := pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("schema bootstrap: %w", err)
	}
	defer conn.Release()

	if _, err := conn.Exec(ctx, createUsersTable); err != nil {
		return fmt.Errorf("schema bootstrap: %w", err)
	}
	return nil
}
