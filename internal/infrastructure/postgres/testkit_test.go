package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Test stubs for the ConnPool / Conn contracts so repository and bootstrap
// behavior can be exercised without a live database.

type stubPool struct {
	conn       *stubConn
	acquireErr error
	acquires   int
}

func (p *stubPool) Acquire(_ context.Context) (Conn, error) {
	p.acquires++
	if p.acquireErr != nil {
		return nil, p.acquireErr
	}
	return p.conn, nil
}

func (p *stubPool) CommandContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithCancel(ctx)
}

type stubConn struct {
	execFunc     func(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	queryFunc    func(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	queryRowFunc func(ctx context.Context, sql string, args ...any) pgx.Row
	released     int
}

func (c *stubConn) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if c.execFunc == nil {
		return pgconn.CommandTag{}, fmt.Errorf("stubConn: Exec not stubbed")
	}
	return c.execFunc(ctx, sql, args...)
}

func (c *stubConn) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	if c.queryFunc == nil {
		return nil, fmt.Errorf("stubConn: Query not stubbed")
	}
	return c.queryFunc(ctx, sql, args...)
}

func (c *stubConn) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if c.queryRowFunc == nil {
		return &stubRow{err: fmt.Errorf("stubConn: QueryRow not stubbed")}
	}
	return c.queryRowFunc(ctx, sql, args...)
}

func (c *stubConn) Release() { c.released++ }

// stubRow implements pgx.Row over fixed values.
type stubRow struct {
	values []any
	err    error
}

func (r *stubRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	if len(dest) != len(r.values) {
		return fmt.Errorf("stubRow: scan dest count %d != value count %d", len(dest), len(r.values))
	}
	for i, v := range r.values {
		if err := assign(dest[i], v); err != nil {
			return err
		}
	}
	return nil
}

// stubRows implements pgx.Rows over fixed rows.
type stubRows struct {
	rows [][]any
	idx  int
	err  error
}

func (r *stubRows) Close()                                       {}
func (r *stubRows) Err() error                                   { return r.err }
func (r *stubRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (r *stubRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *stubRows) RawValues() [][]byte                          { return nil }
func (r *stubRows) Conn() *pgx.Conn                              { return nil }

func (r *stubRows) Next() bool {
	if r.idx >= len(r.rows) {
		return false
	}
	r.idx++
	return true
}

func (r *stubRows) Scan(dest ...any) error {
	row := r.rows[r.idx-1]
	if len(dest) != len(row) {
		return fmt.Errorf("stubRows: scan dest count %d != column count %d", len(dest), len(row))
	}
	for i, v := range row {
		if err := assign(dest[i], v); err != nil {
			return err
		}
	}
	return nil
}

func (r *stubRows) Values() ([]any, error) {
	return r.rows[r.idx-1], nil
}

func assign(dst, src any) error {
	switch d := dst.(type) {
	case *int:
		v, ok := src.(int)
		if !ok {
			return fmt.Errorf("assign: want int, got %T", src)
		}
		*d = v
	case *string:
		v, ok := src.(string)
		if !ok {
			return fmt.Errorf("assign: want string, got %T", src)
		}
		*d = v
	case *bool:
		v, ok := src.(bool)
		if !ok {
			return fmt.Errorf("assign: want bool, got %T", src)
		}
		*d = v
	case *time.Time:
		v, ok := src.(time.Time)
		if !ok {
			return fmt.Errorf("assign: want time.Time, got %T", src)
		}
		*d = v
	default:
		return fmt.Errorf("assign: unsupported dest type %T", dst)
	}
	return nil
}
