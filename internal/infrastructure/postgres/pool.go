package postgres

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// State is the lifecycle state of the shared pool handle. At most one pool
// handle exists per process; it moves Uninitialized -> Ready -> Closed.
type State int32

const (
	StateUninitialized State = iota
	StateReady
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateReady:
		return "ready"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

var (
	// ErrPoolNotReady is returned by Acquire before Init has succeeded.
	ErrPoolNotReady = errors.New("postgres: pool not initialized")

	// ErrPoolClosed is returned by Acquire after Close.
	ErrPoolClosed = errors.New("postgres: pool closed")

	// ErrAlreadyInitialized is returned by Init when the pool is already
	// ready; re-initialization requires an intervening Close.
	ErrAlreadyInitialized = errors.New("postgres: pool already initialized")
)

// ConnectivityError wraps a failure to reach the database during Init.
// It is fatal to startup.
type ConnectivityError struct {
	cause error
}

func (e *ConnectivityError) Error() string {
	return "postgres: cannot reach database: " + e.cause.Error()
}

func (e *ConnectivityError) Unwrap() error { return e.cause }

// Config carries the pool sizing and timeout knobs.
type Config struct {
	DSN string

	// MinConns is the number of warm connections kept open.
	MinConns int32

	// MaxConns bounds the pool; acquisition beyond it waits.
	MaxConns int32

	// CommandTimeout bounds a single acquire+query round-trip.
	CommandTimeout time.Duration

	// IdleConnLifetime recycles connections idle longer than this, so
	// sessions silently dropped by middleboxes do not go stale in the pool.
	IdleConnLifetime time.Duration
}

const initPingTimeout = 5 * time.Second

// Conn is a scoped handle to one live pooled connection. Release returns it
// to the pool; callers must Release on every exit path (defer immediately
// after a successful Acquire).
type Conn interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Release()
}

// ConnPool is the borrowing contract the repository and bootstrapper depend
// on. Manager is the production implementation; tests substitute stubs.
type ConnPool interface {
	Acquire(ctx context.Context) (Conn, error)
	CommandContext(ctx context.Context) (context.Context, context.CancelFunc)
}

// Manager owns the process-wide pgx pool handle. It is safe for concurrent
// use; Acquire and Close may race and the loser observes ErrPoolClosed.
type Manager struct {
	mu             sync.RWMutex
	state          State
	pool           *pgxpool.Pool
	commandTimeout time.Duration
}

var _ ConnPool = (*Manager)(nil)

func NewManager() *Manager {
	return &Manager{state: StateUninitialized}
}

// Init establishes the connection pool and verifies connectivity with a
// bounded ping. It must be called at most once per process lifetime; on
// failure the state stays uninitialized and a *ConnectivityError is
// returned, which the caller should treat as fatal.
func (m *Manager) Init(ctx context.Context, cfg Config) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	switch m.state {
	case StateReady:
		return ErrAlreadyInitialized
	case StateClosed:
		return ErrPoolClosed
	}

	pgxCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return &ConnectivityError{cause: err}
	}
	pgxCfg.MinConns = cfg.MinConns
	pgxCfg.MaxConns = cfg.MaxConns
	pgxCfg.MaxConnIdleTime = cfg.IdleConnLifetime

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return &ConnectivityError{cause: err}
	}

	pingCtx, cancel := context.WithTimeout(ctx, initPingTimeout)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return &ConnectivityError{cause: err}
	}

	m.pool = pool
	m.commandTimeout = cfg.CommandTimeout
	m.state = StateReady
	return nil
}

// Acquire borrows one live connection, blocking until one is free or ctx
// expires. Callers bound ctx via CommandContext so saturation cannot queue
// requests indefinitely.
func (m *Manager) Acquire(ctx context.Context) (Conn, error) {
	m.mu.RLock()
	state, pool := m.state, m.pool
	m.mu.RUnlock()

	switch state {
	case StateUninitialized:
		return nil, ErrPoolNotReady
	case StateClosed:
		return nil, ErrPoolClosed
	}

	conn, err := pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	return conn, nil
}

// CommandContext derives a context bounded by the configured command
// timeout. One deadline covers acquisition plus query execution for a
// single repository operation.
func (m *Manager) CommandContext(ctx context.Context) (context.Context, context.CancelFunc) {
	m.mu.RLock()
	timeout := m.commandTimeout
	m.mu.RUnlock()

	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}

// Ping verifies connectivity on a live pool.
func (m *Manager) Ping(ctx context.Context) error {
	m.mu.RLock()
	state, pool := m.state, m.pool
	m.mu.RUnlock()

	if state != StateReady {
		return ErrPoolNotReady
	}
	return pool.Ping(ctx)
}

// Stat returns a snapshot of pool statistics, or nil before Init.
func (m *Manager) Stat() *pgxpool.Stat {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.pool == nil {
		return nil
	}
	return m.pool.Stat()
}

// State reports the current lifecycle state.
func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// Close drains and closes all pooled connections, waiting for in-flight
// acquisitions to finish. Idempotent; closing an uninitialized or
// already-closed manager is a no-op beyond the state transition.
func (m *Manager) Close() {
	m.mu.Lock()
	pool := m.pool
	m.pool = nil
	m.state = StateClosed
	m.mu.Unlock()

	if pool != nil {
		pool.Close()
	}
}
