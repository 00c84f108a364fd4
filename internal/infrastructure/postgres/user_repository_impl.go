package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/poolmvp/usersvc/internal/domain/entity"
	"github.com/poolmvp/usersvc/internal/domain/repository"
)

const uniqueViolationCode = "23505"

// UserRepository executes the four user operations over borrowed pooled
// connections. Every operation follows the same discipline: bound the
// context by the command timeout, acquire, query, release on all paths.
type UserRepository struct {
	pool ConnPool
}

func NewUserRepository(pool ConnPool) *UserRepository {
	return &UserRepository{pool: pool}
}

var _ repository.UserRepository = (*UserRepository)(nil)

func (r *UserRepository) List(ctx context.Context) ([]*entity.User, error) {
	ctx, cancel := r.pool.CommandContext(ctx)
	defer cancel()

	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	rows, err := conn.Query(ctx, `
		SELECT id, name, email, created_at
		FROM users
		ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]*entity.User, 0)
	for rows.Next() {
		u := &entity.User{}
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.CreatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int) (*entity.User, error) {
	ctx, cancel := r.pool.CommandContext(ctx)
	defer cancel()

	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	u := &entity.User{}
	row := conn.QueryRow(ctx, `
		SELECT id, name, email, created_at
		FROM users
		WHERE id = $1
	`, id)

	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

func (r *UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	ctx, cancel := r.pool.CommandContext(ctx)
	defer cancel()

	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return false, err
	}
	defer conn.Release()

	var exists bool
	row := conn.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, email)
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *UserRepository) Create(ctx context.Context, name, email string) (*entity.User, error) {
	ctx, cancel := r.pool.CommandContext(ctx)
	defer cancel()

	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	u := &entity.User{}
	row := conn.QueryRow(ctx, `
		INSERT INTO users (name, email)
		VALUES ($1, $2)
		RETURNING id, name, email, created_at
	`, name, email)

	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.CreatedAt); err != nil {
		// The unique constraint is the authoritative uniqueness check;
		// concurrent creates can both pass the EmailExists pre-check.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return nil, repository.ErrDuplicateEmail
		}
		return nil, err
	}
	return u, nil
}
