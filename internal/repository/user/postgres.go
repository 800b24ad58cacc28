package user

import (
	"context"
	"errors"
	"io"
	"log"
	"strings"

	"trendyshop/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

// NewPostgres returns a Repository backed by Postgres.
func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

func (r *postgresRepo) Create(ctx context.Context, u domain.User) (*domain.User, error) {
	const q = `
INSERT INTO users (email, phone, password_hash)
VALUES ($1, $2, $3)
RETURNING id::text, email, phone, password_hash, created_at
`
	var out domain.User
	err := r.pool.QueryRow(ctx, q, strings.ToLower(u.Email), u.Phone, u.PasswordHash).Scan(
		&out.ID, &out.Email, &out.Phone, &out.PasswordHash, &out.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrAlreadyExists
		}
		r.logger.Printf("user repo: create email=%s error=%v", u.Email, err)
		return nil, err
	}
	return &out, nil
}

func (r *postgresRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	const q = `
SELECT id::text, email, phone, password_hash, created_at
FROM users
WHERE lower(email) = lower($1)
LIMIT 1
`
	return r.scanUser(r.pool.QueryRow(ctx, q, email))
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	const q = `
SELECT id::text, email, phone, password_hash, created_at
FROM users
WHERE id = $1
`
	return r.scanUser(r.pool.QueryRow(ctx, q, id))
}

func (r *postgresRepo) ListAddresses(ctx context.Context, userID string) ([]domain.UserAddress, error) {
	const q = `
SELECT id::text, user_id::text, full_address, city, state, pincode, is_default, created_at
FROM user_addresses
WHERE user_id = $1
ORDER BY is_default DESC, created_at DESC
`
	rows, err := r.pool.Query(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.UserAddress
	for rows.Next() {
		var a domain.UserAddress
		if err := rows.Scan(&a.ID, &a.UserID, &a.FullAddress, &a.City, &a.State, &a.Pincode, &a.IsDefault, &a.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *postgresRepo) AddAddress(ctx context.Context, a domain.UserAddress) (*domain.UserAddress, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if a.IsDefault {
		if _, err := tx.Exec(ctx, `
UPDATE user_addresses SET is_default = FALSE WHERE user_id = $1 AND is_default
`, a.UserID); err != nil {
			return nil, err
		}
	}

	const q = `
INSERT INTO user_addresses (user_id, full_address, city, state, pincode, is_default)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id::text, user_id::text, full_address, city, state, pincode, is_default, created_at
`
	var out domain.UserAddress
	if err := tx.QueryRow(ctx, q, a.UserID, a.FullAddress, a.City, a.State, a.Pincode, a.IsDefault).Scan(
		&out.ID, &out.UserID, &out.FullAddress, &out.City, &out.State, &out.Pincode, &out.IsDefault, &out.CreatedAt,
	); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *postgresRepo) DeleteAddress(ctx context.Context, userID, addressID string) error {
	cmd, err := r.pool.Exec(ctx, `
DELETE FROM user_addresses WHERE id = $1 AND user_id = $2
`, addressID, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(&u.ID, &u.Email, &u.Phone, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}
