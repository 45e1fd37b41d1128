package persistence

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/khoahotran/user-gateway/internal/domain/user"
)

type postgresUserRepo struct {
	db *pgxpool.Pool
}

func NewPostgresUserRepo(db *pgxpool.Pool) user.Repository {
	return &postgresUserRepo{db: db}
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const pgUniqueViolation = "23505"

// scanDests maps projected columns onto the matching struct fields.
// Columns not in the projection keep their zero value.
func scanDests(u *user.User, columns []string) []any {
	dests := make([]any, len(columns))
	for i, col := range columns {
		switch col {
		case "id":
			dests[i] = &u.ID
		case "name":
			dests[i] = &u.Name
		case "email":
			dests[i] = &u.Email
		case "title":
			dests[i] = &u.Title
		case "password_digest":
			dests[i] = &u.PasswordDigest
		}
	}
	return dests
}

func (r *postgresUserRepo) List(ctx context.Context, columns []string) ([]*user.User, error) {
	if len(columns) == 0 {
		columns = user.AllColumns
	}

	builder := psql.Select(columns...).From("users")

	sql, args, _ := builder.ToSql()
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	users := make([]*user.User, 0)
	for rows.Next() {
		u := &user.User{}
		if err := rows.Scan(scanDests(u, columns)...); err != nil {
			return nil, fmt.Errorf("failed to scan user row during iteration: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating user rows: %w", err)
	}
	return users, nil
}

func (r *postgresUserRepo) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	query := `
		SELECT id, name, email, title, password_digest
		FROM users
		WHERE email = $1
	`
	u := &user.User{}
	err := r.db.QueryRow(ctx, query, email).Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.Title,
		&u.PasswordDigest,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, user.ErrUserNotFound
		}
		return nil, fmt.Errorf("error when query user by email: %w", err)
	}
	return u, nil
}

func (r *postgresUserRepo) findByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	query := `
		SELECT id, name, email, title, password_digest
		FROM users
		WHERE id = $1
	`
	u := &user.User{}
	err := r.db.QueryRow(ctx, query, id).Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.Title,
		&u.PasswordDigest,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, user.ErrUserNotFound
		}
		return nil, fmt.Errorf("error when query user by id: %w", err)
	}
	return u, nil
}

// Insert writes the draft and reads the row back, so store-side defaults
// (the generated id included) are reflected in the returned value.
func (r *postgresUserRepo) Insert(ctx context.Context, draft *user.Draft) (*user.User, error) {
	cols := []string{"email"}
	vals := []any{draft.Email}
	if draft.Name != nil {
		cols = append(cols, "name")
		vals = append(vals, *draft.Name)
	}
	if draft.Title != nil {
		cols = append(cols, "title")
		vals = append(vals, *draft.Title)
	}
	if draft.PasswordDigest != nil {
		cols = append(cols, "password_digest")
		vals = append(vals, *draft.PasswordDigest)
	}

	builder := psql.Insert("users").Columns(cols...).Values(vals...).Suffix("RETURNING id")

	sql, args, _ := builder.ToSql()
	var id uuid.UUID
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		if pgErr, ok := err.(*pgconn.PgError); ok && pgErr.Code == pgUniqueViolation {
			return nil, user.ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}

	return r.findByID(ctx, id)
}

// Update applies only the supplied fields, then reads the row back.
func (r *postgresUserRepo) Update(ctx context.Context, id uuid.UUID, patch user.Patch) (*user.User, error) {
	if patch.IsEmpty() {
		return r.findByID(ctx, id)
	}

	builder := psql.Update("users").Where(sq.Eq{"id": id})
	if patch.Name != nil {
		builder = builder.Set("name", *patch.Name)
	}
	if patch.Email != nil {
		builder = builder.Set("email", *patch.Email)
	}
	if patch.Title != nil {
		builder = builder.Set("title", *patch.Title)
	}
	if patch.PasswordDigest != nil {
		builder = builder.Set("password_digest", *patch.PasswordDigest)
	}

	sql, args, _ := builder.ToSql()
	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if pgErr, ok := err.(*pgconn.PgError); ok && pgErr.Code == pgUniqueViolation {
			return nil, user.ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return nil, user.ErrUserNotFound
	}

	return r.findByID(ctx, id)
}

// Delete is idempotent: a missing id is treated as success.
func (r *postgresUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM users WHERE id = $1`
	if _, err := r.db.Exec(ctx, query, id); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}
