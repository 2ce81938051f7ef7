package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/LordArcquedor/Evnt/internal/auth/domain"
	autherror "github.com/LordArcquedor/Evnt/internal/errors"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DB is the subset of pgxpool.Pool the repository needs; pgxmock
// implements it as well.
type DB interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PostgresRepository struct {
	db DB
}

var _ domain.UserRepository = (*PostgresRepository)(nil)

func NewPostgresRepository(db DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const userColumns = `id, pseudo, email, password_hash, connected, created_at, updated_at`

func (r *PostgresRepository) GetByPseudo(ctx context.Context, pseudo string) (*domain.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE pseudo = $1
		LIMIT 1;
	`

	return r.getOne(ctx, query, pseudo)
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE email = $1
		LIMIT 1;
	`

	return r.getOne(ctx, query, email)
}

func (r *PostgresRepository) getOne(ctx context.Context, query string, arg any) (*domain.User, error) {
	row := r.db.QueryRow(ctx, query, arg)

	var user domain.User
	err := row.Scan(&user.ID, &user.Pseudo, &user.Email, &user.PasswordHash,
		&user.Connected, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &user, nil
}

func (r *PostgresRepository) Create(ctx context.Context, user *domain.User) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO users (id, pseudo, email, password_hash, connected, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
    `, user.ID, user.Pseudo, user.Email, user.PasswordHash, user.Connected, user.CreatedAt, user.UpdatedAt)
	if err != nil {
		return mapUniqueViolation(err)
	}

	return nil
}

func (r *PostgresRepository) Update(ctx context.Context, user *domain.User) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE users
		SET pseudo = $2, email = $3, password_hash = $4, connected = $5, updated_at = $6
		WHERE id = $1
	`, user.ID, user.Pseudo, user.Email, user.PasswordHash, user.Connected, user.UpdatedAt)
	if err != nil {
		return mapUniqueViolation(err)
	}

	if tag.RowsAffected() == 0 {
		return autherror.ErrUnknownUser
	}

	return nil
}

// mapUniqueViolation turns a 23505 on one of the users unique indexes into
// the matching business error so the facade keeps its exactly-one-winner
// guarantee under concurrent writes.
func mapUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		switch pgErr.ConstraintName {
		case "users_pseudo_key":
			return autherror.ErrPseudoAlreadyTaken
		case "users_email_key":
			return autherror.ErrEmailAlreadyTaken
		}
	}

	return fmt.Errorf("db error: %w", err)
}
