package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/go-ddd-auth-core/internal/domain/apperror"
	"github.com/oksasatya/go-ddd-auth-core/internal/domain/entity"
	"github.com/oksasatya/go-ddd-auth-core/internal/domain/repository"
	vo "github.com/oksasatya/go-ddd-auth-core/internal/domain/valueobject"
)

const uniqueViolation = "23505"

// DBTX is the subset of pgxpool.Pool the repository needs.
type DBTX interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type UserRepository struct {
	db DBTX
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: pool}
}

func newUserRepositoryWithDB(db DBTX) *UserRepository {
	return &UserRepository{db: db}
}

const selectUser = `
	SELECT id, email, username, hashed_password, created_at, updated_at
	FROM users
`

func (r *UserRepository) Create(ctx context.Context, u entity.User) (entity.User, error) {
	row := r.db.QueryRow(ctx, `
		INSERT INTO users (id, email, username, hashed_password, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, email, username, hashed_password, created_at, updated_at
	`, u.ID().UUID(), u.Email().Value(), u.Username().Value(), u.PasswordHash().Value(), u.CreatedAt(), u.UpdatedAt())

	created, err := scanUser(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return entity.User{}, apperror.Storage("create user: unique constraint "+pgErr.ConstraintName, err)
		}
		return entity.User{}, apperror.Storage("create user", err)
	}
	return *created, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id vo.EntityID) (*entity.User, error) {
	return r.findOne(ctx, "find user by id", selectUser+" WHERE id = $1", id.UUID())
}

func (r *UserRepository) FindByEmail(ctx context.Context, email vo.Email) (*entity.User, error) {
	return r.findOne(ctx, "find user by email", selectUser+" WHERE email = $1", email.Value())
}

func (r *UserRepository) FindByUsername(ctx context.Context, username vo.Username) (*entity.User, error) {
	return r.findOne(ctx, "find user by username", selectUser+" WHERE username = $1", username.Value())
}

func (r *UserRepository) findOne(ctx context.Context, op, sql string, arg any) (*entity.User, error) {
	u, err := scanUser(r.db.QueryRow(ctx, sql, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, apperror.Storage(op, err)
	}
	return u, nil
}

// scanUser maps a row back through the value objects so a corrupt row
// surfaces as an error instead of an invalid aggregate.
func scanUser(row pgx.Row) (*entity.User, error) {
	var (
		id                    uuid.UUID
		email, username, hash string
		createdAt, updatedAt  time.Time
	)
	if err := row.Scan(&id, &email, &username, &hash, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	eid, err := vo.EntityIDFromUUID(id)
	if err != nil {
		return nil, err
	}
	em, err := vo.NewEmail(email)
	if err != nil {
		return nil, err
	}
	un, err := vo.NewUsername(username)
	if err != nil {
		return nil, err
	}
	ph, err := vo.NewPasswordHash(hash)
	if err != nil {
		return nil, err
	}
	u, err := entity.ReconstituteUser(eid, em, un, ph, createdAt, updatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
