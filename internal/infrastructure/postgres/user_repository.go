package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campdir/campdir-api/internal/domain/entity"
	"github.com/campdir/campdir-api/internal/domain/query"
	"github.com/campdir/campdir-api/internal/domain/repository"
	"github.com/campdir/campdir-api/pkg/apperr"
)

// checkID rejects malformed identifiers before they reach the store, so a
// bad id surfaces as a cast failure rather than a database error.
func checkID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: %q is not a valid id", apperr.ErrCast, id)
	}
	return nil
}

var userColumns = []Column{
	{Name: "id", Type: ColUUID},
	{Name: "name", Type: ColText},
	{Name: "email", Type: ColText},
	{Name: "role", Type: ColText},
	{Name: "created_at", Type: ColTime},
	{Name: "updated_at", Type: ColTime},
}

type UserRepository struct {
	pool       *pgxpool.Pool
	collection *Collection
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool, collection: NewCollection("users", userColumns)}
}

const userFields = `id::text, name, email, role, password, COALESCE(reset_password_token, ''), reset_password_expire, created_at, updated_at`

func scanUser(row interface{ Scan(...any) error }) (*entity.User, error) {
	u := &entity.User{}
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Role, &u.Password,
		&u.ResetPasswordToken, &u.ResetPasswordExpire, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (name, email, role, password)
		VALUES ($1, $2, $3, $4)
		RETURNING id::text, created_at, updated_at
	`, u.Name, u.Email, u.Role, u.Password)
	return row.Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	return scanUser(r.pool.QueryRow(ctx, `
		SELECT `+userFields+` FROM users WHERE id = $1::uuid
	`, id))
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return scanUser(r.pool.QueryRow(ctx, `
		SELECT `+userFields+` FROM users WHERE email = $1
	`, email))
}

func (r *UserRepository) GetByResetToken(ctx context.Context, hashedToken string, now time.Time) (*entity.User, error) {
	return scanUser(r.pool.QueryRow(ctx, `
		SELECT `+userFields+` FROM users
		WHERE reset_password_token = $1 AND reset_password_expire > $2
	`, hashedToken, now))
}

func (r *UserRepository) Update(ctx context.Context, u *entity.User) error {
	if err := checkID(u.ID); err != nil {
		return err
	}
	u.UpdatedAt = time.Now()
	res, err := r.pool.Exec(ctx, `
		UPDATE users
		SET name = $1, email = $2, role = $3, password = $4,
		    reset_password_token = NULLIF($5, ''), reset_password_expire = $6,
		    updated_at = $7
		WHERE id = $8::uuid
	`, u.Name, u.Email, u.Role, u.Password, u.ResetPasswordToken, u.ResetPasswordExpire, u.UpdatedAt, u.ID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	if err := checkID(id); err != nil {
		return err
	}
	res, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1::uuid`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *UserRepository) List(ctx context.Context, spec query.Spec) ([]map[string]any, int, error) {
	return r.collection.Find(ctx, r.pool, spec)
}

var _ repository.UserRepository = (*UserRepository)(nil)
