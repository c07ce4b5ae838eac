package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/thewhitewolf2411/TaskManager/internal/domain"
)

// UserRepository is the credential store. It is the only owner of user rows.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
}

type userRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository returns a Postgres-backed implementation.
func NewUserRepository(pool *pgxpool.Pool) UserRepository {
	return &userRepository{pool: pool}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	const query = `
        INSERT INTO "user".users (email, password, first_name, last_name)
        VALUES ($1, $2, $3, $4)
        RETURNING id, created_at, updated_at`

	if err := r.pool.QueryRow(ctx, query,
		user.Email,
		user.PasswordHash,
		user.FirstName,
		user.LastName,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt); err != nil {
		return err
	}

	// role_id defaults to the regular-user role on insert.
	user.Role = domain.RoleUser
	return nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	const query = `
        SELECT u.id, u.email, u.password, u.first_name, u.last_name, r.name, u.created_at, u.updated_at
        FROM "user".users u
        JOIN "user".user_roles r ON u.role_id = r.id
        WHERE u.email = $1
        LIMIT 1`

	return r.scanOne(r.pool.QueryRow(ctx, query, email))
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	const query = `
        SELECT u.id, u.email, u.password, u.first_name, u.last_name, r.name, u.created_at, u.updated_at
        FROM "user".users u
        JOIN "user".user_roles r ON u.role_id = r.id
        WHERE u.id = $1
        LIMIT 1`

	return r.scanOne(r.pool.QueryRow(ctx, query, id))
}

func (r *userRepository) List(ctx context.Context) ([]*domain.User, error) {
	const query = `
        SELECT u.id, u.email, u.password, u.first_name, u.last_name, r.name, u.created_at, u.updated_at
        FROM "user".users u
        JOIN "user".user_roles r ON u.role_id = r.id
        ORDER BY u.created_at`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*domain.User
	for rows.Next() {
		user, err := r.scanOne(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *userRepository) scanOne(row rowScanner) (*domain.User, error) {
	var user domain.User
	var role string
	if err := row.Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.FirstName,
		&user.LastName,
		&role,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		return nil, err
	}
	user.Role = domain.ParseRole(role)
	return &user, nil
}
