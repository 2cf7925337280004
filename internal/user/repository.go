package user

import (
	"context"
	"database/sql"
	"errors"

	"storefront-be/internal/logger"
	"storefront-be/internal/utils"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Repository interface {
	Create(ctx context.Context, name, email, password string, role Role) (User, error)
	FindByEmail(ctx context.Context, email string) (User, error)
	FindByID(ctx context.Context, id uint) (User, error)
	List(ctx context.Context, limit, page int) ([]User, int, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, name, email, password string, role Role) (User, error) {
	log := logger.FromCtx(ctx)

	var u User
	err := r.db.QueryRowContext(ctx,
		"INSERT INTO users (name, email, password, role) VALUES ($1, $2, $3, $4) RETURNING id, name, email, password, role, created_at",
		name, email, password, string(role),
	).Scan(&u.ID, &u.Name, &u.Email, &u.Password, &u.Role, &u.CreatedAt)

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == PgUniqueViolation {
		return User{}, ErrEmailExists
	}
	if err != nil {
		log.Error("db: failed to insert user",
			zap.String("email", email),
			zap.Error(err),
		)
		return User{}, err
	}

	return u, nil
}

func (r *repository) findOne(ctx context.Context, where string, arg any) (User, error) {
	var u User
	err := r.db.QueryRowContext(ctx,
		"SELECT id, name, email, password, role, created_at FROM users WHERE "+where,
		arg,
	).Scan(&u.ID, &u.Name, &u.Email, &u.Password, &u.Role, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrUserNotFound
	}
	return u, err
}

func (r *repository) FindByEmail(ctx context.Context, email string) (User, error) {
	return r.findOne(ctx, "email = $1", email)
}

func (r *repository) FindByID(ctx context.Context, id uint) (User, error) {
	return r.findOne(ctx, "id = $1", id)
}

func (r *repository) List(ctx context.Context, limit, page int) ([]User, int, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "List"),
	)

	limit, _, offset := utils.Paginate(limit, page)

	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM users").Scan(&total); err != nil {
		log.Error("count failed", zap.Error(err))
		return nil, 0, err
	}

	rows, err := r.db.QueryContext(ctx,
		"SELECT id, name, email, role, created_at FROM users ORDER BY created_at DESC LIMIT $1 OFFSET $2",
		limit, offset,
	)
	if err != nil {
		log.Error("query failed", zap.Error(err))
		return nil, 0, err
	}
	defer rows.Close()

	users := []User{}
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Role, &u.CreatedAt); err != nil {
			log.Error("row scan failed", zap.Error(err))
			return nil, 0, err
		}
		users = append(users, u)
	}

	return users, total, rows.Err()
}
