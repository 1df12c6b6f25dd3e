package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/sysu-ecnc-dev/newsroom/backend/internal/domain"
)

const userColumns = "id, name, email, password_hash, role, created_at, password_changed_at"

type UserRepository struct {
	*Repository
}

func NewUserRepository(r *Repository) *UserRepository {
	return &UserRepository{Repository: r}
}

func scanUser(row rowScanner) (*domain.User, error) {
	user := &domain.User{}
	var role sql.NullString

	dst := []any{&user.ID, &user.Name, &user.Email, &user.PasswordHash, &role, &user.CreatedAt, &user.PasswordChangedAt}
	if err := row.Scan(dst...); err != nil {
		return nil, err
	}

	if r, ok := domain.ParseRole(role.String); role.Valid && ok {
		user.Role = &r
	}

	return user, nil
}

func nullRole(role *domain.Role) sql.NullString {
	if role == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: string(*role), Valid: true}
}

func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return findOne(ctx, r.Repository, "SELECT "+userColumns+" FROM users WHERE id = $1", scanUser, id)
}

func (r *UserRepository) FindByName(ctx context.Context, name string) (*domain.User, error) {
	return findOne(ctx, r.Repository, "SELECT "+userColumns+" FROM users WHERE name = $1", scanUser, name)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return findOne(ctx, r.Repository, "SELECT "+userColumns+" FROM users WHERE email = $1", scanUser, email)
}

func (r *UserRepository) Save(ctx context.Context, user *domain.User) (*domain.User, error) {
	query := `
		INSERT INTO users (id, name, email, password_hash, role, created_at, password_changed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			email = EXCLUDED.email,
			password_hash = EXCLUDED.password_hash,
			role = EXCLUDED.role,
			password_changed_at = EXCLUDED.password_changed_at
		RETURNING ` + userColumns

	args := []any{user.ID, user.Name, user.Email, user.PasswordHash, nullRole(user.Role), user.CreatedAt, user.PasswordChangedAt}
	return findOne(ctx, r.Repository, query, scanUser, args...)
}

// Delete 用户不会被删除，这里只是为了满足通用的 Repository 接口
func (r *UserRepository) Delete(ctx context.Context, user *domain.User) error {
	return r.exec(ctx, "DELETE FROM users WHERE id = $1", user.ID)
}

func (r *UserRepository) FindMany(ctx context.Context, filter domain.UserFilter, params domain.PaginationParameters) ([]domain.User, uint64, error) {
	q := pageQuery{
		columns: userColumns,
		from:    "users",
		orderBy: "created_at DESC",
	}
	if filter.Role != nil {
		q.where.add("role = $%d", string(*filter.Role))
	}
	q.where.addQuery("name", params.Query)

	return findPage(ctx, r.Repository, q, params, func(row rowScanner) (domain.User, error) {
		user, err := scanUser(row)
		if err != nil {
			return domain.User{}, err
		}
		return *user, nil
	})
}
