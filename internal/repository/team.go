package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sysu-ecnc-dev/newsroom/backend/internal/domain"
)

type TeamRoleRepository struct {
	*Repository
}

func NewTeamRoleRepository(r *Repository) *TeamRoleRepository {
	return &TeamRoleRepository{Repository: r}
}

func scanTeamRole(row rowScanner) (*domain.TeamRole, error) {
	tr := &domain.TeamRole{}
	if err := row.Scan(&tr.ID, &tr.Value, &tr.CreatedAt); err != nil {
		return nil, err
	}
	return tr, nil
}

func (r *TeamRoleRepository) FindByID(ctx context.Context, id int32) (*domain.TeamRole, error) {
	return findOne(ctx, r.Repository, "SELECT id, value, created_at FROM team_roles WHERE id = $1", scanTeamRole, id)
}

func (r *TeamRoleRepository) Save(ctx context.Context, tr *domain.TeamRole) (*domain.TeamRole, error) {
	if tr.ID == 0 {
		query := "INSERT INTO team_roles (value, created_at) VALUES ($1, $2) RETURNING id, value, created_at"
		return findOne(ctx, r.Repository, query, scanTeamRole, tr.Value, tr.CreatedAt)
	}

	query := `
		INSERT INTO team_roles (id, value, created_at) VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET value = EXCLUDED.value
		RETURNING id, value, created_at
	`
	return findOne(ctx, r.Repository, query, scanTeamRole, tr.ID, tr.Value, tr.CreatedAt)
}

func (r *TeamRoleRepository) Delete(ctx context.Context, tr *domain.TeamRole) error {
	return r.exec(ctx, "DELETE FROM team_roles WHERE id = $1", tr.ID)
}

func (r *TeamRoleRepository) FindMany(ctx context.Context, filter domain.TeamRoleFilter, params domain.PaginationParameters) ([]domain.TeamRole, uint64, error) {
	q := pageQuery{
		columns: "id, value, created_at",
		from:    "team_roles",
		orderBy: "id ASC",
	}
	q.where.addQuery("value", params.Query)

	return findPage(ctx, r.Repository, q, params, func(row rowScanner) (domain.TeamRole, error) {
		tr, err := scanTeamRole(row)
		if err != nil {
			return domain.TeamRole{}, err
		}
		return *tr, nil
	})
}

const teamUserColumns = "id, name, profile_image_url, user_id, team_role_id, created_at"

type TeamUserRepository struct {
	*Repository
}

func NewTeamUserRepository(r *Repository) *TeamUserRepository {
	return &TeamUserRepository{Repository: r}
}

func scanTeamUser(row rowScanner) (*domain.TeamUser, error) {
	tu := &domain.TeamUser{}
	if err := row.Scan(&tu.ID, &tu.Name, &tu.ProfileImageURL, &tu.UserID, &tu.TeamRoleID, &tu.CreatedAt); err != nil {
		return nil, err
	}
	return tu, nil
}

func (r *TeamUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.TeamUser, error) {
	return findOne(ctx, r.Repository, "SELECT "+teamUserColumns+" FROM team_users WHERE id = $1", scanTeamUser, id)
}

func (r *TeamUserRepository) Save(ctx context.Context, tu *domain.TeamUser) (*domain.TeamUser, error) {
	query := `
		INSERT INTO team_users (id, name, profile_image_url, user_id, team_role_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			profile_image_url = EXCLUDED.profile_image_url,
			user_id = EXCLUDED.user_id,
			team_role_id = EXCLUDED.team_role_id
		RETURNING ` + teamUserColumns

	args := []any{tu.ID, tu.Name, tu.ProfileImageURL, tu.UserID, tu.TeamRoleID, tu.CreatedAt}
	return findOne(ctx, r.Repository, query, scanTeamUser, args...)
}

func (r *TeamUserRepository) Delete(ctx context.Context, tu *domain.TeamUser) error {
	return r.exec(ctx, "DELETE FROM team_users WHERE id = $1", tu.ID)
}

func (r *TeamUserRepository) FindMany(ctx context.Context, filter domain.TeamUserFilter, params domain.PaginationParameters) ([]domain.TeamUser, uint64, error) {
	q := pageQuery{
		columns: teamUserColumns,
		from:    "team_users",
		orderBy: "created_at ASC",
	}
	if filter.TeamRoleID != nil {
		q.where.add("team_role_id = $%d", *filter.TeamRoleID)
	}
	q.where.addQuery("name", params.Query)

	return findPage(ctx, r.Repository, q, params, func(row rowScanner) (domain.TeamUser, error) {
		tu, err := scanTeamUser(row)
		if err != nil {
			return domain.TeamUser{}, err
		}
		return *tu, nil
	})
}
