package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sysu-ecnc-dev/newsroom/backend/internal/config"
	"github.com/sysu-ecnc-dev/newsroom/backend/internal/domain"
)

type Repository struct {
	cfg    *config.Config
	dbpool *sql.DB
}

func NewRepository(cfg *config.Config, dbpool *sql.DB) *Repository {
	return &Repository{
		cfg:    cfg,
		dbpool: dbpool,
	}
}

var (
	_ domain.UserRepository          = (*UserRepository)(nil)
	_ domain.ArticleRepository       = (*ArticleRepository)(nil)
	_ domain.CommentRepository       = (*CommentRepository)(nil)
	_ domain.CommentReportRepository = (*CommentReportRepository)(nil)
	_ domain.TeamRoleRepository      = (*TeamRoleRepository)(nil)
	_ domain.TeamUserRepository      = (*TeamUserRepository)(nil)
	_ domain.ArticleTagRepository    = (*ArticleTagRepository)(nil)
)

func (r *Repository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
}

type rowScanner interface {
	Scan(dest ...any) error
}

// findOne 查询单行数据，数据不存在时返回 (nil, nil)
func findOne[T any](ctx context.Context, r *Repository, query string, scan func(rowScanner) (*T, error), args ...any) (*T, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	v, err := scan(r.dbpool.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return v, nil
}

func (r *Repository) exec(ctx context.Context, query string, args ...any) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	_, err := r.dbpool.ExecContext(ctx, query, args...)
	return err
}

// where 用来拼接分页查询的过滤条件，clause 中的 %d 会被替换为参数的序号
type where struct {
	clauses []string
	args    []any
}

func (w *where) add(clause string, arg any) {
	w.args = append(w.args, arg)
	w.clauses = append(w.clauses, fmt.Sprintf(clause, len(w.args)))
}

func (w *where) addRaw(clause string) {
	w.clauses = append(w.clauses, clause)
}

// likeEscaper 让搜索词中的通配符按字面匹配，postgres 的 LIKE 默认以反斜杠转义
var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

func (w *where) addQuery(column string, query *string) {
	if query != nil {
		w.add(column+" ILIKE $%d", "%"+likeEscaper.Replace(*query)+"%")
	}
}

func (w *where) String() string {
	if len(w.clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.clauses, " AND ")
}

type pageQuery struct {
	columns string
	from    string
	where   where
	orderBy string
}

// findPage 先查询总数再查询当前页的数据
func findPage[T any](ctx context.Context, r *Repository, q pageQuery, params domain.PaginationParameters, scan func(rowScanner) (T, error)) ([]T, uint64, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var total uint64
	countQuery := "SELECT count(*) FROM " + q.from + q.where.String()
	if err := r.dbpool.QueryRowContext(ctx, countQuery, q.where.args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	items := make([]T, 0)
	if total == 0 || params.Offset() >= total {
		return items, total, nil
	}

	n := len(q.where.args)
	query := fmt.Sprintf("SELECT %s FROM %s%s ORDER BY %s LIMIT $%d OFFSET $%d", q.columns, q.from, q.where.String(), q.orderBy, n+1, n+2)
	args := append(append([]any{}, q.where.args...), params.ItemsPerPage, params.Offset())

	rows, err := r.dbpool.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return items, total, nil
}
