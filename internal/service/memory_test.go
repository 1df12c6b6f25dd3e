package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/sysu-ecnc-dev/newsroom/backend/internal/domain"
)

var errStorage = errors.New("connection refused")

// memStore 是测试用的内存存储，保存值的副本，调用方拿到的指针修改后不会影响存储
type memStore[T any, ID comparable] struct {
	mu    sync.Mutex
	items map[ID]T
	order []ID
	idOf  func(*T) ID
	// assign 用于自增 id 的实体，为 nil 时 id 由调用方生成
	assign func(*T, int32)
	next   int32

	failWith error
	saves    int
	deletes  int
}

func newMemStore[T any, ID comparable](idOf func(*T) ID, assign func(*T, int32)) *memStore[T, ID] {
	return &memStore[T, ID]{
		items:  make(map[ID]T),
		idOf:   idOf,
		assign: assign,
	}
}

func (s *memStore[T, ID]) FindByID(ctx context.Context, id ID) (*T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failWith != nil {
		return nil, s.failWith
	}
	v, ok := s.items[id]
	if !ok {
		return nil, nil
	}
	return &v, nil
}

func (s *memStore[T, ID]) Save(ctx context.Context, entity *T) (*T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failWith != nil {
		return nil, s.failWith
	}

	var zero ID
	if s.assign != nil && s.idOf(entity) == zero {
		s.next++
		s.assign(entity, s.next)
	}

	id := s.idOf(entity)
	if _, ok := s.items[id]; !ok {
		s.order = append(s.order, id)
	}
	s.items[id] = *entity
	s.saves++

	saved := *entity
	return &saved, nil
}

func (s *memStore[T, ID]) Delete(ctx context.Context, entity *T) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failWith != nil {
		return s.failWith
	}

	id := s.idOf(entity)
	delete(s.items, id)
	for i, o := range s.order {
		if o == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	s.deletes++
	return nil
}

func (s *memStore[T, ID]) list(match func(*T) bool, params domain.PaginationParameters) ([]T, uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failWith != nil {
		return nil, 0, s.failWith
	}

	var matched []T
	for _, id := range s.order {
		v := s.items[id]
		if match(&v) {
			matched = append(matched, v)
		}
	}

	total := uint64(len(matched))
	offset := params.Offset()
	if offset >= total {
		return []T{}, total, nil
	}
	end := min(offset+uint64(params.ItemsPerPage), total)
	return matched[offset:end], total, nil
}

func (s *memStore[T, ID]) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// mutations 返回成功的写操作次数
func (s *memStore[T, ID]) mutations() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves + s.deletes
}

func (s *memStore[T, ID]) seed(t *testing.T, entity *T) *T {
	t.Helper()
	saved, err := s.Save(context.Background(), entity)
	require.NoError(t, err)
	s.mu.Lock()
	s.saves--
	s.mu.Unlock()
	return saved
}

func matchesQuery(value string, query *string) bool {
	return query == nil || strings.Contains(strings.ToLower(value), strings.ToLower(*query))
}

type memUsers struct {
	*memStore[domain.User, uuid.UUID]
}

func (r *memUsers) FindMany(ctx context.Context, filter domain.UserFilter, params domain.PaginationParameters) ([]domain.User, uint64, error) {
	return r.list(func(u *domain.User) bool {
		if filter.Role != nil && (u.Role == nil || *u.Role != *filter.Role) {
			return false
		}
		return matchesQuery(u.Name, params.Query)
	}, params)
}

func (r *memUsers) findOne(match func(*domain.User) bool) (*domain.User, error) {
	users, _, err := r.list(match, domain.PaginationParameters{Page: 1, ItemsPerPage: domain.MaxPerPage})
	if err != nil || len(users) == 0 {
		return nil, err
	}
	return &users[0], nil
}

func (r *memUsers) FindByName(ctx context.Context, name string) (*domain.User, error) {
	return r.findOne(func(u *domain.User) bool { return u.Name == name })
}

func (r *memUsers) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(func(u *domain.User) bool { return u.Email == email })
}

type memArticles struct {
	*memStore[domain.Article, uuid.UUID]
}

func (r *memArticles) FindMany(ctx context.Context, filter domain.ArticleFilter, params domain.PaginationParameters) ([]domain.Article, uint64, error) {
	return r.list(func(a *domain.Article) bool {
		if filter.OnlyApproved && !a.Approved {
			return false
		}
		if filter.AuthorID != nil && a.AuthorID != *filter.AuthorID {
			return false
		}
		if filter.TagID != nil && (a.TagID == nil || *a.TagID != *filter.TagID) {
			return false
		}
		return matchesQuery(a.Title, params.Query)
	}, params)
}

func (r *memArticles) FindBySlug(ctx context.Context, slug string) (*domain.Article, error) {
	articles, _, err := r.list(func(a *domain.Article) bool { return a.Slug == slug }, domain.PaginationParameters{Page: 1, ItemsPerPage: 1})
	if err != nil || len(articles) == 0 {
		return nil, err
	}
	return &articles[0], nil
}

type memComments struct {
	*memStore[domain.Comment, uuid.UUID]
	users *memUsers
}

func commentMatcher(filter domain.CommentFilter, params domain.PaginationParameters) func(*domain.Comment) bool {
	return func(c *domain.Comment) bool {
		if !filter.IncludeInactive && !c.IsActive() {
			return false
		}
		if filter.ArticleID != nil && (c.ArticleID == nil || *c.ArticleID != *filter.ArticleID) {
			return false
		}
		return matchesQuery(c.Content, params.Query)
	}
}

func (r *memComments) FindMany(ctx context.Context, filter domain.CommentFilter, params domain.PaginationParameters) ([]domain.Comment, uint64, error) {
	return r.list(commentMatcher(filter, params), params)
}

func (r *memComments) FindManyWithAuthor(ctx context.Context, filter domain.CommentFilter, params domain.PaginationParameters) ([]domain.CommentWithAuthor, uint64, error) {
	comments, total, err := r.list(commentMatcher(filter, params), params)
	if err != nil {
		return nil, 0, err
	}

	result := make([]domain.CommentWithAuthor, 0, len(comments))
	for _, c := range comments {
		author, err := r.users.FindByID(ctx, c.AuthorID)
		if err != nil {
			return nil, 0, err
		}
		result = append(result, domain.CommentWithAuthor{Comment: c, Author: author.Public()})
	}
	return result, total, nil
}

type memCommentReports struct {
	*memStore[domain.CommentReport, int32]
}

func (r *memCommentReports) FindMany(ctx context.Context, filter domain.CommentReportFilter, params domain.PaginationParameters) ([]domain.CommentReport, uint64, error) {
	return r.list(func(cr *domain.CommentReport) bool {
		return filter.Solved == nil || cr.Solved() == *filter.Solved
	}, params)
}

type memTeamRoles struct {
	*memStore[domain.TeamRole, int32]
}

func (r *memTeamRoles) FindMany(ctx context.Context, filter domain.TeamRoleFilter, params domain.PaginationParameters) ([]domain.TeamRole, uint64, error) {
	return r.list(func(tr *domain.TeamRole) bool { return matchesQuery(tr.Value, params.Query) }, params)
}

type memTeamUsers struct {
	*memStore[domain.TeamUser, uuid.UUID]
}

func (r *memTeamUsers) FindMany(ctx context.Context, filter domain.TeamUserFilter, params domain.PaginationParameters) ([]domain.TeamUser, uint64, error) {
	return r.list(func(tu *domain.TeamUser) bool {
		return filter.TeamRoleID == nil || tu.TeamRoleID == *filter.TeamRoleID
	}, params)
}

type memArticleTags struct {
	*memStore[domain.ArticleTag, int32]
}

func (r *memArticleTags) FindByValue(ctx context.Context, value string) (*domain.ArticleTag, error) {
	tags, _, err := r.list(func(tag *domain.ArticleTag) bool { return tag.Value == value }, domain.PaginationParameters{Page: 1, ItemsPerPage: domain.MaxPerPage})
	if err != nil || len(tags) == 0 {
		return nil, err
	}
	return &tags[0], nil
}

func (r *memArticleTags) FindMany(ctx context.Context, filter domain.ArticleTagFilter, params domain.PaginationParameters) ([]domain.ArticleTag, uint64, error) {
	return r.list(func(tag *domain.ArticleTag) bool { return matchesQuery(tag.Value, params.Query) }, params)
}

type fakeHasher struct{}

func (fakeHasher) Hash(password string) (string, error) {
	return "hashed:" + password, nil
}

func (fakeHasher) Compare(hash, password string) (bool, error) {
	return hash == "hashed:"+password, nil
}

type fakeTokens struct{}

func (fakeTokens) Issue(user *domain.User) (string, time.Time, error) {
	return "token-" + user.ID.String(), time.Now().Add(time.Hour), nil
}

type fixture struct {
	users          *memUsers
	articles       *memArticles
	comments       *memComments
	commentReports *memCommentReports
	teamRoles      *memTeamRoles
	teamUsers      *memTeamUsers
	articleTags    *memArticleTags

	services *Services
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	users := &memUsers{newMemStore(func(u *domain.User) uuid.UUID { return u.ID }, nil)}
	f := &fixture{
		users:    users,
		articles: &memArticles{newMemStore(func(a *domain.Article) uuid.UUID { return a.ID }, nil)},
		comments: &memComments{newMemStore(func(c *domain.Comment) uuid.UUID { return c.ID }, nil), users},
		commentReports: &memCommentReports{newMemStore(
			func(r *domain.CommentReport) int32 { return r.ID },
			func(r *domain.CommentReport, id int32) { r.ID = id },
		)},
		teamRoles: &memTeamRoles{newMemStore(
			func(r *domain.TeamRole) int32 { return r.ID },
			func(r *domain.TeamRole, id int32) { r.ID = id },
		)},
		teamUsers: &memTeamUsers{newMemStore(func(u *domain.TeamUser) uuid.UUID { return u.ID }, nil)},
		articleTags: &memArticleTags{newMemStore(
			func(tag *domain.ArticleTag) int32 { return tag.ID },
			func(tag *domain.ArticleTag, id int32) { tag.ID = id },
		)},
	}

	f.services = NewServices(Repositories{
		Users:          f.users,
		Articles:       f.articles,
		Comments:       f.comments,
		CommentReports: f.commentReports,
		TeamRoles:      f.teamRoles,
		TeamUsers:      f.teamUsers,
		ArticleTags:    f.articleTags,
	}, fakeHasher{}, fakeTokens{})

	return f
}

func rolePtr(r domain.Role) *domain.Role {
	return &r
}

func ptr[T any](v T) *T {
	return &v
}

// addUser 添加一个用户，role 为空字符串时用户没有角色
func (f *fixture) addUser(t *testing.T, name string, role domain.Role) *domain.User {
	t.Helper()
	var r *domain.Role
	if role != "" {
		r = rolePtr(role)
	}
	return f.users.seed(t, domain.NewUser(name, name+"@example.com", "hashed:password", r))
}

func (f *fixture) addArticle(t *testing.T, author *domain.User, title string, approved bool) *domain.Article {
	t.Helper()
	article := domain.NewArticle(author.ID, title, "content of "+title, "", nil, strings.ReplaceAll(strings.ToLower(title), " ", "-"))
	article.Approved = approved
	return f.articles.seed(t, article)
}

func (f *fixture) addComment(t *testing.T, author *domain.User, article *domain.Article, content string) *domain.Comment {
	t.Helper()
	return f.comments.seed(t, domain.NewComment(author.ID, &article.ID, content))
}
