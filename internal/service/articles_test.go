package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sysu-ecnc-dev/newsroom/backend/internal/domain"
)

func TestDeleteArticleByPrincipal(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	principal := f.addUser(t, "principal", domain.RolePrincipal)
	article := f.addArticle(t, principal, "A1", true)

	err := f.services.DeleteArticle.Exec(ctx, DeleteArticleParams{ActorID: principal.ID, ArticleID: article.ID})
	require.NoError(t, err)

	found, err := f.articles.FindByID(ctx, article.ID)
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestDeleteArticleWithoutPermission(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	author := f.addUser(t, "author", domain.RoleWriter)
	user := f.addUser(t, "user", domain.RoleUser)
	article := f.addArticle(t, author, "A1", true)

	err := f.services.DeleteArticle.Exec(ctx, DeleteArticleParams{ActorID: user.ID, ArticleID: article.ID})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	found, err := f.articles.FindByID(ctx, article.ID)
	require.NoError(t, err)
	assert.NotNil(t, found)
	assert.Zero(t, f.articles.mutations())
}

func TestDeleteArticleMissing(t *testing.T) {
	f := newFixture(t)
	principal := f.addUser(t, "principal", domain.RolePrincipal)

	err := f.services.DeleteArticle.Exec(context.Background(), DeleteArticleParams{ActorID: principal.ID, ArticleID: uuid.New()})
	assert.ErrorIs(t, err, domain.ErrResourceNotFound)
}

func TestDeleteArticleUnknownActor(t *testing.T) {
	f := newFixture(t)
	author := f.addUser(t, "author", domain.RoleWriter)
	article := f.addArticle(t, author, "A1", true)

	err := f.services.DeleteArticle.Exec(context.Background(), DeleteArticleParams{ActorID: uuid.New(), ArticleID: article.ID})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	assert.Equal(t, 1, f.articles.len())
}

func TestCreateArticle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	writer := f.addUser(t, "writer", domain.RoleWriter)
	reader := f.addUser(t, "reader", "")
	tag := f.articleTags.seed(t, &domain.ArticleTag{Value: "校园"})

	article, err := f.services.CreateArticle.Exec(ctx, CreateArticleParams{
		ActorID: writer.ID,
		Title:   "校园新闻",
		Content: "内容",
		TagID:   &tag.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, writer.ID, article.AuthorID)
	assert.Equal(t, "xiao-yuan-xin-wen", article.Slug)
	assert.False(t, article.Approved)

	// 同名文章得到不同的 slug
	second, err := f.services.CreateArticle.Exec(ctx, CreateArticleParams{ActorID: writer.ID, Title: "校园新闻", Content: "内容"})
	require.NoError(t, err)
	assert.Equal(t, "xiao-yuan-xin-wen-2", second.Slug)

	_, err = f.services.CreateArticle.Exec(ctx, CreateArticleParams{ActorID: writer.ID, Title: "t", Content: "c", TagID: ptr(int32(99))})
	assert.ErrorIs(t, err, domain.ErrBadRequest)

	_, err = f.services.CreateArticle.Exec(ctx, CreateArticleParams{ActorID: reader.ID, Title: "t", Content: "c"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	assert.Equal(t, 2, f.articles.len())
}

func TestUpdateArticleApproval(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	writer := f.addUser(t, "writer", domain.RoleWriter)
	editor := f.addUser(t, "editor", domain.RoleEditor)
	coord := f.addUser(t, "coord", domain.RoleCoord)
	article := f.addArticle(t, writer, "draft", false)

	_, err := f.services.UpdateArticle.Exec(ctx, UpdateArticleParams{ActorID: writer.ID, ArticleID: article.ID, Title: ptr("new")})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	updated, err := f.services.UpdateArticle.Exec(ctx, UpdateArticleParams{ActorID: editor.ID, ArticleID: article.ID, Approved: ptr(true)})
	require.NoError(t, err)
	assert.True(t, updated.Approved)
	assert.NotNil(t, updated.UpdatedAt)

	// Editor 可以审核通过但不能撤回
	_, err = f.services.UpdateArticle.Exec(ctx, UpdateArticleParams{ActorID: editor.ID, ArticleID: article.ID, Approved: ptr(false)})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	updated, err = f.services.UpdateArticle.Exec(ctx, UpdateArticleParams{ActorID: coord.ID, ArticleID: article.ID, Approved: ptr(false)})
	require.NoError(t, err)
	assert.False(t, updated.Approved)

	_, err = f.services.UpdateArticle.Exec(ctx, UpdateArticleParams{ActorID: editor.ID, ArticleID: uuid.New(), Title: ptr("x")})
	assert.ErrorIs(t, err, domain.ErrResourceNotFound)
}

func TestUpdateArticleTitleChangesSlug(t *testing.T) {
	f := newFixture(t)
	writer := f.addUser(t, "writer", domain.RoleWriter)
	editor := f.addUser(t, "editor", domain.RoleEditor)
	article := f.addArticle(t, writer, "old title", true)

	updated, err := f.services.UpdateArticle.Exec(context.Background(), UpdateArticleParams{ActorID: editor.ID, ArticleID: article.ID, Title: ptr("New Title")})
	require.NoError(t, err)
	assert.Equal(t, "New Title", updated.Title)
	assert.Equal(t, "new-title", updated.Slug)
}

func TestFetchManyArticles(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	writer := f.addUser(t, "writer", domain.RoleWriter)
	editor := f.addUser(t, "editor", domain.RoleEditor)
	f.addArticle(t, writer, "published", true)
	f.addArticle(t, writer, "draft", false)

	page, err := f.services.FetchManyArticles.Exec(ctx, FetchManyArticlesParams{})
	require.NoError(t, err)
	require.Len(t, page.Data, 1)
	assert.Equal(t, "published", page.Data[0].Title)

	page, err = f.services.FetchManyArticles.Exec(ctx, FetchManyArticlesParams{ActorID: &editor.ID, IncludeUnapproved: true})
	require.NoError(t, err)
	assert.Len(t, page.Data, 2)

	_, err = f.services.FetchManyArticles.Exec(ctx, FetchManyArticlesParams{ActorID: &writer.ID, IncludeUnapproved: true})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = f.services.FetchManyArticles.Exec(ctx, FetchManyArticlesParams{IncludeUnapproved: true})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestFetchHomePageArticlesSplitsRecent(t *testing.T) {
	f := newFixture(t)
	writer := f.addUser(t, "writer", domain.RoleWriter)
	now := time.Date(2024, 9, 1, 12, 0, 0, 0, time.UTC)

	for _, tt := range []struct {
		title string
		age   time.Duration
	}{
		{"fresh", time.Hour},
		{"edge", domain.RecentArticleWindow},
		{"old", domain.RecentArticleWindow + time.Minute},
	} {
		article := domain.NewArticle(writer.ID, tt.title, "c", "", nil, tt.title)
		article.Approved = true
		article.CreatedAt = now.Add(-tt.age)
		f.articles.seed(t, article)
	}

	svc := NewFetchHomePageArticlesService(f.articles)
	svc.now = func() time.Time { return now }

	home, err := svc.Exec(context.Background(), FetchHomePageArticlesParams{})
	require.NoError(t, err)
	assert.Equal(t, uint64(3), home.Pagination.TotalItems)
	require.Len(t, home.Recent, 2)
	require.Len(t, home.Others, 1)
	assert.Equal(t, "old", home.Others[0].Title)
}

func TestGetExpandedArticle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	writer := f.addUser(t, "writer", domain.RoleWriter)
	stranger := f.addUser(t, "stranger", "")
	tag := f.articleTags.seed(t, &domain.ArticleTag{Value: "科技"})

	published := domain.NewArticle(writer.ID, "published", "c", "", &tag.ID, "published")
	published.Approved = true
	f.articles.seed(t, published)
	f.addArticle(t, writer, "draft", false)

	expanded, err := f.services.GetExpandedArticle.Exec(ctx, GetExpandedArticleParams{Slug: "published"})
	require.NoError(t, err)
	assert.Equal(t, "writer", expanded.Author.Name)
	require.NotNil(t, expanded.Tag)
	assert.Equal(t, "科技", expanded.Tag.Value)

	_, err = f.services.GetExpandedArticle.Exec(ctx, GetExpandedArticleParams{Slug: "draft"})
	assert.ErrorIs(t, err, domain.ErrResourceNotFound)

	_, err = f.services.GetExpandedArticle.Exec(ctx, GetExpandedArticleParams{ActorID: &stranger.ID, Slug: "draft"})
	assert.ErrorIs(t, err, domain.ErrResourceNotFound)

	expanded, err = f.services.GetExpandedArticle.Exec(ctx, GetExpandedArticleParams{ActorID: &writer.ID, Slug: "draft"})
	require.NoError(t, err)
	assert.Nil(t, expanded.Tag)

	_, err = f.services.GetExpandedArticle.Exec(ctx, GetExpandedArticleParams{Slug: "missing"})
	assert.ErrorIs(t, err, domain.ErrResourceNotFound)
}
