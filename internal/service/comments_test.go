package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sysu-ecnc-dev/newsroom/backend/internal/domain"
)

func TestCommentOnArticle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	writer := f.addUser(t, "writer", domain.RoleWriter)
	reader := f.addUser(t, "reader", "")
	published := f.addArticle(t, writer, "published", true)
	draft := f.addArticle(t, writer, "draft", false)

	comment, err := f.services.CommentOnArticle.Exec(ctx, CommentOnArticleParams{ActorID: reader.ID, ArticleID: published.ID, Content: "好文章"})
	require.NoError(t, err)
	assert.True(t, comment.IsActive())
	assert.Equal(t, reader.ID, comment.AuthorID)

	_, err = f.services.CommentOnArticle.Exec(ctx, CommentOnArticleParams{ActorID: reader.ID, ArticleID: draft.ID, Content: "抢先看"})
	assert.ErrorIs(t, err, domain.ErrResourceNotFound)

	_, err = f.services.CommentOnArticle.Exec(ctx, CommentOnArticleParams{ActorID: reader.ID, ArticleID: uuid.New(), Content: "?"})
	assert.ErrorIs(t, err, domain.ErrResourceNotFound)

	_, err = f.services.CommentOnArticle.Exec(ctx, CommentOnArticleParams{ActorID: uuid.New(), ArticleID: published.ID, Content: "匿名"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	assert.Equal(t, 1, f.comments.len())
}

func TestToggleCommentVisibilityIsInvolution(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	writer := f.addUser(t, "writer", domain.RoleWriter)
	coord := f.addUser(t, "coord", domain.RoleCoord)
	comment := f.addComment(t, writer, f.addArticle(t, writer, "a", true), "hello")

	toggled, err := f.services.ToggleCommentVisibility.Exec(ctx, ToggleCommentVisibilityParams{ActorID: coord.ID, CommentID: comment.ID})
	require.NoError(t, err)
	assert.Equal(t, domain.VisibilityInactive, toggled.Visibility)

	toggled, err = f.services.ToggleCommentVisibility.Exec(ctx, ToggleCommentVisibilityParams{ActorID: coord.ID, CommentID: comment.ID})
	require.NoError(t, err)
	assert.Equal(t, domain.VisibilityActive, toggled.Visibility)

	stored, _ := f.comments.FindByID(ctx, comment.ID)
	assert.Equal(t, *comment, *stored)
}

func TestToggleCommentVisibilityDeniedAndMissing(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	writer := f.addUser(t, "writer", domain.RoleWriter)
	editor := f.addUser(t, "editor", domain.RoleEditor)
	coord := f.addUser(t, "coord", domain.RoleCoord)
	comment := f.addComment(t, writer, f.addArticle(t, writer, "a", true), "hello")

	_, err := f.services.ToggleCommentVisibility.Exec(ctx, ToggleCommentVisibilityParams{ActorID: editor.ID, CommentID: comment.ID})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	stored, _ := f.comments.FindByID(ctx, comment.ID)
	assert.True(t, stored.IsActive())
	assert.Zero(t, f.comments.mutations())

	_, err = f.services.ToggleCommentVisibility.Exec(ctx, ToggleCommentVisibilityParams{ActorID: coord.ID, CommentID: uuid.New()})
	assert.ErrorIs(t, err, domain.ErrResourceNotFound)
}

func TestDeleteComment(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	writer := f.addUser(t, "writer", domain.RoleWriter)
	admin := f.addUser(t, "admin", domain.RoleAdmin)
	comment := f.addComment(t, writer, f.addArticle(t, writer, "a", true), "hello")

	err := f.services.DeleteComment.Exec(ctx, DeleteCommentParams{ActorID: writer.ID, CommentID: comment.ID})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	assert.Equal(t, 1, f.comments.len())

	require.NoError(t, f.services.DeleteComment.Exec(ctx, DeleteCommentParams{ActorID: admin.ID, CommentID: comment.ID}))
	assert.Zero(t, f.comments.len())

	// 评论已经不存在时返回 BadRequest 而不是 NotFound
	err = f.services.DeleteComment.Exec(ctx, DeleteCommentParams{ActorID: admin.ID, CommentID: comment.ID})
	assert.ErrorIs(t, err, domain.ErrBadRequest)
}

func TestFetchManyCommentsWithAuthor(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	writer := f.addUser(t, "writer", domain.RoleWriter)
	article := f.addArticle(t, writer, "a", true)
	f.addComment(t, writer, article, "first")
	f.addComment(t, writer, article, "second")

	page, err := f.services.FetchManyCommentsWithAuthor.Exec(ctx, FetchManyCommentsWithAuthorParams{ArticleID: &article.ID})
	require.NoError(t, err)
	assert.Equal(t, domain.PaginationResponse{CurrentPage: 1, TotalItems: 2, TotalPages: 1}, page.Pagination)
	require.Len(t, page.Data, 2)
	assert.Equal(t, "writer", page.Data[0].Author.Name)

	hidden := f.addComment(t, writer, article, "hidden")
	hidden.ToggleVisibility()
	f.comments.seed(t, hidden)

	page, err = f.services.FetchManyCommentsWithAuthor.Exec(ctx, FetchManyCommentsWithAuthorParams{ArticleID: &article.ID})
	require.NoError(t, err)
	assert.Equal(t, uint64(2), page.Pagination.TotalItems)

	page, err = f.services.FetchManyCommentsWithAuthor.Exec(ctx, FetchManyCommentsWithAuthorParams{
		PageQuery: domain.PageQuery{Page: ptr(uint32(2)), PerPage: ptr(uint32(1))},
	})
	require.NoError(t, err)
	assert.Equal(t, domain.PaginationResponse{CurrentPage: 2, TotalItems: 2, TotalPages: 2}, page.Pagination)
	require.Len(t, page.Data, 1)
	assert.Equal(t, "second", page.Data[0].Content)

	f.comments.failWith = errStorage
	_, err = f.services.FetchManyCommentsWithAuthor.Exec(ctx, FetchManyCommentsWithAuthorParams{})
	assert.ErrorIs(t, err, domain.ErrInternal)
}

func TestFetchManyCommentsInactiveNeedsPermission(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	writer := f.addUser(t, "writer", domain.RoleWriter)
	coord := f.addUser(t, "coord", domain.RoleCoord)
	article := f.addArticle(t, writer, "a", true)
	f.addComment(t, writer, article, "visible")
	hidden := f.addComment(t, writer, article, "hidden")
	hidden.ToggleVisibility()
	f.comments.seed(t, hidden)

	page, err := f.services.FetchManyComments.Exec(ctx, FetchManyCommentsParams{})
	require.NoError(t, err)
	assert.Len(t, page.Data, 1)

	page, err = f.services.FetchManyComments.Exec(ctx, FetchManyCommentsParams{ActorID: &coord.ID, IncludeInactive: true})
	require.NoError(t, err)
	assert.Len(t, page.Data, 2)

	_, err = f.services.FetchManyComments.Exec(ctx, FetchManyCommentsParams{ActorID: &writer.ID, IncludeInactive: true})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
