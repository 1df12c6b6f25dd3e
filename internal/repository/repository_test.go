package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/sysu-ecnc-dev/newsroom/backend/internal/domain"
)

func TestWhereNumbersPlaceholders(t *testing.T) {
	var w where
	assert.Equal(t, "", w.String())

	w.addRaw("approved")
	w.add("author_id = $%d", "a")
	w.add("tag_id = $%d", int32(3))
	query := "新闻"
	w.addQuery("title", &query)

	assert.Equal(t, " WHERE approved AND author_id = $1 AND tag_id = $2 AND title ILIKE $3", w.String())
	assert.Equal(t, []any{"a", int32(3), "%新闻%"}, w.args)
}

func TestAddQueryEscapesWildcards(t *testing.T) {
	var w where
	query := `50%_a\b`
	w.addQuery("title", &query)
	assert.Equal(t, []any{`%50\%\_a\\b%`}, w.args)
}

func TestCommentPageQuery(t *testing.T) {
	q := commentPageQuery(domain.CommentFilter{}, domain.PaginationParameters{Page: 1, ItemsPerPage: 9})
	assert.Equal(t, " WHERE c.is_active", q.where.String())

	q = commentPageQuery(domain.CommentFilter{IncludeInactive: true}, domain.PaginationParameters{Page: 1, ItemsPerPage: 9})
	assert.Equal(t, "", q.where.String())
}
