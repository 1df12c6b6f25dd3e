package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestVisibilityToggleIsInvolution(t *testing.T) {
	for _, v := range []Visibility{VisibilityActive, VisibilityInactive} {
		assert.NotEqual(t, v, v.Toggle())
		assert.Equal(t, v, v.Toggle().Toggle())
	}
}

func TestNewCommentIsActive(t *testing.T) {
	c := NewComment(uuid.New(), nil, "写得好")
	assert.True(t, c.IsActive())

	c.ToggleVisibility()
	assert.False(t, c.IsActive())
}

func TestArticleIsRecent(t *testing.T) {
	now := time.Now()
	a := &Article{CreatedAt: now.Add(-47 * time.Hour)}
	assert.True(t, a.IsRecent(now))

	a.CreatedAt = now.Add(-48*time.Hour - 59*time.Minute)
	assert.True(t, a.IsRecent(now))

	a.CreatedAt = now.Add(-49 * time.Hour)
	assert.False(t, a.IsRecent(now))
}
