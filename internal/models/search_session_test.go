package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dvornik/boorubot/internal/models"
)

func makePosts(n int) []models.Post {
	posts := make([]models.Post, n)
	for i := range posts {
		posts[i] = models.Post{ID: models.FlexInt64(i + 1)}
	}
	return posts
}

func TestNewSearchSession_Pagination(t *testing.T) {
	tests := []struct {
		name          string
		results       int
		expectedPages int
	}{
		{name: "empty still has one page", results: 0, expectedPages: 1},
		{name: "single result", results: 1, expectedPages: 1},
		{name: "exact page", results: 5, expectedPages: 1},
		{name: "one over", results: 6, expectedPages: 2},
		{name: "several pages", results: 12, expectedPages: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session := models.NewSearchSession("q", makePosts(tt.results))
			assert.Equal(t, tt.expectedPages, session.TotalPages)
			assert.Equal(t, 0, session.CurrentPage)
		})
	}
}

func TestSearchSession_PageSlice(t *testing.T) {
	session := models.NewSearchSession("q", makePosts(12))

	first := session.PageSlice(0)
	require.Len(t, first, 5)
	assert.Equal(t, int64(1), first[0].ID.Int64())

	last := session.PageSlice(2)
	require.Len(t, last, 2)
	assert.Equal(t, int64(11), last[0].ID.Int64())
	assert.Equal(t, int64(12), last[1].ID.Int64())

	// Out of range yields empty, never panics
	assert.Empty(t, session.PageSlice(3))
	assert.Empty(t, session.PageSlice(-1))
}

func TestSearchSession_InRange(t *testing.T) {
	session := models.NewSearchSession("q", makePosts(6))

	assert.True(t, session.InRange(0))
	assert.True(t, session.InRange(1))
	assert.False(t, session.InRange(2))
	assert.False(t, session.InRange(-1))
}

func TestSearchSession_PostAt(t *testing.T) {
	session := models.NewSearchSession("q", makePosts(7))

	// Absolute index over the full result set, not page-relative
	post, ok := session.PostAt(6)
	require.True(t, ok)
	assert.Equal(t, int64(7), post.ID.Int64())

	_, ok = session.PostAt(7)
	assert.False(t, ok)
	_, ok = session.PostAt(-1)
	assert.False(t, ok)
}

func TestSearchSession_CurrentSlice(t *testing.T) {
	session := models.NewSearchSession("q", makePosts(8))
	session.CurrentPage = 1

	slice := session.CurrentSlice()
	require.Len(t, slice, 3)
	assert.Equal(t, int64(6), slice[0].ID.Int64())
}
