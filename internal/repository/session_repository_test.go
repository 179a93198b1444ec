package repository_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dvornik/boorubot/internal/models"
	"github.com/dvornik/boorubot/internal/repository"
)

func sessionWithPosts(query string, n int) *models.SearchSession {
	posts := make([]models.Post, n)
	for i := range posts {
		posts[i] = models.Post{ID: models.FlexInt64(i + 1)}
	}
	return models.NewSearchSession(query, posts)
}

func TestSessionRepository_SaveAndGet(t *testing.T) {
	repo := repository.NewSessionRepository()

	_, ok := repo.Get(1)
	assert.False(t, ok)

	repo.Save(1, sessionWithPosts("cat", 3))

	session, ok := repo.Get(1)
	require.True(t, ok)
	assert.Equal(t, "cat", session.Query)
	assert.Len(t, session.Results, 3)
}

func TestSessionRepository_SaveReplacesExisting(t *testing.T) {
	repo := repository.NewSessionRepository()

	repo.Save(1, sessionWithPosts("first", 3))
	repo.Save(1, sessionWithPosts("second", 8))

	session, ok := repo.Get(1)
	require.True(t, ok)
	assert.Equal(t, "second", session.Query)
	assert.Len(t, session.Results, 8)
	assert.Equal(t, 0, session.CurrentPage)
}

func TestSessionRepository_Delete(t *testing.T) {
	repo := repository.NewSessionRepository()
	repo.Save(1, sessionWithPosts("cat", 1))

	assert.True(t, repo.Delete(1))
	assert.False(t, repo.Delete(1))

	_, ok := repo.Get(1)
	assert.False(t, ok)
}

func TestSessionRepository_UpdatePage(t *testing.T) {
	repo := repository.NewSessionRepository()
	repo.Save(1, sessionWithPosts("cat", 12)) // 3 pages

	assert.True(t, repo.UpdatePage(1, 2))
	session, _ := repo.Get(1)
	assert.Equal(t, 2, session.CurrentPage)

	// Out of range is refused and leaves the page untouched
	assert.False(t, repo.UpdatePage(1, 3))
	assert.False(t, repo.UpdatePage(1, -1))
	session, _ = repo.Get(1)
	assert.Equal(t, 2, session.CurrentPage)

	// No session at all
	assert.False(t, repo.UpdatePage(99, 0))
}

func TestSessionRepository_ClearAll(t *testing.T) {
	repo := repository.NewSessionRepository()
	repo.Save(1, sessionWithPosts("a", 1))
	repo.Save(2, sessionWithPosts("b", 1))

	assert.Equal(t, 2, repo.ActiveUserCount())
	assert.Equal(t, 2, repo.ClearAll())
	assert.Equal(t, 0, repo.ActiveUserCount())
}

func TestSessionRepository_ConcurrentAccess(t *testing.T) {
	repo := repository.NewSessionRepository()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(userID int64) {
			defer wg.Done()
			repo.Save(userID, sessionWithPosts("q", 6))
			repo.Get(userID)
			repo.UpdatePage(userID, 1)
			repo.Delete(userID)
		}(int64(i % 10))
	}
	wg.Wait()
}
