package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dvornik/boorubot/internal/models"
	"github.com/dvornik/boorubot/internal/repository"
	"github.com/dvornik/boorubot/internal/service"
	"github.com/dvornik/boorubot/internal/utils"
)

// fakeBooruRepository records the criteria it was called with and replays
// canned responses.
type fakeBooruRepository struct {
	postCalls []repository.PostSearchCriteria
	tagCalls  []repository.TagSearchCriteria

	posts    []models.Post
	postsErr error

	// tagResponses is consumed one call at a time
	tagResponses [][]models.Tag
	tagsErr      error
}

func (f *fakeBooruRepository) GetPosts(ctx context.Context, criteria repository.PostSearchCriteria) ([]models.Post, error) {
	f.postCalls = append(f.postCalls, criteria)
	return f.posts, f.postsErr
}

func (f *fakeBooruRepository) GetPostByID(ctx context.Context, postID int64) (*models.Post, error) {
	if len(f.posts) == 0 {
		return nil, utils.NewNotFoundError("Post", postID)
	}
	return &f.posts[0], nil
}

func (f *fakeBooruRepository) GetTags(ctx context.Context, criteria repository.TagSearchCriteria) ([]models.Tag, error) {
	f.tagCalls = append(f.tagCalls, criteria)
	if f.tagsErr != nil {
		return nil, f.tagsErr
	}
	if len(f.tagResponses) == 0 {
		return []models.Tag{}, nil
	}
	tags := f.tagResponses[0]
	f.tagResponses = f.tagResponses[1:]
	return tags, nil
}

func (f *fakeBooruRepository) GetComments(ctx context.Context, postID int64) ([]models.Comment, error) {
	return []models.Comment{}, nil
}

func (f *fakeBooruRepository) GetDeletedImages(ctx context.Context, lastID *int64) ([]models.Post, error) {
	return []models.Post{}, nil
}

// fakeSettingsRepository keeps settings in a map.
type fakeSettingsRepository struct {
	settings map[int64]*models.UserSettings
	saveErr  error
}

func newFakeSettingsRepository() *fakeSettingsRepository {
	return &fakeSettingsRepository{settings: map[int64]*models.UserSettings{}}
}

func (f *fakeSettingsRepository) Get(ctx context.Context, userID int64) *models.UserSettings {
	if s, ok := f.settings[userID]; ok {
		return s
	}
	return models.NewUserSettings(userID)
}

func (f *fakeSettingsRepository) Save(ctx context.Context, userID int64, s *models.UserSettings) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.settings[userID] = s
	return nil
}

func (f *fakeSettingsRepository) Delete(ctx context.Context, userID int64) (bool, error) {
	if _, ok := f.settings[userID]; !ok {
		return false, nil
	}
	delete(f.settings, userID)
	return true, nil
}

func (f *fakeSettingsRepository) Exists(ctx context.Context, userID int64) (bool, error) {
	_, ok := f.settings[userID]
	return ok, nil
}

func makePosts(n int) []models.Post {
	posts := make([]models.Post, n)
	for i := range posts {
		posts[i] = models.Post{ID: models.FlexInt64(i + 1)}
	}
	return posts
}

func newBooruService(booruRepo *fakeBooruRepository, settingsRepo repository.SettingsRepository) (*service.BooruService, repository.SessionRepository) {
	sessionRepo := repository.NewSessionRepository()
	return service.NewBooruService(booruRepo, sessionRepo, settingsRepo, 100), sessionRepo
}

func TestBooruService_ComposeAndSearch(t *testing.T) {
	booruRepo := &fakeBooruRepository{posts: makePosts(12)}
	settingsRepo := newFakeSettingsRepository()

	settings := models.NewUserSettings(1)
	settings.AddAutoTag("cat")
	settings.SetRule("rating:safe", true)
	settingsRepo.settings[1] = settings

	svc, sessionRepo := newBooruService(booruRepo, settingsRepo)

	session, err := svc.ComposeAndSearch(context.Background(), 1, "landscape")
	require.NoError(t, err)

	// Preferences are composed onto the raw query
	require.Len(t, booruRepo.postCalls, 1)
	assert.Equal(t, "landscape cat rating:safe", booruRepo.postCalls[0].Tags)

	assert.Equal(t, 3, session.TotalPages)
	assert.Equal(t, 0, session.CurrentPage)

	stored, ok := sessionRepo.Get(1)
	require.True(t, ok)
	assert.Equal(t, session, stored)
}

func TestBooruService_ComposeAndSearch_ZeroResultsKeepsOldSession(t *testing.T) {
	booruRepo := &fakeBooruRepository{posts: []models.Post{}}
	svc, sessionRepo := newBooruService(booruRepo, newFakeSettingsRepository())

	previous := models.NewSearchSession("old", makePosts(3))
	sessionRepo.Save(1, previous)

	_, err := svc.ComposeAndSearch(context.Background(), 1, "nothing_matches")

	require.Error(t, err)
	assert.True(t, utils.IsNotFoundError(err))

	// The previous session survives a failed search
	stored, ok := sessionRepo.Get(1)
	require.True(t, ok)
	assert.Equal(t, "old", stored.Query)
}

func TestBooruService_SearchPosts(t *testing.T) {
	booruRepo := &fakeBooruRepository{posts: makePosts(2)}
	svc, _ := newBooruService(booruRepo, newFakeSettingsRepository())

	posts, err := svc.SearchPosts(context.Background(), "cat rating:safe", 10, 2)
	require.NoError(t, err)
	assert.Len(t, posts, 2)

	require.Len(t, booruRepo.postCalls, 1)
	assert.Equal(t, "cat rating:safe", booruRepo.postCalls[0].Tags)
	assert.Equal(t, 10, booruRepo.postCalls[0].Limit)
	assert.Equal(t, 2, booruRepo.postCalls[0].Page)
}

func TestBooruService_RandomSearch(t *testing.T) {
	booruRepo := &fakeBooruRepository{posts: makePosts(1)}
	svc, _ := newBooruService(booruRepo, newFakeSettingsRepository())

	_, err := svc.RandomSearch(context.Background(), 1)
	require.NoError(t, err)

	require.Len(t, booruRepo.postCalls, 1)
	assert.Equal(t, "sort:random", booruRepo.postCalls[0].Tags)
}

func TestBooruService_NavigatePage(t *testing.T) {
	booruRepo := &fakeBooruRepository{posts: makePosts(12)} // 3 pages
	svc, _ := newBooruService(booruRepo, newFakeSettingsRepository())

	_, err := svc.ComposeAndSearch(context.Background(), 1, "q")
	require.NoError(t, err)

	session, ok := svc.NavigatePage(1, 1)
	require.True(t, ok)
	assert.Equal(t, 1, session.CurrentPage)

	session, ok = svc.NavigatePage(1, 1)
	require.True(t, ok)
	assert.Equal(t, 2, session.CurrentPage)

	// Off the end is refused without moving
	_, ok = svc.NavigatePage(1, 1)
	assert.False(t, ok)
	session, _ = svc.CurrentSession(1)
	assert.Equal(t, 2, session.CurrentPage)

	session, ok = svc.NavigatePage(1, -1)
	require.True(t, ok)
	assert.Equal(t, 1, session.CurrentPage)

	// No session at all
	_, ok = svc.NavigatePage(99, 1)
	assert.False(t, ok)
}

func TestBooruService_GoToPage(t *testing.T) {
	booruRepo := &fakeBooruRepository{posts: makePosts(12)}
	svc, _ := newBooruService(booruRepo, newFakeSettingsRepository())

	_, err := svc.ComposeAndSearch(context.Background(), 1, "q")
	require.NoError(t, err)

	assert.True(t, svc.GoToPage(1, 2))
	assert.False(t, svc.GoToPage(1, 3))
	assert.False(t, svc.GoToPage(1, -1))
}

func TestBooruService_SelectResult(t *testing.T) {
	booruRepo := &fakeBooruRepository{posts: makePosts(7)}
	svc, _ := newBooruService(booruRepo, newFakeSettingsRepository())

	_, err := svc.ComposeAndSearch(context.Background(), 1, "q")
	require.NoError(t, err)

	post, ok := svc.SelectResult(1, 6)
	require.True(t, ok)
	assert.Equal(t, int64(7), post.ID.Int64())

	_, ok = svc.SelectResult(1, 7)
	assert.False(t, ok)
	_, ok = svc.SelectResult(99, 0)
	assert.False(t, ok)
}

func TestBooruService_ClearSession(t *testing.T) {
	booruRepo := &fakeBooruRepository{posts: makePosts(1)}
	svc, _ := newBooruService(booruRepo, newFakeSettingsRepository())

	_, err := svc.ComposeAndSearch(context.Background(), 1, "q")
	require.NoError(t, err)

	assert.True(t, svc.ClearSession(1))
	assert.False(t, svc.ClearSession(1))
	_, ok := svc.CurrentSession(1)
	assert.False(t, ok)
}

func TestBooruService_SearchTagsWithFallback(t *testing.T) {
	t.Run("exact match skips fallback", func(t *testing.T) {
		booruRepo := &fakeBooruRepository{
			tagResponses: [][]models.Tag{{{Name: "cat"}}},
		}
		svc, _ := newBooruService(booruRepo, newFakeSettingsRepository())

		tags, err := svc.SearchTagsWithFallback(context.Background(), "cat", 10)
		require.NoError(t, err)
		assert.Len(t, tags, 1)

		require.Len(t, booruRepo.tagCalls, 1)
		assert.Equal(t, "cat", booruRepo.tagCalls[0].Name)
		assert.Empty(t, booruRepo.tagCalls[0].Pattern)
	})

	t.Run("empty exact result falls back to pattern", func(t *testing.T) {
		booruRepo := &fakeBooruRepository{
			tagResponses: [][]models.Tag{{}, {{Name: "cat_ears"}}},
		}
		svc, _ := newBooruService(booruRepo, newFakeSettingsRepository())

		tags, err := svc.SearchTagsWithFallback(context.Background(), "cat", 10)
		require.NoError(t, err)
		assert.Len(t, tags, 1)

		require.Len(t, booruRepo.tagCalls, 2)
		assert.Equal(t, "%cat%", booruRepo.tagCalls[1].Pattern)
	})

	t.Run("short query never falls back", func(t *testing.T) {
		booruRepo := &fakeBooruRepository{
			tagResponses: [][]models.Tag{{}},
		}
		svc, _ := newBooruService(booruRepo, newFakeSettingsRepository())

		tags, err := svc.SearchTagsWithFallback(context.Background(), "ab", 10)
		require.NoError(t, err)
		assert.Empty(t, tags)
		assert.Len(t, booruRepo.tagCalls, 1)
	})
}
