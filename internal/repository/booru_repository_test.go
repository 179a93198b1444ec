package repository_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dvornik/boorubot/internal/config"
	"github.com/dvornik/boorubot/internal/repository"
	"github.com/dvornik/boorubot/internal/utils"
)

// newTestRepository points a booru repository at a test server.
func newTestRepository(serverURL string) repository.BooruRepository {
	return repository.NewBooruRepository(&config.BooruSettings{
		BaseURL: serverURL,
		Timeout: 5 * time.Second,
	})
}

func TestGetPosts_KeyedListResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/index.php", r.URL.Path)
		assert.Equal(t, "dapi", r.URL.Query().Get("page"))
		assert.Equal(t, "post", r.URL.Query().Get("s"))
		assert.Equal(t, "index", r.URL.Query().Get("q"))
		w.Write([]byte(`{"post": [{"id": 1, "file_url": "a.jpg"}, {"id": 2, "file_url": "b.jpg"}]}`))
	}))
	defer server.Close()

	repo := newTestRepository(server.URL)
	posts, err := repo.GetPosts(context.Background(), repository.PostSearchCriteria{Tags: "cat"})

	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, int64(1), posts[0].ID.Int64())
	assert.Equal(t, int64(2), posts[1].ID.Int64())
}

func TestGetPosts_BareListResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id": 3}, {"id": 4}]`))
	}))
	defer server.Close()

	repo := newTestRepository(server.URL)
	posts, err := repo.GetPosts(context.Background(), repository.PostSearchCriteria{})

	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, int64(3), posts[0].ID.Int64())
}

func TestGetPosts_SingleObjectResponse(t *testing.T) {
	// A single unwrapped record wraps into a one-element list
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"post": {"id": 9, "file_url": "only.jpg"}}`))
	}))
	defer server.Close()

	repo := newTestRepository(server.URL)
	posts, err := repo.GetPosts(context.Background(), repository.PostSearchCriteria{})

	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, int64(9), posts[0].ID.Int64())
}

func TestGetPosts_PluralKeyResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"posts": [{"id": 5}]}`))
	}))
	defer server.Close()

	repo := newTestRepository(server.URL)
	posts, err := repo.GetPosts(context.Background(), repository.PostSearchCriteria{})

	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, int64(5), posts[0].ID.Int64())
}

func TestGetPosts_NullAndEmptyResponses(t *testing.T) {
	for _, body := range []string{`null`, ``, `{"post": null}`, `{}`} {
		t.Run("body "+body, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(body))
			}))
			defer server.Close()

			repo := newTestRepository(server.URL)
			posts, err := repo.GetPosts(context.Background(), repository.PostSearchCriteria{})

			require.NoError(t, err)
			assert.Empty(t, posts)
			assert.NotNil(t, posts)
		})
	}
}

func TestGetPosts_GarbageResponseYieldsEmpty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`"just a string"`))
	}))
	defer server.Close()

	repo := newTestRepository(server.URL)
	posts, err := repo.GetPosts(context.Background(), repository.PostSearchCriteria{})

	require.NoError(t, err)
	assert.Empty(t, posts)
}

func TestGetPosts_FallbackFormatOnPrimaryFailure(t *testing.T) {
	var requests []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests = append(requests, r.URL.RawQuery)
		if r.URL.Query().Get("page") == "dapi" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		// Alternate format answers
		assert.Equal(t, "post", r.URL.Query().Get("page"))
		assert.Equal(t, "list", r.URL.Query().Get("s"))
		w.Write([]byte(`[{"id": 1}, {"id": 2}, {"id": 3}]`))
	}))
	defer server.Close()

	repo := newTestRepository(server.URL)
	posts, err := repo.GetPosts(context.Background(), repository.PostSearchCriteria{Tags: "cat"})

	require.NoError(t, err)
	assert.Len(t, posts, 3)
	assert.Len(t, requests, 2)
}

func TestGetPosts_BothFormatsFailDegradesToEmpty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	repo := newTestRepository(server.URL)
	posts, err := repo.GetPosts(context.Background(), repository.PostSearchCriteria{Tags: "cat"})

	// An outage reads as zero matches, never as an error
	require.NoError(t, err)
	assert.Empty(t, posts)
	assert.NotNil(t, posts)
}

func TestGetPosts_UnreachableHostDegradesToEmpty(t *testing.T) {
	repo := repository.NewBooruRepository(&config.BooruSettings{
		BaseURL: "http://127.0.0.1:1",
		Timeout: 500 * time.Millisecond,
	})

	posts, err := repo.GetPosts(context.Background(), repository.PostSearchCriteria{})

	require.NoError(t, err)
	assert.Empty(t, posts)
}

func TestGetPosts_AuthPairSentTogether(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "key123", r.URL.Query().Get("api_key"))
		assert.Equal(t, "42", r.URL.Query().Get("user_id"))
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	repo := repository.NewBooruRepository(&config.BooruSettings{
		BaseURL: server.URL,
		APIKey:  "key123",
		UserID:  "42",
		Timeout: 5 * time.Second,
	})

	_, err := repo.GetPosts(context.Background(), repository.PostSearchCriteria{})
	require.NoError(t, err)
}

func TestGetPosts_HalfCredentialPairNotSent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.False(t, r.URL.Query().Has("api_key"))
		assert.False(t, r.URL.Query().Has("user_id"))
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	repo := repository.NewBooruRepository(&config.BooruSettings{
		BaseURL: server.URL,
		APIKey:  "key123",
		Timeout: 5 * time.Second,
	})

	_, err := repo.GetPosts(context.Background(), repository.PostSearchCriteria{})
	require.NoError(t, err)
}

func TestGetPosts_LimitClamping(t *testing.T) {
	tests := []struct {
		name     string
		limit    int
		expected string
	}{
		{name: "zero uses default", limit: 0, expected: "20"},
		{name: "in range passes through", limit: 50, expected: "50"},
		{name: "over max clamps", limit: 500, expected: "100"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, tt.expected, r.URL.Query().Get("limit"))
				w.Write([]byte(`[]`))
			}))
			defer server.Close()

			repo := newTestRepository(server.URL)
			_, err := repo.GetPosts(context.Background(), repository.PostSearchCriteria{Limit: tt.limit})
			require.NoError(t, err)
		})
	}
}

func TestGetPosts_SkipsUndecodableRecords(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"post": [{"id": 1}, "not an object", {"id": 2}]}`))
	}))
	defer server.Close()

	repo := newTestRepository(server.URL)
	posts, err := repo.GetPosts(context.Background(), repository.PostSearchCriteria{})

	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, int64(1), posts[0].ID.Int64())
	assert.Equal(t, int64(2), posts[1].ID.Int64())
}

func TestGetPostByID(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "77", r.URL.Query().Get("id"))
			assert.Equal(t, "1", r.URL.Query().Get("limit"))
			w.Write([]byte(`{"post": [{"id": 77, "file_url": "a.jpg"}]}`))
		}))
		defer server.Close()

		repo := newTestRepository(server.URL)
		post, err := repo.GetPostByID(context.Background(), 77)

		require.NoError(t, err)
		assert.Equal(t, int64(77), post.ID.Int64())
	})

	t.Run("missing post is not found", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`[]`))
		}))
		defer server.Close()

		repo := newTestRepository(server.URL)
		_, err := repo.GetPostByID(context.Background(), 77)

		require.Error(t, err)
		assert.True(t, utils.IsNotFoundError(err))
	})
}

func TestGetTags(t *testing.T) {
	t.Run("exact name search", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "tag", r.URL.Query().Get("s"))
			assert.Equal(t, "landscape", r.URL.Query().Get("name"))
			assert.Equal(t, "ASC", r.URL.Query().Get("order"))
			assert.Equal(t, "name", r.URL.Query().Get("orderby"))
			w.Write([]byte(`{"tag": [{"id": 1, "name": "landscape", "count": 120}]}`))
		}))
		defer server.Close()

		repo := newTestRepository(server.URL)
		tags, err := repo.GetTags(context.Background(), repository.TagSearchCriteria{Name: "landscape"})

		require.NoError(t, err)
		require.Len(t, tags, 1)
		assert.Equal(t, "landscape", tags[0].Name.String())
		assert.Equal(t, int64(120), tags[0].Count.Int64())
	})

	t.Run("pattern search uses tags parameter", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "%school%", r.URL.Query().Get("tags"))
			w.Write([]byte(`{"tag": []}`))
		}))
		defer server.Close()

		repo := newTestRepository(server.URL)
		_, err := repo.GetTags(context.Background(), repository.TagSearchCriteria{Pattern: "%school%"})
		require.NoError(t, err)
	})

	t.Run("failure degrades to empty", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()

		repo := newTestRepository(server.URL)
		tags, err := repo.GetTags(context.Background(), repository.TagSearchCriteria{Name: "x"})

		require.NoError(t, err)
		assert.Empty(t, tags)
	})
}

func TestGetComments(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "comment", r.URL.Query().Get("s"))
			assert.Equal(t, "55", r.URL.Query().Get("post_id"))
			w.Write([]byte(`{"comment": [{"id": 1, "post_id": 55, "creator": "alice", "body": "nice"}]}`))
		}))
		defer server.Close()

		repo := newTestRepository(server.URL)
		comments, err := repo.GetComments(context.Background(), 55)

		require.NoError(t, err)
		require.Len(t, comments, 1)
		assert.Equal(t, "alice", comments[0].Creator.String())
	})

	t.Run("failure surfaces as upstream error", func(t *testing.T) {
		// Comments have no degradation contract
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		repo := newTestRepository(server.URL)
		_, err := repo.GetComments(context.Background(), 55)

		require.Error(t, err)
		assert.True(t, utils.IsUpstreamError(err))
	})
}

func TestGetDeletedImages(t *testing.T) {
	lastID := int64(900)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "show", r.URL.Query().Get("deleted"))
		assert.Equal(t, "900", r.URL.Query().Get("last_id"))
		w.Write([]byte(`{"post": [{"id": 901}]}`))
	}))
	defer server.Close()

	repo := newTestRepository(server.URL)
	posts, err := repo.GetDeletedImages(context.Background(), &lastID)

	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, int64(901), posts[0].ID.Int64())
}

func TestGetPosts_TagsAreEscaped(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Query() decodes the escaped value back to the raw tag string
		assert.Equal(t, "cat girl rating:safe", r.URL.Query().Get("tags"))
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	repo := newTestRepository(server.URL)
	_, err := repo.GetPosts(context.Background(), repository.PostSearchCriteria{Tags: "cat girl rating:safe"})
	require.NoError(t, err)
}
