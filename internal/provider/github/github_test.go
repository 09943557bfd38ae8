package github

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	gh "github.com/google/go-github/v82/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m-blaha/dbox/internal/provider"
	"github.com/m-blaha/dbox/internal/reference"
)

// newTestBackend creates a Backend wired to a test HTTP server.
func newTestBackend(t *testing.T, handler http.Handler) *Backend {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := gh.NewClient(nil).WithEnterpriseURLs(server.URL+"/", server.URL+"/")
	require.NoError(t, err)

	return &Backend{client: client}
}

func TestGetPullRequest(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v3/repos/testorg/testrepo/pulls/42", func(w http.ResponseWriter, r *http.Request) {
		pr := gh.PullRequest{
			Number:  gh.Ptr(42),
			Title:   gh.Ptr("Test PR"),
			Body:    gh.Ptr("Requires: org/other#7"),
			HTMLURL: gh.Ptr("https://github.com/testorg/testrepo/pull/42"),
			User:    &gh.User{Login: gh.Ptr("someone")},
		}
		json.NewEncoder(w).Encode(pr)
	})

	b := newTestBackend(t, mux)
	ref := reference.PullRequest{Org: "testorg", Repo: "testrepo", Number: 42}

	got, err := b.GetPullRequest(t.Context(), ref)
	require.NoError(t, err)
	assert.Equal(t, ref, got.Ref)
	assert.Equal(t, "Test PR", got.Title)
	assert.Equal(t, "Requires: org/other#7", got.Description)
	assert.Equal(t, "someone", got.Author)
	assert.Equal(t, "https://github.com/testorg/testrepo/pull/42", got.URL)
}

func TestGetPullRequestNotFound(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message": "Not Found"}`, http.StatusNotFound)
	})

	b := newTestBackend(t, mux)
	ref := reference.PullRequest{Org: "no", Repo: "such", Number: 1}

	_, err := b.GetPullRequest(t.Context(), ref)
	require.Error(t, err)
	assert.ErrorIs(t, err, provider.ErrNotFound)
}

func TestListIssueComments(t *testing.T) {
	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v3/repos/testorg/testrepo/issues/42/comments", func(w http.ResponseWriter, r *http.Request) {
		comments := []*gh.IssueComment{
			{
				ID:        gh.Ptr(int64(100)),
				Body:      gh.Ptr("first comment"),
				User:      &gh.User{Login: gh.Ptr("alice")},
				CreatedAt: &gh.Timestamp{Time: created},
			},
			{
				ID:        gh.Ptr(int64(101)),
				Body:      gh.Ptr("Requires: a/b#3"),
				User:      &gh.User{Login: gh.Ptr("bob")},
				CreatedAt: &gh.Timestamp{Time: created.Add(time.Hour)},
			},
		}
		json.NewEncoder(w).Encode(comments)
	})

	b := newTestBackend(t, mux)
	ref := reference.PullRequest{Org: "testorg", Repo: "testrepo", Number: 42}

	got, err := b.ListIssueComments(t.Context(), ref)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "100", got[0].ID)
	assert.Equal(t, "alice", got[0].Author)
	assert.Equal(t, "first comment", got[0].Body)
	assert.Equal(t, created, got[0].CreatedAt)
	assert.Equal(t, "Requires: a/b#3", got[1].Body)
}

func TestListIssueCommentsPagination(t *testing.T) {
	var baseURL string

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v3/repos/testorg/testrepo/issues/42/comments", func(w http.ResponseWriter, r *http.Request) {
		page := r.URL.Query().Get("page")
		if page == "" || page == "1" {
			w.Header().Set("Link", fmt.Sprintf(`<%s/api/v3/repos/testorg/testrepo/issues/42/comments?page=2>; rel="next"`, baseURL))
			json.NewEncoder(w).Encode([]*gh.IssueComment{
				{ID: gh.Ptr(int64(1)), Body: gh.Ptr("page one")},
			})
			return
		}
		json.NewEncoder(w).Encode([]*gh.IssueComment{
			{ID: gh.Ptr(int64(2)), Body: gh.Ptr("page two")},
		})
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	baseURL = server.URL

	client, err := gh.NewClient(nil).WithEnterpriseURLs(server.URL+"/", server.URL+"/")
	require.NoError(t, err)
	b := &Backend{client: client}

	got, err := b.ListIssueComments(t.Context(), reference.PullRequest{Org: "testorg", Repo: "testrepo", Number: 42})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "page one", got[0].Body)
	assert.Equal(t, "page two", got[1].Body)
}

func TestListIssueCommentsNotFound(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message": "Not Found"}`, http.StatusNotFound)
	})

	b := newTestBackend(t, mux)

	_, err := b.ListIssueComments(t.Context(), reference.PullRequest{Org: "no", Repo: "such", Number: 1})
	require.Error(t, err)
	assert.ErrorIs(t, err, provider.ErrNotFound)
}
