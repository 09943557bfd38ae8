// Package github implements provider.Client against the GitHub REST API.
package github

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	github_ratelimit "github.com/gofri/go-github-ratelimit/v2/github_ratelimit"
	gh "github.com/google/go-github/v82/github"
	"golang.org/x/oauth2"

	"github.com/m-blaha/dbox/internal/provider"
	"github.com/m-blaha/dbox/internal/reference"
)

// Backend implements provider.Client for GitHub.
type Backend struct {
	client *gh.Client
}

// NewBackend creates a new GitHub backend. An empty token yields an
// unauthenticated client, good enough for public repositories.
// Uses go-github-ratelimit middleware for automatic rate limit handling.
func NewBackend(token string) *Backend {
	var transport http.RoundTripper
	if token != "" {
		transport = &oauth2.Transport{
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}),
		}
	}
	rateLimiter := github_ratelimit.NewClient(transport)
	return &Backend{client: gh.NewClient(rateLimiter)}
}

// GetPullRequest retrieves a pull request by its canonical reference.
func (b *Backend) GetPullRequest(ctx context.Context, ref reference.PullRequest) (*provider.PullRequest, error) {
	pr, resp, err := b.client.PullRequests.Get(ctx, ref.Org, ref.Repo, ref.Number)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return nil, fmt.Errorf("%s: %w", ref, provider.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get pull request %s: %w", ref, err)
	}

	return &provider.PullRequest{
		Ref:         ref,
		Title:       pr.GetTitle(),
		Description: pr.GetBody(),
		Author:      pr.GetUser().GetLogin(),
		URL:         pr.GetHTMLURL(),
	}, nil
}

// ListIssueComments retrieves all issue comments on a pull request in
// chronological order, following pagination.
func (b *Backend) ListIssueComments(ctx context.Context, ref reference.PullRequest) ([]provider.Comment, error) {
	var comments []provider.Comment

	opts := &gh.IssueListCommentsOptions{
		Sort:        gh.Ptr("created"),
		Direction:   gh.Ptr("asc"),
		ListOptions: gh.ListOptions{PerPage: 100},
	}
	for {
		issueComments, resp, err := b.client.Issues.ListComments(ctx, ref.Org, ref.Repo, ref.Number, opts)
		if err != nil {
			if resp != nil && resp.StatusCode == http.StatusNotFound {
				return nil, fmt.Errorf("%s: %w", ref, provider.ErrNotFound)
			}
			return nil, fmt.Errorf("failed to list comments on %s: %w", ref, err)
		}
		for _, c := range issueComments {
			comments = append(comments, provider.Comment{
				ID:        strconv.FormatInt(c.GetID(), 10),
				Author:    c.GetUser().GetLogin(),
				Body:      c.GetBody(),
				CreatedAt: c.GetCreatedAt().Time,
			})
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return comments, nil
}

// Verify Backend implements Client at compile time.
var _ provider.Client = (*Backend)(nil)
