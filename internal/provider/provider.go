package provider

import (
	"context"
	"errors"
	"time"

	"github.com/m-blaha/dbox/internal/reference"
)

// ErrNotFound is returned when a pull request or its repository does not
// exist or is not accessible with the current credentials.
var ErrNotFound = errors.New("pull request not found")

// Client is the interface for the hosted-repository API. The resolver needs
// exactly two operations: fetching a pull request's description and listing
// its issue comments in chronological order.
type Client interface {
	// GetPullRequest retrieves pull-request metadata, including the
	// description body the resolver scans for dependency annotations.
	GetPullRequest(ctx context.Context, ref reference.PullRequest) (*PullRequest, error)

	// ListIssueComments retrieves all issue comments on a pull request in
	// chronological (creation) order.
	ListIssueComments(ctx context.Context, ref reference.PullRequest) ([]Comment, error)
}

// PullRequest contains metadata about a fetched pull request.
type PullRequest struct {
	// Ref is the canonical reference the pull request was fetched by.
	Ref reference.PullRequest
	// Title is the pull request title.
	Title string
	// Description is the pull request description/body text.
	Description string
	// Author is the login of the PR author.
	Author string
	// URL is the web URL to view the pull request.
	URL string
}

// Comment represents an issue comment on a pull request.
type Comment struct {
	// ID is the comment identifier.
	ID string
	// Author is the login of the comment author.
	Author string
	// Body is the comment text content.
	Body string
	// CreatedAt is the timestamp when the comment was created.
	CreatedAt time.Time
}
