package provider

import (
	"context"
	"fmt"
	"sync"

	"github.com/m-blaha/dbox/internal/reference"
)

// MockClient is a test double for Client.
type MockClient struct {
	mu           sync.Mutex
	PullRequests map[reference.PullRequest]*PullRequest
	Comments     map[reference.PullRequest][]Comment
	GetErr       error
	ListErr      error
	FetchHistory []reference.PullRequest
}

// NewMockClient creates a new MockClient with empty fixtures.
func NewMockClient() *MockClient {
	return &MockClient{
		PullRequests: make(map[reference.PullRequest]*PullRequest),
		Comments:     make(map[reference.PullRequest][]Comment),
	}
}

// AddPullRequest registers a pull request fixture with the given description.
func (m *MockClient) AddPullRequest(ref reference.PullRequest, description string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PullRequests[ref] = &PullRequest{
		Ref:         ref,
		Title:       fmt.Sprintf("PR %s", ref),
		Description: description,
		URL:         ref.URL(),
	}
}

// AddComment appends a comment fixture in chronological order.
func (m *MockClient) AddComment(ref reference.PullRequest, body string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Comments[ref] = append(m.Comments[ref], Comment{
		ID:   fmt.Sprintf("comment-%d", len(m.Comments[ref])+1),
		Body: body,
	})
}

func (m *MockClient) GetPullRequest(_ context.Context, ref reference.PullRequest) (*PullRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	m.FetchHistory = append(m.FetchHistory, ref)
	pr, ok := m.PullRequests[ref]
	if !ok {
		return nil, fmt.Errorf("%s: %w", ref, ErrNotFound)
	}
	return pr, nil
}

func (m *MockClient) ListIssueComments(_ context.Context, ref reference.PullRequest) ([]Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	return m.Comments[ref], nil
}

var _ Client = (*MockClient)(nil)
