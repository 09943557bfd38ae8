// Package resolver expands the dependency closure of pull requests from the
// "Requires:"/"Tests:" annotations in their descriptions and comments.
package resolver

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/m-blaha/dbox/internal/provider"
	"github.com/m-blaha/dbox/internal/reference"
)

// Resolver walks pull-request dependency annotations to a fixpoint.
type Resolver struct {
	client provider.Client
}

// New creates a resolver backed by the given API client.
func New(client provider.Client) *Resolver {
	return &Resolver{client: client}
}

// Resolve parses the caller-supplied references and returns the set of
// dependencies they declare, sorted by (org, repo, number). With recursive
// set, dependencies of dependencies are followed until no new references
// appear; cycles and repeats are visited at most once. The returned set
// contains discovered dependencies only, never the inputs themselves.
//
// A reference that fails to parse is fatal. So is any fetch failure; there
// are no retries and no partial results.
func (r *Resolver) Resolve(ctx context.Context, inputs []string, recursive bool) ([]reference.PullRequest, error) {
	refs := make([]reference.PullRequest, 0, len(inputs))
	for _, input := range inputs {
		ref, err := reference.Parse(input)
		if err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}

	seen := make(map[reference.PullRequest]struct{})
	deps, err := r.resolve(ctx, refs, recursive, seen)
	if err != nil {
		return nil, err
	}

	result := make([]reference.PullRequest, 0, len(deps))
	for dep := range deps {
		result = append(result, dep)
	}
	reference.Sort(result)
	return result, nil
}

// resolve performs one resolution pass over refs, recursing on newly
// discovered dependencies. The seen set is shared across the whole call
// tree: a reference is added before it is fetched, so a direct or indirect
// cycle in the annotation graph is expanded exactly once.
func (r *Resolver) resolve(ctx context.Context, refs []reference.PullRequest, recursive bool, seen map[reference.PullRequest]struct{}) (map[reference.PullRequest]struct{}, error) {
	deps := make(map[reference.PullRequest]struct{})

	for _, ref := range refs {
		if _, ok := seen[ref]; ok {
			continue
		}
		seen[ref] = struct{}{}

		contribution, err := r.dependencies(ctx, ref)
		if err != nil {
			return nil, err
		}
		for dep := range contribution {
			deps[dep] = struct{}{}
		}
	}

	// References already visited anywhere in this call tree are not part of
	// the result: the closure excludes the inputs and cycle back-edges.
	for dep := range deps {
		if _, ok := seen[dep]; ok {
			delete(deps, dep)
		}
	}

	if recursive && len(deps) > 0 {
		next := make([]reference.PullRequest, 0, len(deps))
		for dep := range deps {
			next = append(next, dep)
		}
		reference.Sort(next)

		more, err := r.resolve(ctx, next, recursive, seen)
		if err != nil {
			return nil, err
		}
		for dep := range more {
			deps[dep] = struct{}{}
		}
	}

	return deps, nil
}

// dependencies returns the references a single pull request declares. The
// description wins: if it yields any annotations they are the PR's whole
// contribution. Only an annotation-free description falls back to issue
// comments, scanned newest-first; the first comment yielding anything wins
// exclusively.
func (r *Resolver) dependencies(ctx context.Context, ref reference.PullRequest) (map[reference.PullRequest]struct{}, error) {
	pr, err := r.client.GetPullRequest(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", ref, err)
	}

	if deps := ExtractDependencies(pr.Description); len(deps) > 0 {
		slog.Debug("dependencies found in description", "pr", ref.String(), "count", len(deps))
		return deps, nil
	}

	comments, err := r.client.ListIssueComments(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("fetching comments on %s: %w", ref, err)
	}
	for i := len(comments) - 1; i >= 0; i-- {
		if deps := ExtractDependencies(comments[i].Body); len(deps) > 0 {
			slog.Debug("dependencies found in comment", "pr", ref.String(), "commentID", comments[i].ID, "count", len(deps))
			return deps, nil
		}
	}

	return nil, nil
}
