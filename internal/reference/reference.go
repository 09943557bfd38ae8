// Package reference defines the canonical pull-request reference triple and
// the parsing of its textual forms.
package reference

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Host is the repository hosting service all references resolve against.
const Host = "github.com"

var (
	// prURLPattern matches a full pull-request URL. The first group is
	// maximally greedy, so an org containing slashes keeps everything up to
	// the last separator before the repo. Trailing text after the number
	// (URL fragments and the like) is ignored.
	prURLPattern = regexp.MustCompile(`^https://github\.com/(.+)/(.+)/pull/(\d+)`)

	// prShortPattern matches the short "org/repo#number" form with the same
	// greedy-first-group semantics.
	prShortPattern = regexp.MustCompile(`^(.+)/(.+)#(\d+)`)

	// repoURLPatterns match repository-root URLs (https or SSH), with an
	// optional trailing .git suffix.
	repoHTTPSPattern = regexp.MustCompile(`^https://[^/]+/([^/]+)/(.+?)(?:\.git)?/?$`)
	repoSSHPattern   = regexp.MustCompile(`^git@[^:]+:([^/]+)/(.+?)(?:\.git)?$`)
)

// PullRequest identifies a pull request by its (org, repo, number) triple.
// It is a comparable value type; two references parsed from different
// textual forms that denote the same triple are equal.
type PullRequest struct {
	Org    string
	Repo   string
	Number int
}

// String returns the short "org/repo#number" form.
func (pr PullRequest) String() string {
	return fmt.Sprintf("%s/%s#%d", pr.Org, pr.Repo, pr.Number)
}

// URL returns the canonical clone-target URL for the pull request.
func (pr PullRequest) URL() string {
	return fmt.Sprintf("https://%s/%s/%s/pull/%d", Host, pr.Org, pr.Repo, pr.Number)
}

// Less orders pull requests by org, then repo, then number.
func (pr PullRequest) Less(other PullRequest) bool {
	if pr.Org != other.Org {
		return pr.Org < other.Org
	}
	if pr.Repo != other.Repo {
		return pr.Repo < other.Repo
	}
	return pr.Number < other.Number
}

// ParseError reports text that matches no recognized reference pattern.
type ParseError struct {
	Input string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("could not parse pull request reference %q", e.Input)
}

// Parse converts a textual pull-request reference into its canonical triple.
// It accepts a full URL (https://github.com/org/repo/pull/123) or the short
// "org/repo#123" form, tried in that order; the first match wins.
func Parse(text string) (PullRequest, error) {
	for _, pattern := range []*regexp.Regexp{prURLPattern, prShortPattern} {
		m := pattern.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		number, err := strconv.Atoi(m[3])
		if err != nil {
			return PullRequest{}, &ParseError{Input: text}
		}
		return PullRequest{Org: m[1], Repo: m[2], Number: number}, nil
	}
	return PullRequest{}, &ParseError{Input: text}
}

// ParseRepo extracts (org, repo) from a repository-root URL, either
// https://host/org/repo or git@host:org/repo. A trailing .git suffix is
// stripped. Not used for pull-request references; exposed for callers that
// deal in plain repository URLs.
func ParseRepo(url string) (org, repo string, err error) {
	// A URL fragment never belongs to the repo name.
	url, _, _ = strings.Cut(url, "#")
	for _, pattern := range []*regexp.Regexp{repoHTTPSPattern, repoSSHPattern} {
		if m := pattern.FindStringSubmatch(url); m != nil {
			return m[1], m[2], nil
		}
	}
	return "", "", &ParseError{Input: url}
}

// Sort orders references in place by (org, repo, number).
func Sort(refs []PullRequest) {
	sort.Slice(refs, func(i, j int) bool {
		return refs[i].Less(refs[j])
	})
}
