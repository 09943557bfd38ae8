package resolver

import (
	"strings"

	"github.com/m-blaha/dbox/internal/reference"
)

// annotationPrefixes are the line prefixes that declare a dependency.
// Matching is case-sensitive and anchored at the start of the line.
var annotationPrefixes = []string{
	"Require:",
	"Requires:",
	"Test:",
	"Tests:",
}

// ExtractDependencies scans free text for dependency annotations and returns
// the set of pull-request references they declare. A matching line carries
// its value after the first colon; values that parse as neither a full URL
// nor a short "org/repo#number" id are skipped silently.
func ExtractDependencies(text string) map[reference.PullRequest]struct{} {
	deps := make(map[reference.PullRequest]struct{})

	for _, line := range strings.Split(text, "\n") {
		for _, prefix := range annotationPrefixes {
			if !strings.HasPrefix(line, prefix) {
				continue
			}
			value := strings.TrimSpace(line[len(prefix):])
			ref, err := reference.Parse(value)
			if err == nil {
				deps[ref] = struct{}{}
			}
			break
		}
	}

	return deps
}
