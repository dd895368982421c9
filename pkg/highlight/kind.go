package highlight

import (
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
)

// DocumentKind is the content-type tag of an input document. Only
// recognized kinds trigger analysis; azure-pipelines is accepted as a
// trigger but gets no dialect-specific extraction of its own.
type DocumentKind string

const (
	KindYAML           DocumentKind = "yaml"
	KindGitHubWorkflow DocumentKind = "github-workflow"
	KindGitLabCI       DocumentKind = "gitlab-ci"
	KindAzurePipelines DocumentKind = "azure-pipelines"
	KindUnsupported    DocumentKind = "unsupported"
)

var kindPatterns = []struct {
	pattern string
	kind    DocumentKind
}{
	{"**/.github/workflows/*.{yml,yaml}", KindGitHubWorkflow},
	{"**/.gitlab-ci.{yml,yaml}", KindGitLabCI},
	{"**/azure-pipelines*.{yml,yaml}", KindAzurePipelines},
	{"**/*.{yml,yaml}", KindYAML},
}

// KindFromPath tags a file path with its document kind.
func KindFromPath(path string) DocumentKind {
	path = filepath.ToSlash(path)
	for _, kp := range kindPatterns {
		// Patterns are package constants; Match only errors on bad patterns.
		if ok, _ := doublestar.Match(kp.pattern, path); ok {
			return kp.kind
		}
	}
	return KindUnsupported
}

// TriggersAnalysis reports whether documents of this kind go through the
// pipeline at all.
func (k DocumentKind) TriggersAnalysis() bool {
	switch k {
	case KindYAML, KindGitHubWorkflow, KindGitLabCI, KindAzurePipelines:
		return true
	}
	return false
}
