// Package dialect decides which CI configuration dialect a YAML document is
// written in. Detection is a key-vocabulary heuristic, not schema
// validation: partially typed or outright invalid files still get a best
// guess.
package dialect

import (
	"github.com/walteh/cibash/pkg/yamldoc"
)

// Dialect is a recognized CI configuration schema.
type Dialect string

const (
	GitHubActions Dialect = "github-actions"
	GitLabCI      Dialect = "gitlab-ci"
	Unknown       Dialect = "unknown"
)

// Result is the outcome of one detection pass. Confidence is the normalized
// vocabulary score in [0,1].
type Result struct {
	Dialect    Dialect
	Confidence float64
}

// vocabulary is a weighted indicator key set for one dialect.
type vocabulary struct {
	dialect Dialect
	strong  []string
	medium  []string
	weak    []string
}

const (
	strongWeight = 1.0
	mediumWeight = 0.6
	weakWeight   = 0.3

	// minConfidence is the floor below which we refuse to claim a dialect.
	minConfidence = 0.15

	// maxKeyDepth bounds the tree walk; CI files nest deeply (matrix
	// strategies, job graphs) and unbounded recursion is a stack risk.
	maxKeyDepth = 5
)

// Checked in order; on an exact score tie the earlier vocabulary wins.
var vocabularies = []vocabulary{
	{
		dialect: GitHubActions,
		strong:  []string{"jobs", "runs-on", "on", "uses", "workflow_dispatch", "workflow_call"},
		medium:  []string{"steps", "with", "needs", "strategy", "matrix"},
		weak:    []string{"name", "env", "if"},
	},
	{
		dialect: GitLabCI,
		strong:  []string{"stages", "before_script", "after_script", "script", "include", "variables", "rules"},
		medium:  []string{"stage", "image", "services", "artifacts", "cache", "only", "except"},
		weak:    []string{"tags", "when", "extends"},
	},
}

func (v vocabulary) maxScore() float64 {
	return strongWeight*float64(len(v.strong)) +
		mediumWeight*float64(len(v.medium)) +
		weakWeight*float64(len(v.weak))
}

func (v vocabulary) score(keys map[string]bool) float64 {
	total := 0.0
	for _, k := range v.strong {
		if keys[k] {
			total += strongWeight
		}
	}
	for _, k := range v.medium {
		if keys[k] {
			total += mediumWeight
		}
	}
	for _, k := range v.weak {
		if keys[k] {
			total += weakWeight
		}
	}
	return total
}

// Detect parses source and classifies it. Malformed YAML is an expected
// input, not an error: it yields {Unknown, 0}.
func Detect(source string) Result {
	doc, err := yamldoc.Parse(source)
	if err != nil {
		return Result{Dialect: Unknown, Confidence: 0}
	}
	return DetectDocument(doc)
}

// DetectDocument classifies an already parsed document.
func DetectDocument(doc *yamldoc.Document) Result {
	root := doc.Root()
	if root == nil || root.Kind() != yamldoc.KindMapping {
		return Result{Dialect: Unknown, Confidence: 0}
	}

	keys := root.Keys(maxKeyDepth)

	best := Result{Dialect: Unknown, Confidence: 0}
	for _, v := range vocabularies {
		confidence := v.score(keys) / v.maxScore()
		if confidence < minConfidence {
			continue
		}
		if confidence > best.Confidence {
			best = Result{Dialect: v.dialect, Confidence: confidence}
		}
	}

	return best
}
