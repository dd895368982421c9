// Package extract locates the shell-script fragments embedded in a CI
// configuration document and records, for every line of each fragment, the
// byte offset where that line starts in the raw source. The whole package is
// best-effort: structural surprises are skipped, never raised.
package extract

import (
	"strings"

	"github.com/walteh/cibash/pkg/dialect"
	"github.com/walteh/cibash/pkg/yamldoc"
)

// Region is one contiguous span of decoded shell text. LineOffsets has one
// entry per line of Content, giving the document byte offset where that line
// begins.
type Region struct {
	Content     string
	LineOffsets []int
}

// lookaheadWindow bounds the forward search used to relocate a decoded
// block-scalar line in the raw source. Block decoding strips indentation, so
// the line never starts exactly at the scan cursor.
const lookaheadWindow = 100

// bashKeys are the mapping keys whose values carry shell text in both
// dialects.
var bashKeys = map[string]bool{
	"run":           true,
	"script":        true,
	"before_script": true,
	"after_script":  true,
}

// Extract walks the locations where the given dialect stores shell text and
// returns one region per script scalar found.
func Extract(d dialect.Dialect, doc *yamldoc.Document) []Region {
	root := doc.Root()
	if root == nil || root.Kind() != yamldoc.KindMapping {
		return nil
	}

	switch d {
	case dialect.GitHubActions:
		return extractGitHub(root, doc)
	case dialect.GitLabCI:
		return extractGitLab(root, doc)
	default:
		return nil
	}
}

// extractGitHub walks jobs.<name>.steps[].run, plus one level under each
// step's `with` mapping for bash-bearing keys (composite actions take
// scripts as inputs there).
func extractGitHub(root *yamldoc.Node, doc *yamldoc.Document) []Region {
	jobs := root.Lookup("jobs")
	if jobs == nil || jobs.Kind() != yamldoc.KindMapping {
		return nil
	}

	var regions []Region
	for _, job := range jobs.Entries() {
		if job.Value.Kind() != yamldoc.KindMapping {
			continue
		}
		steps := job.Value.Lookup("steps")
		if steps == nil || steps.Kind() != yamldoc.KindSequence {
			continue
		}
		for _, step := range steps.Items() {
			if step.Kind() != yamldoc.KindMapping {
				continue
			}
			if run := step.Lookup("run"); run != nil {
				regions = appendRegion(regions, run, doc)
			}
			with := step.Lookup("with")
			if with == nil || with.Kind() != yamldoc.KindMapping {
				continue
			}
			for _, input := range with.Entries() {
				if bashKeys[input.Key] {
					regions = appendRegion(regions, input.Value, doc)
				}
			}
		}
	}
	return regions
}

// extractGitLab takes top-level script keys directly, then scans each
// top-level mapping value one level deep for the same keys (per-job script
// blocks).
func extractGitLab(root *yamldoc.Node, doc *yamldoc.Document) []Region {
	var regions []Region
	for _, entry := range root.Entries() {
		if bashKeys[entry.Key] {
			regions = appendScriptValue(regions, entry.Value, doc)
			continue
		}
		if entry.Value.Kind() != yamldoc.KindMapping {
			continue
		}
		for _, sub := range entry.Value.Entries() {
			if bashKeys[sub.Key] {
				regions = appendScriptValue(regions, sub.Value, doc)
			}
		}
	}
	return regions
}

// appendScriptValue handles the GitLab convention of a script value being
// either one scalar or a sequence of scalars, each sequence item becoming
// its own region.
func appendScriptValue(regions []Region, node *yamldoc.Node, doc *yamldoc.Document) []Region {
	switch node.Kind() {
	case yamldoc.KindScalar:
		return appendRegion(regions, node, doc)
	case yamldoc.KindSequence:
		for _, item := range node.Items() {
			regions = appendRegion(regions, item, doc)
		}
	}
	return regions
}

func appendRegion(regions []Region, node *yamldoc.Node, doc *yamldoc.Document) []Region {
	if r := regionFromScalar(node, doc); r != nil {
		regions = append(regions, *r)
	}
	return regions
}

// regionFromScalar turns one scalar node into a region. The decoded value is
// what the tokenizer sees; the per-line offsets are recovered from the raw
// source according to the scalar's style. Returns nil when there is nothing
// to tokenize or no recorded position to anchor to.
func regionFromScalar(node *yamldoc.Node, doc *yamldoc.Document) *Region {
	if node == nil || node.Kind() != yamldoc.KindScalar || node.IsNull() {
		return nil
	}
	content := strings.TrimRight(node.Value(), "\n")
	if strings.TrimSpace(content) == "" {
		return nil
	}
	start, ok := node.StartOffset()
	if !ok {
		return nil
	}

	switch node.Style() {
	case yamldoc.StyleBlockLiteral, yamldoc.StyleBlockFolded:
		return blockRegion(content, start, doc.Source())
	case yamldoc.StyleSingleQuoted, yamldoc.StyleDoubleQuoted:
		// Content starts immediately inside the opening quote. Quoted CI
		// values are a single physical unit, so later lines (if any) get
		// cumulative fallback offsets.
		return &Region{Content: content, LineOffsets: cumulativeOffsets(content, start+1)}
	default:
		return &Region{Content: content, LineOffsets: cumulativeOffsets(content, start)}
	}
}

// blockRegion recovers per-line offsets for a block scalar. The raw region
// starts after the `|`/`>` indicator line. Each decoded line is searched for
// within a bounded window past the scan cursor; an empty line or a failed
// search falls back to the cursor itself rather than failing the region.
func blockRegion(content string, scalarStart int, source string) *Region {
	cursor := scalarStart
	if nl := strings.IndexByte(source[scalarStart:], '\n'); nl >= 0 {
		cursor = scalarStart + nl + 1
	} else {
		cursor = len(source)
	}

	lines := strings.Split(content, "\n")
	offsets := make([]int, 0, len(lines))
	for _, line := range lines {
		offset := cursor
		if line != "" && cursor < len(source) {
			windowEnd := cursor + lookaheadWindow + len(line)
			if windowEnd > len(source) {
				windowEnd = len(source)
			}
			if idx := strings.Index(source[cursor:windowEnd], line); idx >= 0 {
				offset = cursor + idx
			}
		}
		offsets = append(offsets, offset)
		cursor = offset + len(line) + 1
	}

	return &Region{Content: content, LineOffsets: offsets}
}

// cumulativeOffsets assumes each line follows the previous one directly in
// the source, which holds for the single-line values these styles carry in
// practice.
func cumulativeOffsets(content string, start int) []int {
	lines := strings.Split(content, "\n")
	offsets := make([]int, 0, len(lines))
	offset := start
	for _, line := range lines {
		offsets = append(offsets, offset)
		offset += len(line) + 1
	}
	return offsets
}
