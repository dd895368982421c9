// Package yamldoc wraps gopkg.in/yaml.v3 with the source-position view the
// rest of the pipeline needs: every node can report the byte offset where it
// starts in the raw document, and scalars report which YAML style they were
// written in.
package yamldoc

import (
	"strings"

	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"
)

// Kind is the structural shape of a node.
type Kind int

const (
	KindUnknown Kind = iota
	KindMapping
	KindSequence
	KindScalar
)

// ScalarStyle is how a scalar was written in the raw document. The style
// matters because block scalars decode to text that does not appear verbatim
// in the source.
type ScalarStyle int

const (
	StylePlain ScalarStyle = iota
	StyleSingleQuoted
	StyleDoubleQuoted
	StyleBlockLiteral
	StyleBlockFolded
)

// Document is an immutable parse of one YAML document. It keeps the raw
// source around so node positions can be resolved back to byte offsets.
type Document struct {
	source     string
	lineStarts []int
	root       *yaml.Node
}

// Parse decodes source into a Document. The returned document may have a nil
// root (empty input); that is not an error.
func Parse(source string) (*Document, error) {
	doc := &Document{
		source:     source,
		lineStarts: lineStartOffsets(source),
	}

	var node yaml.Node
	if err := yaml.Unmarshal([]byte(source), &node); err != nil {
		return nil, errors.Errorf("unmarshaling yaml: %w", err)
	}

	if node.Kind == yaml.DocumentNode && len(node.Content) > 0 {
		doc.root = node.Content[0]
	}

	return doc, nil
}

// Source returns the raw document text.
func (d *Document) Source() string {
	return d.source
}

// Root returns the document's root node, or nil for an empty document.
func (d *Document) Root() *Node {
	if d.root == nil {
		return nil
	}
	return &Node{yn: d.root, doc: d}
}

// lineStartOffsets returns the byte offset of the first byte of each line.
func lineStartOffsets(source string) []int {
	offsets := []int{0}
	for i := 0; i < len(source); i++ {
		if source[i] == '\n' {
			offsets = append(offsets, i+1)
		}
	}
	return offsets
}

// Node is one node of the parsed tree, bound to its owning document so it
// can resolve positions.
type Node struct {
	yn  *yaml.Node
	doc *Document
}

// resolved follows alias nodes to their anchor target.
func (n *Node) resolved() *yaml.Node {
	yn := n.yn
	for yn.Kind == yaml.AliasNode && yn.Alias != nil {
		yn = yn.Alias
	}
	return yn
}

func (n *Node) Kind() Kind {
	switch n.resolved().Kind {
	case yaml.MappingNode:
		return KindMapping
	case yaml.SequenceNode:
		return KindSequence
	case yaml.ScalarNode:
		return KindScalar
	default:
		return KindUnknown
	}
}

// Value returns the decoded scalar value. For block scalars this is the
// content with indentation stripped, which is exactly why position recovery
// needs the style and offset accessors below.
func (n *Node) Value() string {
	return n.resolved().Value
}

// IsNull reports whether the node is a YAML null scalar.
func (n *Node) IsNull() bool {
	yn := n.resolved()
	return yn.Kind == yaml.ScalarNode && yn.Tag == "!!null"
}

func (n *Node) Style() ScalarStyle {
	switch n.resolved().Style {
	case yaml.SingleQuotedStyle:
		return StyleSingleQuoted
	case yaml.DoubleQuotedStyle:
		return StyleDoubleQuoted
	case yaml.LiteralStyle:
		return StyleBlockLiteral
	case yaml.FoldedStyle:
		return StyleBlockFolded
	default:
		return StylePlain
	}
}

// StartOffset resolves the node's position to a byte offset in the raw
// document. For block scalars the offset points at the `|`/`>` indicator,
// for quoted scalars at the opening quote. The second return is false when
// the parser recorded no usable position.
func (n *Node) StartOffset() (int, bool) {
	yn := n.yn
	if yn.Line <= 0 || yn.Column <= 0 {
		return 0, false
	}
	if yn.Line > len(n.doc.lineStarts) {
		return 0, false
	}
	off := n.doc.lineStarts[yn.Line-1] + yn.Column - 1
	if off > len(n.doc.source) {
		return 0, false
	}
	return off, true
}

// Entry is one key/value pair of a mapping.
type Entry struct {
	Key   string
	Value *Node
}

// Entries returns the key/value pairs of a mapping node in document order.
// Non-mapping nodes return nil.
func (n *Node) Entries() []Entry {
	yn := n.resolved()
	if yn.Kind != yaml.MappingNode {
		return nil
	}
	entries := make([]Entry, 0, len(yn.Content)/2)
	for i := 0; i+1 < len(yn.Content); i += 2 {
		entries = append(entries, Entry{
			Key:   yn.Content[i].Value,
			Value: &Node{yn: yn.Content[i+1], doc: n.doc},
		})
	}
	return entries
}

// Lookup returns the value for key in a mapping node, or nil.
func (n *Node) Lookup(key string) *Node {
	for _, e := range n.Entries() {
		if e.Key == key {
			return e.Value
		}
	}
	return nil
}

// Items returns the elements of a sequence node, or nil for other kinds.
func (n *Node) Items() []*Node {
	yn := n.resolved()
	if yn.Kind != yaml.SequenceNode {
		return nil
	}
	items := make([]*Node, 0, len(yn.Content))
	for _, c := range yn.Content {
		items = append(items, &Node{yn: c, doc: n.doc})
	}
	return items
}

// Keys collects every mapping key reachable from n, descending at most
// maxDepth levels. Values inside sequences count against the same depth as
// the sequence itself.
func (n *Node) Keys(maxDepth int) map[string]bool {
	keys := make(map[string]bool)
	n.collectKeys(keys, maxDepth)
	return keys
}

func (n *Node) collectKeys(keys map[string]bool, depth int) {
	if depth <= 0 {
		return
	}
	switch n.Kind() {
	case KindMapping:
		for _, e := range n.Entries() {
			keys[strings.ToLower(e.Key)] = true
			e.Value.collectKeys(keys, depth-1)
		}
	case KindSequence:
		for _, item := range n.Items() {
			item.collectKeys(keys, depth)
		}
	}
}
