// Package document models the editor snapshot consumed by the pagination
// engine.
//
// The editor's render surface is a DOM, so a snapshot is serialized HTML:
// it is parsed with net/html and folded into a tree of block nodes. A node
// is either a Container (it has block-level children: a table, a row, a
// cell, a section) or a Leaf (a paragraph-like block whose content is
// inline). Every node spans a half-open range of integer content
// positions; entering or leaving a node costs one position and every text
// rune costs one, so positions are stable identifiers for break points.
package document

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/harbour-enterprises/pageflow/utils"
)

// Kind discriminates the two block variants.
type Kind uint8

const (
	Leaf Kind = iota
	Container
)

func (k Kind) String() string {
	if k == Container {
		return "container"
	}
	return "leaf"
}

// Attribute names recognized on snapshot elements.
const (
	// AttrPageBreak marks an explicit, user forced page break.
	AttrPageBreak = "data-page-break"
	// AttrSection marks a structural section boundary.
	AttrSection = "data-section"
	// AttrField marks an inline field (page number, date, ...) whose
	// position is reported back to the renderer after pagination.
	AttrField = "data-field"
)

// blockTags are the element names treated as block-level when folding the
// DOM. Everything else is inline content.
var blockTags = utils.NewSet(
	"div", "p", "h1", "h2", "h3", "h4", "h5", "h6",
	"ul", "ol", "li", "blockquote", "pre", "figure", "hr",
	"table", "thead", "tbody", "tfoot", "tr", "td", "th",
	"section",
)

// Node is one block of the snapshot tree.
type Node struct {
	Kind  Kind
	Tag   string
	Attrs map[string]string

	// Text is the folded inline content of a Leaf.
	Text string

	Parent   *Node
	Index    int // position among siblings
	children []*Node

	// Pos and End delimit the node's content positions: [Pos, End).
	Pos, End int
}

// Children returns the block-level children, nil for a Leaf.
func (n *Node) Children() []*Node { return n.children }

// IsContainer reports whether n has block-level children.
func (n *Node) IsContainer() bool { return n.Kind == Container }

// Attr returns the value of the named attribute.
func (n *Node) Attr(key string) (string, bool) {
	v, ok := n.Attrs[key]
	return v, ok
}

// IsHardBreak reports whether n is an explicit page break marker.
func (n *Node) IsHardBreak() bool {
	_, ok := n.Attrs[AttrPageBreak]
	return ok
}

// IsSection reports whether n is a structural section container.
func (n *Node) IsSection() bool {
	if n.Tag == "section" {
		return true
	}
	_, ok := n.Attrs[AttrSection]
	return ok
}

// PrevSibling returns the block immediately before n, or nil.
func (n *Node) PrevSibling() *Node {
	if n.Parent == nil || n.Index == 0 {
		return nil
	}
	return n.Parent.children[n.Index-1]
}

func (n *Node) String() string {
	return fmt.Sprintf("<%s %s [%d,%d)>", n.Tag, n.Kind, n.Pos, n.End)
}

// FieldMarker is an inline field annotation found while folding a leaf.
type FieldMarker struct {
	ID  string
	Pos int
}

// Document is a parsed, position-indexed snapshot.
type Document struct {
	// Root is a synthetic container holding the top-level flow blocks.
	Root *Node
	// HTML is the serialized snapshot, preserved verbatim so results can
	// echo it back unchanged.
	HTML string

	Fields []FieldMarker

	ordered       []*Node // preorder, for position lookup
	pendingFields []pendingField
}

// Parse folds a serialized snapshot into a Document.
func Parse(snapshot string) (*Document, error) {
	root, err := html.ParseWithOptions(strings.NewReader(snapshot),
		html.ParseOptionEnableScripting(false))
	if err != nil {
		return nil, fmt.Errorf("invalid snapshot input: %s", err)
	}
	body := findBody(root)
	if body == nil {
		return nil, fmt.Errorf("invalid snapshot input: no body element")
	}

	doc := &Document{HTML: snapshot}
	doc.Root = &Node{Kind: Container, Tag: "doc", Attrs: map[string]string{}}
	for _, child := range blockChildren(body) {
		doc.fold(child, doc.Root)
	}
	// a snapshot with no block children still paginates: fold the body's
	// inline content into a single leaf
	if len(doc.Root.children) == 0 && strings.TrimSpace(textContent(body)) != "" {
		leaf := &Node{Kind: Leaf, Tag: "p", Attrs: map[string]string{}, Parent: doc.Root}
		leaf.Text = collapseSpace(textContent(body))
		doc.Root.children = append(doc.Root.children, leaf)
	}
	doc.assignPositions(doc.Root, 0)
	doc.index(doc.Root)
	doc.resolveFieldPositions()
	return doc, nil
}

// Blocks returns the top-level flow blocks, in document order.
func (d *Document) Blocks() []*Node { return d.Root.children }

// EndPos is the position just before the closing token of the root.
func (d *Document) EndPos() int { return d.Root.End - 1 }

func findBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == atom.Body {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if body := findBody(c); body != nil {
			return body
		}
	}
	return nil
}

func isBlockElement(n *html.Node) bool {
	return n.Type == html.ElementNode && blockTags.Has(n.Data)
}

func blockChildren(n *html.Node) []*html.Node {
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if isBlockElement(c) {
			out = append(out, c)
		}
	}
	return out
}

func attrMap(n *html.Node) map[string]string {
	m := make(map[string]string, len(n.Attr))
	for _, a := range n.Attr {
		m[a.Key] = a.Val
	}
	return m
}

// fold converts one DOM element into a block Node under parent.
func (d *Document) fold(el *html.Node, parent *Node) {
	node := &Node{
		Tag:    el.Data,
		Attrs:  attrMap(el),
		Parent: parent,
		Index:  len(parent.children),
	}
	parent.children = append(parent.children, node)

	if blocks := blockChildren(el); len(blocks) != 0 {
		node.Kind = Container
		for _, child := range blocks {
			d.fold(child, node)
		}
		return
	}
	node.Kind = Leaf
	node.Text = collapseSpace(textContent(el))
	d.collectFields(el, node)
}

// collectFields records data-field descendants of a leaf, with their rune
// offset into the folded text. Positions are resolved once the leaf has
// its final Pos.
func (d *Document) collectFields(el *html.Node, leaf *Node) {
	offset := 0
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if id, ok := attrMap(n)[AttrField]; ok {
				d.Fields = append(d.Fields, FieldMarker{ID: id, Pos: offset})
				d.pendingFields = append(d.pendingFields, pendingField{leaf, len(d.Fields) - 1, offset})
			}
		}
		if n.Type == html.TextNode {
			offset += utf8.RuneCountInString(collapseSpace(n.Data))
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(el)
}

type pendingField struct {
	leaf   *Node
	index  int
	offset int
}

func (d *Document) resolveFieldPositions() {
	for _, p := range d.pendingFields {
		// first content position inside the leaf, plus the rune offset
		d.Fields[p.index].Pos = p.leaf.Pos + 1 + p.offset
	}
	d.pendingFields = nil
	sort.Slice(d.Fields, func(i, j int) bool { return d.Fields[i].Pos < d.Fields[j].Pos })
}

func textContent(n *html.Node) string {
	var sb strings.Builder
	var walk func(c *html.Node)
	walk = func(c *html.Node) {
		if c.Type == html.TextNode {
			sb.WriteString(c.Data)
		}
		for g := c.FirstChild; g != nil; g = g.NextSibling {
			walk(g)
		}
	}
	walk(n)
	return sb.String()
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// assignPositions gives every node its [Pos, End) range. Entering and
// leaving a node each cost one position; a leaf's text costs one position
// per rune.
func (d *Document) assignPositions(n *Node, pos int) int {
	n.Pos = pos
	pos++ // opening token
	if n.Kind == Leaf {
		pos += utf8.RuneCountInString(n.Text)
	} else {
		for _, c := range n.children {
			pos = d.assignPositions(c, pos)
		}
	}
	pos++ // closing token
	n.End = pos
	return pos
}

func (d *Document) index(n *Node) {
	d.ordered = append(d.ordered, n)
	for _, c := range n.children {
		d.index(c)
	}
}
