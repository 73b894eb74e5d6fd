package document

// Position lookup over the folded tree.

// NodeAt returns the deepest node whose range contains pos, or nil when
// pos is outside the document. A position sitting exactly on a node
// boundary belongs to the enclosing container; callers that need a block
// retry at pos-1, mirroring how caret positions resolve in the editor.
func (d *Document) NodeAt(pos int) *Node {
	if d.Root == nil || pos < d.Root.Pos || pos >= d.Root.End {
		return nil
	}
	n := d.Root
descend:
	for {
		for _, c := range n.children {
			// strictly inside the child: its own tokens belong to it,
			// but the closing token resolves to the parent
			if pos >= c.Pos && pos < c.End-1 {
				n = c
				continue descend
			}
			if pos == c.End-1 && c.Kind == Leaf {
				n = c
				break descend
			}
		}
		break
	}
	return n
}

// BlockAt returns the top-level flow block containing pos, or nil.
func (d *Document) BlockAt(pos int) *Node {
	for _, b := range d.Root.children {
		if pos >= b.Pos && pos < b.End {
			return b
		}
	}
	return nil
}

// ExtendAcrossSectionBoundary pushes pos past any section boundary it
// lands on, so a forced break coincides with the section change instead
// of splitting it. Adjacent boundaries are chained.
func (d *Document) ExtendAcrossSectionBoundary(pos int) int {
	for {
		extended := pos
		for _, n := range d.ordered {
			if !n.IsSection() {
				continue
			}
			// exactly at the closing token, or just after it
			if pos == n.End-1 || pos == n.End {
				if n.End > extended {
					extended = n.End
				}
			}
		}
		if extended == pos {
			return pos
		}
		pos = extended
	}
}

// Descendants yields n and every block below it, in document order.
func Descendants(n *Node) []*Node {
	out := []*Node{n}
	for _, c := range n.children {
		out = append(out, Descendants(c)...)
	}
	return out
}

// FirstLeafIn returns the first Leaf in document order inside n
// (n itself when it is a leaf), or nil.
func FirstLeafIn(n *Node) *Node {
	if n == nil {
		return nil
	}
	if n.Kind == Leaf {
		return n
	}
	for _, c := range n.children {
		if leaf := FirstLeafIn(c); leaf != nil {
			return leaf
		}
	}
	return nil
}
