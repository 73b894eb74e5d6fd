package document

import (
	"testing"

	tu "github.com/harbour-enterprises/pageflow/utils/testutils"
)

func TestParseBlocks(t *testing.T) {
	doc, err := Parse(`<p>one</p><hr data-page-break><p>two</p>`)
	if err != nil {
		t.Fatal(err)
	}
	blocks := doc.Blocks()
	tu.AssertEqual(t, len(blocks), 3)
	tu.AssertEqual(t, blocks[0].Tag, "p")
	tu.AssertEqual(t, blocks[0].Kind, Leaf)
	tu.AssertEqual(t, blocks[0].Text, "one")
	tu.AssertEqual(t, blocks[1].IsHardBreak(), true)
	tu.AssertEqual(t, blocks[2].IsHardBreak(), false)
}

func TestPositions(t *testing.T) {
	doc, err := Parse(`<p>one</p><hr data-page-break><p>two</p>`)
	if err != nil {
		t.Fatal(err)
	}
	p1, hr, p2 := doc.Blocks()[0], doc.Blocks()[1], doc.Blocks()[2]

	// entering and leaving cost one each, runes one each
	tu.AssertEqual(t, p1.Pos, 1)
	tu.AssertEqual(t, p1.End, 6)
	tu.AssertEqual(t, hr.Pos, 6)
	tu.AssertEqual(t, hr.End, 8)
	tu.AssertEqual(t, p2.Pos, 8)
	tu.AssertEqual(t, p2.End, 13)
	tu.AssertEqual(t, doc.EndPos(), 13)
}

func TestParseContainers(t *testing.T) {
	doc, err := Parse(`<table><tbody>
	  <tr><td><p>a</p></td><td><p>b</p></td></tr>
	  <tr><td><p>c</p></td></tr>
	</tbody></table>`)
	if err != nil {
		t.Fatal(err)
	}
	table := doc.Blocks()[0]
	tu.AssertEqual(t, table.Tag, "table")
	tu.AssertEqual(t, table.IsContainer(), true)

	tbody := table.Children()[0]
	tu.AssertEqual(t, tbody.Tag, "tbody")
	tu.AssertEqual(t, len(tbody.Children()), 2)

	row := tbody.Children()[0]
	tu.AssertEqual(t, row.Tag, "tr")
	cell := row.Children()[0]
	tu.AssertEqual(t, cell.Tag, "td")
	leaf := cell.Children()[0]
	tu.AssertEqual(t, leaf.Kind, Leaf)
	tu.AssertEqual(t, leaf.Text, "a")

	tu.AssertEqual(t, FirstLeafIn(table), leaf)
}

func TestNodeAt(t *testing.T) {
	doc, err := Parse(`<div><p>abc</p><p>def</p></div>`)
	if err != nil {
		t.Fatal(err)
	}
	div := doc.Blocks()[0]
	p1, p2 := div.Children()[0], div.Children()[1]

	tu.AssertEqual(t, doc.NodeAt(div.Pos), div)
	tu.AssertEqual(t, doc.NodeAt(p1.Pos), p1)
	tu.AssertEqual(t, doc.NodeAt(p1.Pos+1), p1)
	// the closing token of a leaf still resolves to the leaf
	tu.AssertEqual(t, doc.NodeAt(p1.End-1), p1)
	tu.AssertEqual(t, doc.NodeAt(p2.Pos+2), p2)
	if doc.NodeAt(-1) != nil || doc.NodeAt(1000) != nil {
		t.Fatal("out of range positions must resolve to nil")
	}
}

func TestBlockAt(t *testing.T) {
	doc, err := Parse(`<p>abc</p><p>def</p>`)
	if err != nil {
		t.Fatal(err)
	}
	p1, p2 := doc.Blocks()[0], doc.Blocks()[1]
	tu.AssertEqual(t, doc.BlockAt(p1.Pos+1), p1)
	tu.AssertEqual(t, doc.BlockAt(p2.Pos), p2)
}

func TestPrevSibling(t *testing.T) {
	doc, err := Parse(`<p>one</p><hr data-page-break>`)
	if err != nil {
		t.Fatal(err)
	}
	hr := doc.Blocks()[1]
	tu.AssertEqual(t, hr.PrevSibling(), doc.Blocks()[0])
	if doc.Blocks()[0].PrevSibling() != nil {
		t.Fatal("first block has no previous sibling")
	}
}

func TestExtendAcrossSectionBoundary(t *testing.T) {
	doc, err := Parse(`<section data-section="s1"><p>abc</p></section><p>def</p>`)
	if err != nil {
		t.Fatal(err)
	}
	sec := doc.Blocks()[0]
	tu.AssertEqual(t, sec.IsSection(), true)

	// at the closing token: extended past the section
	tu.AssertEqual(t, doc.ExtendAcrossSectionBoundary(sec.End-1), sec.End)
	// just after: unchanged
	tu.AssertEqual(t, doc.ExtendAcrossSectionBoundary(sec.End), sec.End)
	// unrelated positions: unchanged
	tu.AssertEqual(t, doc.ExtendAcrossSectionBoundary(sec.Pos+2), sec.Pos+2)
}

func TestFieldMarkers(t *testing.T) {
	doc, err := Parse(`<p>Hello<span data-field="pageNumber"></span></p>`)
	if err != nil {
		t.Fatal(err)
	}
	tu.AssertEqual(t, len(doc.Fields), 1)
	leaf := doc.Blocks()[0]
	tu.AssertEqual(t, doc.Fields[0].ID, "pageNumber")
	tu.AssertEqual(t, doc.Fields[0].Pos, leaf.Pos+1+5)
}

func TestParseInlineOnlyBody(t *testing.T) {
	doc, err := Parse(`just text, no blocks`)
	if err != nil {
		t.Fatal(err)
	}
	tu.AssertEqual(t, len(doc.Blocks()), 1)
	tu.AssertEqual(t, doc.Blocks()[0].Text, "just text, no blocks")
}

func TestDescendants(t *testing.T) {
	doc, err := Parse(`<div><p>a</p><div><p>b</p></div></div>`)
	if err != nil {
		t.Fatal(err)
	}
	all := Descendants(doc.Blocks()[0])
	tu.AssertEqual(t, len(all), 4)
}
