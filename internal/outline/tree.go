package outline

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"strings"
)

// Build constructs a hierarchical outline from entries already sorted in
// document order (page, then level, then title). It maintains an explicit
// stack of open ancestors, so outline depth is unbounded.
func Build(entries []Entry) *Tree {
	root := &Node{Title: rootTitle, Level: 0}
	stack := []*Node{root}

	for _, e := range entries {
		node := &Node{
			Title:     strings.TrimSpace(e.Title),
			Level:     e.Level,
			StartPage: e.Page,
		}

		// Pop on >=, not >: an entry at the same level as the stack top is
		// its sibling, not its child.
		for len(stack) > 0 && stack[len(stack)-1].Level >= e.Level {
			stack = stack[:len(stack)-1]
		}
		parent := root
		if len(stack) > 0 {
			parent = stack[len(stack)-1]
		}
		parent.Children = append(parent.Children, node)
		stack = append(stack, node)
	}

	return &Tree{Root: root}
}

// Finalize assigns an end page to every node. The root spans the whole
// document; each child ends just before its next sibling starts, and the last
// child inherits its parent's end page. Finalize is a pure function of tree
// shape and page count, so reapplying it changes nothing.
func (t *Tree) Finalize(pageCount int) {
	t.Root.StartPage = 1
	t.Root.EndPage = pageCount
	assignEndPages(t.Root, pageCount)
}

func assignEndPages(n *Node, pageCount int) {
	for i, child := range n.Children {
		if i+1 < len(n.Children) {
			// Two entries can share a start page; never let a range invert.
			end := n.Children[i+1].StartPage - 1
			if end < child.StartPage {
				end = child.StartPage
			}
			child.EndPage = end
		} else if n.EndPage > 0 {
			child.EndPage = n.EndPage
		} else {
			child.EndPage = pageCount
		}
		assignEndPages(child, pageCount)
	}
}

// Flatten walks the finalized tree in pre-order, skipping the root, and
// produces one Section per node with its page-text slice. Ranges are clamped
// to [1, len(pages)]; pre-order equals ascending page order by construction.
func (t *Tree) Flatten(pages []string) []Section {
	var sections []Section

	var walk func(n *Node, path []string)
	walk = func(n *Node, path []string) {
		for _, child := range n.Children {
			childPath := make([]string, 0, len(path)+1)
			childPath = append(childPath, path...)
			childPath = append(childPath, child.Title)

			start := child.StartPage
			if start < 1 {
				start = 1
			}
			end := child.EndPage
			if end < start {
				end = start
			}

			sections = append(sections, Section{
				ID:        sectionID(childPath, start, end),
				Title:     child.Title,
				Level:     child.Level,
				StartPage: start,
				EndPage:   end,
				Path:      childPath,
				Text:      slicePages(pages, start, end),
			})
			walk(child, childPath)
		}
	}
	walk(t.Root, nil)

	return sections
}

// slicePages joins the pages covered by [start, end] (1-indexed, inclusive).
// Out-of-range bounds are clamped, never an error.
func slicePages(pages []string, start, end int) string {
	lo := start - 1
	hi := end
	if lo < 0 {
		lo = 0
	}
	if hi > len(pages) {
		hi = len(pages)
	}
	if lo >= hi {
		return ""
	}
	return strings.TrimSpace(strings.Join(pages[lo:hi], "\n"))
}

// sectionID fingerprints a section by its ancestor path and page range, not
// its content. Two sections with identical path and range share an id.
func sectionID(path []string, start, end int) string {
	sum := sha1.Sum([]byte(fmt.Sprintf("%s|%d|%d", strings.Join(path, " > "), start, end)))
	return hex.EncodeToString(sum[:])[:12]
}

// Markdown renders the outline as an indented bullet list annotated with page
// ranges, two spaces of indent per level, root excluded.
func (t *Tree) Markdown() string {
	var b strings.Builder
	var rec func(n *Node, indent int)
	rec = func(n *Node, indent int) {
		for _, child := range n.Children {
			b.WriteString(strings.Repeat("  ", indent))
			fmt.Fprintf(&b, "- %s  *(pp. %d–%d)*\n", child.Title, child.StartPage, child.EndPage)
			rec(child, indent+1)
		}
	}
	rec(t.Root, 0)
	return strings.TrimSpace(b.String()) + "\n"
}

// Walk visits every non-root node in pre-order.
func (t *Tree) Walk(fn func(n *Node, depth int)) {
	var rec func(n *Node, depth int)
	rec = func(n *Node, depth int) {
		for _, child := range n.Children {
			fn(child, depth)
			rec(child, depth+1)
		}
	}
	rec(t.Root, 0)
}
