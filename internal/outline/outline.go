package outline

import "encoding/json"

// Entry is a single flat outline candidate: a titled section at a nesting
// level, starting on a 1-indexed page. Entries are produced by exactly one
// detection strategy and consumed once when the tree is built.
type Entry struct {
	Level int    `json:"level"`
	Title string `json:"title"`
	Page  int    `json:"page"`
}

// Node is one section of the document outline. Pages are 1-indexed; EndPage
// is zero until the tree has been finalized.
type Node struct {
	Title     string
	Level     int
	StartPage int
	EndPage   int
	Children  []*Node
}

// rootTitle is the serialized title of the synthetic level-0 root. No
// pipeline stage branches on it; the Tree wrapper identifies the root.
const rootTitle = "ROOT"

// Tree wraps the synthetic root node spanning the whole document.
type Tree struct {
	Root *Node
}

// Section is a flattened view of one non-root node with its sliced page text.
// Path holds the ancestor titles from the top of the outline down to the
// section itself, root excluded.
type Section struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Level     int      `json:"level"`
	StartPage int      `json:"start_page"`
	EndPage   int      `json:"end_page"`
	Path      []string `json:"path"`
	Text      string   `json:"text"`
}

// MarshalJSON serializes the tree as its root node.
func (t *Tree) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Root)
}

// MarshalJSON emits children as an empty array rather than null so the
// serialized shape is stable for leaves.
func (n *Node) MarshalJSON() ([]byte, error) {
	children := n.Children
	if children == nil {
		children = []*Node{}
	}
	return json.Marshal(struct {
		Title     string  `json:"title"`
		Level     int     `json:"level"`
		StartPage int     `json:"start_page"`
		EndPage   int     `json:"end_page"`
		Children  []*Node `json:"children"`
	}{n.Title, n.Level, n.StartPage, n.EndPage, children})
}
