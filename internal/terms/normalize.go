package terms

import (
	"encoding/xml"
	"strings"
)

// Node is a raw hierarchical metadata document: a tree of namespaced XML
// elements rooted at the record's metadata container. It is the input of
// normalization and deliberately schema-agnostic.
type Node struct {
	XMLName xml.Name
	Text    string `xml:",chardata"`
	Nodes   []Node `xml:",any"`
}

// Normalize flattens a metadata container into a frozen term set via
// depth-first traversal of all descendant nodes. The qualified element name
// splits into (namespace, local name) -> (schema, element); element text
// becomes the value, nil when blank. Nodes without text are still recorded:
// their presence alone may satisfy a term-presence check. The qualifier is
// always nil here; schema-specific qualifier extraction is an extension
// point layered on top of this generic pass.
func Normalize(root *Node) *Set {
	set := NewSet()
	if root == nil {
		return set.Freeze()
	}
	for i := range root.Nodes {
		walk(&root.Nodes[i], set)
	}
	return set.Freeze()
}

func walk(n *Node, set *Set) {
	t := Term{
		Schema:  n.XMLName.Space,
		Element: n.XMLName.Local,
	}
	if v := strings.TrimSpace(n.Text); v != "" {
		t.Value = &v
	}
	set.Append(t)
	for i := range n.Nodes {
		walk(&n.Nodes[i], set)
	}
}
