// Package aria models the accessible structure of a page as a language
// neutral tree of roles and names. Expected fragments are written in a small
// YAML dialect and matched against captured trees, so structural assertions
// hold across every locale while wording is checked separately.
package aria

import (
	"fmt"
	"strings"
)

// RoleText is the pseudo role carried by plain text nodes in a snapshot.
const RoleText = "text"

// Node is one accessible element: a role, an optional accessible name and
// any child elements. Text content appears as children with RoleText.
type Node struct {
	Role     string
	Name     string
	Children []*Node
}

// Snapshot is an ordered fragment of the accessibility tree, anchored at
// some element chosen by the caller.
type Snapshot struct {
	Nodes []*Node
}

// NewNode builds a node with the given role, accessible name and children.
func NewNode(role, name string, children ...*Node) *Node {
	return &Node{Role: role, Name: name, Children: children}
}

// Text builds a plain text node.
func Text(value string) *Node {
	return &Node{Role: RoleText, Name: value}
}

// NormalizeName collapses runs of whitespace to single spaces and trims the
// ends. Accessible names are compared in this form because rendered text
// carries layout-dependent spacing.
func NormalizeName(name string) string {
	return strings.Join(strings.Fields(name), " ")
}

func (n *Node) label() string {
	if n.Name == "" {
		return n.Role
	}
	return fmt.Sprintf("%s %q", n.Role, NormalizeName(n.Name))
}

// String renders the snapshot in the same YAML dialect ParseSnapshot reads,
// suitable for failure messages.
func (s *Snapshot) String() string {
	if s == nil || len(s.Nodes) == 0 {
		return ""
	}

	var b strings.Builder
	for _, node := range s.Nodes {
		writeNode(&b, node, 0)
	}
	return b.String()
}

func writeNode(b *strings.Builder, n *Node, depth int) {
	indent := strings.Repeat("  ", depth)

	if n.Role == RoleText {
		fmt.Fprintf(b, "%s- text: %s\n", indent, NormalizeName(n.Name))
		return
	}

	if len(n.Children) == 0 {
		fmt.Fprintf(b, "%s- %s\n", indent, n.label())
		return
	}

	fmt.Fprintf(b, "%s- %s:\n", indent, n.label())
	for _, child := range n.Children {
		writeNode(b, child, depth+1)
	}
}
