package aria

import (
	"fmt"
	"strings"
)

// Mismatch describes the first point where a captured tree diverged from an
// expected fragment. Path addresses the expected node that failed to match,
// so a reader can tell a shape change from a wording change.
type Mismatch struct {
	Path string
	Want string
	Got  string
}

func (m *Mismatch) Error() string {
	return fmt.Sprintf("structure mismatch at %s: want %s, got %s", m.Path, m.Want, m.Got)
}

// Match verifies that want appears within got. Expected nodes must occur in
// order among the captured node's children, though the capture may hold
// extra siblings between and around them. Roles compare exactly; accessible
// names compare whitespace-normalized, and an empty expected name matches
// any. A nil error means the fragment matched.
func Match(got, want *Snapshot) error {
	if want == nil || len(want.Nodes) == 0 {
		return nil
	}

	var gotNodes []*Node
	if got != nil {
		gotNodes = got.Nodes
	}

	if m := matchSequence(gotNodes, want.Nodes, ""); m != nil {
		return m
	}
	return nil
}

// matchSequence checks that wantNodes occur, in order, among gotNodes.
func matchSequence(gotNodes, wantNodes []*Node, path string) *Mismatch {
	cursor := 0
	for i, wantNode := range wantNodes {
		nodePath := childPath(path, wantNode, i)

		matched := false
		for j := cursor; j < len(gotNodes); j++ {
			if deepMatch(gotNodes[j], wantNode) {
				cursor = j + 1
				matched = true
				break
			}
		}

		if !matched {
			// When a candidate agrees on role and name but its subtree does
			// not, surface the inner divergence instead of the outer node.
			for j := cursor; j < len(gotNodes); j++ {
				if shallowMatch(gotNodes[j], wantNode) {
					if inner := matchSequence(gotNodes[j].Children, wantNode.Children, nodePath); inner != nil {
						return inner
					}
				}
			}

			return &Mismatch{
				Path: nodePath,
				Want: wantNode.label(),
				Got:  describeCandidates(gotNodes[cursor:]),
			}
		}
	}
	return nil
}

// deepMatch reports whether a captured node satisfies an expected node,
// including its entire expected subtree.
func deepMatch(gotNode, wantNode *Node) bool {
	return shallowMatch(gotNode, wantNode) &&
		matchSequence(gotNode.Children, wantNode.Children, "") == nil
}

func shallowMatch(gotNode, wantNode *Node) bool {
	if gotNode.Role != wantNode.Role {
		return false
	}
	return wantNode.Name == "" || NormalizeName(gotNode.Name) == NormalizeName(wantNode.Name)
}

func childPath(parent string, n *Node, index int) string {
	segment := n.label()
	if n.Name == "" {
		segment = fmt.Sprintf("%s[%d]", n.Role, index)
	}
	if parent == "" {
		return segment
	}
	return parent + " > " + segment
}

func describeCandidates(nodes []*Node) string {
	if len(nodes) == 0 {
		return "no further siblings"
	}

	labels := make([]string, 0, len(nodes))
	for _, n := range nodes {
		labels = append(labels, n.label())
	}
	return strings.Join(labels, ", ")
}
