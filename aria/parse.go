package aria

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// ParseSnapshot reads an expected accessibility fragment from its YAML form.
//
// The dialect is a nested sequence of element tokens: a role optionally
// followed by a quoted accessible name, as in `button "Save"`. An entry with
// a scalar value carries text content, as in `paragraph: Change the
// language`, and an entry with a sequence value nests children, so a list
// entry holding listitem entries describes a list and its items. Snapshot's
// String method renders this same form.
func ParseSnapshot(src string) (*Snapshot, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(src), &doc); err != nil {
		return nil, fmt.Errorf("aria: parsing snapshot: %w", err)
	}

	if len(doc.Content) == 0 {
		return &Snapshot{}, nil
	}

	nodes, err := parseSequence(doc.Content[0])
	if err != nil {
		return nil, err
	}

	return &Snapshot{Nodes: nodes}, nil
}

func parseSequence(seq *yaml.Node) ([]*Node, error) {
	if seq.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("aria: expected a sequence at line %d, got %s", seq.Line, kindName(seq.Kind))
	}

	nodes := make([]*Node, 0, len(seq.Content))
	for _, item := range seq.Content {
		node, err := parseItem(item)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, node)
	}
	return nodes, nil
}

func parseItem(item *yaml.Node) (*Node, error) {
	switch item.Kind {
	case yaml.ScalarNode:
		// Bare element without children, e.g. `button "Save"`.
		return parseToken(item.Value, item.Line)

	case yaml.MappingNode:
		if len(item.Content) != 2 {
			return nil, fmt.Errorf("aria: element at line %d must have exactly one key", item.Line)
		}
		key, value := item.Content[0], item.Content[1]

		node, err := parseToken(key.Value, key.Line)
		if err != nil {
			return nil, err
		}

		switch value.Kind {
		case yaml.ScalarNode:
			// `paragraph: Change the language` — scalar content.
			if node.Role == RoleText {
				node.Name = value.Value
			} else {
				node.Children = []*Node{Text(value.Value)}
			}
			return node, nil
		case yaml.SequenceNode:
			children, childErr := parseSequence(value)
			if childErr != nil {
				return nil, childErr
			}
			node.Children = children
			return node, nil
		default:
			return nil, fmt.Errorf("aria: element %q at line %d has unsupported content", key.Value, key.Line)
		}

	default:
		return nil, fmt.Errorf("aria: unsupported entry at line %d", item.Line)
	}
}

// parseToken splits `role "accessible name"` into its parts.
func parseToken(token string, line int) (*Node, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, fmt.Errorf("aria: empty element token at line %d", line)
	}

	role, rest, found := strings.Cut(token, " ")
	if !found {
		return &Node{Role: role}, nil
	}

	rest = strings.TrimSpace(rest)
	if !strings.HasPrefix(rest, `"`) || !strings.HasSuffix(rest, `"`) || len(rest) < 2 {
		return nil, fmt.Errorf("aria: element token %q at line %d: accessible name must be quoted", token, line)
	}

	return &Node{Role: role, Name: rest[1 : len(rest)-1]}, nil
}

func kindName(kind yaml.Kind) string {
	switch kind {
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.DocumentNode:
		return "document"
	case yaml.AliasNode:
		return "alias"
	default:
		return "unknown"
	}
}
