package htmlpage

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/pitabwire/lens/aria"
)

// implicitRoles maps HTML tags to the ARIA role a browser would expose for
// them when no explicit role attribute overrides it.
var implicitRoles = map[string]string{
	"ul":      "list",
	"ol":      "list",
	"li":      "listitem",
	"p":       "paragraph",
	"button":  "button",
	"nav":     "navigation",
	"main":    "main",
	"header":  "banner",
	"footer":  "contentinfo",
	"img":     "img",
	"input":   "textbox",
	"select":  "combobox",
	"table":   "table",
	"form":    "form",
	"h1":      "heading",
	"h2":      "heading",
	"h3":      "heading",
	"h4":      "heading",
	"h5":      "heading",
	"h6":      "heading",
	"section": "region",
}

// nameFromContent lists roles whose accessible name is their rendered text.
// Such elements carry the name on the node itself rather than as children.
var nameFromContent = map[string]bool{
	"button":  true,
	"link":    true,
	"heading": true,
}

func elementRole(n *html.Node) string {
	if n.Type != html.ElementNode {
		return ""
	}

	if explicit := attr(n, "role"); explicit != "" {
		return explicit
	}
	if n.Data == "a" {
		if attr(n, "href") != "" {
			return "link"
		}
		return ""
	}
	return implicitRoles[n.Data]
}

func accessibleName(n *html.Node) string {
	if label := attr(n, "aria-label"); label != "" {
		return aria.NormalizeName(label)
	}
	if nameFromContent[elementRole(n)] {
		return aria.NormalizeName(textContent(n))
	}
	return ""
}

// convertElement translates one element subtree into accessibility nodes.
func convertElement(n *html.Node) []*aria.Node {
	if isHidden(n) || skipElement(n) {
		return nil
	}

	role := elementRole(n)
	if role == "" {
		return convertChildren(n)
	}

	node := aria.NewNode(role, accessibleName(n))
	if !nameFromContent[role] {
		node.Children = convertChildren(n)
	}
	return []*aria.Node{node}
}

func convertChildren(n *html.Node) []*aria.Node {
	var nodes []*aria.Node
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		switch child.Type {
		case html.TextNode:
			if text := aria.NormalizeName(child.Data); text != "" {
				nodes = append(nodes, aria.Text(text))
			}
		case html.ElementNode:
			nodes = append(nodes, convertElement(child)...)
		default:
		}
	}
	return nodes
}

func skipElement(n *html.Node) bool {
	switch n.Data {
	case "head", "script", "style", "template":
		return true
	default:
		return false
	}
}

func isHidden(n *html.Node) bool {
	for current := n; current != nil; current = current.Parent {
		if current.Type != html.ElementNode {
			continue
		}
		for _, a := range current.Attr {
			if a.Key == "hidden" {
				return true
			}
		}
	}
	return false
}

func attr(n *html.Node, key string) string {
	if n.Type != html.ElementNode {
		return ""
	}
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func textContent(n *html.Node) string {
	var b strings.Builder
	collectText(n, &b)
	return b.String()
}

func collectText(n *html.Node, b *strings.Builder) {
	if n.Type == html.TextNode {
		b.WriteString(n.Data)
		b.WriteString(" ")
		return
	}
	if n.Type == html.ElementNode && (skipElement(n) || isHiddenSelf(n)) {
		return
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		collectText(child, b)
	}
}

func isHiddenSelf(n *html.Node) bool {
	for _, a := range n.Attr {
		if a.Key == "hidden" {
			return true
		}
	}
	return false
}

func findElement(root *html.Node, match func(*html.Node) bool) *html.Node {
	if root == nil {
		return nil
	}
	if root.Type == html.ElementNode && match(root) {
		return root
	}
	for child := root.FirstChild; child != nil; child = child.NextSibling {
		if found := findElement(child, match); found != nil {
			return found
		}
	}
	return nil
}
