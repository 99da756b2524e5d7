// Package htmlpage is an in-memory page.Page backed by parsed HTML. It lets
// the assertion layer run against an httptest fixture site without a real
// browser: roles derive from markup the way a browser's accessibility tree
// would, and simple data attributes stand in for show/hide scripting.
package htmlpage

import (
	"context"
	"fmt"
	"net/http"

	"golang.org/x/net/html"

	"github.com/pitabwire/lens/aria"
	"github.com/pitabwire/lens/page"
)

// Factory creates htmlpage pages that fetch documents over the supplied
// client.
type Factory struct {
	client *http.Client
}

// NewFactory builds a page factory. A nil client uses http.DefaultClient.
func NewFactory(client *http.Client) *Factory {
	if client == nil {
		client = http.DefaultClient
	}
	return &Factory{client: client}
}

func (f *Factory) NewPage(_ context.Context) (page.Page, error) {
	return &Page{client: f.client}, nil
}

// Page is one parsed document. It is not safe for concurrent use; the
// harness gives every scenario its own instance.
type Page struct {
	client *http.Client
	doc    *html.Node
	url    string
}

var _ page.Page = (*Page)(nil)

func (p *Page) Navigate(ctx context.Context, url string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("htmlpage: %s returned status %d", url, resp.StatusCode)
	}

	doc, err := html.Parse(resp.Body)
	if err != nil {
		return fmt.Errorf("htmlpage: parsing %s: %w", url, err)
	}

	p.doc = doc
	p.url = url
	return nil
}

func (p *Page) Title(_ context.Context) (string, error) {
	if p.doc == nil {
		return "", fmt.Errorf("htmlpage: no document loaded")
	}

	title := findElement(p.doc, func(n *html.Node) bool { return n.Data == "title" })
	if title == nil {
		return "", nil
	}
	return aria.NormalizeName(textContent(title)), nil
}

func (p *Page) Text(_ context.Context, sel page.Selector) (string, error) {
	n, err := p.locate(sel)
	if err != nil {
		return "", err
	}
	return aria.NormalizeName(textContent(n)), nil
}

func (p *Page) Visible(_ context.Context, sel page.Selector) (bool, error) {
	if p.doc == nil {
		return false, fmt.Errorf("htmlpage: no document loaded")
	}

	n := p.find(sel)
	if n == nil {
		return false, nil
	}
	return !isHidden(n), nil
}

// Click activates an element. Elements carrying data-opens="id" reveal the
// element with that id; data-dismiss="id" hides it. Anything else is inert,
// as a static document has no behaviour of its own.
func (p *Page) Click(_ context.Context, sel page.Selector) error {
	n, err := p.locate(sel)
	if err != nil {
		return err
	}

	if target := attr(n, "data-opens"); target != "" {
		return p.setHiddenByID(target, false)
	}
	if target := attr(n, "data-dismiss"); target != "" {
		return p.setHiddenByID(target, true)
	}
	return nil
}

func (p *Page) Snapshot(_ context.Context, anchor page.Selector) (*aria.Snapshot, error) {
	n, err := p.locate(anchor)
	if err != nil {
		return nil, err
	}

	if elementRole(n) == "" {
		// Generic containers are transparent in the accessibility tree.
		return &aria.Snapshot{Nodes: convertChildren(n)}, nil
	}
	return &aria.Snapshot{Nodes: convertElement(n)}, nil
}

func (p *Page) Close(_ context.Context) error {
	p.doc = nil
	return nil
}

func (p *Page) locate(sel page.Selector) (*html.Node, error) {
	if p.doc == nil {
		return nil, fmt.Errorf("htmlpage: no document loaded")
	}

	n := p.find(sel)
	if n == nil {
		return nil, fmt.Errorf("htmlpage: no element matches %s", sel)
	}
	return n, nil
}

func (p *Page) find(sel page.Selector) *html.Node {
	switch sel.Strategy {
	case page.StrategyTestID:
		return findElement(p.doc, func(n *html.Node) bool {
			return attr(n, "data-testid") == sel.TestID
		})
	case page.StrategyRole:
		wantName := aria.NormalizeName(sel.Name)
		return findElement(p.doc, func(n *html.Node) bool {
			if elementRole(n) != sel.Role {
				return false
			}
			return wantName == "" || accessibleName(n) == wantName
		})
	default:
		return nil
	}
}

func (p *Page) setHiddenByID(id string, hidden bool) error {
	n := findElement(p.doc, func(n *html.Node) bool { return attr(n, "id") == id })
	if n == nil {
		return fmt.Errorf("htmlpage: no element with id %q", id)
	}

	for i, a := range n.Attr {
		if a.Key == "hidden" {
			if !hidden {
				n.Attr = append(n.Attr[:i], n.Attr[i+1:]...)
			}
			return nil
		}
	}
	if hidden {
		n.Attr = append(n.Attr, html.Attribute{Key: "hidden"})
	}
	return nil
}
