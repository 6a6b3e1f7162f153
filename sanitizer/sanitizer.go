package sanitizer

import (
	"fmt"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"
)

// Article bodies are editor-authored HTML coming out of the remote store, so
// they are attacker-controllable (any dashboard user, or a compromised store
// record). Sanitize runs once per render, server-side, before the content
// reaches any page. It is pure: no I/O, same input same output.
//
// A sanitization failure is a hard error. Rendering the raw content instead
// would reintroduce exactly the XSS this step exists to prevent, so callers
// must block rendering of the article body when an error comes back.

var policy = newPolicy()

// newPolicy builds the allow-list rich-text profile: headings, paragraphs,
// lists, links, images, emphasis, tables, code. Script-executing constructs
// never pass it.
func newPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowImages()
	p.AllowAttrs("class").OnElements("p", "span", "div", "h1", "h2", "h3", "h4", "blockquote", "pre", "code")
	p.RequireNoFollowOnLinks(false)
	return p
}

// Sanitize returns HTML safe to inject into a page, or an error when the
// result could not be verified safe.
func Sanitize(raw string) (string, error) {
	clean := policy.Sanitize(raw)
	if err := verify(clean); err != nil {
		return "", fmt.Errorf("sanitize: %w", err)
	}
	return clean, nil
}

// verify re-parses the sanitized output and walks it, asserting that no
// executable construct survived. The policy alone should guarantee this;
// the walk turns a policy gap or a parser edge case into a loud error
// instead of a silent unsafe render.
func verify(sanitized string) error {
	doc, err := html.Parse(strings.NewReader(sanitized))
	if err != nil {
		return fmt.Errorf("output not parseable: %w", err)
	}

	var walk func(*html.Node) error
	walk = func(n *html.Node) error {
		if n.Type == html.ElementNode {
			tag := strings.ToLower(n.Data)
			switch tag {
			case "script", "iframe", "object", "embed", "form":
				return fmt.Errorf("forbidden element %q survived sanitization", tag)
			}
			for _, a := range n.Attr {
				key := strings.ToLower(a.Key)
				if strings.HasPrefix(key, "on") {
					return fmt.Errorf("event handler attribute %q survived sanitization", a.Key)
				}
				if key == "href" || key == "src" {
					val := strings.ToLower(strings.TrimSpace(a.Val))
					if strings.HasPrefix(val, "javascript:") || strings.HasPrefix(val, "vbscript:") {
						return fmt.Errorf("scriptable %s URL survived sanitization", key)
					}
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if err := walk(c); err != nil {
				return err
			}
		}
		return nil
	}
	return walk(doc)
}
