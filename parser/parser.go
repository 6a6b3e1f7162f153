package parser

import (
	"strings"
	"unicode"

	"github.com/go-shiori/go-readability"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// ExtractText pulls the readable plain text out of an article HTML body.
// Readability is the main extractor; trafilatura is the fallback for
// documents readability cannot handle.
func ExtractText(htmlStr string) (string, error) {
	doc, err := html.Parse(strings.NewReader(htmlStr))
	if err != nil {
		return "", err
	}

	if article, err := readability.FromDocument(doc, nil); err == nil {
		if text := strings.TrimSpace(article.TextContent); text != "" {
			return text, nil
		}
	}

	result, err := trafilatura.Extract(strings.NewReader(htmlStr), trafilatura.Options{})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(result.ContentText), nil
}

// Excerpt derives a short plain-text preview for listing cards. Extraction
// failures fall back to a raw text-node walk so a card never renders markup;
// the result is whitespace-collapsed and truncated to maxRunes.
func Excerpt(htmlStr string, maxRunes int) string {
	text, err := ExtractText(htmlStr)
	if err != nil || text == "" {
		text = textNodes(htmlStr)
	}
	text = collapseWhitespace(text)

	rs := []rune(text)
	if maxRunes > 0 && len(rs) > maxRunes {
		return strings.TrimRight(string(rs[:maxRunes]), " ") + "…"
	}
	return text
}

// TopImage finds a representative image inside article HTML: the
// readability-detected image first, then og/twitter meta tags, then the
// first <img>. Empty result means the content carries no usable image.
func TopImage(htmlStr string) string {
	doc, err := html.Parse(strings.NewReader(htmlStr))
	if err != nil {
		return ""
	}

	if article, err := readability.FromDocument(doc, nil); err == nil && article.Image != "" {
		return article.Image
	}

	if img := findMetaContent(doc, "property", []string{"og:image", "og:image:url", "og:image:secure_url"}); img != "" {
		return img
	}
	if img := findMetaContent(doc, "name", []string{"twitter:image", "twitter:image:src", "thumbnail", "image"}); img != "" {
		return img
	}

	return firstImgSrc(doc)
}

// textNodes walks the document and concatenates its text nodes, ignoring
// script and style bodies.
func textNodes(htmlStr string) string {
	doc, err := html.Parse(strings.NewReader(htmlStr))
	if err != nil {
		return ""
	}

	var b strings.Builder
	var f func(*html.Node)
	f = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
			return
		}
		if n.Type == html.TextNode {
			text := strings.TrimSpace(n.Data)
			if text != "" {
				b.WriteString(text)
				b.WriteString(" ")
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			f(c)
		}
	}
	f(doc)
	return strings.TrimSpace(b.String())
}

func collapseWhitespace(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	space := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			space = true
			continue
		}
		if space && b.Len() > 0 {
			b.WriteRune(' ')
		}
		space = false
		b.WriteRune(r)
	}
	return b.String()
}

func findMetaContent(root *html.Node, key string, candidates []string) string {
	candidateSet := make(map[string]struct{}, len(candidates))
	for _, c := range candidates {
		candidateSet[strings.ToLower(c)] = struct{}{}
	}

	var result string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n == nil || result != "" {
			return
		}

		if n.Type == html.ElementNode && n.Data == "meta" {
			var attrValue string
			var content string
			for _, a := range n.Attr {
				keyLower := strings.ToLower(a.Key)
				if keyLower == strings.ToLower(key) {
					attrValue = strings.ToLower(a.Val)
				} else if keyLower == "content" {
					content = a.Val
				}
			}

			if content != "" && attrValue != "" {
				if _, ok := candidateSet[attrValue]; ok {
					result = content
					return
				}
			}
		}

		for c := n.FirstChild; c != nil && result == ""; c = c.NextSibling {
			walk(c)
		}
	}

	walk(root)
	return result
}

func firstImgSrc(root *html.Node) string {
	var result string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n == nil || result != "" {
			return
		}
		if n.Type == html.ElementNode && n.Data == "img" {
			for _, a := range n.Attr {
				if strings.ToLower(a.Key) == "src" && a.Val != "" {
					result = a.Val
					return
				}
			}
		}
		for c := n.FirstChild; c != nil && result == ""; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return result
}
