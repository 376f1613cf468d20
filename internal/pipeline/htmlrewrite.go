package pipeline

import (
	"net/url"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// RewriteOptions selects the rewrites applied by RewriteHTML.
type RewriteOptions struct {
	// BaseDir resolves relative img[src] and a[href] values to file:// URLs.
	// Empty disables path rewriting.
	BaseDir string
	// NewWindow adds target="_blank" to links pointing at http(s) URLs.
	NewWindow bool
}

func (o RewriteOptions) enabled() bool {
	return o.BaseDir != "" || o.NewWindow
}

// RewriteHTML applies link and image rewrites to a fragment or document.
// Paths escaping BaseDir are left as written. Media, srcset, CSS url() and
// script sources are never touched.
func RewriteHTML(htmlContent string, opts RewriteOptions) (string, error) {
	if !opts.enabled() {
		return htmlContent, nil
	}

	if opts.BaseDir != "" {
		abs, err := filepath.Abs(opts.BaseDir)
		if err != nil {
			return "", err
		}
		opts.BaseDir = abs
	}

	doc, isFragment, err := parseHTML(htmlContent)
	if err != nil {
		return "", err
	}
	rewriteNode(doc, opts)
	return renderHTML(doc, isFragment)
}

// parseHTML parses a full document or a body fragment.
func parseHTML(content string) (*html.Node, bool, error) {
	lower := strings.ToLower(strings.TrimSpace(content))
	if strings.HasPrefix(lower, "<!doctype") || strings.HasPrefix(lower, "<html") {
		doc, err := html.Parse(strings.NewReader(content))
		return doc, false, err
	}

	body := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Body,
		Data:     "body",
	}
	nodes, err := html.ParseFragment(strings.NewReader(content), body)
	if err != nil {
		return nil, true, err
	}

	container := &html.Node{Type: html.DocumentNode}
	for _, n := range nodes {
		container.AppendChild(n)
	}
	return container, true, nil
}

// renderHTML renders doc; fragments render their children only.
func renderHTML(doc *html.Node, isFragment bool) (string, error) {
	var buf strings.Builder
	if !isFragment {
		if err := html.Render(&buf, doc); err != nil {
			return "", err
		}
		return buf.String(), nil
	}
	for c := doc.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

func rewriteNode(n *html.Node, opts RewriteOptions) {
	if n.Type == html.ElementNode {
		switch n.DataAtom {
		case atom.Img:
			if opts.BaseDir != "" {
				rewritePathAttr(n, "src", opts.BaseDir)
			}
		case atom.A:
			if opts.NewWindow && isExternalURL(attrValue(n, "href")) {
				setAttr(n, "target", "_blank")
				setAttr(n, "rel", "noopener noreferrer")
			}
			if opts.BaseDir != "" {
				rewritePathAttr(n, "href", opts.BaseDir)
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		rewriteNode(c, opts)
	}
}

// rewritePathAttr resolves a relative attribute value against baseDir.
func rewritePathAttr(n *html.Node, key, baseDir string) {
	for i, attr := range n.Attr {
		if attr.Key != key || !isRelativePath(attr.Val) {
			continue
		}
		p := attr.Val
		if unescaped, err := url.PathUnescape(p); err == nil {
			p = unescaped
		}
		abs := filepath.Join(baseDir, filepath.FromSlash(p))
		if !isPathUnderDir(abs, baseDir) {
			continue
		}
		n.Attr[i].Val = pathToFileURL(abs)
	}
}

func attrValue(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}

// setAttr replaces key or appends it.
func setAttr(n *html.Node, key, val string) {
	for i, attr := range n.Attr {
		if attr.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

func isExternalURL(s string) bool {
	lower := strings.ToLower(s)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// isRelativePath reports whether p is a local relative path.
func isRelativePath(p string) bool {
	if p == "" || strings.HasPrefix(p, "#") || strings.HasPrefix(p, "//") {
		return false
	}
	if i := strings.Index(p, ":"); i > 0 && !strings.ContainsAny(p[:i], "/\\.") {
		// Scheme (http:, file:, data:, mailto:) or a Windows drive letter.
		return false
	}
	return !filepath.IsAbs(p) && !strings.HasPrefix(p, "/")
}

// isPathUnderDir reports whether absPath is dir or lies below it.
func isPathUnderDir(absPath, dir string) bool {
	cleanPath := filepath.Clean(absPath)
	cleanDir := filepath.Clean(dir)
	if !strings.HasSuffix(cleanDir, string(filepath.Separator)) {
		cleanDir += string(filepath.Separator)
	}
	return strings.HasPrefix(cleanPath+string(filepath.Separator), cleanDir)
}

// pathToFileURL converts an absolute path to a file:// URL.
func pathToFileURL(absPath string) string {
	p := filepath.ToSlash(absPath)
	if !strings.HasPrefix(p, "/") {
		p = "/" + p // Windows drive paths
	}
	u := url.URL{Scheme: "file", Path: p}
	return u.String()
}
