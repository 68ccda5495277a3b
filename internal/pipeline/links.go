package pipeline

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
)

// linkAttrs maps elements to the attribute holding a local reference.
var linkAttrs = map[string]string{
	"img": "src",
	"a":   "href",
}

// ResolveLocalLinks rewrites relative img[src] and a[href] references in a
// full HTML document to absolute file:// URLs under baseDir. The document
// can then be rendered from any location, such as a temp file.
//
// URLs, data URIs, anchors and absolute paths are left alone, as are
// references that would escape baseDir. An empty baseDir returns doc unchanged.
func ResolveLocalLinks(doc, baseDir string) (string, error) {
	if baseDir == "" {
		return doc, nil
	}

	root, err := filepath.Abs(baseDir)
	if err != nil {
		return "", fmt.Errorf("resolving base directory: %w", err)
	}

	node, err := html.Parse(strings.NewReader(doc))
	if err != nil {
		return "", fmt.Errorf("parsing document: %w", err)
	}

	walkLinks(node, root)

	var buf strings.Builder
	if err := html.Render(&buf, node); err != nil {
		return "", fmt.Errorf("rendering document: %w", err)
	}
	return buf.String(), nil
}

// walkLinks rewrites link attributes in n and its descendants.
func walkLinks(n *html.Node, root string) {
	if n.Type == html.ElementNode {
		if key, ok := linkAttrs[n.Data]; ok {
			for i := range n.Attr {
				if n.Attr[i].Key == key {
					if u, ok := localFileURL(n.Attr[i].Val, root); ok {
						n.Attr[i].Val = u
					}
				}
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walkLinks(c, root)
	}
}

// localFileURL returns the file:// URL for a relative reference inside root.
func localFileURL(ref, root string) (string, bool) {
	if !isLocalRef(ref) {
		return "", false
	}

	abs := filepath.Clean(filepath.Join(root, ref))
	if abs != root && !strings.HasPrefix(abs, root+string(filepath.Separator)) {
		return "", false
	}

	u := url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}
	return u.String(), true
}

// isLocalRef reports whether ref is a relative filesystem path.
func isLocalRef(ref string) bool {
	if ref == "" || strings.HasPrefix(ref, "#") || strings.HasPrefix(ref, "//") {
		return false
	}
	if filepath.IsAbs(ref) || strings.HasPrefix(ref, "/") {
		return false
	}
	// Any scheme (http:, mailto:, data:, file:) means it is not a path
	if u, err := url.Parse(ref); err == nil && u.Scheme != "" {
		return false
	}
	return true
}
