package pipeline

import (
	"net/url"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
)

// linkAttrs lists the attributes that may reference local files, per element.
var linkAttrs = map[string]string{
	"img":  "src",
	"a":    "href",
	"link": "href",
}

// ResolveLocalLinks rewrites relative img, a and link references in an
// assembled document to file:// URLs under baseDir. The PDF renderer loads
// the document from a temporary location, where relative paths would break.
// References escaping baseDir are left alone. An empty baseDir is a no-op.
func ResolveLocalLinks(doc, baseDir string) (string, error) {
	if baseDir == "" {
		return doc, nil
	}
	absDir, err := filepath.Abs(baseDir)
	if err != nil {
		return "", err
	}

	root, err := html.Parse(strings.NewReader(doc))
	if err != nil {
		return "", err
	}
	resolveNode(root, absDir)

	var sb strings.Builder
	if err := html.Render(&sb, root); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func resolveNode(n *html.Node, dir string) {
	if n.Type == html.ElementNode {
		if key, ok := linkAttrs[n.Data]; ok {
			for i, attr := range n.Attr {
				if attr.Key != key || !isLocalPath(attr.Val) {
					continue
				}
				abs := filepath.Join(dir, filepath.FromSlash(attr.Val))
				if !within(abs, dir) {
					continue
				}
				n.Attr[i].Val = (&url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}).String()
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		resolveNode(c, dir)
	}
}

// isLocalPath reports whether ref is a relative filesystem path rather than
// a URL, an anchor or an absolute path.
func isLocalPath(ref string) bool {
	if ref == "" || strings.HasPrefix(ref, "#") || strings.HasPrefix(ref, "//") {
		return false
	}
	if u, err := url.Parse(ref); err != nil || u.Scheme != "" {
		return false
	}
	return !filepath.IsAbs(ref)
}

func within(path, dir string) bool {
	rel, err := filepath.Rel(dir, path)
	return err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
