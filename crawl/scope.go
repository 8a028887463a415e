package crawl

import (
	"net/url"
	"strings"
)

// ShouldDownload reports whether rawURL is in scope for a crawl rooted at
// baseURL. A URL is in scope iff it is on the same host as the base, its
// path lies under the base's path prefix, and it names an HTML file or a
// directory index. Everything else (external hosts, sibling paths,
// non-HTML assets, mailto:/javascript: links) is out of scope.
//
// The predicate is pure: it never performs I/O.
func ShouldDownload(rawURL, baseURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	base, err := url.Parse(baseURL)
	if err != nil {
		return false
	}

	if u.Scheme != "" && u.Scheme != "http" && u.Scheme != "https" {
		return false
	}

	if u.Host != "" && u.Host != base.Host {
		return false
	}

	if !strings.HasPrefix(u.Path, pathPrefix(base)) {
		return false
	}

	return strings.HasSuffix(u.Path, ".html") || strings.HasSuffix(u.Path, "/")
}

// pathPrefix returns the base URL's directory prefix, always ending in "/".
func pathPrefix(base *url.URL) string {
	p := base.Path
	if p == "" {
		return "/"
	}
	if !strings.HasSuffix(p, "/") {
		if idx := strings.LastIndex(p, "/"); idx >= 0 {
			p = p[:idx+1]
		}
	}
	return p
}
