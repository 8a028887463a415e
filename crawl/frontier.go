package crawl

import "strings"

// Frontier holds the transient BFS state of one crawl: a FIFO queue of
// pending URLs and an exact set of visited URL keys. Keys are normalized
// by stripping any fragment and trailing slash, so the same logical
// resource reached via different anchor fragments is queued only once.
//
// The set is exact rather than probabilistic: a false positive would
// silently drop a page and break the completeness claim the manifest
// makes. Frontier is not safe for concurrent use; the crawl is
// sequential.
type Frontier struct {
	seen  map[string]struct{}
	queue []string
}

// NewFrontier creates an empty Frontier.
func NewFrontier() *Frontier {
	return &Frontier{seen: make(map[string]struct{})}
}

// NormalizeURL returns the visited-set key for a URL: fragment and
// trailing slash removed.
func NormalizeURL(rawURL string) string {
	if idx := strings.Index(rawURL, "#"); idx != -1 {
		rawURL = rawURL[:idx]
	}
	return strings.TrimRight(rawURL, "/")
}

// Push enqueues a URL. Returns false if the URL has already been seen.
// The queued URL keeps its trailing slash (it distinguishes directory
// indices) but loses any fragment.
func (f *Frontier) Push(rawURL string) bool {
	key := NormalizeURL(rawURL)
	if _, ok := f.seen[key]; ok {
		return false
	}
	f.seen[key] = struct{}{}

	if idx := strings.Index(rawURL, "#"); idx != -1 {
		rawURL = rawURL[:idx]
	}
	f.queue = append(f.queue, rawURL)
	return true
}

// Pop dequeues the next URL in FIFO order.
// The bool result is false if the frontier is empty.
func (f *Frontier) Pop() (string, bool) {
	if len(f.queue) == 0 {
		return "", false
	}
	url := f.queue[0]
	f.queue = f.queue[1:]
	return url, true
}

// Len returns the number of URLs waiting in the queue.
func (f *Frontier) Len() int {
	return len(f.queue)
}

// Seen returns true if the URL has been processed or queued.
func (f *Frontier) Seen(rawURL string) bool {
	_, ok := f.seen[NormalizeURL(rawURL)]
	return ok
}
