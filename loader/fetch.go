package loader

import (
	"fmt"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/erraggy/oascompat/oaserrors"
)

func isHTTP(location string) bool {
	return strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://")
}

// filePathOf accepts plain paths and file:// URIs.
func filePathOf(location string) (string, error) {
	if !strings.HasPrefix(location, "file://") {
		return location, nil
	}
	u, err := url.Parse(location)
	if err != nil {
		return "", fmt.Errorf("loader: invalid file URI %q: %w", location, err)
	}
	if u.Host != "" && u.Host != "localhost" {
		return "", fmt.Errorf("loader: unsupported file URI host %q", u.Host)
	}
	return filepath.FromSlash(u.Path), nil
}

// fetchURL fetches content from a URL, bounded by the configured max file size.
func (l *loader) fetchURL(urlStr string) ([]byte, error) {
	client := l.cfg.httpClient
	if client == nil {
		client = &http.Client{
			Timeout: 30 * time.Second,
		}
	}

	req, err := http.NewRequestWithContext(l.cfg.ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return nil, fmt.Errorf("loader: failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", l.cfg.userAgent)

	l.log.Debug("fetching document", "url", urlStr)
	resp, err := client.Do(req) //nolint:gosec // URL is user-provided input
	if err != nil {
		return nil, fmt.Errorf("loader: failed to fetch URL: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("loader: HTTP %d: %s", resp.StatusCode, resp.Status)
	}

	if resp.ContentLength > 0 {
		if err := l.checkSize(urlStr, resp.ContentLength); err != nil {
			return nil, err
		}
	}
	return l.readAll(resp.Body, urlStr)
}

// refFetcher loads documents named by external references. File references
// may not leave the directory of the root document.
type refFetcher struct {
	l          *loader
	baseDir    string
	rootIsHTTP bool
	docs       map[string]any
}

func newRefFetcher(l *loader, base string) *refFetcher {
	f := &refFetcher{l: l, rootIsHTTP: isHTTP(base), docs: make(map[string]any)}
	if !f.rootIsHTTP {
		dir := filepath.Dir(base)
		if base == "" {
			dir = "."
		}
		if abs, err := filepath.Abs(dir); err == nil {
			dir = abs
		}
		f.baseDir = dir
	}
	return f
}

// Fetch implements tree.Fetcher.
func (f *refFetcher) Fetch(base, location string) (string, any, error) {
	key, err := f.resolve(base, location)
	if err != nil {
		return "", nil, err
	}
	if doc, ok := f.docs[key]; ok {
		return key, doc, nil
	}
	if len(f.docs) >= f.l.cfg.maxCachedDocuments {
		return "", nil, &oaserrors.ResourceLimitError{
			ResourceType: "cached_documents",
			Limit:        int64(f.l.cfg.maxCachedDocuments),
			Actual:       int64(len(f.docs)),
			Message:      "too many external references",
		}
	}

	var data []byte
	if isHTTP(key) {
		data, err = f.l.fetchURL(key)
	} else {
		data, err = f.l.readFile(key)
	}
	if err != nil {
		return "", nil, err
	}
	var doc any
	if doc, err = decode(data, key); err != nil {
		return "", nil, err
	}
	f.l.log.Debug("loaded external document", "location", key)
	f.docs[key] = doc
	return key, doc, nil
}

// resolve turns location, relative to the document at base, into a
// canonical key: an absolute URL or an absolute file path.
func (f *refFetcher) resolve(base, location string) (string, error) {
	if isHTTP(location) || isHTTP(base) {
		if !f.rootIsHTTP && !f.l.cfg.httpRefs {
			return "", &oaserrors.ReferenceError{
				Ref:     location,
				RefType: "http",
				Message: "HTTP references are not enabled",
			}
		}
		if isHTTP(location) {
			return location, nil
		}
		b, err := url.Parse(base)
		if err != nil {
			return "", fmt.Errorf("loader: invalid base URL %q: %w", base, err)
		}
		r, err := url.Parse(location)
		if err != nil {
			return "", fmt.Errorf("loader: invalid reference %q: %w", location, err)
		}
		return b.ResolveReference(r).String(), nil
	}

	path, err := filePathOf(location)
	if err != nil {
		return "", err
	}
	if !filepath.IsAbs(path) {
		dir := f.baseDir
		if base != "" {
			dir = filepath.Dir(base)
		}
		path = filepath.Join(dir, path)
	}
	path = filepath.Clean(path)

	rel, err := filepath.Rel(f.baseDir, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", &oaserrors.ReferenceError{
			Ref:             location,
			RefType:         "file",
			IsPathTraversal: true,
		}
	}
	return path, nil
}

