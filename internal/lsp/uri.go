package lsp

import (
	"net/url"
	"path/filepath"
)

// URIToPath converts a file:// URI (as sent in textDocument.uri) to an
// absolute filesystem path. Returns "" for non-file schemes or malformed
// URIs; callers treat that as "not a file this analyzer can open."
func URIToPath(uri string) string {
	if uri == "" {
		return ""
	}
	parsed, err := url.Parse(uri)
	if err != nil {
		return ""
	}
	path := parsed.Path
	if parsed.Scheme == "" {
		path = uri
	} else if parsed.Scheme != "file" {
		return ""
	}
	if unescaped, err := url.PathUnescape(path); err == nil {
		path = unescaped
	}
	path = filepath.FromSlash(path)
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return path
}

// PathToURI is URIToPath's inverse, used when publishing diagnostics for a
// path this analyzer read from disk or config.
func PathToURI(path string) string {
	if path == "" {
		return ""
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(path)}
	return u.String()
}
