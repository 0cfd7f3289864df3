// Package uriparse turns view uris into the short names shown in tabs and menus.
package uriparse

import (
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
)

// Scheme returns the lower-cased scheme of uri, or "" for bare paths.
func Scheme(uri string) string {
	i := strings.Index(uri, "://")
	if i <= 0 {
		return ""
	}
	return strings.ToLower(uri[:i])
}

// FromPath converts a local path into a file:// uri.
func FromPath(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		p = abs
	}
	return (&url.URL{Scheme: "file", Path: filepath.ToSlash(p)}).String()
}

// Normalize turns what a user typed into a uri. Anything with a scheme is
// kept, existing or path-like input becomes a file uri, and a bare domain
// gets https.
func Normalize(arg string) string {
	arg = strings.TrimSpace(arg)
	if arg == "" || Scheme(arg) != "" {
		return arg
	}
	if strings.HasPrefix(arg, "~") {
		if p, err := homedir.Expand(arg); err == nil {
			return FromPath(p)
		}
	}
	if filepath.IsAbs(arg) || strings.HasPrefix(arg, ".") {
		return FromPath(arg)
	}
	if _, err := os.Stat(arg); err == nil {
		return FromPath(arg)
	}
	host, _, _ := strings.Cut(arg, "/")
	if strings.Contains(host, ".") && !strings.Contains(arg, " ") {
		return "https://" + arg
	}
	return FromPath(arg)
}

// LocalPath returns the filesystem path of a file:// uri.
func LocalPath(uri string) (string, bool) {
	if Scheme(uri) != "file" {
		return "", false
	}
	u, err := url.Parse(uri)
	if err != nil {
		return "", false
	}
	return filepath.FromSlash(u.Path), true
}

// DisplayPath is the uri as a user would write it: a path for files,
// host and path for web pages, the uri itself otherwise.
func DisplayPath(uri string) string {
	switch Scheme(uri) {
	case "file":
		if p, ok := LocalPath(uri); ok {
			return p
		}
	case "http", "https":
		if u, err := url.Parse(uri); err == nil {
			return strings.TrimSuffix(u.Host+u.Path, "/")
		}
	}
	return uri
}

// PathInfo splits the display path of uri into base name and directory.
// dir is empty when the path has no separator.
func PathInfo(uri string) (base, dir string) {
	p := DisplayPath(uri)
	idx := strings.LastIndex(p, "/")
	if idx == -1 {
		idx = strings.LastIndex(p, "\\")
	}
	if idx == -1 || idx == len(p)-1 {
		return BaseName(uri), ""
	}
	return p[idx+1:], p[:idx]
}

// BaseName returns the last path element of uri.
func BaseName(uri string) string {
	if u, err := url.Parse(uri); err == nil && u.Path != "" && u.Path != "/" {
		return path.Base(u.Path)
	}
	if u, err := url.Parse(uri); err == nil && u.Host != "" {
		return u.Host
	}
	return uri
}

// Label formats a menu label: "base (dir)", then ", line N" when line > 0,
// then "[group, type]" for whichever annotations are given.
func Label(base, dir string, line int, group, viewType string) string {
	var sb strings.Builder
	sb.WriteString(base)
	if dir != "" {
		fmt.Fprintf(&sb, " (%s)", dir)
	}
	if line > 0 {
		fmt.Fprintf(&sb, ", line %d", line)
	}
	var notes []string
	if group != "" {
		notes = append(notes, group)
	}
	if viewType != "" {
		notes = append(notes, viewType)
	}
	if len(notes) > 0 {
		fmt.Fprintf(&sb, " [%s]", strings.Join(notes, ", "))
	}
	return sb.String()
}
