package uriparse

import (
	"os"
	"path/filepath"
	"testing"
)

func TestPathInfo(t *testing.T) {
	tests := []struct {
		uri  string
		base string
		dir  string
	}{
		{"file:///home/dev/src/main.go", "main.go", "/home/dev/src"},
		{"https://go.dev/doc/effective_go", "effective_go", "go.dev/doc"},
		{"https://example.com/", "example.com", ""},
		{"scratch://5a1c/", "5a1c", ""},
	}
	for _, tt := range tests {
		base, dir := PathInfo(tt.uri)
		if base != tt.base || dir != tt.dir {
			t.Errorf("PathInfo(%q) = (%q, %q), want (%q, %q)", tt.uri, base, dir, tt.base, tt.dir)
		}
	}
}

func TestLabel(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"plain", Label("main.go", "/src", 0, "", ""), "main.go (/src)"},
		{"line", Label("main.go", "", 12, "", ""), "main.go, line 12"},
		{"group", Label("main.go", "/src", 0, "2", ""), "main.go (/src) [2]"},
		{"both", Label("main.go", "/src", 0, "2", "browser"), "main.go (/src) [2, browser]"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s: got %q, want %q", tt.name, tt.got, tt.want)
		}
	}
}

func TestScheme(t *testing.T) {
	if got := Scheme("HTTPS://x.org"); got != "https" {
		t.Errorf("Scheme = %q", got)
	}
	if got := Scheme("/tmp/x"); got != "" {
		t.Errorf("Scheme of a bare path = %q", got)
	}
}

func TestLocalPathRoundTrip(t *testing.T) {
	uri := FromPath("/tmp/notes.txt")
	p, ok := LocalPath(uri)
	if !ok || p != "/tmp/notes.txt" {
		t.Errorf("LocalPath(%q) = %q, %v", uri, p, ok)
	}
}

func TestNormalize(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	if err := os.WriteFile("notes.txt", []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		in, want string
	}{
		{"https://go.dev/doc", "https://go.dev/doc"},
		{"scratch://abc", "scratch://abc"},
		{"go.dev/doc", "https://go.dev/doc"},
		{"notes.txt", FromPath(filepath.Join(dir, "notes.txt"))},
		{"/etc/hosts", "file:///etc/hosts"},
		{"src/main", FromPath(filepath.Join(dir, "src/main"))},
		{"", ""},
	}
	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
