package pathutil

import (
	"strings"
	"testing"
)

func TestNormalizeBase(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", "/"},
		{"/", "/"},
		{"/a/b", "/a/b"},
		{"/a/b/", "/a/b"},
		{"C:\\notes\\wiki", "C:/notes/wiki"},
		{"C:\\notes\\wiki\\", "C:/notes/wiki"},
	}

	for _, tc := range cases {
		if got := NormalizeBase(tc.in); got != tc.want {
			t.Fatalf("NormalizeBase(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestResolveFoldsDotSegments(t *testing.T) {
	cases := []struct {
		base string
		rel  string
		want string
	}{
		{"/a/b", "c.md", "/a/b/c.md"},
		{"/a/b", "./c.md", "/a/b/c.md"},
		{"/a/b", "..", "/a"},
		{"/a", "../..", "/"},
		{"/", "..", "/"},
		{"/a/b", "../sibling/x.md", "/a/sibling/x.md"},
		{"/a/b", "sub\\win.md", "/a/b/sub/win.md"},
		{"/docs", "/etc/other.md", "/etc/other.md"},
	}

	for _, tc := range cases {
		if got := Resolve(tc.base, tc.rel); got != tc.want {
			t.Fatalf("Resolve(%q, %q) = %q, want %q", tc.base, tc.rel, got, tc.want)
		}
	}
}

func TestResolveAlwaysAbsoluteAndClean(t *testing.T) {
	bases := []string{"/", "/a", "/a/b/c"}
	rels := []string{"x.md", "./x.md", "../x.md", "a/../b", "././deep/../x"}

	for _, base := range bases {
		for _, rel := range rels {
			got := Resolve(base, rel)
			if !strings.HasPrefix(got, Separator) {
				t.Fatalf("Resolve(%q, %q) = %q is not absolute", base, rel, got)
			}
			for _, seg := range strings.Split(got, Separator) {
				if seg == "." || seg == ".." {
					t.Fatalf("Resolve(%q, %q) = %q still contains %q", base, rel, got, seg)
				}
			}
		}
	}
}

func TestResolveEmptyRelativeKeepsTrailingSeparator(t *testing.T) {
	if got := Resolve("/a/b", ""); got != "/a/b/" {
		t.Fatalf("Resolve with empty relative = %q, want %q", got, "/a/b/")
	}
}

func TestWithin(t *testing.T) {
	cases := []struct {
		dir  string
		path string
		want bool
	}{
		{"/vault", "/vault/notes/x.md", true},
		{"/vault", "/vault", true},
		{"/vault", "/vault2/x.md", false},
		{"/", "/anything", true},
		{"/vault/", "/vault/x.md", true},
	}

	for _, tc := range cases {
		if got := Within(tc.dir, tc.path); got != tc.want {
			t.Fatalf("Within(%q, %q) = %v, want %v", tc.dir, tc.path, got, tc.want)
		}
	}
}
