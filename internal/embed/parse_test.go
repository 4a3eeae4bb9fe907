package embed

import (
	"testing"
)

func TestFindSpans(t *testing.T) {
	cases := []struct {
		name  string
		text  string
		want  int
		embed []bool
		inner []string
	}{
		{"simple embed", "![[Note]]", 1, []bool{true}, []string{"Note"}},
		{"simple link", "[[Note]]", 1, []bool{false}, []string{"Note"}},
		{"path target", "![[path/to/Note]]", 1, []bool{true}, []string{"path/to/Note"}},
		{"heading", "![[Note#H]]", 1, []bool{true}, []string{"Note#H"}},
		{"block", "![[Note^abc]]", 1, []bool{true}, []string{"Note^abc"}},
		{"alias", "[[Note|Alias]]", 1, []bool{false}, []string{"Note|Alias"}},
		{"multiple", "a ![[A]] b [[B]] c", 2, []bool{true, false}, []string{"A", "B"}},
		{"unterminated", "![[Note", 0, nil, nil},
		{"inside fenced code", "```\n![[Link]]\n```", 0, nil, nil},
		{"inside inline code", "use `[[Link]]` here", 0, nil, nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			spans := findSpans(tc.text)
			if len(spans) != tc.want {
				t.Fatalf("got %d spans, want %d: %+v", len(spans), tc.want, spans)
			}
			for i, s := range spans {
				if s.isEmbed != tc.embed[i] || s.inner != tc.inner[i] {
					t.Fatalf("span %d = %+v, want embed=%v inner=%q", i, s, tc.embed[i], tc.inner[i])
				}
			}
		})
	}
}

func TestFindSpansOffsets(t *testing.T) {
	spans := findSpans("x ![[A]] y")
	if len(spans) != 1 {
		t.Fatalf("expected one span, got %d", len(spans))
	}
	if spans[0].start != 2 || spans[0].end != 8 {
		t.Fatalf("span covers [%d,%d), want [2,8)", spans[0].start, spans[0].end)
	}
}

func TestParseLink(t *testing.T) {
	cases := []struct {
		inner string
		want  Link
	}{
		{"Note", Link{Target: "Note"}},
		{"path/to/Note", Link{Target: "path/to/Note"}},
		{"Note#Heading", Link{Target: "Note", Heading: "Heading"}},
		{"Note^block1", Link{Target: "Note", Block: "block1"}},
		{"Note|My Alias", Link{Target: "Note", Alias: "My Alias"}},
		{"Note#H|A", Link{Target: "Note", Heading: "H", Alias: "A"}},
		{"  padded  ", Link{Target: "padded"}},
		{"win\\path", Link{Target: "win/path"}},
	}

	for _, tc := range cases {
		if got := parseLink(tc.inner); got != tc.want {
			t.Fatalf("parseLink(%q) = %+v, want %+v", tc.inner, got, tc.want)
		}
	}
}

func TestDisplayText(t *testing.T) {
	cases := []struct {
		link Link
		want string
	}{
		{Link{Target: "Note"}, "Note"},
		{Link{Target: "dir/Note.md"}, "Note"},
		{Link{Target: "Note", Alias: "Alias"}, "Alias"},
		{Link{Target: "Note", Heading: "Intro"}, "Note#Intro"},
		{Link{Target: "Note", Block: "b1"}, "Note^b1"},
	}

	for _, tc := range cases {
		if got := displayText(tc.link); got != tc.want {
			t.Fatalf("displayText(%+v) = %q, want %q", tc.link, got, tc.want)
		}
	}
}

func TestEncodeHref(t *testing.T) {
	if got := encodeHref("/v/My Note (draft).md"); got != "/v/My%20Note%20%28draft%29.md" {
		t.Fatalf("encodeHref = %q", got)
	}
	if got := encodeHref("C:\\v\\x.md"); got != "C:/v/x.md" {
		t.Fatalf("encodeHref windows = %q", got)
	}
}
