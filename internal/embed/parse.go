package embed

import (
	"strings"
)

// span is one [[...]] or ![[...]] occurrence in a markdown source.
type span struct {
	isEmbed bool
	start   int
	end     int
	inner   string
}

// Link is a parsed wikilink body: Target[#Heading|^Block][|Alias].
type Link struct {
	Target  string
	Heading string
	Block   string
	Alias   string
}

// skipRanges returns byte ranges covering fenced code blocks and inline
// code spans; wikilink syntax inside them is left alone.
func skipRanges(text string) [][2]int {
	var ranges [][2]int
	i := 0
	for i < len(text) {
		if strings.HasPrefix(text[i:], "```") {
			start := i
			i += 3
			for i < len(text) && text[i] != '\n' {
				i++
			}
			if i < len(text) {
				i++
			}
			for i+3 <= len(text) {
				if strings.HasPrefix(text[i:], "```") {
					i += 3
					ranges = append(ranges, [2]int{start, i})
					break
				}
				i++
			}
			continue
		}
		if text[i] == '`' {
			start := i
			i++
			for i < len(text) && text[i] != '`' {
				i++
			}
			if i < len(text) {
				i++
				ranges = append(ranges, [2]int{start, i})
			}
			continue
		}
		i++
	}
	return ranges
}

func inSkipRange(pos int, skip [][2]int) bool {
	for _, r := range skip {
		if pos >= r[0] && pos <= r[1] {
			return true
		}
	}
	return false
}

// findSpans locates every wikilink/embed span outside code regions.
func findSpans(text string) []span {
	skip := skipRanges(text)
	var out []span
	i := 0
	for i+2 <= len(text) {
		if text[i] != '[' || i+1 >= len(text) || text[i+1] != '[' {
			i++
			continue
		}
		if inSkipRange(i, skip) {
			i++
			continue
		}

		isEmbed := i > 0 && text[i-1] == '!'
		start := i
		if isEmbed {
			start = i - 1
		}
		contentStart := i + 2
		i += 2
		closed := false
		for i < len(text) {
			if text[i] == ']' && i+1 < len(text) && text[i+1] == ']' {
				out = append(out, span{
					isEmbed: isEmbed,
					start:   start,
					end:     i + 2,
					inner:   text[contentStart:i],
				})
				i += 2
				closed = true
				break
			}
			i++
		}
		if !closed {
			break
		}
	}
	return out
}

// parseLink splits a wikilink body into target, heading/block subtarget,
// and alias. The alias is everything after the last '|'.
func parseLink(inner string) Link {
	inner = strings.TrimSpace(inner)

	var link Link
	if idx := strings.LastIndex(inner, "|"); idx >= 0 {
		link.Alias = strings.TrimSpace(inner[idx+1:])
		inner = strings.TrimSpace(inner[:idx])
	}

	sharp := strings.Index(inner, "#")
	caret := strings.Index(inner, "^")
	switch {
	case sharp < 0 && caret < 0:
		link.Target = cleanTarget(inner)
	case caret < 0 || (sharp >= 0 && sharp < caret):
		link.Target = cleanTarget(inner[:sharp])
		link.Heading = strings.TrimSpace(inner[sharp+1:])
	default:
		link.Target = cleanTarget(inner[:caret])
		link.Block = strings.TrimSpace(inner[caret+1:])
	}
	return link
}

func cleanTarget(target string) string {
	return strings.TrimSpace(strings.ReplaceAll(target, "\\", "/"))
}

// displayText is the text shown for a wikilink: the alias when present,
// otherwise the target's basename without extension, with any subtarget
// suffix appended.
func displayText(link Link) string {
	if link.Alias != "" {
		return link.Alias
	}

	base := link.Target
	if idx := strings.LastIndex(base, "/"); idx >= 0 {
		base = base[idx+1:]
	}
	base = strings.TrimSuffix(base, ".md")

	switch {
	case link.Heading != "":
		return base + "#" + link.Heading
	case link.Block != "":
		return base + "^" + link.Block
	default:
		return base
	}
}

// encodeHref percent-encodes the characters that would break a markdown
// link destination.
func encodeHref(path string) string {
	replacer := strings.NewReplacer(
		"%", "%25",
		" ", "%20",
		"(", "%28",
		")", "%29",
		"#", "%23",
		"?", "%3F",
		"\"", "%22",
		"<", "%3C",
		">", "%3E",
	)
	return replacer.Replace(strings.ReplaceAll(path, "\\", "/"))
}
