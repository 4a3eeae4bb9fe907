package viewer

import "strings"

type docLink struct {
	text string
	href string
}

// extractLinks collects the markdown links of a rendered note in document
// order, so number keys can follow them. External URLs are skipped; only
// hrefs the navigation layer can resolve against the base directory count.
func extractLinks(markdown string) []docLink {
	var links []docLink
	inFence := false

	for _, line := range strings.Split(markdown, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "```") || strings.HasPrefix(trimmed, "~~~") {
			inFence = !inFence
			continue
		}
		if inFence {
			continue
		}
		links = appendLineLinks(links, line)
	}
	return links
}

func appendLineLinks(links []docLink, line string) []docLink {
	inCode := false
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case '`':
			inCode = !inCode
		case '[':
			if inCode {
				continue
			}
			if i > 0 && line[i-1] == '!' {
				continue // image, not a navigable link
			}
			text, href, next, ok := parseLinkAt(line, i)
			if !ok {
				continue
			}
			i = next - 1
			if external(href) {
				continue
			}
			links = append(links, docLink{text: text, href: href})
		}
	}
	return links
}

// parseLinkAt parses [text](href) starting at the bracket and returns the
// index just past the closing paren.
func parseLinkAt(line string, start int) (text, href string, next int, ok bool) {
	bracket := strings.IndexByte(line[start:], ']')
	if bracket < 0 {
		return "", "", 0, false
	}
	bracket += start
	if bracket+1 >= len(line) || line[bracket+1] != '(' {
		return "", "", 0, false
	}

	depth := 0
	for i := bracket + 1; i < len(line); i++ {
		switch line[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return line[start+1 : bracket], line[bracket+2 : i], i + 1, true
			}
		}
	}
	return "", "", 0, false
}

func external(href string) bool {
	if strings.Contains(href, "://") {
		return true
	}
	return strings.HasPrefix(href, "mailto:") || strings.HasPrefix(href, "#")
}
