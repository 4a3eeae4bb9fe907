package render

import (
	"bytes"
	"time"

	"github.com/araddon/dateparse"
	"gopkg.in/yaml.v3"
)

// Meta is the subset of front matter the viewer surfaces.
type Meta struct {
	Title string
	Date  time.Time
	Tags  []string
}

var frontMatterFence = []byte("---")

// SplitFrontMatter separates a leading YAML front matter block from the
// markdown body. Malformed front matter is left in place and rendered as
// ordinary content rather than erroring.
func SplitFrontMatter(source []byte) (Meta, []byte) {
	if !bytes.HasPrefix(source, frontMatterFence) {
		return Meta{}, source
	}

	rest := source[len(frontMatterFence):]
	if len(rest) == 0 || (rest[0] != '\n' && !bytes.HasPrefix(rest, []byte("\r\n"))) {
		return Meta{}, source
	}

	end := bytes.Index(rest, []byte("\n---"))
	if end < 0 {
		return Meta{}, source
	}

	block := rest[:end]
	body := rest[end+len("\n---"):]
	if idx := bytes.IndexByte(body, '\n'); idx >= 0 {
		body = body[idx+1:]
	} else {
		body = nil
	}

	var raw struct {
		Title string    `yaml:"title"`
		Date  yaml.Node `yaml:"date"`
		Tags  []string  `yaml:"tags"`
	}
	if err := yaml.Unmarshal(block, &raw); err != nil {
		return Meta{}, source
	}

	meta := Meta{Title: raw.Title, Tags: raw.Tags}
	if raw.Date.Value != "" {
		if parsed, err := dateparse.ParseAny(raw.Date.Value); err == nil {
			meta.Date = parsed
		}
	}
	return meta, body
}
