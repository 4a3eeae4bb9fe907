package tree

import (
	"path/filepath"
	"strings"
)

// iconsByExt maps file extensions to the glyph shown next to tree leaves.
// Pure lookup table; ordering is irrelevant.
var iconsByExt = map[string]string{
	".md":       "📝",
	".markdown": "📝",
	".txt":      "📄",
	".png":      "🖼",
	".jpg":      "🖼",
	".jpeg":     "🖼",
	".gif":      "🖼",
	".svg":      "🖼",
	".pdf":      "📕",
	".csv":      "📊",
	".json":     "🧾",
	".yaml":     "🧾",
	".yml":      "🧾",
}

const (
	dirIcon         = "📁"
	defaultFileIcon = "📄"
)

// Icon returns the glyph for a node: a folder glyph for directories, an
// extension-based glyph for files.
func Icon(n Node) string {
	if n.IsDir() {
		return dirIcon
	}
	if icon, ok := iconsByExt[strings.ToLower(filepath.Ext(n.Name))]; ok {
		return icon
	}
	return defaultFileIcon
}
