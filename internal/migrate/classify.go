// Package migrate classifies uploaded artifacts, produces migration plans,
// and drives each artifact's lifecycle through the background migration run.
package migrate

import (
	"path/filepath"
	"strings"

	"github.com/linford/necronet/internal/model"
)

// DetectType maps a filename extension and declared content type to an
// artifact category. First match wins, case-insensitive; unknown inputs fall
// through to "other".
func DetectType(filename, contentType string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	ct := strings.ToLower(contentType)

	switch {
	case ext == ".swf" || strings.Contains(ct, "flash"):
		return model.TypeFlash
	case ext == ".html" || ext == ".htm" || strings.Contains(ct, "html"):
		return model.TypeHTML
	case extIn(ext, ".png", ".jpg", ".jpeg", ".gif", ".webp") || strings.Contains(ct, "image"):
		return model.TypeImage
	case extIn(ext, ".zip", ".tar", ".gz"):
		return model.TypeArchive
	default:
		return model.TypeOther
	}
}

func extIn(ext string, candidates ...string) bool {
	for _, c := range candidates {
		if ext == c {
			return true
		}
	}
	return false
}
