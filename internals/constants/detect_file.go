package constants

import (
	"path/filepath"
	"strings"
)

// Formats accepted for paper uploads. Content is stored byte-for-byte, so
// this is an extension allowlist only.
var allowedFormats = map[string]struct{}{
	"pdf": {}, "doc": {}, "docx": {}, "ppt": {}, "pptx": {},
	"png": {}, "jpg": {}, "jpeg": {}, "webp": {},
}

// FileFormat returns the lowercase extension without the dot, or "" when the
// file name has none.
func FileFormat(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	return strings.TrimPrefix(ext, ".")
}

func IsAllowedFormat(filename string) bool {
	_, ok := allowedFormats[FileFormat(filename)]
	return ok
}
