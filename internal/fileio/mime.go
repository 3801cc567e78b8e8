package fileio

import (
	"mime"
	"net/http"
	"path/filepath"
	"strings"
)

// sniffLen matches the number of bytes http.DetectContentType looks at.
const sniffLen = 512

// IsTextPlain reports whether a file looks like plain text, first by extension and
// then by sniffing the leading bytes. Any text/* extension is accepted so source
// files and markdown stay openable.
func IsTextPlain(path string, head []byte) bool {
	if ext := filepath.Ext(path); ext != "" {
		if t := mime.TypeByExtension(ext); t != "" {
			return strings.HasPrefix(t, "text/")
		}
	}
	if len(head) > sniffLen {
		head = head[:sniffLen]
	}
	if len(head) == 0 {
		return true
	}
	return strings.HasPrefix(http.DetectContentType(head), MimeTextPlain)
}

// Allowed applies a mime filter. An empty filter accepts everything.
func Allowed(filter []string, path string, head []byte) bool {
	if len(filter) == 0 {
		return true
	}
	for _, f := range filter {
		switch {
		case f == "*/*":
			return true
		case f == MimeTextPlain && IsTextPlain(path, head):
			return true
		}
	}
	return false
}

// DecodeText turns file bytes into document text. Invalid UTF-8 sequences become
// U+FFFD; valid input is returned unchanged, line terminators included.
func DecodeText(data []byte) string {
	return strings.ToValidUTF8(string(data), "�")
}
