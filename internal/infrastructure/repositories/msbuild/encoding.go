package msbuild

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

//nolint:gochecknoglobals // constant byte sequence
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// projectText is the content of a project file with its byte-order mark
// removed, plus what is needed to write it back the same way.
type projectText struct {
	body   []byte
	hasBOM bool
	mode   fs.FileMode
}

// readProjectText reads the file in one open/close cycle.
func readProjectText(path string) (*projectText, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat %q: %w", path, err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %q: %w", path, err)
	}

	text := &projectText{body: raw, mode: info.Mode().Perm()}
	if bytes.HasPrefix(raw, utf8BOM) {
		body, _, decodeErr := transform.Bytes(unicode.UTF8BOM.NewDecoder(), raw)
		if decodeErr != nil {
			return nil, fmt.Errorf("failed to decode %q: %w", path, decodeErr)
		}
		text.body = body
		text.hasBOM = true
	}

	return text, nil
}

// writeProjectText replaces the file content, emitting a byte-order mark
// only when the original file carried one.
func writeProjectText(path string, text *projectText) error {
	out := text.body
	if text.hasBOM {
		encoded, _, err := transform.Bytes(unicode.UTF8BOM.NewEncoder(), text.body)
		if err != nil {
			return fmt.Errorf("failed to encode %q: %w", path, err)
		}
		out = encoded
	}

	if err := os.WriteFile(path, out, text.mode); err != nil {
		return fmt.Errorf("failed to write %q: %w", path, err)
	}
	return nil
}
