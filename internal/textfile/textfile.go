package textfile

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"

	"strings-sync/internal/textutil"

	"github.com/natefinch/atomic"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
)

// ErrInvalidUTF8 is returned for a file without a BOM that is not valid UTF-8.
var ErrInvalidUTF8 = errors.New("invalid UTF-8")

// Encoding identifies how a file's text is stored on disk.
type Encoding int

const (
	UTF8 Encoding = iota
	UTF8BOM
	UTF16LE
	UTF16BE
)

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

func (e Encoding) String() string {
	switch e {
	case UTF8BOM:
		return "utf-8-bom"
	case UTF16LE:
		return "utf-16le"
	case UTF16BE:
		return "utf-16be"
	default:
		return "utf-8"
	}
}

func (e Encoding) codec() encoding.Encoding {
	switch e {
	case UTF8BOM:
		return unicode.UTF8BOM
	case UTF16LE:
		return unicode.UTF16(unicode.LittleEndian, unicode.UseBOM)
	case UTF16BE:
		return unicode.UTF16(unicode.BigEndian, unicode.UseBOM)
	default:
		return unicode.UTF8
	}
}

// File is a text file split into lines.
type File struct {
	// Path is the file location as given to Read.
	Path string
	// Lines are the decoded lines without terminators.
	Lines []string
	// Encoding is the on-disk encoding detected from the byte order mark.
	Encoding Encoding
	// Raw is the file content as read from disk.
	Raw []byte
}

// Read loads and decodes a text file.
func Read(path string) (*File, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	enc := Detect(raw)
	text, err := Decode(raw, enc)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	return &File{
		Path:     path,
		Lines:    textutil.SplitLines(text),
		Encoding: enc,
		Raw:      raw,
	}, nil
}

// Detect picks the encoding from a leading byte order mark, defaulting to UTF-8.
func Detect(raw []byte) Encoding {
	switch {
	case bytes.HasPrefix(raw, bomUTF8):
		return UTF8BOM
	case bytes.HasPrefix(raw, bomUTF16LE):
		return UTF16LE
	case bytes.HasPrefix(raw, bomUTF16BE):
		return UTF16BE
	default:
		return UTF8
	}
}

// Decode converts raw file content to text, dropping any byte order mark.
func Decode(raw []byte, enc Encoding) (string, error) {
	switch enc {
	case UTF8:
		if !utf8.Valid(raw) {
			return "", ErrInvalidUTF8
		}
		return string(raw), nil
	case UTF8BOM:
		if !utf8.Valid(raw[len(bomUTF8):]) {
			return "", ErrInvalidUTF8
		}
	}

	out, err := enc.codec().NewDecoder().Bytes(raw)
	if err != nil {
		return "", fmt.Errorf("decode %s: %w", enc, err)
	}
	return string(out), nil
}

// Encode converts text to enc, writing a byte order mark where the encoding
// has one. Empty text always encodes to zero bytes.
func Encode(text string, enc Encoding) ([]byte, error) {
	if text == "" {
		return nil, nil
	}
	if enc == UTF8 {
		return []byte(text), nil
	}

	out, err := enc.codec().NewEncoder().Bytes([]byte(text))
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", enc, err)
	}
	return out, nil
}

// Marshal joins lines with "\n", terminates a non-empty body with a newline and
// encodes the result.
func Marshal(lines []string, enc Encoding) ([]byte, error) {
	return Encode(textutil.JoinLines(lines), enc)
}

// Write replaces the file at path with data through a temporary file in the
// same directory, so readers never see a partial file. An existing file keeps
// its permissions. A symlink is resolved first so the link stays in place and
// its target is replaced.
func Write(path string, data []byte) error {
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		path = resolved
	}
	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}
