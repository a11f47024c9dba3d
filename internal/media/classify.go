// Package media identifies what a path holds and reads the facts shown
// in the info overlay.
package media

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// Unknown-media errors.
var (
	ErrUnknownMedia        = errors.New("unknown media type")
	ErrUnsupportedEncoding = errors.New("encoding not supported")
)

// Kind is the broad category of a file.
type Kind int

const (
	KindOther Kind = iota
	KindImage
	KindVideo
)

func (k Kind) String() string {
	switch k {
	case KindImage:
		return "image"
	case KindVideo:
		return "video"
	}
	return "other"
}

// Type is a detected media type.
type Type struct {
	Mime string
	Kind Kind
}

var encodingExts = map[string]string{
	".gz":  "gzip",
	".bz2": "bzip2",
	".xz":  "xz",
	".zst": "zstd",
	".br":  "br",
	".z":   "compress",
}

var encodingMimes = []string{
	"application/gzip",
	"application/x-bzip2",
	"application/x-xz",
	"application/zstd",
}

// Classify detects the type of path from its name and content. A
// compressed file yields ErrUnsupportedEncoding and an undetectable one
// ErrUnknownMedia.
func Classify(path string) (Type, error) {
	if enc, ok := encodingExts[strings.ToLower(filepath.Ext(path))]; ok {
		return Type{}, fmt.Errorf("%w: %s has encoding %s", ErrUnsupportedEncoding, path, enc)
	}

	m, err := mimetype.DetectFile(path)
	if err != nil {
		return Type{}, fmt.Errorf("%w: %s: %w", ErrUnknownMedia, path, err)
	}
	for _, enc := range encodingMimes {
		if m.Is(enc) {
			return Type{}, fmt.Errorf("%w: %s has encoding %s", ErrUnsupportedEncoding, path, enc)
		}
	}
	if m.Is("application/octet-stream") {
		return Type{}, fmt.Errorf("%w: %s", ErrUnknownMedia, path)
	}

	mime := m.String()
	if i := strings.IndexByte(mime, ';'); i >= 0 {
		mime = mime[:i]
	}
	return typeOf(mime), nil
}

func typeOf(mime string) Type {
	t := Type{Mime: mime}
	switch {
	case strings.HasPrefix(mime, "image/"):
		t.Kind = KindImage
	case strings.HasPrefix(mime, "video/"):
		t.Kind = KindVideo
	}
	return t
}
