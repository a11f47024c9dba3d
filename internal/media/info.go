package media

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"time"

	"github.com/rwcarlsen/goexif/exif"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"imgmanage/internal/logging"
	"imgmanage/internal/metacache"
)

// exifFields are the tags shown in the info overlay.
var exifFields = []exif.FieldName{
	exif.DateTime, exif.Model, exif.Make, exif.ExposureTime, exif.FNumber,
	exif.ISOSpeedRatings, exif.FocalLength,
}

// Info holds metadata about an image file.
type Info struct {
	Path    string
	Type    Type
	Width   int
	Height  int
	Size    int64
	ModTime time.Time
	EXIF    map[string]string
}

// Cache is the subset of the metadata cache the service uses.
type Cache interface {
	Lookup(path string, size int64, modTime time.Time) (metacache.Entry, bool)
	Store(path string, e metacache.Entry) error
}

// Service loads images and their metadata.
type Service struct {
	cache Cache
	log   *logging.Logger
}

// NewService creates a service. cache may be nil.
func NewService(cache Cache, log *logging.Logger) *Service {
	if log == nil {
		log = logging.Nop()
	}
	return &Service{cache: cache, log: log}
}

// EXIF extracts the overlay's EXIF fields. Files without EXIF data give
// an empty map.
func EXIF(r io.Reader) map[string]string {
	result := make(map[string]string)
	x, err := exif.Decode(r)
	if err != nil {
		return result
	}
	for _, field := range exifFields {
		tag, err := x.Get(field)
		if err == nil && tag != nil {
			result[string(field)] = tag.String()
		}
	}
	return result
}

// Stat returns the cheap facts for path: size, time, type and pixel
// dimensions, consulting the cache first.
func (s *Service) Stat(path string) (*Info, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat image file: %w", err)
	}
	info := &Info{Path: path, Size: fi.Size(), ModTime: fi.ModTime()}

	if s.cache != nil {
		if e, ok := s.cache.Lookup(path, info.Size, info.ModTime); ok {
			info.Width, info.Height = e.Width, e.Height
			info.Type = typeOf(e.Mime)
			return info, nil
		}
	}

	t, err := Classify(path)
	if err != nil {
		return nil, err
	}
	info.Type = t
	if t.Kind == KindImage {
		if w, h, err := dimensions(path); err != nil {
			s.log.Debug("cannot read image header", "path", path, "error", err)
		} else {
			info.Width, info.Height = w, h
		}
	}

	if s.cache != nil {
		e := metacache.Entry{
			Size: info.Size, ModTime: info.ModTime,
			Width: info.Width, Height: info.Height, Mime: t.Mime,
		}
		if err := s.cache.Store(path, e); err != nil {
			s.log.Warn("cannot update metadata cache", "path", path, "error", err)
		}
	}
	return info, nil
}

// Info is Stat plus EXIF fields.
func (s *Service) Info(path string) (*Info, error) {
	info, err := s.Stat(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image for info: %w", err)
	}
	defer f.Close()
	info.EXIF = EXIF(f)
	return info, nil
}

// Load decodes the image at path.
func (s *Service) Load(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()
	img, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", path, err)
	}
	s.log.Trace("decoded image", "path", path, "format", format)
	return img, nil
}

func dimensions(path string) (int, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, err
	}
	defer f.Close()
	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0, err
	}
	return cfg.Width, cfg.Height, nil
}
