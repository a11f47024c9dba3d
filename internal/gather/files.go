// Package gather expands command-line paths and listing files into a flat
// list of image paths.
package gather

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"imgmanage/internal/logging"
)

// ErrNotExist is returned for an input entry that does not exist.
var ErrNotExist = fs.ErrNotExist

// Unbounded disables the recursion depth limit.
const Unbounded = -1

// Gatherer walks entries. Depth 0 skips directories entirely, a positive
// depth lists directories that many levels down and Unbounded has no limit.
type Gatherer struct {
	Depth      int
	SoftErrors bool
	log        *logging.Logger
}

// New creates a gatherer.
func New(depth int, softErrors bool, log *logging.Logger) *Gatherer {
	if log == nil {
		log = logging.Nop()
	}
	return &Gatherer{Depth: depth, SoftErrors: softErrors, log: log}
}

// Files expands every entry in order and concatenates the results.
func (g *Gatherer) Files(entries []string) ([]string, error) {
	var out []string
	for _, entry := range entries {
		if err := g.filesOf(entry, 0, &out); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (g *Gatherer) filesOf(entry string, depth int, out *[]string) error {
	g.log.Trace("visit", "entry", entry, "depth", depth)
	fi, err := os.Stat(entry)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			if g.SoftErrors {
				g.log.Warn("cannot stat entry; skipping", "entry", entry, "error", err)
				return nil
			}
			return fmt.Errorf("stat %s: %w", entry, err)
		}
		g.log.Error("entry does not exist", nil, "entry", entry)
		if g.SoftErrors {
			return nil
		}
		return fmt.Errorf("%s: %w", entry, ErrNotExist)
	}

	if !fi.IsDir() {
		if !fi.Mode().IsRegular() {
			g.log.Warn("neither file nor directory; adding anyway", "entry", entry)
		}
		*out = append(*out, entry)
		return nil
	}

	switch {
	case g.Depth == Unbounded || depth+1 <= g.Depth:
	case g.Depth == 0:
		g.log.Info("skipping directory", "entry", entry)
		return nil
	default:
		g.log.Info("skipping directory; max depth reached", "entry", entry, "depth", depth)
		return nil
	}

	children, err := os.ReadDir(entry)
	if err != nil {
		if g.SoftErrors {
			g.log.Warn("cannot list directory; skipping", "entry", entry, "error", err)
			return nil
		}
		return fmt.Errorf("list %s: %w", entry, err)
	}
	for _, child := range children {
		p := filepath.Join(entry, child.Name())
		// Files found by listing a directory must look like images;
		// entries named explicitly are always kept.
		if !child.IsDir() && !IsImage(p) {
			g.log.Trace("not an image; skipping", "entry", p)
			continue
		}
		if err := g.filesOf(p, depth+1, out); err != nil {
			return err
		}
	}
	return nil
}

// ReadList reads a listing file: one entry per line, blank lines skipped.
func ReadList(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return lines, nil
}

// Images gathers positional image arguments plus every line of each
// listing file. recurse lifts the depth limit; otherwise directories
// named directly are listed one level deep.
func Images(images, listFiles []string, recurse, softErrors bool, log *logging.Logger) ([]string, error) {
	g := New(1, softErrors, log)
	if recurse {
		g.Depth = Unbounded
	}

	inputs := append([]string(nil), images...)
	for _, lf := range listFiles {
		lines, err := ReadList(lf)
		if err != nil {
			if !softErrors {
				return nil, fmt.Errorf("listing file: %w", err)
			}
			g.log.Error("error reading listing file", err, "path", lf)
			continue
		}
		inputs = append(inputs, lines...)
	}

	out, err := g.Files(inputs)
	if err != nil {
		return nil, err
	}
	g.log.Debug("scanned images", "count", len(out))
	for i, p := range out {
		g.log.Trace("image", "n", i+1, "of", len(out), "path", p)
	}
	return out, nil
}

// IsImage checks whether a path has an image extension.
func IsImage(p string) bool {
	switch strings.ToLower(filepath.Ext(p)) {
	case ".png", ".jpg", ".jpeg", ".gif", ".bmp", ".webp", ".tif", ".tiff", ".svg":
		return true
	default:
		return false
	}
}
