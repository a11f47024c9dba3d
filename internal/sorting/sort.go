// Package sorting orders the gathered image list before display.
package sorting

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"slices"
	"strings"
	"time"

	"imgmanage/internal/logging"
	"imgmanage/internal/procexec"
)

// Mode selects how images are ordered.
type Mode string

// Sort modes. The "r" prefix reverses the base order.
const (
	None  Mode = "none"
	Rand  Mode = "rand"
	Name  Mode = "name"
	RName Mode = "rname"
	Time  Mode = "time"  // oldest first
	RTime Mode = "rtime" // newest first
	Size  Mode = "size"  // smallest first
	RSize Mode = "rsize" // largest first
)

// Default is used when no mode is given.
const Default = Name

// Modes lists every mode in help order.
var Modes = []Mode{None, Rand, Name, RName, Time, RTime, Size, RSize}

// ParseMode validates a mode name.
func ParseMode(s string) (Mode, error) {
	if s == "" {
		return Default, nil
	}
	m := Mode(strings.ToLower(s))
	if slices.Contains(Modes, m) {
		return m, nil
	}
	names := make([]string, len(Modes))
	for i, m := range Modes {
		names[i] = string(m)
	}
	return "", fmt.Errorf("invalid sort mode %q; choose from %s", s, strings.Join(names, ", "))
}

// FileFacts is what time and size sorting need to know about a path.
type FileFacts struct {
	Size    int64
	ModTime time.Time
}

// StatFunc looks up facts for a path.
type StatFunc func(path string) (FileFacts, error)

// OSStat reads facts straight from the filesystem.
func OSStat(path string) (FileFacts, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return FileFacts{}, err
	}
	return FileFacts{Size: fi.Size(), ModTime: fi.ModTime()}, nil
}

// Sorter orders image paths.
type Sorter struct {
	Stat StatFunc
	Rand *rand.Rand
	log  *logging.Logger
}

// New returns a sorter using os.Stat and a time-seeded shuffle.
func New(log *logging.Logger) *Sorter {
	if log == nil {
		log = logging.Nop()
	}
	return &Sorter{
		Stat: OSStat,
		Rand: rand.New(rand.NewSource(time.Now().UnixNano())),
		log:  log,
	}
}

// Sort returns a new slice ordered by mode. reverse flips the result.
// Paths whose facts cannot be read sort as zero-sized and zero-time.
func (s *Sorter) Sort(paths []string, mode Mode, reverse bool) ([]string, error) {
	out := slices.Clone(paths)
	base, descending := mode, false
	if strings.HasPrefix(string(mode), "r") && mode != Rand {
		base, descending = Mode(strings.TrimPrefix(string(mode), "r")), true
	}

	switch base {
	case None:
	case Rand:
		s.Rand.Shuffle(len(out), func(i, j int) {
			out[i], out[j] = out[j], out[i]
		})
	case Name:
		slices.Sort(out)
	case Time, Size:
		facts := s.facts(out)
		slices.SortStableFunc(out, func(a, b string) int {
			fa, fb := facts[a], facts[b]
			if base == Size {
				return cmpInt64(fa.Size, fb.Size)
			}
			return fa.ModTime.Compare(fb.ModTime)
		})
	default:
		return nil, fmt.Errorf("invalid sort mode %q", mode)
	}

	if descending != reverse {
		slices.Reverse(out)
	}
	s.log.Debug("sorted images", "mode", string(mode), "reverse", reverse, "count", len(out))
	return out, nil
}

func (s *Sorter) facts(paths []string) map[string]FileFacts {
	m := make(map[string]FileFacts, len(paths))
	for _, p := range paths {
		if _, ok := m[p]; ok {
			continue
		}
		f, err := s.Stat(p)
		if err != nil {
			s.log.Warn("cannot stat for sorting", "path", p, "error", err)
		}
		m[p] = f
	}
	return m
}

func cmpInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// Via pipes paths to an external program, one per line, and takes its
// output as the new order. Output lines that were not gathered are
// dropped; gathered paths the program omitted are appended in their
// original order.
func Via(ctx context.Context, runner *procexec.Runner, prog string, paths []string, reverse bool, log *logging.Logger) ([]string, error) {
	if log == nil {
		log = logging.Nop()
	}
	lines, err := runner.Pipe(ctx, prog, paths)
	if err != nil {
		return nil, fmt.Errorf("sort via %q: %w", prog, err)
	}

	known := make(map[string]int, len(paths))
	for _, p := range paths {
		known[p]++
	}
	out := make([]string, 0, len(paths))
	for _, line := range lines {
		if known[line] == 0 {
			log.Warn("sort program returned unknown path; dropping", "path", line)
			continue
		}
		known[line]--
		out = append(out, line)
	}
	for _, p := range paths {
		if known[p] > 0 {
			log.Warn("sort program omitted path; appending", "path", p)
			known[p]--
			out = append(out, p)
		}
	}
	if reverse {
		slices.Reverse(out)
	}
	return out, nil
}
