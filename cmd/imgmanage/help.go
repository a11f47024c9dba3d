package main

import (
	"fmt"
	"io"
	"maps"
	"slices"

	"imgmanage/internal/manager"
	"imgmanage/internal/sorting"
)

const helpBasic = `
--width and --height accept a pixel count or a percentage of the screen
(see --screen); 100% is the default. Nothing imgmanage does changes a file:
renames, deletions, labels and marks are printed as an action log when the
window closes.
`

const helpTextFrom = `
--add-text-from PROG runs PROG through "sh -c" each time the image changes,
with the image path written to its standard input. Every line PROG prints
is drawn over the image, below the --add-text lines if both are given.
Press t to hide or show the text.
`

const helpWrite = `
The action log has one line per action, written to standard output and,
with -o PATH, to PATH (-a appends instead of truncating). The line format
given with -f has two slots, {} {} by default: the action, then the image
path. Slots may also be written {action} and {target}, or {0} and {1}.
Escapes \n and \t are understood and {{ }} are literal braces. --csv writes
CSV records instead.

--write1 PATH and --write2 PATH append the current image path to PATH when
mark key 1 or 2 is pressed, in addition to the mark itself.
`

const helpKeysTrailer = `
--bind KEY CMD binds KEY to run CMD through "sh -c" with the image path as
$1; its output goes to the status bar. Keymap files (--keymap PATH) list
more bindings in YAML:

  bindings:
    - key: Ctrl+e
      command: exiftool "$1"
    - key: n
      action: next-image
    - key: x
      action: mark
      args: [7]

Binding a key that is already bound adds to it; every action on a key
runs, in the order bound.
`

var sortHelp = map[sorting.Mode]string{
	sorting.None:  "keep the order the images were given in",
	sorting.Rand:  "random order",
	sorting.Name:  "by path (default)",
	sorting.RName: "by path, descending",
	sorting.Time:  "by modification time, oldest first",
	sorting.RTime: "by modification time, newest first",
	sorting.Size:  "by file size, smallest first",
	sorting.RSize: "by file size, largest first",
}

func writeSortHelp(w io.Writer) {
	fmt.Fprintln(w, "\n-s, --sort KEY orders the images. KEY is one of:")
	for _, m := range sorting.Modes {
		fmt.Fprintf(w, "  %-6s %s\n", m, sortHelp[m])
	}
	fmt.Fprint(w, `-r reverses the chosen order. -S, --sort-via PROG writes the image paths to
PROG, one per line, and uses the order of the lines it prints; paths it
leaves out are kept at the end.
`)
}

func writeKeysHelp(w io.Writer) {
	fmt.Fprintln(w, "\nKeys:")
	for _, line := range manager.DefaultKeyHelp() {
		fmt.Fprintln(w, "  "+line)
	}
	names := manager.ActionNames()
	fmt.Fprintln(w, "\nActions for --keymap files:")
	for _, k := range slices.Sorted(maps.Keys(names)) {
		fmt.Fprintf(w, "  %-12s %s\n", k, names[k])
	}
	fmt.Fprint(w, helpKeysTrailer)
}

type helpFlags struct {
	all, textFrom, write, sort, keys bool
}

func (h helpFlags) any() bool {
	return h.all || h.textFrom || h.write || h.sort || h.keys
}

// writeHelp prints usage plus the requested help blocks.
func writeHelp(w io.Writer, usage string, h helpFlags) {
	fmt.Fprint(w, usage)
	if h.all {
		fmt.Fprint(w, helpBasic)
	}
	if h.all || h.textFrom {
		fmt.Fprint(w, helpTextFrom)
	}
	if h.all || h.write {
		fmt.Fprint(w, helpWrite)
	}
	if h.all || h.sort {
		writeSortHelp(w)
	}
	if h.all || h.keys {
		writeKeysHelp(w)
	}
}
