package config

import (
	"fmt"
	"strings"
)

// pairSep joins the two operands of a pair flag after JoinPairArgs.
const pairSep = "\x1f"

// Pair is one occurrence of a two-operand flag such as --bind KEY CMD.
type Pair struct {
	First, Second string
}

// PairValue is a repeatable pflag.Value holding pairs.
type PairValue struct {
	typ   string
	pairs []Pair
}

// NewPairValue creates an empty pair flag value. typ names the operands
// in help output, e.g. "KEY CMD".
func NewPairValue(typ string) *PairValue {
	return &PairValue{typ: typ}
}

// Set implements pflag.Value.
func (p *PairValue) Set(s string) error {
	first, second, ok := strings.Cut(s, pairSep)
	if !ok {
		return fmt.Errorf("expected two arguments (%s)", p.typ)
	}
	p.pairs = append(p.pairs, Pair{First: first, Second: second})
	return nil
}

// Type implements pflag.Value.
func (p *PairValue) Type() string { return p.typ }

// String implements pflag.Value.
func (p *PairValue) String() string {
	parts := make([]string, len(p.pairs))
	for i, pr := range p.pairs {
		parts[i] = pr.First + " " + pr.Second
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// Pairs returns the collected pairs in command-line order.
func (p *PairValue) Pairs() []Pair {
	return append([]Pair(nil), p.pairs...)
}

// JoinPairArgs rewrites "--name A B" into a single "--name=A<sep>B"
// argument for each listed flag so pflag sees one value. Arguments after
// "--" are left alone.
func JoinPairArgs(args []string, names ...string) []string {
	want := make(map[string]bool, len(names))
	for _, n := range names {
		want["--"+n] = true
	}
	out := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		a := args[i]
		if a == "--" {
			out = append(out, args[i:]...)
			break
		}
		if want[a] && i+2 < len(args) {
			out = append(out, a+"="+args[i+1]+pairSep+args[i+2])
			i += 2
			continue
		}
		out = append(out, a)
	}
	return out
}
