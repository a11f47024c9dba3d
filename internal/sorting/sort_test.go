package sorting

import (
	"context"
	"errors"
	"math/rand"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"imgmanage/internal/procexec"
)

func fakeSorter(facts map[string]FileFacts) *Sorter {
	s := New(nil)
	s.Stat = func(p string) (FileFacts, error) {
		f, ok := facts[p]
		if !ok {
			return FileFacts{}, errors.New("missing")
		}
		return f, nil
	}
	s.Rand = rand.New(rand.NewSource(1))
	return s
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode("")
	require.NoError(t, err)
	assert.Equal(t, Name, m)

	m, err = ParseMode("RSIZE")
	require.NoError(t, err)
	assert.Equal(t, RSize, m)

	_, err = ParseMode("colour")
	assert.Error(t, err)
}

func TestSort(t *testing.T) {
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	facts := map[string]FileFacts{
		"b.png": {Size: 30, ModTime: t0.Add(time.Hour)},
		"a.png": {Size: 20, ModTime: t0.Add(2 * time.Hour)},
		"c.png": {Size: 10, ModTime: t0},
	}
	in := []string{"b.png", "a.png", "c.png"}

	tests := []struct {
		mode    Mode
		reverse bool
		want    []string
	}{
		{None, false, []string{"b.png", "a.png", "c.png"}},
		{None, true, []string{"c.png", "a.png", "b.png"}},
		{Name, false, []string{"a.png", "b.png", "c.png"}},
		{RName, false, []string{"c.png", "b.png", "a.png"}},
		{RName, true, []string{"a.png", "b.png", "c.png"}},
		{Time, false, []string{"c.png", "b.png", "a.png"}},
		{RTime, false, []string{"a.png", "b.png", "c.png"}},
		{Size, false, []string{"c.png", "a.png", "b.png"}},
		{RSize, false, []string{"b.png", "a.png", "c.png"}},
		{Size, true, []string{"b.png", "a.png", "c.png"}},
	}
	for _, tt := range tests {
		got, err := fakeSorter(facts).Sort(in, tt.mode, tt.reverse)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "%s reverse=%v", tt.mode, tt.reverse)
	}
	assert.Equal(t, []string{"b.png", "a.png", "c.png"}, in, "input untouched")
}

func TestSortRandIsPermutation(t *testing.T) {
	in := []string{"1", "2", "3", "4", "5", "6"}
	got, err := fakeSorter(nil).Sort(in, Rand, false)
	require.NoError(t, err)
	assert.ElementsMatch(t, in, got)
}

func TestSortUnknownFactsSortFirst(t *testing.T) {
	facts := map[string]FileFacts{"big": {Size: 100}}
	got, err := fakeSorter(facts).Sort([]string{"big", "gone"}, Size, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"gone", "big"}, got)
}

func TestSortInvalidMode(t *testing.T) {
	_, err := fakeSorter(nil).Sort([]string{"a"}, Mode("bogus"), false)
	assert.Error(t, err)
}

func TestVia(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	r := procexec.NewRunner(nil)
	in := []string{"a", "b", "c"}

	got, err := Via(context.Background(), r, "sort -r", in, false, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "b", "a"}, got)

	got, err = Via(context.Background(), r, "echo zzz; echo b", in, false, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a", "c"}, got, "unknown dropped, omitted appended")

	got, err = Via(context.Background(), r, "cat", in, true, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "b", "a"}, got)

	_, err = Via(context.Background(), r, "exit 2", in, false, nil)
	var ee *procexec.ExitError
	assert.ErrorAs(t, err, &ee)
}
