// Copyright 2025 Naren Yellavula
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package script

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cybrota/avltree"
)

func TestParse(t *testing.T) {
	ops, err := Parse(strings.NewReader(`
# comment
insert 1 2 3

  PRINT
remove "two words" 'x'
check
`))
	require.NoError(t, err)
	assert.Equal(t, []Op{
		{Line: 3, Verb: VerbInsert, Args: []string{"1", "2", "3"}},
		{Line: 5, Verb: VerbPrint, Args: []string{}},
		{Line: 6, Verb: VerbRemove, Args: []string{"two words", "x"}},
		{Line: 7, Verb: VerbCheck, Args: []string{}},
	}, ops)
}

func TestParseErrors(t *testing.T) {
	testCases := []struct {
		Name   string
		Script string
		Line   int
	}{
		{Name: "unknown verb", Script: "insert 1\nfrobnicate 2\n", Line: 2},
		{Name: "missing keys", Script: "remove\n", Line: 1},
		{Name: "extra args", Script: "\n\nprint 3\n", Line: 3},
		{Name: "unbalanced quote", Script: "insert \"abc\n", Line: 1},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tc.Script))
			var perr *ParseError
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, tc.Line, perr.Line)
		})
	}
}

func TestRunDemoScript(t *testing.T) {
	f, err := os.Open(filepath.Join("testdata", "demo.avl"))
	require.NoError(t, err)
	defer f.Close()

	ops, err := Parse(f)
	require.NoError(t, err)

	var out bytes.Buffer
	runner := NewRunner(avltree.New[int](), IntKeys, &out)
	runner.Validate = true

	stats, err := runner.Run(context.Background(), ops)
	require.NoError(t, err)

	want := `insert 10: added
insert 20: added
insert 30: added
insert 40: added
insert 50: added
insert 25: added
10 20 25 30 40 50
contains 25: true
contains 99: false
remove 30: removed
10 20 25 40 50
remove 999: missing
10 20 25 40 50
ok
`
	assert.Equal(t, want, out.String())
	assert.Equal(t, Stats{Ops: 8, Added: 6, Removed: 1, Missing: 1, Hits: 1, Misses: 1}, stats)
}

func TestRunStringKeys(t *testing.T) {
	ops, err := Parse(strings.NewReader("insert pear 'green apple' pear\nlen\nclear\nlen\nheight\n"))
	require.NoError(t, err)

	var out bytes.Buffer
	tree := avltree.New[string]()
	stats, err := NewRunner(tree, StringKeys, &out).Run(context.Background(), ops)
	require.NoError(t, err)

	assert.Equal(t, "insert pear: added\ninsert green apple: added\ninsert pear: duplicate\nlen 2\nlen 0\nheight 0\n", out.String())
	assert.Equal(t, 1, stats.Duplicates)
	assert.Equal(t, 0, tree.Len())
}

func TestRunBadKey(t *testing.T) {
	ops, err := Parse(strings.NewReader("insert 1\ninsert x\n"))
	require.NoError(t, err)

	tree := avltree.New[int]()
	stats, err := NewRunner(tree, IntKeys, &bytes.Buffer{}).Run(context.Background(), ops)
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, 2, perr.Line)
	assert.Equal(t, 1, stats.Ops)
	assert.Equal(t, []int{1}, tree.Keys())
}

func TestRunCancelled(t *testing.T) {
	ops, err := Parse(strings.NewReader("insert 1\n"))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = NewRunner(avltree.New[int](), IntKeys, &bytes.Buffer{}).Run(ctx, ops)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCacheReusesParsedScript(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ops.avl")
	require.NoError(t, os.WriteFile(path, []byte("insert 1\n"), 0644))

	c := NewCache(time.Minute)
	first, err := c.Load(path)
	require.NoError(t, err)
	second, err := c.Load(path)
	require.NoError(t, err)
	assert.Same(t, &first[0], &second[0])
	assert.Equal(t, 1, c.Len())

	// A rewritten file is parsed again.
	require.NoError(t, os.WriteFile(path, []byte("insert 1 2\nprint\n"), 0644))
	later := time.Now().Add(time.Second)
	require.NoError(t, os.Chtimes(path, later, later))

	third, err := c.Load(path)
	require.NoError(t, err)
	assert.Len(t, third, 2)
}

func TestCacheLoadErrors(t *testing.T) {
	c := NewCache(0)

	_, err := c.Load(filepath.Join(t.TempDir(), "missing.avl"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	path := filepath.Join(t.TempDir(), "bad.avl")
	require.NoError(t, os.WriteFile(path, []byte("explode\n"), 0644))
	_, err = c.Load(path)
	var perr *ParseError
	assert.ErrorAs(t, err, &perr)
	assert.Equal(t, 0, c.Len())
}
