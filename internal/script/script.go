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

// Package script parses and replays operation scripts against an AVL tree.
//
// A script holds one operation per line:
//
//	# build the tree
//	insert 10 20 30 40 50 25
//	print
//	contains 25 99
//	remove 30
//	print
//
// Fields are split with shell quoting rules, so string keys may contain
// spaces when quoted. Blank lines and lines starting with # are ignored.
package script

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-shellwords"
)

type Verb string

const (
	VerbInsert   Verb = "insert"
	VerbRemove   Verb = "remove"
	VerbContains Verb = "contains"
	VerbPrint    Verb = "print"
	VerbLen      Verb = "len"
	VerbHeight   Verb = "height"
	VerbCheck    Verb = "check"
	VerbClear    Verb = "clear"
)

// takesKeys reports whether the verb needs at least one key argument.
// Verbs missing from the map are unknown.
var takesKeys = map[Verb]bool{
	VerbInsert:   true,
	VerbRemove:   true,
	VerbContains: true,
	VerbPrint:    false,
	VerbLen:      false,
	VerbHeight:   false,
	VerbCheck:    false,
	VerbClear:    false,
}

// Op is a single parsed script line.
type Op struct {
	Line int
	Verb Verb
	Args []string
}

// ParseError reports a malformed script line.
type ParseError struct {
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}

// Parse reads a whole script.
func Parse(r io.Reader) ([]Op, error) {
	var ops []Op

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields, err := shellwords.Parse(line)
		if err != nil {
			return nil, &ParseError{Line: lineNo, Msg: err.Error()}
		}
		if len(fields) == 0 {
			continue
		}

		verb := Verb(strings.ToLower(fields[0]))
		args := fields[1:]
		needsKeys, known := takesKeys[verb]
		switch {
		case !known:
			return nil, &ParseError{Line: lineNo, Msg: fmt.Sprintf("unknown operation %q", fields[0])}
		case needsKeys && len(args) == 0:
			return nil, &ParseError{Line: lineNo, Msg: fmt.Sprintf("%s needs at least one key", verb)}
		case !needsKeys && len(args) > 0:
			return nil, &ParseError{Line: lineNo, Msg: fmt.Sprintf("%s takes no arguments", verb)}
		}

		ops = append(ops, Op{Line: lineNo, Verb: verb, Args: args})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read script: %w", err)
	}

	return ops, nil
}
