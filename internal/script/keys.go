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
	"fmt"
	"strconv"
)

// KeyParser converts a script argument into a tree key.
type KeyParser[T any] func(string) (T, error)

// IntKeys parses base-10 integers.
func IntKeys(s string) (int, error) {
	k, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid integer key %q", s)
	}
	return k, nil
}

// StringKeys uses the argument verbatim.
func StringKeys(s string) (string, error) {
	return s, nil
}
