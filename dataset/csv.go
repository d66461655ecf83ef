// Copyright 2026 gorse Project Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package dataset

import (
	"bufio"
	"strings"

	"github.com/juju/errors"
)

// readLines parses fields of each line of a csv stream. Quoted fields may contain the
// separator and line breaks, and "" escapes a quote inside a quoted field. handler is
// called with the zero-based number of the first physical line of each record and stops
// the scan when it returns false.
func readLines(sc *bufio.Scanner, sep rune, handler func(int, []string) bool) error {
	lineCount := 0               // line number of current position
	recordStart := 0             // line number where the current record starts
	fields := make([]string, 0)  // fields for current line
	builder := strings.Builder{} // string builder for current field
	quoted := false              // whether current position in quote
	for sc.Scan() {
		line := []rune(sc.Text())
		// start of line
		if quoted {
			builder.WriteString("\r\n")
		} else {
			recordStart = lineCount
		}
		// parse line
		for i := 0; i < len(line); i++ {
			if line[i] == sep && !quoted {
				// end of field
				fields = append(fields, builder.String())
				builder.Reset()
			} else if line[i] == '"' {
				if quoted {
					if i+1 >= len(line) || line[i+1] != '"' {
						// end of quoted
						quoted = false
					} else {
						i++
						builder.WriteRune('"')
					}
				} else {
					// start of quoted
					quoted = true
				}
			} else {
				builder.WriteRune(line[i])
			}
		}
		// end of line
		if !quoted {
			fields = append(fields, builder.String())
			builder.Reset()
			if !handler(recordStart, fields) {
				return nil
			}
			fields = []string{}
		}
		lineCount++
	}
	if err := sc.Err(); err != nil {
		return errors.Trace(err)
	}
	if quoted {
		return errors.NotValidf("unterminated quoted field starting at line %d", recordStart+1)
	}
	return nil
}
