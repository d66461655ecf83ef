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

package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/juju/errors"
)

// InputProvider supplies the query of a run.
type InputProvider interface {
	// UserIndex returns the 0-based index of the target user. The range is checked by
	// the caller.
	UserIndex() (int, error)
	// TopN returns the number of recommendations.
	TopN() (int, error)
}

// flagInput serves values given on the command line.
type flagInput struct {
	userIndex int
	n         int
}

func (f *flagInput) UserIndex() (int, error) {
	return f.userIndex, nil
}

func (f *flagInput) TopN() (int, error) {
	if f.n < 0 {
		return 0, errors.NotValidf("number of recommendations %d", f.n)
	}
	return f.n, nil
}

// consoleInput prompts on writer and reads answers line by line from reader. The
// number of recommendations is only asked for if it was not given up front.
type consoleInput struct {
	reader *bufio.Reader
	writer io.Writer
	n      *int
}

func newConsoleInput(r io.Reader, w io.Writer) *consoleInput {
	return &consoleInput{reader: bufio.NewReader(r), writer: w}
}

// withTopN fixes the number of recommendations so that TopN does not prompt.
func (c *consoleInput) withTopN(n int) *consoleInput {
	c.n = &n
	return c
}

func (c *consoleInput) UserIndex() (int, error) {
	v, err := c.readInt("Enter the user index (1-based): ")
	if err != nil {
		return 0, errors.Trace(err)
	}
	return v - 1, nil
}

func (c *consoleInput) TopN() (int, error) {
	var n int
	if c.n != nil {
		n = *c.n
	} else {
		var err error
		if n, err = c.readInt("Enter the number of top recommendations: "); err != nil {
			return 0, errors.Trace(err)
		}
	}
	if n < 0 {
		return 0, errors.NotValidf("number of recommendations %d", n)
	}
	return n, nil
}

func (c *consoleInput) readInt(prompt string) (int, error) {
	if _, err := fmt.Fprint(c.writer, prompt); err != nil {
		return 0, errors.Trace(err)
	}
	line, err := c.reader.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || line == "") {
		return 0, errors.Trace(err)
	}
	v, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil {
		return 0, errors.NewNotValid(err, "input "+strconv.Quote(strings.TrimSpace(line)))
	}
	return v, nil
}
