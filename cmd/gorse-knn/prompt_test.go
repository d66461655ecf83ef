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
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/juju/errors"
	"github.com/stretchr/testify/assert"
)

func TestConsoleInput(t *testing.T) {
	var out bytes.Buffer
	input := newConsoleInput(strings.NewReader("2\n 3 \n"), &out)
	userIndex, err := input.UserIndex()
	assert.NoError(t, err)
	assert.Equal(t, 1, userIndex)
	n, err := input.TopN()
	assert.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, "Enter the user index (1-based): Enter the number of top recommendations: ", out.String())
}

func TestConsoleInputWithoutNewline(t *testing.T) {
	input := newConsoleInput(strings.NewReader("5"), io.Discard)
	userIndex, err := input.UserIndex()
	assert.NoError(t, err)
	assert.Equal(t, 4, userIndex)
	// nothing left to read
	_, err = input.TopN()
	assert.ErrorIs(t, err, io.EOF)
}

func TestConsoleInputInvalid(t *testing.T) {
	input := newConsoleInput(strings.NewReader("abc\n-1\n"), io.Discard)
	_, err := input.UserIndex()
	assert.True(t, errors.Is(err, errors.NotValid))
	_, err = input.TopN()
	assert.True(t, errors.Is(err, errors.NotValid))
}

func TestFlagInput(t *testing.T) {
	input := &flagInput{userIndex: 2, n: 5}
	userIndex, err := input.UserIndex()
	assert.NoError(t, err)
	assert.Equal(t, 2, userIndex)
	n, err := input.TopN()
	assert.NoError(t, err)
	assert.Equal(t, 5, n)
	_, err = (&flagInput{n: -1}).TopN()
	assert.True(t, errors.Is(err, errors.NotValid))
}

func TestConsoleInputWithTopN(t *testing.T) {
	var out bytes.Buffer
	input := newConsoleInput(strings.NewReader("3\n7\n"), &out).withTopN(1)
	userIndex, err := input.UserIndex()
	assert.NoError(t, err)
	assert.Equal(t, 2, userIndex)
	n, err := input.TopN()
	assert.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, "Enter the user index (1-based): ", out.String())

	_, err = newConsoleInput(strings.NewReader(""), io.Discard).withTopN(-2).TopN()
	assert.True(t, errors.Is(err, errors.NotValid))
}
