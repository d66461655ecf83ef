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
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gorse-io/gorse-knn/config"
	"github.com/juju/errors"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
)

const ratingsCSV = `Users,Movie1,Movie2,Movie3,Movie4
User1,5,3,0,1
User2,4,0,0,1
User3,1,1,0,5
User4,1,0,0,4
User5,0,1,5,4
`

func writeRatings(t *testing.T) string {
	path := filepath.Join(t.TempDir(), "ratings.csv")
	assert.NoError(t, os.WriteFile(path, []byte(ratingsCSV), 0644))
	return path
}

func TestRun(t *testing.T) {
	conf := config.GetDefaultConfig()
	conf.Data.Path = writeRatings(t)
	var out bytes.Buffer
	err := run(context.Background(), conf, &flagInput{userIndex: 0, n: 2}, &out)
	assert.NoError(t, err)
	assert.Equal(t, `Predicted ratings for unrated movies for User 1:
Movie 3: 2.91

Top 2 recommendations for User 1:
Movie 1 (Predicted Rating: 4.37)
Movie 2 (Predicted Rating: 3.51)

Performance Report:
Root Mean Square Error (RMSE): 0.9265
Mean Absolute Error (MAE): 0.7179
`, out.String())
}

func TestRunConsole(t *testing.T) {
	conf := config.GetDefaultConfig()
	conf.Data.Path = writeRatings(t)
	conf.Recommend.ExcludeRated = true
	conf.Recommend.Jobs = 2
	var out bytes.Buffer
	err := run(context.Background(), conf, newConsoleInput(strings.NewReader("1\n3\n"), &out), &out)
	assert.NoError(t, err)
	assert.Contains(t, out.String(), "Enter the user index (1-based): Enter the number of top recommendations: ")
	// only movie 3 is unrated
	assert.Contains(t, out.String(), "Top 3 recommendations for User 1:\nMovie 3 (Predicted Rating: 2.91)\n\nPerformance Report:")
	assert.Contains(t, out.String(), "Root Mean Square Error (RMSE): 0.9265")
}

func TestRunInvalidIndex(t *testing.T) {
	conf := config.GetDefaultConfig()
	conf.Data.Path = writeRatings(t)
	for _, userIndex := range []int{-1, 5} {
		var out bytes.Buffer
		err := run(context.Background(), conf, &flagInput{userIndex: userIndex, n: 2}, &out)
		assert.True(t, errors.Is(err, errors.NotValid))
		assert.Empty(t, out.String())
	}
}

func TestRunLoadFailure(t *testing.T) {
	conf := config.GetDefaultConfig()
	conf.Data.Path = filepath.Join(t.TempDir(), "missing.csv")
	err := run(context.Background(), conf, &flagInput{n: 2}, &bytes.Buffer{})
	assert.True(t, errors.Is(err, errors.NotFound))

	conf.Data.Path = filepath.Join(t.TempDir(), "broken.csv")
	assert.NoError(t, os.WriteFile(conf.Data.Path, []byte("id,a\nu1,five\n"), 0644))
	err = run(context.Background(), conf, &flagInput{n: 2}, &bytes.Buffer{})
	assert.True(t, errors.Is(err, errors.NotValid))
}

func TestLoadConfigFlags(t *testing.T) {
	flagSet := pflag.NewFlagSet("test", pflag.ContinueOnError)
	addFlags(flagSet)
	assert.NoError(t, flagSet.Parse([]string{
		"--data", "movies.csv",
		"--n", "3",
		"--similarity", "masked_cosine",
		"--jobs", "4",
		"--exclude-rated",
		"--format", "table",
		"--progress",
	}))
	conf, err := loadConfig(flagSet)
	assert.NoError(t, err)
	assert.Equal(t, "movies.csv", conf.Data.Path)
	assert.Equal(t, 3, conf.Recommend.N)
	assert.Equal(t, "masked_cosine", conf.Neighbors.Similarity)
	assert.Equal(t, 4, conf.Recommend.Jobs)
	assert.True(t, conf.Recommend.ExcludeRated)
	assert.Equal(t, "table", conf.Report.Format)
	assert.True(t, conf.Report.Progress)

	// flags are validated like the config file
	flagSet = pflag.NewFlagSet("test", pflag.ContinueOnError)
	addFlags(flagSet)
	assert.NoError(t, flagSet.Parse([]string{"--similarity", "jaccard"}))
	_, err = loadConfig(flagSet)
	assert.True(t, errors.Is(err, errors.NotValid))
}

func TestNewInputProvider(t *testing.T) {
	conf := config.GetDefaultConfig()
	conf.Recommend.N = 4

	flagSet := pflag.NewFlagSet("test", pflag.ContinueOnError)
	addFlags(flagSet)
	assert.NoError(t, flagSet.Parse([]string{"--user", "2"}))
	assert.Equal(t, &flagInput{userIndex: 1, n: 4}, newInputProvider(flagSet, conf, strings.NewReader(""), io.Discard))

	// --n without --user prompts for the user only
	flagSet = pflag.NewFlagSet("test", pflag.ContinueOnError)
	addFlags(flagSet)
	assert.NoError(t, flagSet.Parse([]string{"--n", "4"}))
	var out bytes.Buffer
	input := newInputProvider(flagSet, conf, strings.NewReader("5\n"), &out)
	userIndex, err := input.UserIndex()
	assert.NoError(t, err)
	assert.Equal(t, 4, userIndex)
	n, err := input.TopN()
	assert.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.Equal(t, "Enter the user index (1-based): ", out.String())
}

func TestRootCommandTopNFlag(t *testing.T) {
	var out bytes.Buffer
	rootCommand.SetArgs([]string{"--data", writeRatings(t), "--n", "1"})
	rootCommand.SetIn(strings.NewReader("1\n3\n"))
	rootCommand.SetOut(&out)
	defer func() {
		rootCommand.SetArgs(nil)
		rootCommand.SetIn(nil)
		rootCommand.SetOut(nil)
	}()
	assert.NoError(t, rootCommand.Execute())
	assert.NotContains(t, out.String(), "Enter the number of top recommendations")
	assert.Contains(t, out.String(), "Enter the user index (1-based): ")
	assert.Contains(t, out.String(), "Top 1 recommendations for User 1:\nMovie 1 (Predicted Rating: 4.37)\n\nPerformance Report:")
}
