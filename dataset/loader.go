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
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gorse-io/gorse-knn/common/util"
	"github.com/juju/errors"
)

// LoadRatings loads a ratings matrix from a csv file. See ReadRatings for the format.
func LoadRatings(path string) (RatingsMatrix, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewNotFound(err, "ratings file "+path)
		}
		return nil, errors.Trace(err)
	}
	defer file.Close()
	ratings, err := ReadRatings(file)
	if err != nil {
		return nil, errors.Annotatef(err, "load %s", path)
	}
	return ratings, nil
}

// ReadRatings reads a ratings matrix from comma-separated text. The first line is a
// header and the first field of every other line is a user id; both are discarded.
// The remaining fields are the ratings of that user in item order. Blank lines are
// skipped. The result is validated to be non-empty and rectangular.
func ReadRatings(r io.Reader) (RatingsMatrix, error) {
	var (
		ratings  RatingsMatrix
		parseErr error
	)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	err := readLines(scanner, ',', func(lineNumber int, fields []string) bool {
		// skip header and blank lines
		if lineNumber == 0 || (len(fields) == 1 && strings.TrimSpace(fields[0]) == "") {
			return true
		}
		row := make([]float64, 0, len(fields)-1)
		for column, field := range fields[1:] {
			value, err := util.ParseFloat[float64](field)
			if err != nil {
				// line and column are reported 1-based, counting the user id column
				parseErr = errors.NewNotValid(err, fmt.Sprintf("rating at line %d, column %d", lineNumber+1, column+2))
				return false
			}
			row = append(row, value)
		}
		ratings = append(ratings, row)
		return true
	})
	if err != nil {
		return nil, errors.Trace(err)
	}
	if parseErr != nil {
		return nil, parseErr
	}
	if err = ratings.Validate(); err != nil {
		return nil, errors.Trace(err)
	}
	return ratings, nil
}
