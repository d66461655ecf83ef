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
	"github.com/juju/errors"
	"github.com/samber/lo"
)

// RatingsMatrix is a dense user-item ratings matrix. Rows are users and columns are
// items. Non-positive values mark unrated items.
type RatingsMatrix [][]float64

// CountUsers returns the number of rows.
func (m RatingsMatrix) CountUsers() int {
	return len(m)
}

// CountItems returns the number of columns.
func (m RatingsMatrix) CountItems() int {
	if len(m) == 0 {
		return 0
	}
	return len(m[0])
}

// IsRated reports whether the user has an observed rating for the item.
func (m RatingsMatrix) IsRated(userIndex, itemIndex int) bool {
	return m[userIndex][itemIndex] > 0
}

// CountRatings returns the number of observed ratings.
func (m RatingsMatrix) CountRatings() int {
	count := 0
	for _, row := range m {
		count += lo.CountBy(row, func(v float64) bool { return v > 0 })
	}
	return count
}

// Validate checks that the matrix is non-empty and rectangular.
func (m RatingsMatrix) Validate() error {
	if len(m) == 0 {
		return errors.NotValidf("empty ratings matrix")
	}
	if len(m[0]) == 0 {
		return errors.NotValidf("ratings matrix without items")
	}
	for i, row := range m {
		if len(row) != len(m[0]) {
			return errors.NotValidf("row %d with %d items (expected %d)", i, len(row), len(m[0]))
		}
	}
	return nil
}

// Clone returns a deep copy of the matrix.
func (m RatingsMatrix) Clone() RatingsMatrix {
	return lo.Map(m, func(row []float64, _ int) []float64 {
		return append([]float64(nil), row...)
	})
}
