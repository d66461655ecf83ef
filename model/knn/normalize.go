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

package knn

import (
	"github.com/samber/lo"
	"gonum.org/v1/gonum/stat"
)

// Normalize centers each user's observed ratings on the user's mean. The mean of a
// user is taken over strictly positive ratings and is 0 if there are none. Positive
// entries become rating - mean, other entries are copied unchanged. The input is not
// modified.
func Normalize(ratings [][]float64) ([][]float64, []float64) {
	normalized := make([][]float64, len(ratings))
	means := make([]float64, len(ratings))
	for i, row := range ratings {
		observed := lo.Filter(row, func(v float64, _ int) bool { return v > 0 })
		if len(observed) > 0 {
			means[i] = stat.Mean(observed, nil)
		}
		normalized[i] = make([]float64, len(row))
		for j, v := range row {
			if v > 0 {
				normalized[i][j] = v - means[i]
			} else {
				normalized[i][j] = v
			}
		}
	}
	return normalized, means
}
