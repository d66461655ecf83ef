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
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Score holds error metrics of predictions against observed ratings.
type Score struct {
	RMSE float64
	MAE  float64
}

// RMSE computes the root mean square error over cells where actual is nonzero. Both
// matrices must have the same shape. It is 0 if there is no observed rating.
func RMSE(actual, predicted [][]float64) float64 {
	truth, predictions := observed(actual, predicted)
	if len(truth) == 0 {
		return 0
	}
	temp := make([]float64, len(truth))
	floats.SubTo(temp, predictions, truth)
	floats.Mul(temp, temp)
	return math.Sqrt(stat.Mean(temp, nil))
}

// MAE computes the mean absolute error over cells where actual is nonzero.
func MAE(actual, predicted [][]float64) float64 {
	truth, predictions := observed(actual, predicted)
	if len(truth) == 0 {
		return 0
	}
	temp := make([]float64, len(truth))
	floats.SubTo(temp, predictions, truth)
	return floats.Norm(temp, 1) / float64(len(temp))
}

// observed flattens the cells where actual is nonzero into two aligned slices.
func observed(actual, predicted [][]float64) (truth, predictions []float64) {
	for i := range actual {
		for j, a := range actual[i] {
			if a != 0 {
				truth = append(truth, a)
				predictions = append(predictions, predicted[i][j])
			}
		}
	}
	return
}
