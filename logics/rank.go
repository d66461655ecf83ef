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

package logics

import (
	"sort"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/samber/lo"
)

// TopN returns indices of the n highest predictions in descending order of score.
// Equal scores are ordered by descending index. n <= 0 yields an empty list and n
// larger than the number of predictions yields all indices.
func TopN(predictions []float64, n int) []int {
	return topN(lo.Map(predictions, func(score float64, i int) lo.Tuple2[int, float64] {
		return lo.Tuple2[int, float64]{A: i, B: score}
	}), n)
}

// TopNUnrated is like TopN but only ranks items the user has not rated yet.
func TopNUnrated(predictions, ratings []float64, n int) []int {
	rated := mapset.NewThreadUnsafeSet(RatedItems(ratings)...)
	candidates := make([]lo.Tuple2[int, float64], 0, len(predictions))
	for i, score := range predictions {
		if !rated.Contains(i) {
			candidates = append(candidates, lo.Tuple2[int, float64]{A: i, B: score})
		}
	}
	return topN(candidates, n)
}

func topN(candidates []lo.Tuple2[int, float64], n int) []int {
	if n <= 0 {
		return []int{}
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].B != candidates[j].B {
			return candidates[i].B > candidates[j].B
		}
		return candidates[i].A > candidates[j].A
	})
	candidates = candidates[:min(n, len(candidates))]
	return lo.Map(candidates, func(c lo.Tuple2[int, float64], _ int) int {
		return c.A
	})
}

// RatedItems returns indices of items with a positive rating.
func RatedItems(ratings []float64) []int {
	return itemsWhere(ratings, func(v float64) bool { return v > 0 })
}

// UnratedItems returns indices of items without a positive rating.
func UnratedItems(ratings []float64) []int {
	return itemsWhere(ratings, func(v float64) bool { return v <= 0 })
}

func itemsWhere(ratings []float64, predicate func(float64) bool) []int {
	items := make([]int, 0, len(ratings))
	for i, v := range ratings {
		if predicate(v) {
			items = append(items, i)
		}
	}
	return items
}
