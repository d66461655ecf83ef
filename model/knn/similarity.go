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

	"github.com/juju/errors"
	"gonum.org/v1/gonum/floats"
)

const (
	SimilarityCosine       = "cosine"
	SimilarityMaskedCosine = "masked_cosine"
)

// FuncSimilarity computes the similarity between a pair of rating vectors.
type FuncSimilarity func(a, b []float64) float64

// GetSimilarity returns the similarity function registered under name.
func GetSimilarity(name string) (FuncSimilarity, error) {
	switch name {
	case SimilarityCosine:
		return Cosine, nil
	case SimilarityMaskedCosine:
		return MaskedCosine, nil
	}
	return nil, errors.NotValidf("similarity %q", name)
}

// Cosine computes the cosine similarity between a pair of vectors over all of their
// entries. Unrated entries take part with whatever value they hold. The similarity is
// zero if either vector has zero norm.
func Cosine(a, b []float64) float64 {
	normA, normB := floats.Norm(a, 2), floats.Norm(b, 2)
	if normA == 0 || normB == 0 {
		return 0
	}
	return floats.Dot(a, b) / (normA * normB)
}

// MaskedCosine computes the cosine similarity over positions where both vectors are
// nonzero. It is zero if there is no such position.
func MaskedCosine(a, b []float64) float64 {
	if len(a) != len(b) {
		panic("knn: slice lengths do not match")
	}
	m, n, l := .0, .0, .0
	for i := range a {
		if a[i] != 0 && b[i] != 0 {
			m += a[i] * a[i]
			n += b[i] * b[i]
			l += a[i] * b[i]
		}
	}
	if m == 0 || n == 0 {
		return 0
	}
	return l / (math.Sqrt(m) * math.Sqrt(n))
}
