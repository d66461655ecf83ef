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
	"context"
	"math"
	"time"

	"github.com/gorse-io/gorse-knn/base/log"
	"github.com/gorse-io/gorse-knn/common/parallel"
	"github.com/gorse-io/gorse-knn/dataset"
	"github.com/juju/errors"
	"go.uber.org/zap"
)

// Similarities returns the similarity between the target user and every user. The
// entry of the target user itself stays 0, so the user never votes for itself.
// A nil sim means Cosine.
func Similarities(normalized [][]float64, userIndex int, sim FuncSimilarity) ([]float64, error) {
	if err := checkUserIndex(normalized, userIndex); err != nil {
		return nil, err
	}
	if sim == nil {
		sim = Cosine
	}
	similarities := make([]float64, len(normalized))
	for i := range normalized {
		if i == userIndex {
			continue
		}
		similarities[i] = sim(normalized[userIndex], normalized[i])
	}
	return similarities, nil
}

func checkUserIndex(normalized [][]float64, userIndex int) error {
	if userIndex < 0 || userIndex >= len(normalized) {
		return errors.NotValidf("user index %d (expected [0, %d))", userIndex, len(normalized))
	}
	return nil
}

// Predict estimates the rating of every item for the target user:
//
//	mean[u] + Σ sim(u, v) * normalized[v][i] / Σ |sim(u, v)|
//
// where v ranges over all users. If every similarity is 0 the prediction falls back to
// the user's mean. Rated items are predicted as well.
func Predict(normalized [][]float64, userIndex int, means []float64, sim FuncSimilarity) ([]float64, error) {
	similarities, err := Similarities(normalized, userIndex, sim)
	if err != nil {
		return nil, errors.Trace(err)
	}
	denominator := 0.0
	for _, s := range similarities {
		denominator += math.Abs(s)
	}
	predictions := make([]float64, len(normalized[userIndex]))
	for item := range predictions {
		numerator := 0.0
		for other := range normalized {
			numerator += similarities[other] * normalized[other][item]
		}
		predictions[item] = means[userIndex]
		if denominator > 0 {
			predictions[item] += numerator / denominator
		}
	}
	return predictions, nil
}

type PredictConfig struct {
	Jobs int
	// Progress is called after each user is predicted. It may be called from
	// several goroutines at once when Jobs > 1.
	Progress func(userIndex int)
}

func NewPredictConfig() *PredictConfig {
	return &PredictConfig{Jobs: 1}
}

func (config *PredictConfig) SetJobs(jobs int) *PredictConfig {
	config.Jobs = jobs
	return config
}

func (config *PredictConfig) SetProgress(progress func(userIndex int)) *PredictConfig {
	config.Progress = progress
	return config
}

// UserKNN is a user-based neighborhood model over a dense ratings matrix. Ratings are
// mean-centered once at construction and never modified afterwards.
type UserKNN struct {
	ratings    dataset.RatingsMatrix
	normalized [][]float64
	means      []float64
	similarity FuncSimilarity
}

// NewUserKNN validates the ratings matrix and normalizes it. Cosine is used if
// similarity is nil.
func NewUserKNN(ratings dataset.RatingsMatrix, similarity FuncSimilarity) (*UserKNN, error) {
	if err := ratings.Validate(); err != nil {
		return nil, errors.Trace(err)
	}
	if similarity == nil {
		similarity = Cosine
	}
	start := time.Now()
	normalized, means := Normalize(ratings)
	log.Logger().Debug("normalize ratings",
		zap.Int("n_users", ratings.CountUsers()),
		zap.Int("n_items", ratings.CountItems()),
		zap.Int("n_ratings", ratings.CountRatings()),
		zap.Duration("used_time", time.Since(start)))
	return &UserKNN{
		ratings:    ratings,
		normalized: normalized,
		means:      means,
		similarity: similarity,
	}, nil
}

func (knn *UserKNN) Ratings() dataset.RatingsMatrix {
	return knn.ratings
}

func (knn *UserKNN) Normalized() [][]float64 {
	return knn.normalized
}

func (knn *UserKNN) Means() []float64 {
	return knn.means
}

// Similarities returns the similarity of every user to the given user.
func (knn *UserKNN) Similarities(userIndex int) ([]float64, error) {
	return Similarities(knn.normalized, userIndex, knn.similarity)
}

// Predict estimates ratings of all items for a user.
func (knn *UserKNN) Predict(userIndex int) ([]float64, error) {
	return Predict(knn.normalized, userIndex, knn.means, knn.similarity)
}

// PredictAll predicts ratings of all items for every user. Rows are independent, so
// the result does not depend on the number of jobs.
func (knn *UserKNN) PredictAll(ctx context.Context, config *PredictConfig) ([][]float64, error) {
	if config == nil {
		config = NewPredictConfig()
	}
	start := time.Now()
	predictions := make([][]float64, len(knn.normalized))
	err := parallel.Parallel(ctx, len(predictions), config.Jobs, func(_, userIndex int) error {
		row, err := knn.Predict(userIndex)
		if err != nil {
			return errors.Trace(err)
		}
		predictions[userIndex] = row
		if config.Progress != nil {
			config.Progress(userIndex)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Trace(err)
	}
	for userIndex, row := range predictions {
		if row == nil {
			return nil, errors.Errorf("predictions of user %d are missing", userIndex)
		}
	}
	log.Logger().Debug("predict all users",
		zap.Int("n_users", len(predictions)),
		zap.Int("n_jobs", config.Jobs),
		zap.Duration("used_time", time.Since(start)))
	return predictions, nil
}

// Evaluate predicts every user and scores the predictions against observed ratings.
func (knn *UserKNN) Evaluate(ctx context.Context, config *PredictConfig) (Score, error) {
	predictions, err := knn.PredictAll(ctx, config)
	if err != nil {
		return Score{}, errors.Trace(err)
	}
	return Score{
		RMSE: RMSE(knn.ratings, predictions),
		MAE:  MAE(knn.ratings, predictions),
	}, nil
}
