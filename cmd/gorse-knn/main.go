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
	"context"
	"fmt"
	"io"
	"os"

	"github.com/gorse-io/gorse-knn/base/log"
	"github.com/gorse-io/gorse-knn/cmd/version"
	"github.com/gorse-io/gorse-knn/config"
	"github.com/gorse-io/gorse-knn/dataset"
	"github.com/gorse-io/gorse-knn/logics"
	"github.com/gorse-io/gorse-knn/model/knn"
	"github.com/juju/errors"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

var rootCommand = &cobra.Command{
	Use:   "gorse-knn",
	Short: "User-based collaborative filtering over a ratings matrix.",
	Run: func(cmd *cobra.Command, args []string) {
		flags := cmd.PersistentFlags()
		// Show version
		if showVersion, _ := flags.GetBool("version"); showVersion {
			fmt.Println(version.BuildInfo())
			return
		}

		// setup logger
		debug, _ := flags.GetBool("debug")
		log.SetLogger(flags, debug)

		// load config
		conf, err := loadConfig(flags)
		if err != nil {
			log.Logger().Fatal("failed to load config", zap.Error(err))
		}

		input := newInputProvider(flags, conf, cmd.InOrStdin(), cmd.OutOrStdout())
		if err = run(cmd.Context(), conf, input, cmd.OutOrStdout()); err != nil {
			log.Logger().Fatal("failed to recommend", zap.Error(err))
		}
	},
}

func init() {
	addFlags(rootCommand.PersistentFlags())
}

func addFlags(flagSet *pflag.FlagSet) {
	log.AddFlags(flagSet)
	flagSet.Bool("debug", false, "use debug log mode")
	flagSet.BoolP("version", "v", false, "gorse-knn version")
	flagSet.StringP("config", "c", "", "configuration file path")
	flagSet.String("data", "", "path of the ratings file")
	flagSet.Int("user", 0, "1-based index of the target user (prompt if not set)")
	flagSet.Int("n", 0, "number of recommendations")
	flagSet.String("similarity", "", "similarity between users (cosine, masked_cosine)")
	flagSet.Int("jobs", 0, "number of workers to predict all users")
	flagSet.Bool("exclude-rated", false, "exclude rated items from recommendations")
	flagSet.String("format", "", "report format (text, table)")
	flagSet.Bool("progress", false, "show progress while predicting all users")
}

// loadConfig loads the config file and applies flags on top of it.
func loadConfig(flagSet *pflag.FlagSet) (*config.Config, error) {
	configPath, _ := flagSet.GetString("config")
	conf, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, errors.Trace(err)
	}
	if flagSet.Changed("data") {
		conf.Data.Path, _ = flagSet.GetString("data")
	}
	if flagSet.Changed("n") {
		conf.Recommend.N, _ = flagSet.GetInt("n")
	}
	if flagSet.Changed("similarity") {
		conf.Neighbors.Similarity, _ = flagSet.GetString("similarity")
	}
	if flagSet.Changed("jobs") {
		conf.Recommend.Jobs, _ = flagSet.GetInt("jobs")
	}
	if flagSet.Changed("exclude-rated") {
		conf.Recommend.ExcludeRated, _ = flagSet.GetBool("exclude-rated")
	}
	if flagSet.Changed("format") {
		conf.Report.Format, _ = flagSet.GetString("format")
	}
	if flagSet.Changed("progress") {
		conf.Report.Progress, _ = flagSet.GetBool("progress")
	}
	if err = conf.Validate(); err != nil {
		return nil, errors.Trace(err)
	}
	return conf, nil
}

// newInputProvider reads the query from flags if the user is given, otherwise prompts
// for it. A number of recommendations given by --n is never prompted for.
func newInputProvider(flagSet *pflag.FlagSet, conf *config.Config, r io.Reader, w io.Writer) InputProvider {
	if flagSet.Changed("user") {
		user, _ := flagSet.GetInt("user")
		return &flagInput{userIndex: user - 1, n: conf.Recommend.N}
	}
	input := newConsoleInput(r, w)
	if flagSet.Changed("n") {
		input.withTopN(conf.Recommend.N)
	}
	return input
}

// run loads ratings, recommends items for the queried user and reports the accuracy of
// the model over all observed ratings.
func run(ctx context.Context, conf *config.Config, input InputProvider, out io.Writer) error {
	ratings, err := dataset.LoadRatings(conf.Data.Path)
	if err != nil {
		return errors.Trace(err)
	}
	log.Logger().Info("load ratings",
		zap.String("path", conf.Data.Path),
		zap.Int("n_users", ratings.CountUsers()),
		zap.Int("n_items", ratings.CountItems()),
		zap.Int("n_ratings", ratings.CountRatings()))
	similarity, err := knn.GetSimilarity(conf.Neighbors.Similarity)
	if err != nil {
		return errors.Trace(err)
	}
	model, err := knn.NewUserKNN(ratings, similarity)
	if err != nil {
		return errors.Trace(err)
	}

	// query
	userIndex, err := input.UserIndex()
	if err != nil {
		return errors.Trace(err)
	}
	if userIndex < 0 || userIndex >= ratings.CountUsers() {
		return errors.NotValidf("user index %d (expected [1, %d])", userIndex+1, ratings.CountUsers())
	}
	n, err := input.TopN()
	if err != nil {
		return errors.Trace(err)
	}

	// recommend
	predictions, err := model.Predict(userIndex)
	if err != nil {
		return errors.Trace(err)
	}
	var recommendations []int
	if conf.Recommend.ExcludeRated {
		recommendations = logics.TopNUnrated(predictions, ratings[userIndex], n)
	} else {
		recommendations = logics.TopN(predictions, n)
	}

	// evaluate
	predictConfig := knn.NewPredictConfig().SetJobs(conf.Recommend.Jobs)
	if conf.Report.Progress {
		bar := progressbar.NewOptions(ratings.CountUsers(),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionSetDescription("Predicting users"),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish())
		predictConfig.SetProgress(func(int) { _ = bar.Add(1) })
		defer func() { _ = bar.Finish() }()
	}
	score, err := model.Evaluate(ctx, predictConfig)
	if err != nil {
		return errors.Trace(err)
	}
	log.Logger().Info("evaluate user knn",
		zap.String("similarity", conf.Neighbors.Similarity),
		zap.Float64("rmse", score.RMSE),
		zap.Float64("mae", score.MAE))

	report := &Report{
		UserIndex:       userIndex,
		N:               n,
		Ratings:         ratings[userIndex],
		Predictions:     predictions,
		Recommendations: recommendations,
		Score:           score,
	}
	return report.Render(out, conf.Report)
}

func main() {
	if err := rootCommand.Execute(); err != nil {
		log.Logger().Fatal("failed to execute", zap.Error(err))
	}
}
