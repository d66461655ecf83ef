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
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gorse-io/gorse-knn/config"
	"github.com/gorse-io/gorse-knn/logics"
	"github.com/gorse-io/gorse-knn/model/knn"
	"github.com/juju/errors"
	"github.com/olekukonko/tablewriter"
	"github.com/samber/lo"
)

// Report is the console output of a run. Indices are 0-based and printed 1-based.
type Report struct {
	UserIndex       int
	N               int
	Ratings         []float64
	Predictions     []float64
	Recommendations []int
	Score           knn.Score
}

// Render writes the report in the configured format.
func (r *Report) Render(w io.Writer, conf config.ReportConfig) error {
	var builder strings.Builder
	var err error
	switch conf.Format {
	case "table":
		err = r.renderTables(&builder, conf.Precision)
	default:
		r.renderText(&builder, conf.Precision)
	}
	if err != nil {
		return errors.Trace(err)
	}
	fmt.Fprintf(&builder, "\nPerformance Report:\n")
	fmt.Fprintf(&builder, "Root Mean Square Error (RMSE): %.*f\n", conf.MetricPrecision, r.Score.RMSE)
	fmt.Fprintf(&builder, "Mean Absolute Error (MAE): %.*f\n", conf.MetricPrecision, r.Score.MAE)
	_, err = io.WriteString(w, builder.String())
	return errors.Trace(err)
}

func (r *Report) renderText(builder *strings.Builder, precision int) {
	fmt.Fprintf(builder, "Predicted ratings for unrated movies for User %d:\n", r.UserIndex+1)
	for _, item := range logics.UnratedItems(r.Ratings) {
		fmt.Fprintf(builder, "Movie %d: %.*f\n", item+1, precision, r.Predictions[item])
	}
	fmt.Fprintf(builder, "\nTop %d recommendations for User %d:\n", r.N, r.UserIndex+1)
	for _, item := range r.Recommendations {
		fmt.Fprintf(builder, "Movie %d (Predicted Rating: %.*f)\n", item+1, precision, r.Predictions[item])
	}
}

func (r *Report) renderTables(builder *strings.Builder, precision int) error {
	fmt.Fprintf(builder, "Predicted ratings for unrated movies for User %d:\n", r.UserIndex+1)
	unrated := lo.Map(logics.UnratedItems(r.Ratings), func(item int, _ int) []string {
		return []string{movieName(item), strconv.FormatFloat(r.Predictions[item], 'f', precision, 64)}
	})
	if err := renderTable(builder, []string{"Movie", "Predicted Rating"}, unrated); err != nil {
		return errors.Trace(err)
	}
	fmt.Fprintf(builder, "\nTop %d recommendations for User %d:\n", r.N, r.UserIndex+1)
	recommended := lo.Map(r.Recommendations, func(item int, rank int) []string {
		return []string{strconv.Itoa(rank + 1), movieName(item), strconv.FormatFloat(r.Predictions[item], 'f', precision, 64)}
	})
	return renderTable(builder, []string{"Rank", "Movie", "Predicted Rating"}, recommended)
}

func renderTable(w io.Writer, header []string, rows [][]string) error {
	table := tablewriter.NewWriter(w)
	table.Header(lo.ToAnySlice(header)...)
	for _, row := range rows {
		if err := table.Append(row); err != nil {
			return errors.Trace(err)
		}
	}
	return errors.Trace(table.Render())
}

func movieName(item int) string {
	return "Movie " + strconv.Itoa(item+1)
}
