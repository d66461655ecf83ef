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

package config

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/juju/errors"
	"github.com/spf13/viper"
)

const envPrefix = "GORSE_KNN"

// Config is the configuration for the recommender.
type Config struct {
	Data      DataConfig      `mapstructure:"data"`
	Neighbors NeighborsConfig `mapstructure:"neighbors"`
	Recommend RecommendConfig `mapstructure:"recommend"`
	Report    ReportConfig    `mapstructure:"report"`
}

// DataConfig locates the ratings file.
type DataConfig struct {
	Path string `mapstructure:"path" validate:"required"`
}

// NeighborsConfig selects the similarity between users.
type NeighborsConfig struct {
	Similarity string `mapstructure:"similarity" validate:"oneof=cosine masked_cosine"`
}

type RecommendConfig struct {
	N            int  `mapstructure:"n" validate:"gte=0"`
	ExcludeRated bool `mapstructure:"exclude_rated"`
	Jobs         int  `mapstructure:"jobs" validate:"gte=1"`
}

type ReportConfig struct {
	Precision       int    `mapstructure:"precision" validate:"gte=0,lte=10"`
	MetricPrecision int    `mapstructure:"metric_precision" validate:"gte=0,lte=10"`
	Format          string `mapstructure:"format" validate:"oneof=text table"`
	Progress        bool   `mapstructure:"progress"`
}

func GetDefaultConfig() *Config {
	return &Config{
		Data: DataConfig{
			Path: "ratings.csv",
		},
		Neighbors: NeighborsConfig{
			Similarity: "cosine",
		},
		Recommend: RecommendConfig{
			N:    10,
			Jobs: 1,
		},
		Report: ReportConfig{
			Precision:       2,
			MetricPrecision: 4,
			Format:          "text",
		},
	}
}

func setDefault(v *viper.Viper) {
	defaultConfig := GetDefaultConfig()
	// [data]
	v.SetDefault("data.path", defaultConfig.Data.Path)
	// [neighbors]
	v.SetDefault("neighbors.similarity", defaultConfig.Neighbors.Similarity)
	// [recommend]
	v.SetDefault("recommend.n", defaultConfig.Recommend.N)
	v.SetDefault("recommend.exclude_rated", defaultConfig.Recommend.ExcludeRated)
	v.SetDefault("recommend.jobs", defaultConfig.Recommend.Jobs)
	// [report]
	v.SetDefault("report.precision", defaultConfig.Report.Precision)
	v.SetDefault("report.metric_precision", defaultConfig.Report.MetricPrecision)
	v.SetDefault("report.format", defaultConfig.Report.Format)
	v.SetDefault("report.progress", defaultConfig.Report.Progress)
}

// LoadConfig loads configuration from a TOML file and environment variables. Every key
// can be overridden by GORSE_KNN_<SECTION>_<KEY>, e.g. GORSE_KNN_DATA_PATH. An empty
// path loads defaults and environment variables only.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefault(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("toml")
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Annotatef(err, "read config %s", path)
		}
	}
	var conf Config
	if err := v.Unmarshal(&conf); err != nil {
		return nil, errors.Trace(err)
	}
	if err := conf.Validate(); err != nil {
		return nil, errors.Trace(err)
	}
	return &conf, nil
}

// Validate checks value ranges and enumerations.
func (config *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(config); err != nil {
		return errors.NewNotValid(err, "config")
	}
	return nil
}
