/*
 * Copyright 2023 The RuleGo Authors.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rulego/recfilter/api/types"
	"github.com/rulego/recfilter/engine"
	"github.com/rulego/recfilter/utils/fs"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	configPath string
	parserName string
	lenient    bool
	logLevel   string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "recfilter",
		Short:         "declarative record filters for file ingestion",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "filter document (YAML or JSON)")
	cmd.PersistentFlags().StringVarP(&opts.parserName, "parser", "p", "", "parser name")
	cmd.PersistentFlags().BoolVar(&opts.lenient, "lenient", false, "disable patterns that do not compile instead of failing")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	_ = cmd.MarkPersistentFlagRequired("config")

	cmd.AddCommand(newValidateCmd(opts), newEvalCmd(opts))
	return cmd
}

// config builds the engine configuration from the flags.
func (o *rootOptions) config(extra ...types.Option) (types.Config, error) {
	level, err := zerolog.ParseLevel(o.logLevel)
	if err != nil {
		return types.Config{}, err
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()
	opts := append([]types.Option{
		types.WithLogger(types.NewZerologLogger(logger)),
		types.WithStrictPatterns(!o.lenient),
	}, extra...)
	return types.NewConfig(opts...), nil
}

func (o *rootOptions) document() (*engine.Document, error) {
	data, err := fs.ReadInput(o.configPath)
	if err != nil {
		return nil, err
	}
	var parser engine.YamlParser
	return parser.DecodeDocument(data)
}
