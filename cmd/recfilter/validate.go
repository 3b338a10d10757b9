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
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"
)

func newValidateCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "compile every filter chain and report configuration errors",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			config, err := opts.config()
			if err != nil {
				return err
			}
			doc, err := opts.document()
			if err != nil {
				return err
			}
			names := doc.ParserNames()
			if opts.parserName != "" {
				names = []string{opts.parserName}
			}
			var result *multierror.Error
			for _, name := range names {
				chain, err := doc.Chain(name, config)
				if err != nil {
					result = multierror.Append(result, err)
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: OK (%d global, %d parser filters)\n",
					name, len(chain.GlobalFilters()), len(chain.Filters()))
			}
			return result.ErrorOrNil()
		},
	}
}
