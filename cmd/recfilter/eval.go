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
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/goccy/go-json"
	"github.com/rulego/recfilter/api/types"
	"github.com/rulego/recfilter/engine"
	"github.com/rulego/recfilter/utils/fs"
	"github.com/rulego/recfilter/utils/str"
	"github.com/spf13/cobra"
)

type evalOptions struct {
	inputPath   string
	concurrency int
}

func newEvalCmd(opts *rootOptions) *cobra.Command {
	evalOpts := &evalOptions{}
	cmd := &cobra.Command{
		Use:   "eval",
		Short: "filter JSON-lines records, writing kept records to stdout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.parserName == "" {
				return errors.New("--parser is required")
			}
			config, err := opts.config(types.WithConcurrency(evalOpts.concurrency))
			if err != nil {
				return err
			}
			doc, err := opts.document()
			if err != nil {
				return err
			}
			chain, err := doc.Chain(opts.parserName, config)
			if err != nil {
				return err
			}
			in, err := fs.OpenInput(evalOpts.inputPath)
			if err != nil {
				return err
			}
			defer in.Close()
			records, err := readRecords(in)
			if err != nil {
				return err
			}
			kept, stats, err := chain.AdmitAll(cmd.Context(), records)
			if err != nil {
				return err
			}
			if err := writeRecords(cmd.OutOrStdout(), kept); err != nil {
				return err
			}
			return writeStats(cmd.ErrOrStderr(), stats)
		},
	}
	cmd.Flags().StringVarP(&evalOpts.inputPath, "input", "i", fs.StdinPath, "JSON-lines records, - for stdin")
	cmd.Flags().IntVar(&evalOpts.concurrency, "concurrency", 0, "number of evaluation workers (default GOMAXPROCS)")
	return cmd
}

// readRecords decodes one JSON object per line. Values are stringified:
// numbers keep their literal text, null becomes empty.
func readRecords(r io.Reader) ([]types.Record, error) {
	var records []types.Record
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		data := scanner.Bytes()
		if len(data) == 0 {
			continue
		}
		decoder := json.NewDecoder(bytes.NewReader(data))
		decoder.UseNumber()
		var obj map[string]interface{}
		if err := decoder.Decode(&obj); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		for k, v := range obj {
			if v == nil {
				obj[k] = ""
			}
		}
		records = append(records, types.Record(str.ToStringMapString(obj)))
	}
	return records, scanner.Err()
}

func writeRecords(w io.Writer, records []types.Record) error {
	bw := bufio.NewWriter(w)
	encoder := json.NewEncoder(bw)
	for _, record := range records {
		if err := encoder.Encode(record); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func writeStats(w io.Writer, stats engine.Stats) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
