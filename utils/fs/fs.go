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

package fs

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// StdinPath names standard input in ReadInput.
const StdinPath = "-"

// ReadInput 读取文件内容，"-"或空表示标准输入
// ReadInput reads a whole file, or standard input when path is "-" or empty.
func ReadInput(path string) ([]byte, error) {
	if path == "" || path == StdinPath {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

// OpenInput opens a file for streaming, or standard input when path is "-" or empty.
// The returned closer is a no-op for standard input.
func OpenInput(path string) (io.ReadCloser, error) {
	if path == "" || path == StdinPath {
		return io.NopCloser(os.Stdin), nil
	}
	return os.Open(path)
}

// GetFilePaths 返回匹配的文件路径列表，按目录遍历顺序
// GetFilePaths returns the files under the pattern's directory whose names
// match the pattern's file part. Directories matching an excluded pattern are skipped.
func GetFilePaths(loadFilePattern string, excludedPatterns ...string) ([]string, error) {
	dir, file := filepath.Split(loadFilePattern)
	if dir == "" {
		dir = "."
	}
	var paths []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			matched, _ := filepath.Match(file, d.Name())
			if matched && !isMatch(d, excludedPatterns...) {
				paths = append(paths, path)
			}
		} else if path != dir && isMatch(d, excludedPatterns...) {
			return filepath.SkipDir
		}
		return nil
	})
	return paths, err
}

func isMatch(d fs.DirEntry, patterns ...string) bool {
	for _, item := range patterns {
		if matched, _ := filepath.Match(item, d.Name()); matched {
			return true
		}
	}
	return false
}
