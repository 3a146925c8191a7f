// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package hostinfo

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sys/unix"
)

// DirTypeOf classifies path. Links are followed for existence, so a
// dangling link does not exist, but an existing link reports as sym_link.
func DirTypeOf(path string) DirType {
	if !pathExists(path) {
		return DirNotExist
	}
	t, err := classify(path)
	if err != nil {
		return DirNotExist
	}
	return t
}

// CheckFolders looks for every project name under every base path and
// records the paths that exist, except those that are a listed user's home.
// A path that exists but cannot then be inspected stops the scan, returning
// what it found.
func (c *Collector) CheckFolders(basePaths, projectNames []string, existingUsers []UserCheckResult) ([]DirEntry, error) {
	ignore := make(map[string]struct{}, len(existingUsers))
	for _, u := range existingUsers {
		ignore[filepath.Clean(u.HomeDir)] = struct{}{}
	}

	dirs := make([]DirEntry, 0)
	for _, base := range basePaths {
		for _, project := range projectNames {
			path := filepath.Join(strings.TrimSpace(base), strings.TrimSpace(project))
			if _, skip := ignore[path]; skip {
				continue
			}
			if !pathExists(path) {
				continue
			}

			t, err := classify(path)
			if err != nil {
				return dirs, fmt.Errorf("failed to scan %s: %w", path, err)
			}
			dirs = append(dirs, DirEntry{Type: t, Name: path})
		}
	}
	return dirs, nil
}

// pathExists follows symbolic links. Any stat failure, including a link
// loop or an unsearchable parent, counts as absent.
func pathExists(path string) bool {
	_, err := os.Stat(path)
	if err == nil {
		return true
	}
	if !stderrors.Is(err, fs.ErrNotExist) && !stderrors.Is(err, unix.ENOTDIR) {
		slog.Debug("treating unreadable path as absent", slog.String("path", path), slog.String("error", err.Error()))
	}
	return false
}

// classify reports the type of an existing path without following a final link.
func classify(path string) (DirType, error) {
	info, err := os.Lstat(path)
	if err != nil {
		return DirUnknown, err
	}
	switch {
	case info.Mode()&fs.ModeSymlink != 0:
		return DirSymLink, nil
	case info.IsDir():
		return DirDirectory, nil
	case info.Mode().IsRegular():
		return DirFile, nil
	default:
		return DirUnknown, nil
	}
}
