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
	"regexp"
	"strings"
)

// EtcAlternativesConf lists the alternatives links whose name starts with
// one of the project patterns, with their resolved targets. Patterns are
// regular expressions. A missing alternatives directory yields no entries.
func (c *Collector) EtcAlternativesConf(projects []string) ([]AlternativesEntry, error) {
	results := make([]AlternativesEntry, 0)
	dir := c.cfg.AlternativesDir

	entries, err := os.ReadDir(dir)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return results, nil
		}
		return results, fmt.Errorf("failed to list %s: %w", dir, err)
	}
	if len(projects) == 0 {
		return results, nil
	}

	re, err := regexp.Compile("^(?:" + strings.Join(projects, "|") + ")")
	if err != nil {
		return results, fmt.Errorf("invalid project pattern: %w", err)
	}

	for _, e := range entries {
		if !re.MatchString(e.Name()) || e.Type()&fs.ModeSymlink == 0 {
			continue
		}
		link := filepath.Join(dir, e.Name())
		results = append(results, AlternativesEntry{Name: e.Name(), Target: realPath(link)})
	}
	return results, nil
}

// realPath resolves link fully. A dangling link resolves as far as its
// immediate target.
func realPath(link string) string {
	target, err := filepath.EvalSymlinks(link)
	if err == nil {
		if abs, aerr := filepath.Abs(target); aerr == nil {
			return abs
		}
		return target
	}

	slog.Debug("unresolvable alternatives link", slog.String("link", link), slog.String("error", err.Error()))
	dest, rerr := os.Readlink(link)
	if rerr != nil {
		return link
	}
	if !filepath.IsAbs(dest) {
		dest = filepath.Join(filepath.Dir(link), dest)
	}
	return filepath.Clean(dest)
}
