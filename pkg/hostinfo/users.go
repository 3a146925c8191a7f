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
	"slices"

	"github.com/NVIDIA/hostcheck/pkg/collector/file"
)

const (
	passwdFields  = 7
	passwdMaxSize = 16 << 20
)

type passwdEntry struct {
	Name string
	UID  string
	Home string
}

// readPasswd returns the well-formed entries of a passwd file in file order.
// GECOS fields are often in a legacy encoding, so bytes are not validated.
func readPasswd(path string) ([]passwdEntry, error) {
	parser := file.NewParser(
		file.WithMaxSize(passwdMaxSize),
		file.WithAllowInvalidUTF8(true),
	)
	records, err := parser.GetRecords(path)
	if err != nil {
		return nil, err
	}

	entries := make([]passwdEntry, 0, len(records))
	for _, rec := range records {
		if len(rec) < passwdFields {
			continue
		}
		entries = append(entries, passwdEntry{Name: rec[0], UID: rec[2], Home: rec[5]})
	}
	return entries, nil
}

// CheckUsers reports the home directory of each passwd entry whose name is
// listed in users. A missing passwd file yields no results.
func (c *Collector) CheckUsers(users []string) ([]UserCheckResult, error) {
	results := make([]UserCheckResult, 0)

	entries, err := readPasswd(c.cfg.PasswdFile)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			slog.Debug("passwd file not found", slog.String("path", c.cfg.PasswdFile))
			return results, nil
		}
		return results, fmt.Errorf("failed to read users: %w", err)
	}

	for _, e := range entries {
		if !slices.Contains(users, e.Name) {
			continue
		}
		status := UserAvailable
		if _, err := os.Stat(e.Home); err != nil {
			status = UserInvalidHomeDir
		}
		results = append(results, UserCheckResult{Name: e.Name, HomeDir: e.Home, Status: status})
	}
	return results, nil
}
