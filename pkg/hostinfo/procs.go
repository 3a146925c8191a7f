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
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"os/user"
	"slices"
	"strings"

	"github.com/prometheus/procfs"
)

// JavaProcs lists running Java processes other than the agent itself.
// Processes that vanish or cannot be read while scanning are skipped. An
// owner with no user name is reported by numeric uid.
func (c *Collector) JavaProcs(ctx context.Context) ([]ProcessRecord, error) {
	records := make([]ProcessRecord, 0)

	fs, err := procfs.NewFS(c.cfg.ProcRoot)
	if err != nil {
		return records, fmt.Errorf("failed to open proc filesystem %s: %w", c.cfg.ProcRoot, err)
	}
	procs, err := fs.AllProcs()
	if err != nil {
		return records, fmt.Errorf("failed to list processes: %w", err)
	}
	slices.SortFunc(procs, func(a, b procfs.Proc) int {
		return cmp.Compare(a.PID, b.PID)
	})

	users := c.uidResolver()
	for _, p := range procs {
		if err := ctx.Err(); err != nil {
			return records, err
		}

		args, err := p.CmdLine()
		if err != nil {
			slog.Debug("skipping process", slog.Int("pid", p.PID), slog.String("error", err.Error()))
			continue
		}
		cmd := strings.TrimSpace(strings.Join(args, " "))
		if strings.Contains(cmd, c.cfg.AgentMarker) && c.cfg.AgentMarker != "" {
			continue
		}
		if !strings.Contains(cmd, c.cfg.JavaMarker) {
			continue
		}

		status, err := p.NewStatus()
		if err != nil {
			slog.Debug("skipping process", slog.Int("pid", p.PID), slog.String("error", err.Error()))
			continue
		}
		uid := fmt.Sprint(status.UIDs[0])
		name, ok := users(uid)
		if !ok {
			slog.Debug("process owner not in user database", slog.Int("pid", p.PID), slog.String("uid", uid))
			name = uid
		}

		records = append(records, ProcessRecord{
			PID:     p.PID,
			Command: cmd,
			User:    name,
			Hadoop:  containsAny(cmd, c.cfg.ProcFilter),
		})
	}

	slog.Debug("scanned java processes", slog.Int("total", len(procs)), slog.Int("java", len(records)))
	return records, nil
}

// uidResolver maps a uid to a user name through the configured passwd
// file, falling back to the system user database.
func (c *Collector) uidResolver() func(uid string) (string, bool) {
	byUID := make(map[string]string)
	entries, err := readPasswd(c.cfg.PasswdFile)
	if err != nil {
		slog.Debug("passwd unavailable for uid lookup", slog.String("error", err.Error()))
	}
	for _, e := range entries {
		if _, seen := byUID[e.UID]; !seen {
			byUID[e.UID] = e.Name
		}
	}

	return func(uid string) (string, bool) {
		if name, ok := byUID[uid]; ok {
			return name, true
		}
		u, err := user.LookupId(uid)
		if err != nil {
			return "", false
		}
		byUID[uid] = u.Username
		return u.Username, true
	}
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if sub != "" && strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
