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
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/NVIDIA/hostcheck/pkg/hardware"
)

// DiskAvailableSpace returns the usage of the filesystem holding path, as
// reported by "df -kPT". Any failure yields an empty MountInfo.
func (c *Collector) DiskAvailableSpace(ctx context.Context, path string) hardware.MountInfo {
	res, err := c.runner.Run(ctx, "df", "-kPT", path)
	if err != nil {
		slog.Debug("df failed", slog.String("path", path), slog.String("error", err.Error()))
		return hardware.MountInfo{}
	}

	m, ok := hardware.LastMount(res.Stdout)
	if !ok {
		slog.Debug("unparseable df output", slog.String("path", path), slog.Int("exitCode", res.ExitCode))
		return hardware.MountInfo{}
	}
	return m
}

// MountedDisks returns every filesystem reported by "df -kPT". Lines that
// do not have the expected seven columns are skipped.
func (c *Collector) MountedDisks(ctx context.Context) ([]hardware.MountInfo, error) {
	res, err := c.runner.Run(ctx, "df", "-kPT")
	if err != nil {
		return []hardware.MountInfo{}, err
	}
	// df exits non-zero when one mount is unreadable but still prints the rest.
	mounts := hardware.ParseDF(res.Stdout)
	if len(mounts) == 0 && !res.Success() {
		return mounts, fmt.Errorf("df exited with %d: %s", res.ExitCode, strings.TrimSpace(res.Stderr))
	}
	return mounts, nil
}
