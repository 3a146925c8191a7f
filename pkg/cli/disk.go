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

package cli

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"

	"github.com/NVIDIA/hostcheck/pkg/hardware"
	"github.com/NVIDIA/hostcheck/pkg/header"
	"github.com/NVIDIA/hostcheck/pkg/hostinfo"
	"github.com/NVIDIA/hostcheck/pkg/report"
)

const maxConcurrentDiskQueries = 4

// DiskUsage is the output of the disk command.
type DiskUsage struct {
	header.Header `json:",inline" yaml:",inline"`

	Mounts []hardware.MountInfo `json:"mounts" yaml:"mounts"`
}

func diskCmd() *cli.Command {
	return &cli.Command{
		Name:                  "disk",
		EnableShellCompletion: true,
		Usage:                 "Show filesystem usage for paths, or for all mounts.",
		ArgsUsage:             "[PATH...]",
		Description: `Query "df -kPT" for the filesystem holding each PATH. Sizes are in
kilobytes. Without arguments every mounted filesystem is listed.

A path whose usage cannot be determined is reported with an empty entry.`,
		Flags: []cli.Flag{
			outputFlag(),
			formatFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			format, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			collector := hostinfo.New(cfg, hostFacts(ctx), newRunner(cfg))

			usage := DiskUsage{}
			usage.Init(header.KindDiskUsage, report.APIVersion, version)

			if cmd.Args().Len() == 0 {
				mounts, err := collector.MountedDisks(ctx)
				if err != nil {
					return fmt.Errorf("failed to list mounts: %w", err)
				}
				usage.Mounts = mounts
				return emit(ctx, cmd, format, usage)
			}

			paths := cmd.Args().Slice()
			usage.Mounts = make([]hardware.MountInfo, len(paths))
			g, gctx := errgroup.WithContext(ctx)
			g.SetLimit(maxConcurrentDiskQueries)
			for i, path := range paths {
				g.Go(func() error {
					usage.Mounts[i] = collector.DiskAvailableSpace(gctx, path)
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}
			return emit(ctx, cmd, format, usage)
		},
	}
}
