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
	"log/slog"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/hostcheck/pkg/defaults"
	"github.com/NVIDIA/hostcheck/pkg/header"
	"github.com/NVIDIA/hostcheck/pkg/hostinfo"
	"github.com/NVIDIA/hostcheck/pkg/report"
	"github.com/NVIDIA/hostcheck/pkg/serializer"
)

type checkOptions struct {
	componentsMapped   bool
	commandsInProgress bool
	format             serializer.Format
	reportPath         string
	metricsTextfile    string
}

// defaultCheckOptions matches a registration where components are already
// mapped: only the cheap checks run and nothing is persisted.
func defaultCheckOptions() checkOptions {
	return checkOptions{
		componentsMapped:   true,
		commandsInProgress: true,
		format:             serializer.FormatYAML,
	}
}

func checkCmd() *cli.Command {
	return &cli.Command{
		Name:                  "check",
		EnableShellCompletion: true,
		Usage:                 "Run the host checks and print the report.",
		Description: `Run the host check battery and print the resulting report.

The expensive checks (alternatives, users, stack folders, packages and
repositories) only run when both --components-mapped and
--commands-in-progress are false and the host family supports them. In that
case the report is also written to the report path.

Examples:

Full check written as JSON:
  hostcheck check --components-mapped=false --commands-in-progress=false -t json

Cheap checks only, with metrics for the node exporter textfile collector:
  hostcheck check --metrics-textfile /var/lib/node_exporter/hostcheck.prom`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "components-mapped",
				Usage:   "components are already mapped to this host; skip the expensive checks",
				Value:   true,
				Sources: cli.EnvVars(envPrefix + "COMPONENTS_MAPPED"),
			},
			&cli.BoolFlag{
				Name:    "commands-in-progress",
				Usage:   "commands are running on this host; skip the expensive checks",
				Value:   true,
				Sources: cli.EnvVars(envPrefix + "COMMANDS_IN_PROGRESS"),
			},
			&cli.StringFlag{
				Name:    "report-path",
				Usage:   "where the full report is persisted (default: from config)",
				Sources: cli.EnvVars(envPrefix + "REPORT_PATH"),
			},
			&cli.StringFlag{
				Name:    "metrics-textfile",
				Usage:   "write check metrics in Prometheus text format to this file",
				Sources: cli.EnvVars(envPrefix + "METRICS_TEXTFILE"),
			},
			outputFlag(),
			formatFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			format, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}
			return runCheck(ctx, cmd, checkOptions{
				componentsMapped:   cmd.Bool("components-mapped"),
				commandsInProgress: cmd.Bool("commands-in-progress"),
				format:             format,
				reportPath:         strings.TrimSpace(cmd.String("report-path")),
				metricsTextfile:    strings.TrimSpace(cmd.String("metrics-textfile")),
			})
		},
	}
}

func runCheck(ctx context.Context, cmd *cli.Command, opts checkOptions) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if opts.reportPath != "" {
		cfg.ReportPath = opts.reportPath
	}

	ctx, cancel := context.WithTimeout(ctx, defaults.CLICheckTimeout)
	defer cancel()

	writer := report.NewFileWriter(cfg.ReportPath, version)
	collector := hostinfo.New(cfg, hostFacts(ctx), newRunner(cfg), hostinfo.WithWriter(writer))
	facts := collector.Facts()

	start := time.Now()
	var r hostinfo.HostReport
	collector.Register(ctx, &r, opts.componentsMapped, opts.commandsInProgress)
	slog.Debug("host check complete",
		slog.String("family", string(facts.OSFamily)),
		slog.Duration("duration", time.Since(start)))

	// Register degrades every check instead of failing; a dead context
	// still means the report is incomplete.
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("host check interrupted: %w", err)
	}

	doc := report.Document{Report: &r}
	doc.Init(header.KindHostCheck, report.APIVersion, version)
	doc.Set("osType", facts.OSType)
	doc.Set("osFamily", string(facts.OSFamily))
	if !opts.componentsMapped && !opts.commandsInProgress && facts.SupportsDetailedCheck() {
		doc.Set("reportPath", writer.Path())
	}

	if err := emit(ctx, cmd, opts.format, doc); err != nil {
		return err
	}

	if opts.metricsTextfile != "" {
		if err := prometheus.WriteToTextfile(opts.metricsTextfile, prometheus.DefaultGatherer); err != nil {
			return fmt.Errorf("failed to write metrics to %s: %w", opts.metricsTextfile, err)
		}
		slog.Debug("metrics written", slog.String("path", opts.metricsTextfile))
	}
	return nil
}
