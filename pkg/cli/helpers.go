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

	"github.com/urfave/cli/v3"

	osinfo "github.com/NVIDIA/hostcheck/pkg/collector/os"
	"github.com/NVIDIA/hostcheck/pkg/config"
	"github.com/NVIDIA/hostcheck/pkg/serializer"
	"github.com/NVIDIA/hostcheck/pkg/shell"
)

// Seams for tests.
var (
	detectFacts = osinfo.Detect
	newRunner   = func(cfg *config.Config) shell.Runner {
		return shell.New(cfg.CommandTimeout)
	}
)

// Flags carry parse state, so every command gets its own instance.
func outputFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "output file path (default: stdout)",
	}
}

func formatFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"t"},
		Usage:   fmt.Sprintf("output format (%s)", strings.Join(serializer.SupportedFormats(), ", ")),
		Value:   string(serializer.FormatYAML),
	}
}

func parseOutputFormat(cmd *cli.Command) (serializer.Format, error) {
	return serializer.ParseFormat(cmd.String("format"))
}

// newOutput writes to the --output file, or to the command's writer.
func newOutput(cmd *cli.Command, format serializer.Format) serializer.Serializer {
	path := strings.TrimSpace(cmd.String("output"))
	if path == "" || path == "-" {
		return serializer.NewWriter(format, cmd.Root().Writer)
	}
	return serializer.NewFileWriterOrStdout(format, path)
}

// emit serializes doc to the command output.
func emit(ctx context.Context, cmd *cli.Command, format serializer.Format, doc any) error {
	out := newOutput(cmd, format)
	defer func() {
		if err := serializer.Close(out); err != nil {
			slog.Warn("failed to close output", slog.String("error", err.Error()))
		}
	}()

	if err := out.Serialize(ctx, doc); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func loadConfig(cmd *cli.Command) (*config.Config, error) {
	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// hostFacts detects the OS. Unknown facts are used when detection fails.
func hostFacts(ctx context.Context) osinfo.HostFacts {
	facts, err := detectFacts(ctx)
	if err != nil {
		slog.Warn("failed to detect host facts", slog.String("error", err.Error()))
		return osinfo.Unknown()
	}
	return facts
}
