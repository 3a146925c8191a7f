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

	"github.com/urfave/cli/v3"

	osinfo "github.com/NVIDIA/hostcheck/pkg/collector/os"
	"github.com/NVIDIA/hostcheck/pkg/header"
	"github.com/NVIDIA/hostcheck/pkg/report"
)

// Facts is the output of the facts command.
type Facts struct {
	header.Header `json:",inline" yaml:",inline"`

	Host                   osinfo.HostFacts `json:"host" yaml:"host"`
	DetailedCheckSupported bool             `json:"detailedCheckSupported" yaml:"detailedCheckSupported"`
}

func factsCmd() *cli.Command {
	return &cli.Command{
		Name:                  "facts",
		EnableShellCompletion: true,
		Usage:                 "Print the detected operating system facts.",
		Description: `Print the OS type, family and major version read from os-release. These
decide which firewall probe and package tool are used, and whether the
detailed checks are supported.`,
		Flags: []cli.Flag{
			outputFlag(),
			formatFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			format, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}

			facts := hostFacts(ctx)
			doc := Facts{
				Host:                   facts,
				DetailedCheckSupported: facts.SupportsDetailedCheck(),
			}
			doc.Init(header.KindHostFacts, report.APIVersion, version)
			return emit(ctx, cmd, format, doc)
		},
	}
}
