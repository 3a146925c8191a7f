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
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/NVIDIA/hostcheck/pkg/firewall"
	"github.com/NVIDIA/hostcheck/pkg/header"
	"github.com/NVIDIA/hostcheck/pkg/report"
)

// FirewallStatus is the output of the firewall command.
type FirewallStatus struct {
	header.Header `json:",inline" yaml:",inline"`

	Strategy string   `json:"strategy" yaml:"strategy"`
	Command  []string `json:"command" yaml:"command"`
	Running  bool     `json:"running" yaml:"running"`
	Summary  string   `json:"summary" yaml:"summary"`
}

func firewallCmd() *cli.Command {
	return &cli.Command{
		Name:                  "firewall",
		EnableShellCompletion: true,
		Usage:                 "Report whether the host firewall is running.",
		Description: `Select the firewall probe for this host (iptables, ufw, firewalld or
SuSEfirewall2) from the detected OS and run it.

Unlike the full check, a probe that cannot be run is reported as an error.`,
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

			facts := hostFacts(ctx)
			strategy := firewall.Select(facts)
			running, err := firewall.Check(ctx, newRunner(cfg), strategy)
			if err != nil {
				return fmt.Errorf("failed to probe %s: %w", strategy, err)
			}

			status := FirewallStatus{
				Strategy: string(strategy.Kind),
				Command:  strategy.Argv,
				Running:  running,
				Summary:  firewallSummary(strategy.Kind, running),
			}
			status.Init(header.KindFirewallStatus, report.APIVersion, version)
			return emit(ctx, cmd, format, status)
		},
	}
}

func firewallSummary(kind firewall.Kind, running bool) string {
	state := "not running"
	if running {
		state = "running"
	}
	return fmt.Sprintf("%s is %s", cases.Title(language.English).String(string(kind)), state)
}
