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

// Package firewall probes whether the host firewall is running.
//
// Each distribution family checks its firewall differently, so a Strategy
// pairs the command to run with the rule that interprets its outcome.
// Select picks the strategy from the host facts:
//
//	s := firewall.Select(facts)
//	running, err := firewall.Check(ctx, runner, s)
//
// Check returns the runner's error when the probe command cannot be run.
package firewall

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	osinfo "github.com/NVIDIA/hostcheck/pkg/collector/os"
	"github.com/NVIDIA/hostcheck/pkg/shell"
)

// Kind names a strategy variant.
type Kind string

const (
	KindIptables  Kind = "iptables"
	KindUfw       Kind = "ufw"
	KindFirewalld Kind = "firewalld"
	KindSuse      Kind = "SuSEfirewall2"
)

const (
	serviceCmd       = "/sbin/service"
	serviceCmdDebian = "/usr/sbin/service"
	ufwStopped       = "ufw stop/waiting"

	// firewalldMinFedora is the first Fedora release managing its firewall with firewalld.
	firewalldMinFedora = 18
)

// Strategy is one way of checking the firewall.
type Strategy struct {
	Kind      Kind
	Argv      []string
	IsHealthy func(exitCode int, stdout, stderr string) bool
}

// String returns the probe command line.
func (s Strategy) String() string {
	return strings.Join(s.Argv, " ")
}

func exitZero(exitCode int, _, _ string) bool {
	return exitCode == 0
}

// ufw's status action exits 0 whether or not the firewall runs.
func ufwRunning(_ int, stdout, _ string) bool {
	out := strings.TrimSpace(stdout)
	return out != "" && out != ufwStopped
}

// Iptables returns the default strategy querying the iptables service
// through the given service command.
func Iptables(serviceCommand string) Strategy {
	return Strategy{
		Kind:      KindIptables,
		Argv:      []string{serviceCommand, "iptables", "status"},
		IsHealthy: exitZero,
	}
}

// Ufw returns the strategy for Debian and Ubuntu hosts.
func Ufw() Strategy {
	return Strategy{
		Kind:      KindUfw,
		Argv:      []string{"service", "ufw", "status"},
		IsHealthy: ufwRunning,
	}
}

// Firewalld returns the strategy for systemd hosts running firewalld.
func Firewalld() Strategy {
	return Strategy{
		Kind:      KindFirewalld,
		Argv:      []string{"systemctl", "is-active", "firewalld.service"},
		IsHealthy: exitZero,
	}
}

// Suse returns the strategy for SUSE hosts.
func Suse() Strategy {
	return Strategy{
		Kind:      KindSuse,
		Argv:      []string{"/sbin/SuSEfirewall2", "status"},
		IsHealthy: exitZero,
	}
}

// Strategies lists every variant.
func Strategies() []Strategy {
	return []Strategy{Iptables(serviceCmd), Ufw(), Firewalld(), Suse()}
}

// ServiceCommand returns the path of the service command on the host.
func ServiceCommand(facts osinfo.HostFacts) string {
	if facts.OSFamily == osinfo.FamilyDebian {
		return serviceCmdDebian
	}
	return serviceCmd
}

// Select picks the strategy for the host.
func Select(facts osinfo.HostFacts) Strategy {
	switch {
	case facts.OSFamily == osinfo.FamilyDebian:
		return Ufw()
	case facts.OSType == osinfo.TypeFedora && facts.MajorVersion >= firewalldMinFedora:
		return Firewalld()
	case facts.OSType == osinfo.TypeSuse, facts.OSType == osinfo.TypeOpenSuse, facts.OSType == osinfo.TypeSles:
		return Suse()
	default:
		return Iptables(ServiceCommand(facts))
	}
}

// Check runs the strategy's command and interprets the outcome.
func Check(ctx context.Context, runner shell.Runner, s Strategy) (bool, error) {
	res, err := runner.Run(ctx, s.Argv...)
	if err != nil {
		return false, fmt.Errorf("failed to run firewall probe %q: %w", s.String(), err)
	}

	running := s.IsHealthy(res.ExitCode, res.Stdout, res.Stderr)
	slog.Debug("firewall probed",
		slog.String("kind", string(s.Kind)),
		slog.Int("exitCode", res.ExitCode),
		slog.Bool("running", running))
	return running, nil
}
