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
	"slices"
	"strings"

	"github.com/NVIDIA/hostcheck/pkg/config"
	"github.com/NVIDIA/hostcheck/pkg/shell"
)

// commandProber runs "<service> NAME status".
type commandProber struct {
	runner     shell.Runner
	serviceCmd string
}

func (p *commandProber) Status(ctx context.Context, name string) (bool, string, error) {
	res, err := p.runner.Run(ctx, p.serviceCmd, name, "status")
	if err != nil {
		return false, "", err
	}
	if res.Success() {
		return true, "", nil
	}
	if res.Stderr != "" {
		return false, res.Stderr, nil
	}
	return false, res.Stdout, nil
}

// CheckLiveServices probes each service. Per-family specs resolve against
// the host family; a family without an entry is reported as UNKNOWN.
func (c *Collector) CheckLiveServices(ctx context.Context, services []config.ServiceSpec) []ServiceCheckResult {
	results := make([]ServiceCheckResult, 0, len(services))
	for _, spec := range services {
		name, ok := spec.Resolve(c.facts.OSFamily)
		if !ok {
			results = append(results, ServiceCheckResult{
				Name:   candidateNames(spec),
				Status: ServiceUnknown,
				Desc:   fmt.Sprintf("no service configured for os family %q", c.facts.OSFamily),
			})
			checkFailures.WithLabelValues(checkLiveServices).Inc()
			continue
		}

		healthy, desc, err := c.prober.Status(ctx, name)
		switch {
		case err != nil:
			slog.Warn("service probe failed", slog.String("service", name), slog.String("error", err.Error()))
			checkFailures.WithLabelValues(checkLiveServices).Inc()
			results = append(results, ServiceCheckResult{Name: name, Status: ServiceUnhealthy, Desc: err.Error()})
		case healthy:
			results = append(results, ServiceCheckResult{Name: name, Status: ServiceHealthy})
		default:
			results = append(results, ServiceCheckResult{Name: name, Status: ServiceUnhealthy, Desc: desc})
		}
	}
	return results
}

func candidateNames(spec config.ServiceSpec) string {
	if len(spec.ByFamily) == 0 {
		return spec.Name
	}
	names := make([]string, 0, len(spec.ByFamily))
	for _, n := range spec.ByFamily {
		if !slices.Contains(names, n) {
			names = append(names, n)
		}
	}
	slices.Sort(names)
	return strings.Join(names, "/")
}
