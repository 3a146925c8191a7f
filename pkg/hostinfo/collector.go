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
	"log/slog"
	"strconv"
	"time"

	osinfo "github.com/NVIDIA/hostcheck/pkg/collector/os"
	"github.com/NVIDIA/hostcheck/pkg/collector/systemd"
	"github.com/NVIDIA/hostcheck/pkg/config"
	"github.com/NVIDIA/hostcheck/pkg/defaults"
	"github.com/NVIDIA/hostcheck/pkg/firewall"
	"github.com/NVIDIA/hostcheck/pkg/packages"
	"github.com/NVIDIA/hostcheck/pkg/report"
	"github.com/NVIDIA/hostcheck/pkg/shell"
)

// ServiceProber reports whether a named service is running. desc explains
// an unhealthy result.
type ServiceProber interface {
	Status(ctx context.Context, name string) (healthy bool, desc string, err error)
}

// Collector runs host checks for one host.
type Collector struct {
	cfg      *config.Config
	facts    osinfo.HostFacts
	runner   shell.Runner
	analyzer packages.Analyzer
	writer   report.Writer
	prober   ServiceProber
	firewall firewall.Strategy
	now      func() time.Time

	umask       int
	umaskCached bool
}

// Option configures a Collector.
type Option func(*Collector)

// WithAnalyzer sets the package analyzer.
func WithAnalyzer(a packages.Analyzer) Option {
	return func(c *Collector) {
		c.analyzer = a
	}
}

// WithWriter sets the report writer.
func WithWriter(w report.Writer) Option {
	return func(c *Collector) {
		c.writer = w
	}
}

// WithServiceProber sets the live service backend.
func WithServiceProber(p ServiceProber) Option {
	return func(c *Collector) {
		c.prober = p
	}
}

// WithFirewall overrides the firewall strategy selected from the host facts.
func WithFirewall(s firewall.Strategy) Option {
	return func(c *Collector) {
		c.firewall = s
	}
}

// WithClock sets the time source for the report timestamp.
func WithClock(now func() time.Time) Option {
	return func(c *Collector) {
		c.now = now
	}
}

// New returns a Collector for a host described by facts. A nil cfg uses
// config.Default(). Collaborators not set by options are derived from cfg
// and facts.
func New(cfg *config.Config, facts osinfo.HostFacts, runner shell.Runner, opts ...Option) *Collector {
	if cfg == nil {
		cfg = config.Default()
	}
	if runner == nil {
		runner = shell.New(cfg.CommandTimeout)
	}

	c := &Collector{
		cfg:      cfg,
		facts:    facts,
		runner:   runner,
		firewall: firewall.Select(facts),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.analyzer == nil {
		c.analyzer = packages.NewAnalyzer(runner, facts.OSFamily)
	}
	if c.writer == nil {
		c.writer = report.NewFileWriter(cfg.ReportPath, "")
	}
	if c.prober == nil {
		if cfg.ServiceBackend == config.BackendSystemd {
			c.prober = systemd.NewProber()
		} else {
			c.prober = &commandProber{runner: runner, serviceCmd: firewall.ServiceCommand(facts)}
		}
	}
	return c
}

// Facts returns the host facts the collector was built with.
func (c *Collector) Facts() osinfo.HostFacts {
	return c.facts
}

// Register fills r with the host check results. Expensive checks are
// skipped when componentsMapped or commandsInProgress is set, or when the
// host family does not support them.
func (c *Collector) Register(ctx context.Context, r *HostReport, componentsMapped, commandsInProgress bool) {
	slog.Info("collecting host check",
		slog.Bool("componentsMapped", componentsMapped),
		slog.Bool("commandsInProgress", commandsInProgress),
		slog.String("family", string(c.facts.OSFamily)))

	r.HostHealth = HostHealth{}

	start := time.Now()
	procs, err := c.JavaProcs(ctx)
	c.degraded(checkJavaProcs, err)
	r.HostHealth.ActiveJavaProcs = procs
	observe(checkJavaProcs, start)

	start = time.Now()
	r.HostHealth.LiveServices = c.CheckLiveServices(ctx, c.cfg.LiveServices)
	observe(checkLiveServices, start)

	start = time.Now()
	r.Umask = strconv.Itoa(c.UMask())
	observe(checkUmask, start)

	start = time.Now()
	running, err := c.CheckFirewall(ctx)
	if err != nil {
		slog.Error("firewall probe failed",
			slog.String("strategy", c.firewall.String()),
			slog.String("error", err.Error()))
		checkFailures.WithLabelValues(checkFirewall).Inc()
	}
	r.IptablesIsRunning = running
	observe(checkFirewall, start)

	if componentsMapped || commandsInProgress || !c.facts.SupportsDetailedCheck() {
		r.ExistingRepos = []string{defaults.ResultUnavailable}
		r.InstalledPackages = []packages.Detail{}
		r.Alternatives = []AlternativesEntry{}
		r.StackFoldersAndFiles = []DirEntry{}
		r.ExistingUsers = []UserCheckResult{}
		registerTotal.WithLabelValues(modeLight).Inc()
	} else {
		c.registerDetailed(ctx, r)
		registerTotal.WithLabelValues(modeFull).Inc()
	}

	r.HostHealth.AgentTimeStampAtReporting = c.now().UnixMilli()
}

func (c *Collector) registerDetailed(ctx context.Context, r *HostReport) {
	start := time.Now()
	alternatives, err := c.EtcAlternativesConf(c.cfg.ProjectNames)
	c.degraded(checkAlternatives, err)
	r.Alternatives = alternatives
	observe(checkAlternatives, start)

	start = time.Now()
	users, err := c.CheckUsers(c.cfg.Users)
	c.degraded(checkUsers, err)
	r.ExistingUsers = users
	observe(checkUsers, start)

	start = time.Now()
	dirs, err := c.CheckFolders(c.cfg.Dirs, c.cfg.ProjectNames, users)
	c.degraded(checkFolders, err)
	r.StackFoldersAndFiles = dirs
	observe(checkFolders, start)

	start = time.Now()
	details, repos := c.stackPackages(ctx)
	r.InstalledPackages = details
	r.ExistingRepos = c.ReposToRemove(repos, c.cfg.IgnoreRepos)
	observe(checkPackages, start)

	start = time.Now()
	c.degraded(checkPersist, c.writer.WriteHostCheckFile(ctx, r))
	observe(checkPersist, start)
}

// stackPackages returns the installed stack packages and the repositories
// that provide them.
func (c *Collector) stackPackages(ctx context.Context) ([]packages.Detail, []string) {
	installed, err := c.analyzer.AllInstalledPackages(ctx)
	c.degraded(checkPackages, err)
	available, err := c.analyzer.AllAvailablePackages(ctx)
	c.degraded(checkPackages, err)

	all := make([]packages.Package, 0, len(installed)+len(available))
	all = append(all, installed...)
	all = append(all, available...)

	repos := c.analyzer.GetInstalledRepos(c.cfg.Packages, all, c.cfg.IgnorePackagesFromRepos)
	byRepo := c.analyzer.GetInstalledPkgsByRepo(repos, c.cfg.IgnorePackages, installed)
	byName := c.analyzer.GetInstalledPkgsByNames(c.cfg.AdditionalPackages, installed)

	details := c.analyzer.GetPackageDetails(installed, packages.Union(byRepo, byName))
	if details == nil {
		details = []packages.Detail{}
	}
	return details, repos
}

// ReposToRemove returns the repos not matching any ignore pattern.
func (c *Collector) ReposToRemove(repos, ignore []string) []string {
	out := make([]string, 0, len(repos))
	for _, repo := range repos {
		keep := true
		for _, pattern := range ignore {
			if c.analyzer.NameMatch(pattern, repo) {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, repo)
		}
	}
	return out
}

// CheckFirewall runs the selected firewall strategy.
func (c *Collector) CheckFirewall(ctx context.Context) (bool, error) {
	return firewall.Check(ctx, c.runner, c.firewall)
}

func (c *Collector) degraded(check string, err error) {
	if err == nil {
		return
	}
	slog.Warn("host check degraded", slog.String("check", check), slog.String("error", err.Error()))
	checkFailures.WithLabelValues(check).Inc()
}
