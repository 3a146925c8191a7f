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

package packages

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	osinfo "github.com/NVIDIA/hostcheck/pkg/collector/os"
	"github.com/NVIDIA/hostcheck/pkg/shell"
)

const (
	yumInstalledHeader = "Installed Packages"
	yumAvailableHeader = "Available Packages"
	yumDefaultSkip     = 3
	zypperSeparator    = "--+--"
	dpkgRepo           = "installed"
)

var (
	yumInstalled    = []string{"yum", "list", "installed"}
	yumAvailable    = []string{"yum", "list", "available"}
	zypperInstalled = []string{"zypper", "search", "--installed-only", "--details"}
	zypperAvailable = []string{"zypper", "search", "--uninstalled-only", "--details"}
	dpkgInstalled   = []string{"dpkg-query", "-W", "-f", "${Package} ${Version}\n"}
)

// CommandAnalyzer is the Analyzer backed by the host's package tool.
type CommandAnalyzer struct {
	runner shell.Runner
	family osinfo.Family
}

// NewAnalyzer returns an Analyzer for hosts of the given family.
func NewAnalyzer(runner shell.Runner, family osinfo.Family) *CommandAnalyzer {
	return &CommandAnalyzer{runner: runner, family: family}
}

// AllInstalledPackages lists installed packages.
func (a *CommandAnalyzer) AllInstalledPackages(ctx context.Context) ([]Package, error) {
	switch a.family {
	case osinfo.FamilySuse:
		return a.list(ctx, zypperInstalled, parseZypper)
	case osinfo.FamilyRedHat:
		return a.list(ctx, yumInstalled, func(out string) []Package {
			return parseYum(out, yumInstalledHeader)
		})
	case osinfo.FamilyDebian:
		return a.list(ctx, dpkgInstalled, parseDpkg)
	default:
		slog.Debug("no package tool for family", slog.String("family", string(a.family)))
		return []Package{}, nil
	}
}

// AllAvailablePackages lists packages available from configured
// repositories but not installed. Debian hosts report none.
func (a *CommandAnalyzer) AllAvailablePackages(ctx context.Context) ([]Package, error) {
	switch a.family {
	case osinfo.FamilySuse:
		return a.list(ctx, zypperAvailable, parseZypper)
	case osinfo.FamilyRedHat:
		return a.list(ctx, yumAvailable, func(out string) []Package {
			return parseYum(out, yumAvailableHeader)
		})
	default:
		return []Package{}, nil
	}
}

// GetInstalledRepos implements Analyzer.
func (a *CommandAnalyzer) GetInstalledRepos(hintPackages []string, allPackages []Package, ignoreRepos []string) []string {
	return GetInstalledRepos(hintPackages, allPackages, ignoreRepos)
}

// GetInstalledPkgsByRepo implements Analyzer.
func (a *CommandAnalyzer) GetInstalledPkgsByRepo(repos []string, ignorePackages []string, installed []Package) []string {
	return GetInstalledPkgsByRepo(repos, ignorePackages, installed)
}

// GetInstalledPkgsByNames implements Analyzer.
func (a *CommandAnalyzer) GetInstalledPkgsByNames(pkgNames []string, installed []Package) []string {
	return GetInstalledPkgsByNames(pkgNames, installed)
}

// GetPackageDetails implements Analyzer.
func (a *CommandAnalyzer) GetPackageDetails(installed []Package, found []string) []Detail {
	return GetPackageDetails(installed, found)
}

// NameMatch implements Analyzer.
func (a *CommandAnalyzer) NameMatch(lookupName, actualName string) bool {
	return NameMatch(lookupName, actualName)
}

func (a *CommandAnalyzer) list(ctx context.Context, argv []string, parse func(string) []Package) ([]Package, error) {
	res, err := a.runner.Run(ctx, argv...)
	if err != nil {
		return []Package{}, fmt.Errorf("failed to list packages: %w", err)
	}
	if !res.Success() {
		return []Package{}, fmt.Errorf("%s exited with %d: %s",
			strings.Join(argv[:3], " "), res.ExitCode, strings.TrimSpace(res.Stderr))
	}
	pkgs := parse(res.Stdout)
	slog.Debug("listed packages", slog.String("cmd", argv[0]), slog.Int("count", len(pkgs)))
	return pkgs, nil
}

// parseYum reads "yum list" output. Entries may wrap across lines, so the
// body after the header is read as a stream of name, version, repo triples.
func parseYum(out, header string) []Package {
	lines := strings.Split(out, "\n")
	skip := yumDefaultSkip
	for i, line := range lines {
		if strings.Contains(line, header) {
			skip = i + 1
			break
		}
	}
	if skip > len(lines) {
		return []Package{}
	}

	var items []string
	for _, line := range lines[skip:] {
		items = append(items, strings.Fields(line)...)
	}

	pkgs := make([]Package, 0, len(items)/3)
	for i := 0; i+2 < len(items); i += 3 {
		pkgs = append(pkgs, Package{
			Name:    items[i],
			Version: items[i+1],
			Repo:    strings.TrimPrefix(items[i+2], "@"),
		})
	}
	return pkgs
}

// parseZypper reads the table printed by "zypper search --details":
//
//	S | Name | Type    | Version | Arch   | Repository
//	--+------+---------+---------+--------+-----------
//	i | curl | package | 7.60.0  | x86_64 | Main
func parseZypper(out string) []Package {
	lines := strings.Split(out, "\n")
	start := -1
	for i, line := range lines {
		if strings.Contains(line, zypperSeparator) {
			start = i + 1
			break
		}
	}
	if start < 0 {
		return []Package{}
	}

	pkgs := make([]Package, 0, len(lines)-start)
	for _, line := range lines[start:] {
		cols := strings.Split(strings.TrimSpace(line), "|")
		if len(cols) < 6 {
			continue
		}
		pkgs = append(pkgs, Package{
			Name:    strings.TrimSpace(cols[1]),
			Version: strings.TrimSpace(cols[3]),
			Repo:    strings.TrimSpace(cols[5]),
		})
	}
	return pkgs
}

// parseDpkg reads "name version" lines. dpkg does not record the source
// repository, so every package is attributed to "installed".
func parseDpkg(out string) []Package {
	pkgs := make([]Package, 0)
	for _, line := range strings.Split(out, "\n") {
		f := strings.Fields(line)
		if len(f) < 2 {
			continue
		}
		pkgs = append(pkgs, Package{Name: f[0], Version: f[1], Repo: dpkgRepo})
	}
	return pkgs
}
