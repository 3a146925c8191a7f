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
	"regexp"
	"slices"
	"strings"
)

// NameMatch reports whether any whitespace-separated token of actualName
// starts with lookupName, ignoring case. A "*" in lookupName matches any
// run of characters.
func NameMatch(lookupName, actualName string) bool {
	lookupName = strings.TrimSpace(lookupName)
	if lookupName == "" {
		return false
	}

	var re *regexp.Regexp
	if strings.Contains(lookupName, "*") {
		parts := strings.Split(lookupName, "*")
		for i, p := range parts {
			parts[i] = regexp.QuoteMeta(p)
		}
		re = regexp.MustCompile("(?i)^" + strings.Join(parts, ".*"))
	}

	for _, token := range strings.Fields(actualName) {
		if re != nil {
			if re.MatchString(token) {
				return true
			}
			continue
		}
		if strings.HasPrefix(strings.ToLower(token), strings.ToLower(lookupName)) {
			return true
		}
	}
	return false
}

// GetInstalledRepos returns, in first-seen order, the repositories providing
// a package that starts with one of hintPackages. A hint with a leading "*"
// matches packages containing the rest of the hint past their first
// character. Repositories matching ignoreRepos are left out.
func GetInstalledRepos(hintPackages []string, allPackages []Package, ignoreRepos []string) []string {
	var allRepos []string
	for _, hint := range hintPackages {
		if hint == "" {
			continue
		}
		for _, p := range allPackages {
			if strings.HasPrefix(p.Name, hint) || (hint[0] == '*' && strings.Index(p.Name, hint[1:]) > 0) {
				if !slices.Contains(allRepos, p.Repo) {
					allRepos = append(allRepos, p.Repo)
				}
			}
		}
	}

	repos := make([]string, 0, len(allRepos))
	for _, repo := range allRepos {
		if !matchesAny(ignoreRepos, repo) {
			repos = append(repos, repo)
		}
	}
	return repos
}

// GetInstalledPkgsByRepo returns the sorted names of installed packages
// that came from one of repos, excluding those matching ignorePackages.
func GetInstalledPkgsByRepo(repos []string, ignorePackages []string, installed []Package) []string {
	seen := make(map[string]struct{})
	for _, p := range installed {
		if slices.Contains(repos, p.Repo) && !matchesAny(ignorePackages, p.Name) {
			seen[p.Name] = struct{}{}
		}
	}
	return sortedKeys(seen)
}

// GetInstalledPkgsByNames returns the sorted names of installed packages
// starting with any of pkgNames.
func GetInstalledPkgsByNames(pkgNames []string, installed []Package) []string {
	seen := make(map[string]struct{})
	for _, name := range pkgNames {
		for _, p := range installed {
			if strings.HasPrefix(p.Name, name) {
				seen[p.Name] = struct{}{}
			}
		}
	}
	return sortedKeys(seen)
}

// GetPackageDetails looks up each found package in installed. The last
// listing entry wins when a name is listed more than once. Names not
// installed are skipped.
func GetPackageDetails(installed []Package, found []string) []Detail {
	details := make([]Detail, 0, len(found))
	for _, name := range found {
		var d Detail
		for _, p := range installed {
			if p.Name == name {
				d = Detail{Name: p.Name, Version: p.Version, RepoName: p.Repo}
			}
		}
		if d.Name != "" {
			details = append(details, d)
		}
	}
	return details
}

// Union merges name lists, returning sorted unique names.
func Union(lists ...[]string) []string {
	seen := make(map[string]struct{})
	for _, l := range lists {
		for _, n := range l {
			seen[n] = struct{}{}
		}
	}
	return sortedKeys(seen)
}

func matchesAny(patterns []string, name string) bool {
	for _, p := range patterns {
		if NameMatch(p, name) {
			return true
		}
	}
	return false
}

func sortedKeys(m map[string]struct{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
