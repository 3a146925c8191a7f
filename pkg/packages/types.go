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
)

// Package is one line of a package listing.
type Package struct {
	Name    string
	Version string
	Repo    string
}

// Detail is the reported form of an installed package.
type Detail struct {
	Name     string `json:"name" yaml:"name"`
	Version  string `json:"version" yaml:"version"`
	RepoName string `json:"repoName" yaml:"repoName"`
}

// Analyzer gathers package inventories and selects the packages and
// repositories of interest from them.
type Analyzer interface {
	AllInstalledPackages(ctx context.Context) ([]Package, error)
	AllAvailablePackages(ctx context.Context) ([]Package, error)
	GetInstalledRepos(hintPackages []string, allPackages []Package, ignoreRepos []string) []string
	GetInstalledPkgsByRepo(repos []string, ignorePackages []string, installed []Package) []string
	GetInstalledPkgsByNames(pkgNames []string, installed []Package) []string
	GetPackageDetails(installed []Package, found []string) []Detail
	NameMatch(lookupName, actualName string) bool
}
