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

// Package packages inventories installed and available OS packages and
// derives the repositories and packages a host check reports.
//
// Package lists are gathered by running the family's package tool:
//
//	redhat  yum list installed | yum list available
//	suse    zypper search --installed-only | --uninstalled-only --details
//	debian  dpkg-query -W (installed only)
//
// Each entry is a Package record of name, version and repository. The
// selection helpers (GetInstalledRepos, GetInstalledPkgsByRepo,
// GetInstalledPkgsByNames, GetPackageDetails) are pure functions over those
// records, matched with NameMatch.
package packages
