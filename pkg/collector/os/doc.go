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

// Package os detects the operating system type, family and major version of
// the local host.
//
// Detection reads /etc/os-release, falling back to /usr/lib/os-release per
// the freedesktop.org specification, and is meant to run once at process
// start. The resulting HostFacts value is passed to the components that
// branch on the platform: the firewall strategy, the live service probe,
// the package analyzer and the detailed-check gate of the collector.
//
// # Families
//
//   - redhat: rhel, centos, fedora, rocky, almalinux, ol, amzn
//   - debian: debian, ubuntu
//   - suse: sles, opensuse-*, suse
//
// Anything else is reported as family "unknown". ID_LIKE is consulted when
// ID alone is not conclusive.
//
// # Usage
//
//	facts, err := os.Detect(ctx)
//	if err != nil {
//	    slog.Warn("os detection failed", "error", err)
//	}
//	if facts.SupportsDetailedCheck() {
//	    // run package inventory and filesystem scans
//	}
package os
