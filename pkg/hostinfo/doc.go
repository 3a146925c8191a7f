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

// Package hostinfo gathers the facts a cluster coordinator needs to decide
// whether a host may join a managed cluster.
//
// A Collector runs a fixed, sequential battery of checks and merges their
// results into a HostReport. Cheap checks always run:
//   - running Java processes, read from /proc
//   - live service status
//   - process umask
//   - firewall state
//
// Expensive checks run only for hosts that have no components mapped, no
// commands in progress and an OS family supporting detailed checks:
//   - alternatives links
//   - user home directories
//   - leftover stack folders and files
//   - installed stack packages and their repositories
//
// When they run, the report is also persisted through a report.Writer. When
// they do not, existingRepos carries the "unable_to_determine" sentinel and
// the other gated fields are empty lists.
//
// Register never fails. Each check degrades to an empty or sentinel value,
// logs the problem and counts it in hostcheck_check_failures_total:
//
//	c := hostinfo.New(cfg, facts, shell.New(cfg.CommandTimeout))
//	var r hostinfo.HostReport
//	c.Register(ctx, &r, false, false)
package hostinfo
