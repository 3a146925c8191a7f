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

package defaults

// Host paths read by the collector.
const (
	ProcRoot        = "/proc"
	PasswdFile      = "/etc/passwd"
	AlternativesDir = "/etc/alternatives"
	ReportPath      = "/var/lib/ambari-agent/data/hostcheck.result"
)

// ResultUnavailable is reported for gated checks that were not run.
const ResultUnavailable = "unable_to_determine"
