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
	"github.com/NVIDIA/hostcheck/pkg/packages"
)

// ServiceStatus is the outcome of a live service probe.
type ServiceStatus string

const (
	ServiceHealthy   ServiceStatus = "Healthy"
	ServiceUnhealthy ServiceStatus = "Unhealthy"
	ServiceUnknown   ServiceStatus = "UNKNOWN"
)

// UserStatus is the outcome of a home directory check.
type UserStatus string

const (
	UserAvailable      UserStatus = "Available"
	UserInvalidHomeDir UserStatus = "Invalid home directory"
)

// DirType classifies a filesystem path.
type DirType string

const (
	DirNotExist  DirType = "not_exist"
	DirSymLink   DirType = "sym_link"
	DirDirectory DirType = "directory"
	DirFile      DirType = "file"
	DirUnknown   DirType = "unknown"
)

// HostReport is the result of one registration.
type HostReport struct {
	HostHealth           HostHealth          `json:"hostHealth" yaml:"hostHealth"`
	Umask                string              `json:"umask" yaml:"umask"`
	IptablesIsRunning    bool                `json:"iptablesIsRunning" yaml:"iptablesIsRunning"`
	ExistingRepos        []string            `json:"existingRepos" yaml:"existingRepos"`
	InstalledPackages    []packages.Detail   `json:"installedPackages" yaml:"installedPackages"`
	Alternatives         []AlternativesEntry `json:"alternatives" yaml:"alternatives"`
	StackFoldersAndFiles []DirEntry          `json:"stackFoldersAndFiles" yaml:"stackFoldersAndFiles"`
	ExistingUsers        []UserCheckResult   `json:"existingUsers" yaml:"existingUsers"`
}

// HostHealth holds the always-collected runtime state.
type HostHealth struct {
	ActiveJavaProcs []ProcessRecord      `json:"activeJavaProcs" yaml:"activeJavaProcs"`
	LiveServices    []ServiceCheckResult `json:"liveServices" yaml:"liveServices"`

	// AgentTimeStampAtReporting is Unix milliseconds, set when the report completes.
	AgentTimeStampAtReporting int64 `json:"agentTimeStampAtReporting" yaml:"agentTimeStampAtReporting"`
}

// ProcessRecord describes a running Java process.
type ProcessRecord struct {
	PID     int    `json:"pid" yaml:"pid"`
	Command string `json:"command" yaml:"command"`
	User    string `json:"user" yaml:"user"`
	Hadoop  bool   `json:"hadoop" yaml:"hadoop"`
}

// ServiceCheckResult is the status of one live service.
type ServiceCheckResult struct {
	Name   string        `json:"name" yaml:"name"`
	Status ServiceStatus `json:"status" yaml:"status"`
	Desc   string        `json:"desc" yaml:"desc"`
}

// UserCheckResult is the home directory state of a configured user.
type UserCheckResult struct {
	Name    string     `json:"name" yaml:"name"`
	HomeDir string     `json:"homeDir" yaml:"homeDir"`
	Status  UserStatus `json:"status" yaml:"status"`
}

// DirEntry is an existing stack path.
type DirEntry struct {
	Type DirType `json:"type" yaml:"type"`
	Name string  `json:"name" yaml:"name"`
}

// AlternativesEntry is an alternatives link and its resolved target.
type AlternativesEntry struct {
	Name   string `json:"name" yaml:"name"`
	Target string `json:"target" yaml:"target"`
}
