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

// Package hardware parses disk usage reported by df.
package hardware

import (
	"strings"
)

// dfFields is the column count of a "df -kPT" row.
const dfFields = 7

// MountInfo describes one mounted filesystem as reported by "df -kPT".
// Sizes are 1K blocks, kept as printed.
type MountInfo struct {
	Available  string `json:"available,omitempty" yaml:"available,omitempty"`
	Used       string `json:"used,omitempty" yaml:"used,omitempty"`
	Percent    string `json:"percent,omitempty" yaml:"percent,omitempty"`
	Size       string `json:"size,omitempty" yaml:"size,omitempty"`
	Type       string `json:"type,omitempty" yaml:"type,omitempty"`
	Device     string `json:"device,omitempty" yaml:"device,omitempty"`
	Mountpoint string `json:"mountpoint,omitempty" yaml:"mountpoint,omitempty"`
}

// IsEmpty reports whether no mount was parsed.
func (m MountInfo) IsEmpty() bool {
	return m == MountInfo{}
}

// ExtractMountInfo parses one data row of "df -kPT" output:
//
//	/dev/sda1      ext4  41152736 8123456  30915844      21% /
//
// The second value is false when the line does not have exactly seven fields.
// That rejects the header row and mount points containing spaces.
func ExtractMountInfo(line string) (MountInfo, bool) {
	f := strings.Fields(line)
	if len(f) != dfFields {
		return MountInfo{}, false
	}
	return MountInfo{
		Device:     f[0],
		Type:       f[1],
		Size:       f[2],
		Used:       f[3],
		Available:  f[4],
		Percent:    f[5],
		Mountpoint: f[6],
	}, true
}

// ParseDF parses full "df -kPT" output, skipping the header and any row
// that does not parse.
func ParseDF(output string) []MountInfo {
	lines := strings.Split(strings.TrimSpace(output), "\n")
	mounts := make([]MountInfo, 0, len(lines))
	for i, line := range lines {
		if i == 0 && strings.HasPrefix(line, "Filesystem") {
			continue
		}
		if m, ok := ExtractMountInfo(line); ok {
			mounts = append(mounts, m)
		}
	}
	return mounts
}

// LastMount parses the final row of "df -kPT" output, the one describing
// the queried path.
func LastMount(output string) (MountInfo, bool) {
	output = strings.TrimRight(output, "\n")
	if output == "" {
		return MountInfo{}, false
	}
	lines := strings.Split(output, "\n")
	return ExtractMountInfo(lines[len(lines)-1])
}
