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

package os

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/NVIDIA/hostcheck/pkg/collector/file"
	"github.com/NVIDIA/hostcheck/pkg/version"
)

var (
	filePathReleasePrimary  = "/etc/os-release"
	filePathReleaseFallback = "/usr/lib/os-release"
)

// Family groups distributions sharing a package manager and service layout.
type Family string

const (
	FamilyRedHat  Family = "redhat"
	FamilyDebian  Family = "debian"
	FamilySuse    Family = "suse"
	FamilyUnknown Family = "unknown"
)

// OS types with special handling.
const (
	TypeUbuntu   = "ubuntu"
	TypeDebian   = "debian"
	TypeFedora   = "fedora"
	TypeRedHat   = "redhat"
	TypeSuse     = "suse"
	TypeOpenSuse = "opensuse"
	TypeSles     = "sles"
)

var familyByType = map[string]Family{
	TypeRedHat:   FamilyRedHat,
	"centos":     FamilyRedHat,
	TypeFedora:   FamilyRedHat,
	"rocky":      FamilyRedHat,
	"almalinux":  FamilyRedHat,
	"ol":         FamilyRedHat,
	"amzn":       FamilyRedHat,
	TypeUbuntu:   FamilyDebian,
	TypeDebian:   FamilyDebian,
	TypeSuse:     FamilySuse,
	TypeOpenSuse: FamilySuse,
	TypeSles:     FamilySuse,
}

// HostFacts describes the local operating system. It is computed once and
// threaded through the components that depend on it.
type HostFacts struct {
	OSType       string `json:"osType" yaml:"osType"`
	OSFamily     Family `json:"osFamily" yaml:"osFamily"`
	OSVersion    string `json:"osVersion,omitempty" yaml:"osVersion,omitempty"`
	MajorVersion int    `json:"majorVersion" yaml:"majorVersion"`
	PrettyName   string `json:"prettyName,omitempty" yaml:"prettyName,omitempty"`
}

// SupportsDetailedCheck reports whether the expensive host checks are
// available on this family. They are not on SUSE.
func (f HostFacts) SupportsDetailedCheck() bool {
	return f.OSFamily != FamilySuse
}

// Unknown returns facts for a host whose release could not be read.
func Unknown() HostFacts {
	return HostFacts{OSType: "unknown", OSFamily: FamilyUnknown}
}

// Detect reads the os-release file and derives the host facts.
func Detect(ctx context.Context) (HostFacts, error) {
	if err := ctx.Err(); err != nil {
		return Unknown(), err
	}

	root := filePathReleasePrimary
	if _, err := os.Stat(root); os.IsNotExist(err) {
		root = filePathReleaseFallback
	}
	return DetectFrom(root)
}

// DetectFrom derives host facts from the os-release file at path.
//
//	NAME="Ubuntu"
//	ID=ubuntu
//	VERSION_ID="22.04"
//	PRETTY_NAME="Ubuntu 22.04.4 LTS"
func DetectFrom(path string) (HostFacts, error) {
	parser := file.NewParser(
		file.WithVTrimChars(`"'`),
		file.WithSkipEmptyValues(true),
	)

	release, err := parser.GetMap(path)
	if err != nil {
		return Unknown(), fmt.Errorf("failed to read os release from %s: %w", path, err)
	}

	facts := FactsFromRelease(release)
	slog.Debug("detected host facts",
		slog.String("type", facts.OSType),
		slog.String("family", string(facts.OSFamily)),
		slog.Int("major", facts.MajorVersion))
	return facts, nil
}

// FactsFromRelease maps os-release key-value pairs to HostFacts.
func FactsFromRelease(release map[string]string) HostFacts {
	osType := normalizeType(release["ID"])
	facts := HostFacts{
		OSType:       osType,
		OSFamily:     FamilyUnknown,
		OSVersion:    release["VERSION_ID"],
		MajorVersion: version.MajorOf(release["VERSION_ID"]),
		PrettyName:   release["PRETTY_NAME"],
	}

	if fam, ok := familyByType[osType]; ok {
		facts.OSFamily = fam
		return facts
	}

	for _, like := range strings.Fields(release["ID_LIKE"]) {
		if fam, ok := familyByType[normalizeType(like)]; ok {
			facts.OSFamily = fam
			break
		}
	}
	if osType == "" {
		facts.OSType = "unknown"
	}
	return facts
}

func normalizeType(id string) string {
	id = strings.ToLower(strings.TrimSpace(id))
	switch {
	case id == "rhel":
		return TypeRedHat
	case strings.HasPrefix(id, "opensuse"):
		return TypeOpenSuse
	case strings.HasPrefix(id, "sled"):
		return TypeSles
	default:
		return id
	}
}
