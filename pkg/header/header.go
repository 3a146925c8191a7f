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

// Package header provides the Kubernetes-style header stamped on documents
// written by the host check tooling (persisted reports, printed facts).
package header

import (
	"time"

	"github.com/google/uuid"
)

// Kind represents the type of a hostcheck document.
type Kind string

// Valid Kind constants.
const (
	KindHostCheck      Kind = "HostCheck"
	KindHostFacts      Kind = "HostFacts"
	KindDiskUsage      Kind = "DiskUsage"
	KindFirewallStatus Kind = "FirewallStatus"
)

// Metadata keys set by Init.
const (
	MetadataTimestamp = "timestamp"
	MetadataVersion   = "version"
	MetadataID        = "id"
)

// String returns the string representation of the Kind.
func (k Kind) String() string {
	return string(k)
}

// IsValid checks if the Kind is one of the recognized kinds.
func (k Kind) IsValid() bool {
	switch k {
	case KindHostCheck, KindHostFacts, KindDiskUsage, KindFirewallStatus:
		return true
	default:
		return false
	}
}

// Header contains metadata and versioning information for hostcheck documents.
type Header struct {
	// Kind is the type of the document.
	Kind Kind `json:"kind,omitempty" yaml:"kind,omitempty"`

	// APIVersion is the schema version of the document.
	APIVersion string `json:"apiVersion,omitempty" yaml:"apiVersion,omitempty"`

	// Metadata contains key-value pairs describing the document.
	Metadata map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// Init sets Kind and APIVersion and resets Metadata to a fresh timestamp,
// a random document id and the tool version when non-empty.
func (h *Header) Init(kind Kind, apiVersion string, version string) {
	h.Kind = kind
	h.APIVersion = apiVersion
	h.Metadata = map[string]string{
		MetadataTimestamp: time.Now().UTC().Format(time.RFC3339),
		MetadataID:        uuid.NewString(),
	}
	if version != "" {
		h.Metadata[MetadataVersion] = version
	}
}

// Set adds a metadata key, initializing the map when needed.
func (h *Header) Set(key, value string) {
	if h.Metadata == nil {
		h.Metadata = make(map[string]string)
	}
	h.Metadata[key] = value
}
