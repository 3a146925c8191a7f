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

package header

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestHeader_Init(t *testing.T) {
	var h Header
	h.Init(KindHostCheck, "hostcheck.nvidia.com/v1", "v0.3.0")

	if h.Kind != KindHostCheck {
		t.Errorf("Kind = %s, want %s", h.Kind, KindHostCheck)
	}
	if h.APIVersion != "hostcheck.nvidia.com/v1" {
		t.Errorf("APIVersion = %s", h.APIVersion)
	}
	if h.Metadata[MetadataVersion] != "v0.3.0" {
		t.Errorf("version metadata = %q", h.Metadata[MetadataVersion])
	}
	if _, err := time.Parse(time.RFC3339, h.Metadata[MetadataTimestamp]); err != nil {
		t.Errorf("timestamp not RFC3339: %v", err)
	}
	if _, err := uuid.Parse(h.Metadata[MetadataID]); err != nil {
		t.Errorf("id not a uuid: %v", err)
	}
}

func TestHeader_InitWithoutVersion(t *testing.T) {
	var h Header
	h.Init(KindHostFacts, "v1", "")
	if _, ok := h.Metadata[MetadataVersion]; ok {
		t.Error("version should not be set when empty")
	}
}

func TestHeader_Set(t *testing.T) {
	var h Header
	h.Set("host", "node-1")
	if h.Metadata["host"] != "node-1" {
		t.Errorf("Set did not initialize metadata")
	}
}

func TestKind_IsValid(t *testing.T) {
	for _, k := range []Kind{KindHostCheck, KindHostFacts, KindDiskUsage, KindFirewallStatus} {
		if !k.IsValid() {
			t.Errorf("%s should be valid", k)
		}
	}
	if Kind("Recipe").IsValid() {
		t.Error("unknown kind should be invalid")
	}
}
