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

// Package defaults provides centralized constants for the host check tooling.
//
// This package defines timeouts, well-known host paths and sentinel values
// used across the codebase. Centralizing these values keeps the collector,
// the CLI and the configuration loader consistent.
//
// # Usage
//
//	ctx, cancel := context.WithTimeout(ctx, defaults.CommandTimeout)
//	defer cancel()
//
// # Timeout Guidelines
//
//   - OS commands (service status, df, package tools): 60s
//   - Whole check command: 10m, covers slow package managers
package defaults
