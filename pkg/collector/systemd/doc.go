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

// Package systemd probes the runtime state of systemd units over D-Bus.
//
// It is the alternative backend for the live service check. Instead of
// running "service NAME status", the Prober asks systemd for the unit's
// ActiveState property and treats "active" as healthy:
//
//	p := systemd.NewProber()
//	healthy, desc, err := p.Status(ctx, "ntpd")
//
// Unit names without a suffix are taken to be services, so "ntpd" is probed
// as "ntpd.service".
//
// A failure to reach the system bus is returned as an error coded
// SERVICE_UNAVAILABLE. The host check reports such services as unhealthy with
// the error text as description.
package systemd
