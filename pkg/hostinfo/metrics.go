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
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Check names used as metric labels.
const (
	checkJavaProcs    = "javaProcs"
	checkLiveServices = "liveServices"
	checkUmask        = "umask"
	checkFirewall     = "firewall"
	checkAlternatives = "alternatives"
	checkUsers        = "users"
	checkFolders      = "folders"
	checkPackages     = "packages"
	checkPersist      = "persist"
)

const (
	modeFull  = "full"
	modeLight = "light"
)

var (
	checkDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "hostcheck_check_duration_seconds",
			Help:    "Time taken by individual host checks",
			Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 30, 60},
		},
		[]string{"check"},
	)

	checkFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hostcheck_check_failures_total",
			Help: "Total number of host checks that degraded because of an error",
		},
		[]string{"check"},
	)

	registerTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hostcheck_register_total",
			Help: "Total number of registrations by mode",
		},
		[]string{"mode"}, // full or light
	)
)

func observe(check string, start time.Time) {
	checkDuration.WithLabelValues(check).Observe(time.Since(start).Seconds())
}
