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
	"golang.org/x/sys/unix"
)

// UMask returns the process umask. It is read once per Collector; reading
// it means briefly setting it to zero.
func (c *Collector) UMask() int {
	if !c.umaskCached {
		old := unix.Umask(0)
		unix.Umask(old)
		c.umask = old
		c.umaskCached = true
	}
	return c.umask
}
