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

// Package file parses the line-oriented text files the host check reads:
// key=value files such as /etc/os-release and colon-separated databases
// such as /etc/passwd.
//
// # Usage
//
// Key-value files:
//
//	p := file.NewParser(file.WithVTrimChars(`"'`), file.WithSkipEmptyValues(true))
//	release, err := p.GetMap("/etc/os-release")
//
// Field-separated records:
//
//	p := file.NewParser(file.WithFieldDelimiter(":"))
//	records, err := p.GetRecords("/etc/passwd")
//	for _, r := range records {
//	    fmt.Println(r[0], r[5]) // user name, home directory
//	}
//
// # Error Handling
//
// Errors wrap the underlying os error, so callers can test for
// os.ErrNotExist and os.ErrPermission with errors.Is.
package file
