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

// Package shelltest provides a scripted shell.Runner for tests.
package shelltest

import (
	"context"
	"strings"
	"sync"

	"github.com/NVIDIA/hostcheck/pkg/errors"
	"github.com/NVIDIA/hostcheck/pkg/shell"
)

// Response is the scripted outcome of one command line.
type Response struct {
	Result shell.Result
	Err    error
}

// Runner answers commands from a table keyed by the space-joined argv.
// Unknown commands behave like a missing executable.
type Runner struct {
	Responses map[string]Response

	mu    sync.Mutex
	calls []string
}

// New returns a Runner answering from responses.
func New(responses map[string]Response) *Runner {
	return &Runner{Responses: responses}
}

// Run implements shell.Runner.
func (r *Runner) Run(_ context.Context, argv ...string) (shell.Result, error) {
	line := strings.Join(argv, " ")

	r.mu.Lock()
	r.calls = append(r.calls, line)
	r.mu.Unlock()

	resp, ok := r.Responses[line]
	if !ok {
		return shell.Result{ExitCode: shell.ExitCodeNotFound},
			errors.New(errors.ErrCodeNotFound, "executable not found: "+argv[0])
	}
	return resp.Result, resp.Err
}

// Calls returns the command lines run so far.
func (r *Runner) Calls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.calls...)
}

// Stdout is a Response for a successful command printing out.
func Stdout(out string) Response {
	return Response{Result: shell.Result{Stdout: out}}
}

// Exit is a Response for a command exiting with code and the given streams.
func Exit(code int, stdout, stderr string) Response {
	return Response{Result: shell.Result{ExitCode: code, Stdout: stdout, Stderr: stderr}}
}
