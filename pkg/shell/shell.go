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

// Package shell runs host commands and captures their output.
//
// A non-zero exit status is not an error: callers inspect Result.ExitCode
// and decide what it means for their check. Errors are reserved for commands
// that could not be run at all or that exceeded the timeout:
//
//	r := shell.New(defaults.CommandTimeout)
//	res, err := r.Run(ctx, "df", "-kPT", "/var")
//	if err != nil {
//	    return err
//	}
//	if res.ExitCode != 0 {
//	    // command failed, res.Stderr says why
//	}
package shell

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/NVIDIA/hostcheck/pkg/defaults"
	"github.com/NVIDIA/hostcheck/pkg/errors"
	utilexec "k8s.io/utils/exec"
)

// ExitCodeNotFound is reported when the executable does not exist.
const ExitCodeNotFound = 127

// Result holds the outcome of a command that ran.
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Success reports whether the command exited with status 0.
func (r Result) Success() bool {
	return r.ExitCode == 0
}

// Runner runs a command given as argv.
type Runner interface {
	Run(ctx context.Context, argv ...string) (Result, error)
}

// Option configures an Executor.
type Option func(*Executor)

// WithExec sets the exec implementation, typically a fake in tests.
func WithExec(e utilexec.Interface) Option {
	return func(x *Executor) {
		x.exec = e
	}
}

// Executor is the Runner backed by k8s.io/utils/exec.
type Executor struct {
	exec    utilexec.Interface
	timeout time.Duration
}

// New returns an Executor enforcing timeout on every command.
// A non-positive timeout falls back to defaults.CommandTimeout.
func New(timeout time.Duration, opts ...Option) *Executor {
	if timeout <= 0 {
		timeout = defaults.CommandTimeout
	}
	x := &Executor{
		exec:    utilexec.New(),
		timeout: timeout,
	}
	for _, opt := range opts {
		opt(x)
	}
	return x
}

// Run executes argv, capturing stdout and stderr.
func (x *Executor) Run(ctx context.Context, argv ...string) (Result, error) {
	if len(argv) == 0 || argv[0] == "" {
		return Result{}, errors.New(errors.ErrCodeInvalidRequest, "empty command")
	}
	if err := ctx.Err(); err != nil {
		return Result{}, fmt.Errorf("failed to run %s: %w", argv[0], err)
	}

	runCtx, cancel := context.WithTimeout(ctx, x.timeout)
	defer cancel()

	var stdout, stderr bytes.Buffer
	cmd := x.exec.CommandContext(runCtx, argv[0], argv[1:]...)
	cmd.SetStdout(&stdout)
	cmd.SetStderr(&stderr)

	slog.Debug("running command", slog.String("cmd", strings.Join(argv, " ")))
	err := cmd.Run()

	res := Result{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}

	if stderrors.Is(runCtx.Err(), context.DeadlineExceeded) {
		res.ExitCode = -1
		return res, errors.WrapWithContext(errors.ErrCodeTimeout, "command timed out", runCtx.Err(),
			map[string]any{"command": argv[0], "timeout": x.timeout.String()})
	}
	if err == nil {
		return res, nil
	}

	var exitErr utilexec.ExitError
	if stderrors.As(err, &exitErr) {
		res.ExitCode = exitErr.ExitStatus()
		return res, nil
	}
	if stderrors.Is(err, utilexec.ErrExecutableNotFound) {
		res.ExitCode = ExitCodeNotFound
		return res, errors.WrapWithContext(errors.ErrCodeNotFound, "executable not found", err,
			map[string]any{"command": argv[0]})
	}

	res.ExitCode = -1
	return res, errors.Wrap(errors.ErrCodeInternal, fmt.Sprintf("failed to run %s", argv[0]), err)
}
