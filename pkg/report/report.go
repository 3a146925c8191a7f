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

// Package report persists host check results.
//
// The file is a YAML document with the standard header followed by the
// report body. It is replaced atomically so a reader never sees a partial
// write:
//
//	kind: HostCheck
//	apiVersion: hostcheck.nvidia.com/v1alpha1
//	metadata:
//	  id: 7d0c...
//	  timestamp: "2025-01-01T00:00:00Z"
//	report:
//	  hostHealth: ...
package report

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/NVIDIA/hostcheck/pkg/errors"
	"github.com/NVIDIA/hostcheck/pkg/header"
	"github.com/NVIDIA/hostcheck/pkg/serializer"
	"gopkg.in/yaml.v3"
)

// APIVersion is the schema version of persisted reports.
const APIVersion = "hostcheck.nvidia.com/v1alpha1"

const filePerm = 0o644

// Writer persists a host check report.
type Writer interface {
	WriteHostCheckFile(ctx context.Context, report any) error
}

// Document is the persisted form of a report.
type Document struct {
	header.Header `json:",inline" yaml:",inline"`

	Report any `json:"report" yaml:"report"`
}

// FileWriter writes reports to a fixed path.
type FileWriter struct {
	path    string
	version string
}

// NewFileWriter returns a Writer targeting path. The tool version, when
// set, is recorded in the document metadata.
func NewFileWriter(path, version string) *FileWriter {
	return &FileWriter{path: path, version: version}
}

// Path returns the target file.
func (w *FileWriter) Path() string {
	return w.path
}

// WriteHostCheckFile writes report to the target path, replacing any
// previous file.
func (w *FileWriter) WriteHostCheckFile(ctx context.Context, report any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if w.path == "" {
		return errors.New(errors.ErrCodeInvalidRequest, "report path is empty")
	}

	doc := Document{Report: report}
	doc.Init(header.KindHostCheck, APIVersion, w.version)

	data, err := serializer.Marshal(serializer.FormatYAML, doc)
	if err != nil {
		return fmt.Errorf("failed to marshal host check report: %w", err)
	}

	if err := writeAtomic(w.path, data); err != nil {
		return errors.WrapWithContext(errors.ErrCodeInternal, "failed to write host check report", err,
			map[string]any{"path": w.path})
	}

	slog.Info("host check report written", slog.String("path", w.path), slog.Int("bytes", len(data)))
	return nil
}

func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		// no-op after a successful rename
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Chmod(filePerm); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to chmod temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	return os.Rename(tmpName, path)
}

// ReadFile loads a persisted report. The body is decoded generically.
func ReadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeNotFound, "host check report not found", err)
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidRequest, "malformed host check report", err)
	}
	return &doc, nil
}
