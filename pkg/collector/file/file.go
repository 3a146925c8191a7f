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

package file

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"unicode/utf8"
)

// Option configures a Parser.
type Option func(*Parser)

// Parser parses line-oriented configuration files.
type Parser struct {
	delimiter       string
	maxSize         int
	skipComments    bool
	kvDelimiter     string
	fieldDelimiter  string
	vTrimChars      string
	skipEmptyValues bool
	allowNonUTF8    bool
}

// WithDelimiter sets the delimiter used to split entries in the file.
// Default is newline ("\n").
func WithDelimiter(delim string) Option {
	return func(p *Parser) {
		p.delimiter = delim
	}
}

// WithMaxSize sets the maximum size (in bytes) of the file to be parsed.
// Default is 1MB.
func WithMaxSize(size int) Option {
	return func(p *Parser) {
		p.maxSize = size
	}
}

// WithSkipComments sets whether lines starting with '#' are dropped.
// Default is true.
func WithSkipComments(skip bool) Option {
	return func(p *Parser) {
		p.skipComments = skip
	}
}

// WithKVDelimiter sets the key-value delimiter used in GetMap.
// Default is "=".
func WithKVDelimiter(kvDelim string) Option {
	return func(p *Parser) {
		p.kvDelimiter = kvDelim
	}
}

// WithFieldDelimiter sets the field delimiter used in GetRecords.
// Default is ":".
func WithFieldDelimiter(delim string) Option {
	return func(p *Parser) {
		p.fieldDelimiter = delim
	}
}

// WithVTrimChars sets characters to trim from values in GetMap.
func WithVTrimChars(trimChars string) Option {
	return func(p *Parser) {
		p.vTrimChars = trimChars
	}
}

// WithSkipEmptyValues drops keys whose value is empty in GetMap.
func WithSkipEmptyValues(skip bool) Option {
	return func(p *Parser) {
		p.skipEmptyValues = skip
	}
}

// WithAllowInvalidUTF8 accepts content that is not valid UTF-8. Bytes are
// kept as read. Default is false.
func WithAllowInvalidUTF8(allow bool) Option {
	return func(p *Parser) {
		p.allowNonUTF8 = allow
	}
}

// NewParser creates a new file parser with the provided options.
func NewParser(opts ...Option) *Parser {
	p := &Parser{
		delimiter:      "\n",
		maxSize:        1 << 20,
		skipComments:   true,
		kvDelimiter:    "=",
		fieldDelimiter: ":",
	}

	for _, opt := range opts {
		opt(p)
	}
	return p
}

// GetMap parses the file at path into key-value pairs.
// Lines without the key-value delimiter map to an empty value.
func (p *Parser) GetMap(path string) (map[string]string, error) {
	lines, err := p.GetLines(path)
	if err != nil {
		return nil, err
	}

	result := make(map[string]string, len(lines))
	for _, line := range lines {
		k, v, found := strings.Cut(line, p.kvDelimiter)
		key := strings.TrimSpace(k)
		value := ""
		if found {
			value = strings.TrimSpace(v)
			if p.vTrimChars != "" {
				value = strings.Trim(value, p.vTrimChars)
			}
		}

		if p.skipEmptyValues && value == "" {
			slog.Debug("skipping entry with empty value", "key", key, "path", path)
			continue
		}
		result[key] = value
	}

	return result, nil
}

// GetRecords parses the file at path into records split on the field delimiter.
// Field values are kept verbatim so empty fields keep their positions.
func (p *Parser) GetRecords(path string) ([][]string, error) {
	lines, err := p.GetLines(path)
	if err != nil {
		return nil, err
	}

	records := make([][]string, 0, len(lines))
	for _, line := range lines {
		records = append(records, strings.Split(line, p.fieldDelimiter))
	}
	return records, nil
}

// GetLines reads the file at path and returns its non-empty, trimmed entries.
// An error is returned if the file cannot be read, exceeds the maximum size,
// or contains invalid UTF-8 content unless WithAllowInvalidUTF8 is set.
func (p *Parser) GetLines(path string) ([]string, error) {
	if path == "" {
		return nil, fmt.Errorf("file path cannot be empty")
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %q: %w", path, err)
	}

	if len(b) > p.maxSize {
		return nil, fmt.Errorf("file %q exceeds maximum size of %d bytes", path, p.maxSize)
	}

	if !p.allowNonUTF8 && !utf8.Valid(b) {
		return nil, fmt.Errorf("content of file %q is not valid UTF-8", path)
	}

	parts := strings.Split(string(b), p.delimiter)
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		clean := strings.TrimSpace(part)
		if clean == "" {
			continue
		}
		if p.skipComments && strings.HasPrefix(clean, "#") {
			continue
		}
		result = append(result, clean)
	}

	return result, nil
}
