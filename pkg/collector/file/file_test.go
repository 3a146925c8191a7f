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
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	return path
}

func TestNewParser_Defaults(t *testing.T) {
	p := NewParser()
	if p.delimiter != "\n" {
		t.Errorf("delimiter = %q", p.delimiter)
	}
	if p.maxSize != 1<<20 {
		t.Errorf("maxSize = %d", p.maxSize)
	}
	if !p.skipComments {
		t.Error("skipComments should default to true")
	}
	if p.kvDelimiter != "=" || p.fieldDelimiter != ":" {
		t.Errorf("delimiters = %q %q", p.kvDelimiter, p.fieldDelimiter)
	}
}

func TestParser_GetLines(t *testing.T) {
	tests := []struct {
		name    string
		content string
		opts    []Option
		want    []string
	}{
		{
			name:    "skips blanks and comments",
			content: "a\n\n# comment\n  b  \n",
			want:    []string{"a", "b"},
		},
		{
			name:    "keeps comments when disabled",
			content: "#a\nb",
			opts:    []Option{WithSkipComments(false)},
			want:    []string{"#a", "b"},
		},
		{
			name:    "custom delimiter",
			content: "a;b;;c",
			opts:    []Option{WithDelimiter(";")},
			want:    []string{"a", "b", "c"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewParser(tt.opts...).GetLines(writeFile(t, tt.content))
			if err != nil {
				t.Fatalf("GetLines() error = %v", err)
			}
			if strings.Join(got, "|") != strings.Join(tt.want, "|") {
				t.Errorf("GetLines() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParser_GetLines_Errors(t *testing.T) {
	p := NewParser()

	if _, err := p.GetLines(""); err == nil {
		t.Error("expected error for empty path")
	}

	_, err := p.GetLines(filepath.Join(t.TempDir(), "missing"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected os.ErrNotExist, got %v", err)
	}

	small := NewParser(WithMaxSize(4))
	if _, err := small.GetLines(writeFile(t, "too long")); err == nil {
		t.Error("expected size limit error")
	}

	if _, err := p.GetLines(writeFile(t, "\xff\xfe")); err == nil {
		t.Error("expected UTF-8 validation error")
	}
}

func TestParser_GetMap(t *testing.T) {
	content := `NAME="Ubuntu"
ID=ubuntu
VERSION_ID="22.04"
# comment
EMPTY=
MALFORMED
`
	p := NewParser(WithVTrimChars(`"'`), WithSkipEmptyValues(true))
	got, err := p.GetMap(writeFile(t, content))
	if err != nil {
		t.Fatalf("GetMap() error = %v", err)
	}

	want := map[string]string{"NAME": "Ubuntu", "ID": "ubuntu", "VERSION_ID": "22.04"}
	if len(got) != len(want) {
		t.Fatalf("GetMap() = %v, want %v", got, want)
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("%s = %q, want %q", k, got[k], v)
		}
	}
}

func TestParser_GetMap_KeepsEmpty(t *testing.T) {
	got, err := NewParser().GetMap(writeFile(t, "A=1\nB\n"))
	if err != nil {
		t.Fatalf("GetMap() error = %v", err)
	}
	if v, ok := got["B"]; !ok || v != "" {
		t.Errorf("B = %q, %v", v, ok)
	}
}

func TestParser_GetRecords(t *testing.T) {
	content := "root:x:0:0:root:/root:/bin/bash\nhdfs:x:1001:1001::/home/hdfs:/bin/bash\n"
	got, err := NewParser().GetRecords(writeFile(t, content))
	if err != nil {
		t.Fatalf("GetRecords() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 records, got %d", len(got))
	}
	if got[1][0] != "hdfs" || got[1][4] != "" || got[1][5] != "/home/hdfs" {
		t.Errorf("unexpected record %v", got[1])
	}
}

func TestParser_GetMap_CustomDelimiter(t *testing.T) {
	got, err := NewParser(WithKVDelimiter(":")).GetMap(writeFile(t, "Name:\tjava\nUid:\t1001\t1001\t1001\t1001\n"))
	if err != nil {
		t.Fatalf("GetMap() error = %v", err)
	}
	if got["Name"] != "java" {
		t.Errorf("Name = %q, want java", got["Name"])
	}
	if got["Uid"] != "1001\t1001\t1001\t1001" {
		t.Errorf("Uid = %q", got["Uid"])
	}
}

func TestParser_InvalidUTF8(t *testing.T) {
	path := writeFile(t, "jose:x:1500:1500:Jos\xe9:/home/jose:/bin/bash\nhdfs:x:1001:1001::/home/hdfs:/bin/bash\n")

	if _, err := NewParser().GetRecords(path); err == nil {
		t.Fatal("expected error for invalid UTF-8 by default")
	}

	got, err := NewParser(WithAllowInvalidUTF8(true)).GetRecords(path)
	if err != nil {
		t.Fatalf("GetRecords() error = %v", err)
	}
	if len(got) != 2 || got[1][0] != "hdfs" || got[0][4] != "Jos\xe9" {
		t.Errorf("unexpected records %q", got)
	}
}
