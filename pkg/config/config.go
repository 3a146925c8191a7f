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

// Package config holds the host check configuration.
//
// Built-in defaults reproduce the agent's stock checks. A YAML file may
// override any key; keys it does not mention keep their defaults:
//
//	users: [hdfs, yarn, zookeeper]
//	liveServices:
//	  - {redhat: ntpd, suse: ntp, debian: ntp}
//	  - chronyd
//	commandTimeout: 30s
//	serviceBackend: systemd
package config

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"time"

	osinfo "github.com/NVIDIA/hostcheck/pkg/collector/os"
	"github.com/NVIDIA/hostcheck/pkg/defaults"
	"github.com/NVIDIA/hostcheck/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Service backends.
const (
	BackendCommand = "command"
	BackendSystemd = "systemd"
)

// Config lists what the host check looks for and where.
type Config struct {
	ProjectNames            []string      `yaml:"projectNames"`
	LiveServices            []ServiceSpec `yaml:"liveServices"`
	Users                   []string      `yaml:"users"`
	ProcFilter              []string      `yaml:"procFilter"`
	JavaMarker              string        `yaml:"javaMarker"`
	AgentMarker             string        `yaml:"agentMarker"`
	Dirs                    []string      `yaml:"dirs"`
	Packages                []string      `yaml:"packages"`
	AdditionalPackages      []string      `yaml:"additionalPackages"`
	IgnorePackagesFromRepos []string      `yaml:"ignorePackagesFromRepos"`
	IgnorePackages          []string      `yaml:"ignorePackages"`
	IgnoreRepos             []string      `yaml:"ignoreRepos"`
	ProcRoot                string        `yaml:"procRoot"`
	PasswdFile              string        `yaml:"passwdFile"`
	AlternativesDir         string        `yaml:"alternativesDir"`
	ReportPath              string        `yaml:"reportPath"`
	CommandTimeout          time.Duration `yaml:"commandTimeout"`
	ServiceBackend          string        `yaml:"serviceBackend"`
}

// Default returns the stock configuration.
func Default() *Config {
	return &Config{
		ProjectNames: []string{
			"hadoop*", "hadoop", "hbase", "hcatalog", "hive", "ganglia", "nagios",
			"oozie", "sqoop", "hue", "zookeeper", "mapred", "hdfs", "flume",
			"storm", "hive-hcatalog", "tez", "falcon", "ambari_qa", "hadoop_deploy",
			"rrdcached", "hcat", "ambari-qa", "sqoop-ambari-qa", "sqoop-ambari_qa",
			"webhcat", "hadoop-hdfs", "hadoop-yarn", "hadoop-mapreduce",
		},
		LiveServices: []ServiceSpec{
			{ByFamily: map[string]string{"redhat": "ntpd", "suse": "ntp", "debian": "ntp"}},
		},
		Users: []string{
			"nagios", "hive", "ambari-qa", "oozie", "hbase", "hcat", "mapred",
			"hdfs", "rrdcached", "zookeeper", "flume", "sqoop", "sqoop2",
			"hue", "yarn",
		},
		ProcFilter:  []string{"hadoop", "zookeeper"},
		JavaMarker:  "java",
		AgentMarker: "AmbariServer",
		Dirs: []string{
			"/etc", "/var/run", "/var/log", "/usr/lib", "/var/lib", "/var/tmp", "/tmp", "/var", "/hadoop",
		},
		Packages: []string{
			"hadoop", "zookeeper", "webhcat", "*-manager-server-db", "*-manager-daemons",
		},
		AdditionalPackages: []string{
			"rrdtool", "rrdtool-python", "nagios", "ganglia", "gmond", "gweb", "libconfuse", "ambari-log4j",
			"hadoop", "zookeeper", "oozie", "webhcat",
		},
		IgnorePackagesFromRepos: []string{"ambari", "installed"},
		IgnorePackages:          []string{"epel-release"},
		IgnoreRepos:             []string{"ambari", "HDP-UTILS"},
		ProcRoot:                defaults.ProcRoot,
		PasswdFile:              defaults.PasswdFile,
		AlternativesDir:         defaults.AlternativesDir,
		ReportPath:              defaults.ReportPath,
		CommandTimeout:          defaults.CommandTimeout,
		ServiceBackend:          BackendCommand,
	}
}

// Load returns the defaults overlaid with the YAML file at path.
// An empty path returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.WrapWithContext(errors.ErrCodeNotFound, "config file not found", err,
				map[string]any{"path": path})
		}
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := cfg.decode(data); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) decode(data []byte) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !stderrors.Is(err, io.EOF) {
		return errors.Wrap(errors.ErrCodeInvalidRequest, "invalid config", err)
	}
	return nil
}

// Validate checks the configuration is usable.
func (c *Config) Validate() error {
	invalid := func(msg string) error {
		return errors.New(errors.ErrCodeInvalidRequest, msg)
	}

	if c.ProcRoot == "" {
		return invalid("procRoot is required")
	}
	if c.PasswdFile == "" {
		return invalid("passwdFile is required")
	}
	if c.JavaMarker == "" {
		return invalid("javaMarker is required")
	}
	if c.CommandTimeout <= 0 {
		return invalid("commandTimeout must be positive")
	}
	switch c.ServiceBackend {
	case BackendCommand, BackendSystemd:
	default:
		return errors.NewWithContext(errors.ErrCodeInvalidRequest, "unsupported serviceBackend",
			map[string]any{"serviceBackend": c.ServiceBackend})
	}
	for i, s := range c.LiveServices {
		if s.IsZero() {
			return errors.NewWithContext(errors.ErrCodeInvalidRequest, "empty live service",
				map[string]any{"index": i})
		}
	}
	return nil
}

// ServiceSpec names a service to probe, either once for all hosts or per
// OS family. In YAML it is a plain string or a family to name mapping.
type ServiceSpec struct {
	Name     string
	ByFamily map[string]string
}

// IsZero reports whether the spec names no service.
func (s ServiceSpec) IsZero() bool {
	return s.Name == "" && len(s.ByFamily) == 0
}

// Resolve returns the service name on hosts of the given family.
func (s ServiceSpec) Resolve(family osinfo.Family) (string, bool) {
	if len(s.ByFamily) == 0 {
		return s.Name, s.Name != ""
	}
	name, ok := s.ByFamily[string(family)]
	return name, ok && name != ""
}

// UnmarshalYAML accepts a scalar or a mapping.
func (s *ServiceSpec) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		s.Name = node.Value
		s.ByFamily = nil
		return nil
	case yaml.MappingNode:
		m := make(map[string]string)
		if err := node.Decode(&m); err != nil {
			return fmt.Errorf("failed to decode service map: %w", err)
		}
		s.Name = ""
		s.ByFamily = m
		return nil
	default:
		return fmt.Errorf("line %d: service must be a name or a family map", node.Line)
	}
}

// MarshalYAML writes the spec back in the form it was read.
func (s ServiceSpec) MarshalYAML() (any, error) {
	if len(s.ByFamily) > 0 {
		return s.ByFamily, nil
	}
	return s.Name, nil
}
