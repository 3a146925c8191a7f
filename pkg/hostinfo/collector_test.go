package hostinfo

import (
	"context"
	"encoding/json"
	"testing"

	osinfo "github.com/NVIDIA/hostcheck/pkg/collector/os"
	"github.com/NVIDIA/hostcheck/pkg/defaults"
	"github.com/NVIDIA/hostcheck/pkg/firewall"
	"github.com/NVIDIA/hostcheck/pkg/packages"
	"github.com/NVIDIA/hostcheck/pkg/report"
	"github.com/NVIDIA/hostcheck/pkg/shell/shelltest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const yumInstalled = `Loaded plugins: fastestmirror
Installed Packages
hadoop-yarn.x86_64       2.4.0.2.1-385.el6     @HDP-2.1
zookeeper.noarch         3.4.5.2.1-385.el6     @HDP-2.1
epel-release.noarch      6-8                   @HDP-2.1
nagios.x86_64            3.5.0-99              @HDP-UTILS-1.1.0.17
ambari-agent.x86_64      1.6.0-1               @ambari-1.x
bash.x86_64              4.1.2-15.el6          @base
`

const yumAvailable = `Available Packages
hive.noarch              0.13.0.2.1-385.el6    HDP-2.1
`

func redhatRunner() *shelltest.Runner {
	return shelltest.New(map[string]shelltest.Response{
		"yum list installed":            shelltest.Stdout(yumInstalled),
		"yum list available":            shelltest.Stdout(yumAvailable),
		"/sbin/service ntpd status":     shelltest.Stdout("ntpd (pid 1234) is running...\n"),
		"/sbin/service iptables status": shelltest.Exit(3, "", "iptables: Firewall is not running.\n"),
	})
}

func (h *host) populate() {
	h.passwd("root:x:0:0:root:/root:/bin/bash\n" +
		"hdfs:x:1001:1001::" + h.mkdir("home", "hdfs") + ":/bin/bash\n" +
		"yarn:x:1002:1002::" + h.path("home", "yarn") + ":/bin/bash\n")
	h.proc(101, "java\x00-Dproc_namenode\x00org.apache.hadoop.hdfs.server.namenode.NameNode\x00", 1001)
	h.proc(102, "/usr/bin/java\x00-jar\x00app.jar\x00", 1002)
	h.proc(103, "java\x00org.apache.ambari.server.controller.AmbariServer\x00", 0)
	h.mkdir("etc", "hadoop")
	h.symlink(h.path("etc", "hadoop"), "etc", "alternatives", "hadoop-conf")
}

func TestRegister_Full(t *testing.T) {
	h := newHost(t)
	h.populate()
	w := &recordingWriter{}
	runner := redhatRunner()

	c := New(h.cfg, centos7, runner, WithWriter(w), WithClock(fixedClock))

	var r HostReport
	c.Register(context.TODO(), &r, false, false)

	require.Equal(t, 1, w.Calls(), "report must be persisted exactly once")
	assert.Zero(t, w.last.HostHealth.AgentTimeStampAtReporting, "timestamp is set after persisting")
	assert.Equal(t, fixedNow.UnixMilli(), r.HostHealth.AgentTimeStampAtReporting)

	assert.Equal(t, []ProcessRecord{
		{PID: 101, Command: "java -Dproc_namenode org.apache.hadoop.hdfs.server.namenode.NameNode", User: "hdfs", Hadoop: true},
		{PID: 102, Command: "/usr/bin/java -jar app.jar", User: "yarn", Hadoop: false},
	}, r.HostHealth.ActiveJavaProcs)

	assert.Equal(t, []ServiceCheckResult{{Name: "ntpd", Status: ServiceHealthy}}, r.HostHealth.LiveServices)
	assert.False(t, r.IptablesIsRunning)
	assert.NotEmpty(t, r.Umask)

	assert.Equal(t, []AlternativesEntry{{Name: "hadoop-conf", Target: h.path("etc", "hadoop")}}, r.Alternatives)
	assert.Equal(t, []UserCheckResult{
		{Name: "hdfs", HomeDir: h.path("home", "hdfs"), Status: UserAvailable},
		{Name: "yarn", HomeDir: h.path("home", "yarn"), Status: UserInvalidHomeDir},
	}, r.ExistingUsers)
	assert.Equal(t, []DirEntry{{Type: DirDirectory, Name: h.path("etc", "hadoop")}}, r.StackFoldersAndFiles)

	assert.Equal(t, []string{"HDP-2.1"}, r.ExistingRepos)
	assert.Equal(t, []packages.Detail{
		{Name: "hadoop-yarn.x86_64", Version: "2.4.0.2.1-385.el6", RepoName: "HDP-2.1"},
		{Name: "nagios.x86_64", Version: "3.5.0-99", RepoName: "HDP-UTILS-1.1.0.17"},
		{Name: "zookeeper.noarch", Version: "3.4.5.2.1-385.el6", RepoName: "HDP-2.1"},
	}, r.InstalledPackages)
}

func TestRegister_Gated(t *testing.T) {
	tests := []struct {
		name               string
		facts              osinfo.HostFacts
		componentsMapped   bool
		commandsInProgress bool
	}{
		{name: "components mapped", facts: centos7, componentsMapped: true},
		{name: "commands in progress", facts: centos7, commandsInProgress: true},
		{name: "both", facts: centos7, componentsMapped: true, commandsInProgress: true},
		{name: "suse", facts: sles12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHost(t)
			h.populate()
			w := &recordingWriter{}
			runner := shelltest.New(nil)
			c := New(h.cfg, tt.facts, runner, WithWriter(w), WithClock(fixedClock))

			var first, second HostReport
			c.Register(context.TODO(), &first, tt.componentsMapped, tt.commandsInProgress)
			c.Register(context.TODO(), &second, tt.componentsMapped, tt.commandsInProgress)

			for _, r := range []HostReport{first, second} {
				assert.Equal(t, []string{defaults.ResultUnavailable}, r.ExistingRepos)
				assert.Equal(t, []packages.Detail{}, r.InstalledPackages)
				assert.Equal(t, []AlternativesEntry{}, r.Alternatives)
				assert.Equal(t, []DirEntry{}, r.StackFoldersAndFiles)
				assert.Equal(t, []UserCheckResult{}, r.ExistingUsers)
				assert.Equal(t, fixedNow.UnixMilli(), r.HostHealth.AgentTimeStampAtReporting)
			}
			assert.Equal(t, first.ExistingRepos, second.ExistingRepos)
			assert.Zero(t, w.Calls(), "gated registration must not persist")

			for _, call := range runner.Calls() {
				assert.NotContains(t, call, "yum")
				assert.NotContains(t, call, "zypper")
			}
		})
	}
}

func TestRegister_GatedSerializesEmptyLists(t *testing.T) {
	h := newHost(t)
	c := New(h.cfg, centos7, shelltest.New(nil), WithWriter(&recordingWriter{}))

	var r HostReport
	c.Register(context.TODO(), &r, true, true)

	b, err := json.Marshal(r)
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(b, &m))
	for _, key := range []string{"installedPackages", "alternatives", "stackFoldersAndFiles", "existingUsers"} {
		assert.Equal(t, []any{}, m[key], key)
	}
	assert.Equal(t, []any{"unable_to_determine"}, m["existingRepos"])

	health, ok := m["hostHealth"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, []any{}, health["activeJavaProcs"])
}

func TestRegister_NeverFails(t *testing.T) {
	h := newHost(t)
	h.cfg.ProcRoot = h.path("missing-proc")
	h.cfg.PasswdFile = h.path("missing-passwd")
	h.cfg.AlternativesDir = h.path("missing-alternatives")
	w := &recordingWriter{failure: assert.AnError}

	// every command is missing, including the firewall probe
	c := New(h.cfg, centos7, shelltest.New(nil), WithWriter(w), WithClock(fixedClock))

	var r HostReport
	require.NotPanics(t, func() {
		c.Register(context.TODO(), &r, false, false)
	})

	assert.Empty(t, r.HostHealth.ActiveJavaProcs)
	assert.NotNil(t, r.HostHealth.ActiveJavaProcs)
	require.Len(t, r.HostHealth.LiveServices, 1)
	assert.Equal(t, ServiceUnhealthy, r.HostHealth.LiveServices[0].Status)
	assert.Contains(t, r.HostHealth.LiveServices[0].Desc, "executable not found")
	assert.False(t, r.IptablesIsRunning)
	assert.Empty(t, r.ExistingRepos)
	assert.NotNil(t, r.ExistingRepos)
	assert.NotNil(t, r.InstalledPackages)
	assert.Equal(t, 1, w.Calls())
	assert.Equal(t, fixedNow.UnixMilli(), r.HostHealth.AgentTimeStampAtReporting)
}

func TestRegister_DebianFirewallStopped(t *testing.T) {
	h := newHost(t)
	runner := shelltest.New(map[string]shelltest.Response{
		"service ufw status":           shelltest.Exit(0, "ufw stop/waiting\n", ""),
		"/usr/sbin/service ntp status": shelltest.Stdout(" * NTP server is running\n"),
	})
	c := New(h.cfg, ubuntu22, runner, WithWriter(&recordingWriter{}))

	var r HostReport
	c.Register(context.TODO(), &r, true, false)

	assert.False(t, r.IptablesIsRunning)
	assert.Equal(t, []ServiceCheckResult{{Name: "ntp", Status: ServiceHealthy}}, r.HostHealth.LiveServices)
	assert.Contains(t, runner.Calls(), "service ufw status")
}

func TestRegister_PersistsToFile(t *testing.T) {
	h := newHost(t)
	h.populate()
	c := New(h.cfg, centos7, redhatRunner())

	var r HostReport
	c.Register(context.TODO(), &r, false, false)

	doc, err := report.ReadFile(h.cfg.ReportPath)
	require.NoError(t, err)
	body, ok := doc.Report.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, []any{"HDP-2.1"}, body["existingRepos"])
}

func TestNew_Defaults(t *testing.T) {
	c := New(nil, centos7, nil)
	assert.Equal(t, centos7, c.Facts())
	assert.NotNil(t, c.analyzer)
	assert.NotNil(t, c.writer)
	assert.IsType(t, &commandProber{}, c.prober)
	assert.Equal(t, "/sbin/service iptables status", c.firewall.String())
}

// countingAnalyzer serves a fixed inventory and keeps the default matching rules.
type countingAnalyzer struct {
	*packages.CommandAnalyzer
	installed []packages.Package
	listed    int
}

func (a *countingAnalyzer) AllInstalledPackages(context.Context) ([]packages.Package, error) {
	a.listed++
	return a.installed, nil
}

func (a *countingAnalyzer) AllAvailablePackages(context.Context) ([]packages.Package, error) {
	a.listed++
	return []packages.Package{}, nil
}

func TestRegister_InjectedCollaborators(t *testing.T) {
	h := newHost(t)
	runner := shelltest.New(map[string]shelltest.Response{
		"systemctl is-active firewalld.service": shelltest.Stdout("active\n"),
	})
	analyzer := &countingAnalyzer{
		CommandAnalyzer: packages.NewAnalyzer(runner, osinfo.FamilyRedHat),
		installed:       []packages.Package{{Name: "bash", Version: "4.1.2", Repo: "base"}},
	}

	c := New(h.cfg, centos7, runner,
		WithAnalyzer(analyzer),
		WithFirewall(firewall.Firewalld()),
		WithWriter(&recordingWriter{}))

	var r HostReport
	c.Register(context.TODO(), &r, false, false)

	assert.Equal(t, 2, analyzer.listed)
	assert.True(t, r.IptablesIsRunning)
	assert.Empty(t, r.InstalledPackages)
	assert.NotContains(t, runner.Calls(), "yum list installed")
}
