package firewall

import (
	"context"
	"testing"

	osinfo "github.com/NVIDIA/hostcheck/pkg/collector/os"
	"github.com/NVIDIA/hostcheck/pkg/errors"
	"github.com/NVIDIA/hostcheck/pkg/shell/shelltest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelect(t *testing.T) {
	tests := []struct {
		name  string
		facts osinfo.HostFacts
		want  Kind
		argv0 string
	}{
		{"ubuntu", osinfo.HostFacts{OSType: "ubuntu", OSFamily: osinfo.FamilyDebian, MajorVersion: 22}, KindUfw, "service"},
		{"debian", osinfo.HostFacts{OSType: "debian", OSFamily: osinfo.FamilyDebian, MajorVersion: 12}, KindUfw, "service"},
		{"fedora 18", osinfo.HostFacts{OSType: "fedora", OSFamily: osinfo.FamilyRedHat, MajorVersion: 18}, KindFirewalld, "systemctl"},
		{"fedora 17", osinfo.HostFacts{OSType: "fedora", OSFamily: osinfo.FamilyRedHat, MajorVersion: 17}, KindIptables, "/sbin/service"},
		{"suse", osinfo.HostFacts{OSType: "suse", OSFamily: osinfo.FamilySuse, MajorVersion: 11}, KindSuse, "/sbin/SuSEfirewall2"},
		{"opensuse", osinfo.HostFacts{OSType: "opensuse", OSFamily: osinfo.FamilySuse, MajorVersion: 15}, KindSuse, "/sbin/SuSEfirewall2"},
		{"sles", osinfo.HostFacts{OSType: "sles", OSFamily: osinfo.FamilySuse, MajorVersion: 12}, KindSuse, "/sbin/SuSEfirewall2"},
		{"centos", osinfo.HostFacts{OSType: "centos", OSFamily: osinfo.FamilyRedHat, MajorVersion: 6}, KindIptables, "/sbin/service"},
		{"unknown", osinfo.Unknown(), KindIptables, "/sbin/service"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Select(tt.facts)
			assert.Equal(t, tt.want, s.Kind)
			assert.Equal(t, tt.argv0, s.Argv[0])
		})
	}
}

func TestServiceCommand(t *testing.T) {
	assert.Equal(t, "/usr/sbin/service", ServiceCommand(osinfo.HostFacts{OSFamily: osinfo.FamilyDebian}))
	assert.Equal(t, "/sbin/service", ServiceCommand(osinfo.HostFacts{OSFamily: osinfo.FamilyRedHat}))
}

func TestStrategies_RunningAndStopped(t *testing.T) {
	type outcome struct {
		code   int
		stdout string
	}
	samples := map[Kind]struct{ running, stopped outcome }{
		KindIptables:  {running: outcome{0, ""}, stopped: outcome{3, ""}},
		KindUfw:       {running: outcome{0, "ufw start/running"}, stopped: outcome{0, "ufw stop/waiting"}},
		KindFirewalld: {running: outcome{0, "active"}, stopped: outcome{3, "inactive"}},
		KindSuse:      {running: outcome{0, ""}, stopped: outcome{3, ""}},
	}

	strategies := Strategies()
	require.Len(t, strategies, len(samples))

	for _, s := range strategies {
		t.Run(string(s.Kind), func(t *testing.T) {
			sample, ok := samples[s.Kind]
			require.True(t, ok)

			for _, tc := range []struct {
				o    outcome
				want bool
			}{{sample.running, true}, {sample.stopped, false}} {
				runner := shelltest.New(map[string]shelltest.Response{
					s.String(): shelltest.Exit(tc.o.code, tc.o.stdout, ""),
				})
				got, err := Check(context.TODO(), runner, s)
				require.NoError(t, err)
				assert.Equal(t, tc.want, got)
				assert.Equal(t, []string{s.String()}, runner.Calls())
			}
		})
	}
}

func TestUfw_StatusLines(t *testing.T) {
	h := Ufw().IsHealthy
	assert.False(t, h(0, "ufw stop/waiting\n", ""))
	assert.False(t, h(0, "  \n", ""))
	assert.False(t, h(0, "", "ufw: unrecognized service"))
	assert.True(t, h(0, "ufw start/running\n", ""))
}

func TestCheck_CommandFailure(t *testing.T) {
	runner := shelltest.New(nil)

	running, err := Check(context.TODO(), runner, Suse())
	require.Error(t, err)
	assert.False(t, running)
	assert.Equal(t, errors.ErrCodeNotFound, errors.CodeOf(err))
}
