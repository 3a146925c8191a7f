package hostinfo

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"testing"
	"time"

	osinfo "github.com/NVIDIA/hostcheck/pkg/collector/os"
	"github.com/NVIDIA/hostcheck/pkg/config"
	"github.com/stretchr/testify/require"
)

var (
	centos7  = osinfo.HostFacts{OSType: "centos", OSFamily: osinfo.FamilyRedHat, OSVersion: "7", MajorVersion: 7}
	ubuntu22 = osinfo.HostFacts{OSType: "ubuntu", OSFamily: osinfo.FamilyDebian, OSVersion: "22.04", MajorVersion: 22}
	sles12   = osinfo.HostFacts{OSType: "sles", OSFamily: osinfo.FamilySuse, OSVersion: "12.5", MajorVersion: 12}
)

var fixedNow = time.UnixMilli(1700000000123)

func fixedClock() time.Time { return fixedNow }

// host is a fake host rooted in a temp dir.
type host struct {
	t    *testing.T
	root string
	cfg  *config.Config
}

func newHost(t *testing.T) *host {
	t.Helper()
	root := t.TempDir()
	cfg := config.Default()
	cfg.ProcRoot = filepath.Join(root, "proc")
	cfg.PasswdFile = filepath.Join(root, "etc", "passwd")
	cfg.AlternativesDir = filepath.Join(root, "etc", "alternatives")
	cfg.ReportPath = filepath.Join(root, "var", "lib", "hostcheck.result")
	cfg.Dirs = []string{filepath.Join(root, "etc"), filepath.Join(root, "var", "log")}
	cfg.ProjectNames = []string{"hadoop", "hbase", "zookeeper", "hive"}
	cfg.Users = []string{"hdfs", "yarn", "hive"}

	require.NoError(t, os.MkdirAll(cfg.ProcRoot, 0o755))
	return &host{t: t, root: root, cfg: cfg}
}

func (h *host) path(parts ...string) string {
	return filepath.Join(append([]string{h.root}, parts...)...)
}

func (h *host) mkdir(parts ...string) string {
	h.t.Helper()
	p := h.path(parts...)
	require.NoError(h.t, os.MkdirAll(p, 0o755))
	return p
}

func (h *host) write(content string, parts ...string) string {
	h.t.Helper()
	p := h.path(parts...)
	require.NoError(h.t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(h.t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func (h *host) symlink(target string, parts ...string) string {
	h.t.Helper()
	p := h.path(parts...)
	require.NoError(h.t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(h.t, os.Symlink(target, p))
	return p
}

// proc adds a process. A negative uid leaves out the status file.
func (h *host) proc(pid int, cmdline string, uid int) {
	h.t.Helper()
	dir := filepath.Join("proc", strconv.Itoa(pid))
	h.write(cmdline, dir, "cmdline")
	if uid >= 0 {
		u := strconv.Itoa(uid)
		h.write("Name:\tjava\nUid:\t"+u+"\t"+u+"\t"+u+"\t"+u+"\n", dir, "status")
	}
}

func (h *host) passwd(lines string) {
	h.t.Helper()
	h.write(lines, "etc", "passwd")
}

// recordingWriter counts persisted reports.
type recordingWriter struct {
	mu      sync.Mutex
	calls   int
	last    HostReport
	failure error
}

func (w *recordingWriter) WriteHostCheckFile(_ context.Context, r any) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.calls++
	if hr, ok := r.(*HostReport); ok {
		w.last = *hr
	}
	return w.failure
}

func (w *recordingWriter) Calls() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.calls
}
