package shell

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/NVIDIA/hostcheck/pkg/defaults"
	"github.com/NVIDIA/hostcheck/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	utilexec "k8s.io/utils/exec"
	fakeexec "k8s.io/utils/exec/testing"
)

func fakeRunner(timeout time.Duration, actions ...fakeexec.FakeAction) (*Executor, *fakeexec.FakeExec) {
	fe := &fakeexec.FakeExec{}
	for _, a := range actions {
		fc := &fakeexec.FakeCmd{RunScript: []fakeexec.FakeAction{a}}
		fe.CommandScript = append(fe.CommandScript, func(cmd string, args ...string) utilexec.Cmd {
			return fakeexec.InitFakeCmd(fc, cmd, args...)
		})
	}
	return New(timeout, WithExec(fe)), fe
}

func TestExecutor_Run(t *testing.T) {
	tests := []struct {
		name     string
		action   fakeexec.FakeAction
		wantCode int
		wantOut  string
		wantErr  string
		errCode  errors.ErrorCode
	}{
		{
			name: "success",
			action: func() ([]byte, []byte, error) {
				return []byte("running\n"), nil, nil
			},
			wantOut: "running\n",
		},
		{
			name: "non-zero exit is a result",
			action: func() ([]byte, []byte, error) {
				return nil, []byte("iptables: Firewall is not running.\n"), &fakeexec.FakeExitError{Status: 3}
			},
			wantCode: 3,
			wantErr:  "iptables: Firewall is not running.\n",
		},
		{
			name: "missing executable",
			action: func() ([]byte, []byte, error) {
				return nil, nil, utilexec.ErrExecutableNotFound
			},
			wantCode: ExitCodeNotFound,
			errCode:  errors.ErrCodeNotFound,
		},
		{
			name: "unexpected failure",
			action: func() ([]byte, []byte, error) {
				return nil, nil, stderrors.New("fork failed")
			},
			wantCode: -1,
			errCode:  errors.ErrCodeInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, fe := fakeRunner(time.Second, tt.action)
			res, err := r.Run(context.TODO(), "service", "iptables", "status")

			assert.Equal(t, 1, fe.CommandCalls)
			assert.Equal(t, tt.wantCode, res.ExitCode)
			assert.Equal(t, tt.wantOut, res.Stdout)
			assert.Equal(t, tt.wantErr, res.Stderr)
			if tt.errCode == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.errCode, errors.CodeOf(err))
		})
	}
}

func TestExecutor_Run_Timeout(t *testing.T) {
	r, _ := fakeRunner(5*time.Millisecond, func() ([]byte, []byte, error) {
		time.Sleep(50 * time.Millisecond)
		return nil, nil, &fakeexec.FakeExitError{Status: -1}
	})

	res, err := r.Run(context.TODO(), "sleep", "60")
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeTimeout, errors.CodeOf(err))
	assert.True(t, stderrors.Is(err, context.DeadlineExceeded))
	assert.False(t, res.Success())
}

func TestExecutor_Run_EmptyCommand(t *testing.T) {
	r := New(time.Second, WithExec(&fakeexec.FakeExec{}))
	_, err := r.Run(context.TODO())
	assert.Equal(t, errors.ErrCodeInvalidRequest, errors.CodeOf(err))
}

func TestExecutor_Run_CanceledContext(t *testing.T) {
	fe := &fakeexec.FakeExec{}
	r := New(time.Second, WithExec(fe))

	ctx, cancel := context.WithCancel(context.TODO())
	cancel()

	_, err := r.Run(ctx, "df")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, fe.CommandCalls)
}

func TestNew_DefaultTimeout(t *testing.T) {
	assert.Equal(t, defaults.CommandTimeout, New(0).timeout)
	assert.Equal(t, 3*time.Second, New(3*time.Second).timeout)
}

func TestExecutor_Run_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	res, err := New(5*time.Second).Run(context.TODO(), "sh", "-c", "echo out; echo err >&2; exit 4")
	if err != nil {
		t.Skipf("sh unavailable: %v", err)
	}
	assert.Equal(t, 4, res.ExitCode)
	assert.Equal(t, "out\n", res.Stdout)
	assert.Equal(t, "err\n", res.Stderr)
}
