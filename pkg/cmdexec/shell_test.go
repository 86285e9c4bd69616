package cmdexec_test

import (
	"context"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lwmacct/251228-go-pkg-shellexp/pkg/cmdexec"
)

func requireShell(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("no sh on this system")
	}
}

func TestShell_Execute(t *testing.T) {
	requireShell(t)
	sh := &cmdexec.Shell{Path: "sh"}

	got, err := sh.Execute(t.Context(), "echo hello")
	require.NoError(t, err)
	assert.Equal(t, "hello", got)
}

// 尾部空白(echo 的换行)必须被裁掉,行内空白保留。
func TestShell_TrimsTrailingWhitespace(t *testing.T) {
	requireShell(t)
	sh := &cmdexec.Shell{Path: "sh"}

	got, err := sh.Execute(t.Context(), "printf '  a b  \\n\\n'")
	require.NoError(t, err)
	assert.Equal(t, "  a b", got)
}

func TestShell_Env(t *testing.T) {
	requireShell(t)
	sh := &cmdexec.Shell{Path: "sh", Env: []string{"GREETING=hi"}}

	got, err := sh.Execute(t.Context(), "echo $GREETING")
	require.NoError(t, err)
	assert.Equal(t, "hi", got)
}

func TestShell_Dir(t *testing.T) {
	requireShell(t)
	dir := t.TempDir()
	sh := &cmdexec.Shell{Path: "sh", Dir: dir}

	got, err := sh.Execute(t.Context(), "pwd")
	require.NoError(t, err)
	assert.Contains(t, got, dir)
}

func TestShell_NonZeroExit(t *testing.T) {
	requireShell(t)
	sh := &cmdexec.Shell{Path: "sh"}

	_, err := sh.Execute(t.Context(), "echo oops >&2; exit 3")
	require.Error(t, err)
	// stderr 并入错误信息
	assert.Contains(t, err.Error(), "oops")
}

func TestShell_ContextCancel(t *testing.T) {
	requireShell(t)
	sh := &cmdexec.Shell{Path: "sh"}

	ctx, cancel := context.WithTimeout(t.Context(), 100*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := sh.Execute(ctx, "sleep 30")
	require.Error(t, err)
	assert.Less(t, time.Since(start), 10*time.Second, "cancellation must kill the child")
}
