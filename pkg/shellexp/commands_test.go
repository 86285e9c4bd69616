package shellexp_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lwmacct/251228-go-pkg-shellexp/pkg/shellexp"
)

// stubExecutor 记录收到的命令并按注入函数返回,测试无需真实子进程。
type stubExecutor struct {
	mu    sync.Mutex
	calls []string
	fn    func(ctx context.Context, command string) (string, error)
}

func (s *stubExecutor) Execute(ctx context.Context, command string) (string, error) {
	s.mu.Lock()
	s.calls = append(s.calls, command)
	s.mu.Unlock()
	return s.fn(ctx, command)
}

func (s *stubExecutor) executed() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.calls...)
}

func echoStub(outputs map[string]string) *stubExecutor {
	return &stubExecutor{fn: func(_ context.Context, command string) (string, error) {
		out, ok := outputs[command]
		if !ok {
			return "", errors.New("command not found")
		}
		return out, nil
	}}
}

func TestEngine_CommandSubstitution(t *testing.T) {
	exec := echoStub(map[string]string{"echo hello": "hello"})
	eng := newTestEngine(t, shellexp.WithExecutor(exec))

	got, err := eng.InterpolateContext(t.Context(), "Echo says: $(echo hello)")
	require.NoError(t, err)
	assert.Equal(t, "Echo says: hello", got)
	assert.Equal(t, []string{"echo hello"}, exec.executed())
}

func TestEngine_CommandTextResolvesVariables(t *testing.T) {
	exec := echoStub(map[string]string{"echo test_value": "test_value"})
	eng := newTestEngine(t, shellexp.WithExecutor(exec))

	got, err := eng.InterpolateContext(t.Context(), "Value: $(echo ${TEST_VAR})")
	require.NoError(t, err)
	assert.Equal(t, "Value: test_value", got)
	assert.Equal(t, []string{"echo test_value"}, exec.executed())
}

func TestEngine_BacktickCommand(t *testing.T) {
	exec := echoStub(map[string]string{
		"echo foo": "foo",
		"echo bar": "bar",
	})
	eng := newTestEngine(t, shellexp.WithExecutor(exec))

	got, err := eng.InterpolateContext(t.Context(), "`echo foo` and $(echo bar)")
	require.NoError(t, err)
	assert.Equal(t, "foo and bar", got)
}

// 多个命令可并发执行,但输出必须按扫描顺序拼装。
func TestEngine_CommandOrdering(t *testing.T) {
	exec := echoStub(map[string]string{
		"one":   "1",
		"two":   "2",
		"three": "3",
	})
	eng := newTestEngine(t, shellexp.WithExecutor(exec))

	got, err := eng.InterpolateContext(t.Context(), "a $(one) b `two` c $(three) d")
	require.NoError(t, err)
	assert.Equal(t, "a 1 b 2 c 3 d", got)
	assert.ElementsMatch(t, []string{"one", "two", "three"}, exec.executed())
}

func TestEngine_CommandFailureAbortsCall(t *testing.T) {
	cause := errors.New("exit status 127")
	exec := &stubExecutor{fn: func(ctx context.Context, command string) (string, error) {
		if command == "bad" {
			return "", cause
		}
		// 同批其他命令等到取消信号,验证失败会传播到整个组
		<-ctx.Done()
		return "", ctx.Err()
	}}
	eng := newTestEngine(t, shellexp.WithExecutor(exec))

	_, err := eng.InterpolateContext(t.Context(), "$(bad) $(slow)")
	var cmdErr *shellexp.CommandError
	require.ErrorAs(t, err, &cmdErr)
	assert.ErrorIs(t, err, cause)
}

func TestEngine_CommandOutputNotRescanned(t *testing.T) {
	exec := echoStub(map[string]string{"emit": "${TEST_VAR} $(nested)"})
	eng := newTestEngine(t, shellexp.WithExecutor(exec))

	got, err := eng.InterpolateContext(t.Context(), "out: $(emit)")
	require.NoError(t, err)
	// 命令输出原样拼入,不做第二次展开
	assert.Equal(t, "out: ${TEST_VAR} $(nested)", got)
	assert.Equal(t, []string{"emit"}, exec.executed())
}

func TestEngine_EscapedCommandSyntaxNotExecuted(t *testing.T) {
	exec := echoStub(nil)
	eng := newTestEngine(t, shellexp.WithExecutor(exec))

	got, err := eng.InterpolateContext(t.Context(), `\$(echo should not run)`)
	require.NoError(t, err)
	assert.Equal(t, "$(echo should not run)", got)
	assert.Empty(t, exec.executed())

	got, err = eng.InterpolateContext(t.Context(), "\\`literal\\` text")
	require.NoError(t, err)
	assert.Equal(t, "`literal` text", got)
	assert.Empty(t, exec.executed())
}

func TestEngine_CommandsDisabled(t *testing.T) {
	t.Run("lenient keeps literal", func(t *testing.T) {
		cfg := shellexp.DefaultConfig()
		cfg.Features.Commands = false
		cfg.Features.BacktickCommands = false
		exec := echoStub(nil)
		eng := newTestEngine(t, shellexp.WithConfig(cfg), shellexp.WithExecutor(exec))

		got, err := eng.InterpolateContext(t.Context(), "$(echo hi) `date`")
		require.NoError(t, err)
		assert.Equal(t, "$(echo hi) `date`", got)
		assert.Empty(t, exec.executed())
	})

	t.Run("strict reports disabled feature", func(t *testing.T) {
		cfg := shellexp.DefaultConfig()
		cfg.Features.Commands = false
		cfg.StrictCommands = true
		eng := newTestEngine(t, shellexp.WithConfig(cfg))

		_, err := eng.Interpolate("$(echo hi)")
		var disabledErr *shellexp.FeatureDisabledError
		require.ErrorAs(t, err, &disabledErr)
		assert.Equal(t, "commands", disabledErr.Feature)
	})

	t.Run("backticks disabled independently", func(t *testing.T) {
		cfg := shellexp.DefaultConfig()
		cfg.Features.BacktickCommands = false
		exec := echoStub(map[string]string{"echo hi": "hi"})
		eng := newTestEngine(t, shellexp.WithConfig(cfg), shellexp.WithExecutor(exec))

		got, err := eng.InterpolateContext(t.Context(), "`date` $(echo hi)")
		require.NoError(t, err)
		assert.Equal(t, "`date` hi", got)
		assert.Equal(t, []string{"echo hi"}, exec.executed())
	})
}

func TestEngine_MissingExecutor(t *testing.T) {
	t.Run("lenient keeps literal", func(t *testing.T) {
		eng := newTestEngine(t)
		got, err := eng.InterpolateContext(t.Context(), "now: $(date)")
		require.NoError(t, err)
		assert.Equal(t, "now: $(date)", got)
	})

	t.Run("strict reports missing capability", func(t *testing.T) {
		cfg := shellexp.DefaultConfig()
		cfg.StrictCommands = true
		eng := newTestEngine(t, shellexp.WithConfig(cfg))

		_, err := eng.InterpolateContext(t.Context(), "$(date)")
		var disabledErr *shellexp.FeatureDisabledError
		require.ErrorAs(t, err, &disabledErr)
		assert.Equal(t, "command-executor", disabledErr.Feature)
	})
}

func TestEngine_SyncInterpolateNeverExecutes(t *testing.T) {
	exec := echoStub(map[string]string{"date": "today"})
	eng := newTestEngine(t, shellexp.WithExecutor(exec))

	got, err := eng.Interpolate("now: $(date)")
	require.NoError(t, err)
	assert.Equal(t, "now: $(date)", got)
	assert.Empty(t, exec.executed())
}

func TestEngine_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(t.Context())
	exec := &stubExecutor{fn: func(ctx context.Context, _ string) (string, error) {
		<-ctx.Done()
		return "", ctx.Err()
	}}
	eng := newTestEngine(t, shellexp.WithExecutor(exec))

	done := make(chan error, 1)
	go func() {
		_, err := eng.InterpolateContext(ctx, "$(sleep forever)")
		done <- err
	}()

	cancel()
	err := <-done
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
