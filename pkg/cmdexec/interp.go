package cmdexec

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"
	"unicode"

	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

// ═══════════════════════════════════════════════════════════════════════════════
// Interp: 内嵌 POSIX 解释器执行器
// ═══════════════════════════════════════════════════════════════════════════════

// Interp 用内嵌解释器执行命令,不拉起宿主 shell。
// 适合容器精简镜像等没有 /bin/sh 的环境。
//
// Env 非空时整体替换解释器环境,为 nil 时继承当前进程。
type Interp struct {
	Dir string   // 工作目录,空则继承
	Env []string // "KEY=VALUE" 形式的环境,nil 则继承
}

// Execute 解析并执行 command,返回去除尾部空白的 stdout。
//
// 解释器每次调用独立构建,互不共享状态;ctx 取消会终止执行。
// 脚本退出码非零时 stderr 会并入错误信息。
func (p *Interp) Execute(ctx context.Context, command string) (string, error) {
	prog, err := syntax.NewParser().Parse(strings.NewReader(command), "")
	if err != nil {
		return "", fmt.Errorf("parse command: %w", err)
	}

	env := p.Env
	if env == nil {
		env = os.Environ()
	}

	var stdout, stderr bytes.Buffer
	opts := []interp.RunnerOption{
		interp.StdIO(nil, &stdout, &stderr),
		interp.Env(expand.ListEnviron(env...)),
	}
	if p.Dir != "" {
		opts = append(opts, interp.Dir(p.Dir))
	}

	runner, err := interp.New(opts...)
	if err != nil {
		return "", fmt.Errorf("create interpreter: %w", err)
	}

	if err := runner.Run(ctx, prog); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", fmt.Errorf("%w: %s", err, msg)
		}
		return "", err
	}
	return strings.TrimRightFunc(stdout.String(), unicode.IsSpace), nil
}
