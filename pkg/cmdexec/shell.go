package cmdexec

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"unicode"
)

// ═══════════════════════════════════════════════════════════════════════════════
// Shell: 宿主 shell 执行器
// ═══════════════════════════════════════════════════════════════════════════════

// Shell 通过 "<shell> -c <command>" 执行命令。
//
// 零值可用:Path 为空时依次取 $SHELL 与 /bin/sh。
// Env 非空时整体替换子进程环境,为 nil 时继承当前进程。
type Shell struct {
	Path string   // shell 可执行文件路径
	Dir  string   // 工作目录,空则继承
	Env  []string // "KEY=VALUE" 形式的环境,nil 则继承
}

// Execute 执行 command 并返回去除尾部空白的 stdout。
//
// 子进程通过 exec.CommandContext 绑定 ctx,取消时被终止。
// 退出码非零时 stderr 会并入错误信息,便于定位。
func (s *Shell) Execute(ctx context.Context, command string) (string, error) {
	shell := s.Path
	if shell == "" {
		shell = os.Getenv("SHELL")
	}
	if shell == "" {
		shell = "/bin/sh"
	}

	cmd := exec.CommandContext(ctx, shell, "-c", command)
	cmd.Dir = s.Dir
	if s.Env != nil {
		cmd.Env = s.Env
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", fmt.Errorf("%w: %s", err, msg)
		}
		return "", err
	}
	return strings.TrimRightFunc(stdout.String(), unicode.IsSpace), nil
}
