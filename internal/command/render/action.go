package render

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251228-go-pkg-shellexp/internal/command"
	"github.com/lwmacct/251228-go-pkg-shellexp/internal/config"
	"github.com/lwmacct/251228-go-pkg-shellexp/pkg/cfgload"
	"github.com/lwmacct/251228-go-pkg-shellexp/pkg/cmdexec"
	"github.com/lwmacct/251228-go-pkg-shellexp/pkg/shellexp"
)

func action(ctx context.Context, cmd *cli.Command) error {
	// 加载配置:默认值 → 配置文件 → 环境变量 → CLI flags
	cfg, err := cfgload.LoadCmd(cmd, config.DefaultConfig(), command.AppName,
		cfgload.WithEnvPrefix(command.EnvPrefix),
	)
	if err != nil {
		return err
	}

	template, err := readTemplate(cmd)
	if err != nil {
		return err
	}

	eng := newEngine(&cfg.Render, cmd.StringMap("var"))

	var result string
	if cfg.Render.Commands {
		runCtx := ctx
		if cfg.Render.Timeout > 0 {
			var cancel context.CancelFunc
			runCtx, cancel = context.WithTimeout(ctx, cfg.Render.Timeout)
			defer cancel()
		}
		result, err = eng.InterpolateContext(runCtx, template)
	} else {
		result, err = eng.Interpolate(template)
	}
	if err != nil {
		return fmt.Errorf("render template: %w", err)
	}

	return writeResult(cfg.Render.Output, result)
}

// newEngine 按渲染配置构建引擎:变量来自进程环境,--var 覆盖同名项。
func newEngine(rc *config.RenderConfig, extra map[string]string) *shellexp.Engine {
	ec := shellexp.DefaultConfig()
	ec.MaxDepth = rc.MaxDepth
	ec.StrictUndefined = rc.StrictUndefined
	ec.Features.Commands = rc.Commands
	ec.Features.BacktickCommands = rc.Commands

	opts := []shellexp.Option{shellexp.WithConfig(ec)}
	if rc.Commands {
		if rc.VirtualShell {
			opts = append(opts, shellexp.WithExecutor(&cmdexec.Interp{}))
		} else {
			opts = append(opts, shellexp.WithExecutor(&cmdexec.Shell{Path: rc.Shell}))
		}
	}

	eng := shellexp.New(opts...)
	for _, kv := range os.Environ() {
		if name, value, ok := strings.Cut(kv, "="); ok {
			_ = eng.AddVariable(name, value)
		}
	}
	for name, value := range extra {
		_ = eng.AddVariable(name, value)
	}

	return eng
}

// readTemplate 取模板文本:--file 优先 ("-" 为 stdin),其次位置参数,
// 都缺席时读 stdin。
func readTemplate(cmd *cli.Command) (string, error) {
	if path := cmd.String("file"); path != "" {
		if path == "-" {
			return readStdin()
		}
		content, err := os.ReadFile(path) //nolint:gosec // path is user input by design
		if err != nil {
			return "", fmt.Errorf("read template: %w", err)
		}

		return string(content), nil
	}

	if args := cmd.Args().Slice(); len(args) > 0 {
		return strings.Join(args, " "), nil
	}

	return readStdin()
}

func readStdin() (string, error) {
	content, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}

	return string(content), nil
}

// writeResult 输出渲染结果,stdout 模式下确保末尾有换行。
func writeResult(output, result string) error {
	if output != "" {
		if err := os.WriteFile(output, []byte(result), 0o600); err != nil {
			return fmt.Errorf("write output: %w", err)
		}

		return nil
	}

	if !strings.HasSuffix(result, "\n") {
		result += "\n"
	}
	_, err := io.WriteString(os.Stdout, result)

	return err
}
