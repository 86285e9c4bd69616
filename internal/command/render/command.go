// Package render 提供模板渲染命令。
package render

import (
	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251228-go-pkg-shellexp/internal/command"
)

// Command 渲染命令
var Command = &cli.Command{
	Name:      "render",
	Usage:     "渲染模板中的 Shell 参数展开",
	ArgsUsage: "[template]",
	Action:    action,
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "file",
			Aliases: []string{"f"},
			Usage:   "模板文件路径,\"-\" 为 stdin;缺省时渲染位置参数",
		},
		&cli.StringMapFlag{
			Name:    "var",
			Aliases: []string{"v"},
			Usage:   "附加变量 (key=value),优先于环境变量",
		},
		&cli.IntFlag{
			Name:  "render-max-depth",
			Value: command.Defaults.Render.MaxDepth,
			Usage: "递归展开深度上限",
		},
		&cli.BoolFlag{
			Name:  "render-strict-undefined",
			Value: command.Defaults.Render.StrictUndefined,
			Usage: "未定义变量视为错误",
		},
		&cli.BoolFlag{
			Name:  "render-commands",
			Value: command.Defaults.Render.Commands,
			Usage: "启用 $(cmd) 与反引号命令替换",
		},
		&cli.BoolFlag{
			Name:  "render-virtual-shell",
			Value: command.Defaults.Render.VirtualShell,
			Usage: "用内嵌解释器执行命令,不依赖宿主 shell",
		},
		&cli.StringFlag{
			Name:  "render-shell",
			Value: command.Defaults.Render.Shell,
			Usage: "宿主 shell 路径,空则取 $SHELL 或 /bin/sh",
		},
		&cli.DurationFlag{
			Name:  "render-timeout",
			Value: command.Defaults.Render.Timeout,
			Usage: "整次渲染超时 (含命令执行)",
		},
		&cli.StringFlag{
			Name:    "render-output",
			Aliases: []string{"o"},
			Value:   command.Defaults.Render.Output,
			Usage:   "输出文件路径,空为 stdout",
		},
	},
}
