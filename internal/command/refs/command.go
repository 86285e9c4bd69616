// Package refs 提供变量引用提取命令。
package refs

import "github.com/urfave/cli/v3"

// Command 引用提取命令
var Command = &cli.Command{
	Name:      "refs",
	Usage:     "列出模板引用到的变量名",
	ArgsUsage: "[template]",
	Action:    action,
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "file",
			Aliases: []string{"f"},
			Usage:   "模板文件路径,\"-\" 为 stdin;缺省时解析位置参数",
		},
	},
}
