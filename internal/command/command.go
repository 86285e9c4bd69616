// Package command 提供模板渲染相关的命令行功能。
package command

import "github.com/lwmacct/251228-go-pkg-shellexp/internal/config"

// Defaults 为默认配置的单一来源。
var Defaults = config.DefaultConfig()

// AppName 用于默认配置路径 (.shellexp.yaml 等) 与环境变量前缀。
const (
	AppName   = "shellexp"
	EnvPrefix = "SHELLEXP_"
)
