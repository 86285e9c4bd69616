// Package config 提供应用配置管理。
//
// 配置加载优先级 (从低到高):
//  1. 默认值 - DefaultConfig() 函数中定义
//  2. 配置文件 - 通过 WithAppName / WithConfigPaths 选项设置
//  3. 环境变量 - 通过 WithEnvPrefix 选项启用
//  4. CLI flags - 通过 WithCommand 选项设置
package config

import (
	"time"

	"github.com/lwmacct/251228-go-pkg-shellexp/pkg/shellexp"
)

// Config 应用配置。
type Config struct {
	Render RenderConfig `json:"render" desc:"模板渲染配置"`
}

// RenderConfig 模板渲染配置。
type RenderConfig struct {
	MaxDepth        int           `json:"max-depth" desc:"递归展开深度上限"`
	StrictUndefined bool          `json:"strict-undefined" desc:"未定义变量视为错误"`
	Commands        bool          `json:"commands" desc:"启用 $(cmd) 与反引号命令替换"`
	VirtualShell    bool          `json:"virtual-shell" desc:"用内嵌解释器执行命令,不依赖宿主 shell"`
	Shell           string        `json:"shell" desc:"宿主 shell 路径,空则取 $SHELL 或 /bin/sh"`
	Timeout         time.Duration `json:"timeout" desc:"整次渲染超时 (含命令执行)"`
	Output          string        `json:"output" desc:"输出文件路径,空为 stdout"`
}

// DefaultConfig 返回默认配置。
// 注意:internal/command/command.go 中的 Defaults 变量引用此函数以实现单一配置来源。
func DefaultConfig() Config {
	return Config{
		Render: RenderConfig{
			MaxDepth: shellexp.DefaultMaxDepth,
			Timeout:  30 * time.Second,
		},
	}
}
