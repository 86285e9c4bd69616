package cfgload

import (
	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251228-go-pkg-shellexp/pkg/shellexp"
)

// options 配置加载选项。
type options struct {
	appName     string // 应用名称,用于生成默认搜索路径
	cmd         *cli.Command
	configPaths []string
	baseDir     string // 相对路径的解析基准,空为当前工作目录
	envPrefix   string
	engine      *shellexp.Engine // 配置文件展开引擎,nil 用默认
	noExpansion bool             // 禁用配置文件展开(默认启用)
}

// Option 配置加载选项函数。
type Option func(*options)

// WithCommand 绑定 CLI 命令,读取显式设置的 flags 以覆盖配置(最高优先级)。
func WithCommand(cmd *cli.Command) Option {
	return func(o *options) {
		o.cmd = cmd
	}
}

// WithAppName 设置应用名称,用于生成默认搜索路径(见 [DefaultPaths])。
func WithAppName(name string) Option {
	return func(o *options) {
		o.appName = name
	}
}

// WithConfigPaths 设置配置文件搜索路径。
//
// 按顺序查找,命中首个文件即停止;相对路径基于 [WithBaseDir] 解析。
func WithConfigPaths(paths ...string) Option {
	return func(o *options) {
		o.configPaths = paths
	}
}

// WithBaseDir 设置相对配置路径的解析基准,绝对路径不受影响。
func WithBaseDir(path string) Option {
	return func(o *options) {
		o.baseDir = path
	}
}

// WithEnvPrefix 启用环境变量覆盖。
//
// 环境变量命名规则:前缀 + 大写配置 key,"." 与 "-" 转为 "_"。
// 如前缀 "MYAPP_" 时 MYAPP_RENDER_MAX_DEPTH → render.max-depth。
func WithEnvPrefix(prefix string) Option {
	return func(o *options) {
		o.envPrefix = prefix
	}
}

// WithEngine 指定配置文件展开用的引擎,替换默认的环境变量引擎。
func WithEngine(eng *shellexp.Engine) Option {
	return func(o *options) {
		o.engine = eng
	}
}

// WithoutExpansion 禁用配置文件的参数展开,保留原始 ${...} 文本。
func WithoutExpansion() Option {
	return func(o *options) {
		o.noExpansion = true
	}
}
