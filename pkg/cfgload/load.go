package cfgload

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251228-go-pkg-shellexp/pkg/shellexp"
)

// DefaultPaths 返回默认配置文件的搜索顺序,先命中的文件生效。
//
// appName 非空时 (从高到低):
//  1. ./.appname.yaml
//  2. ~/.appname.yaml
//  3. /etc/appname/config.yaml
//  4. config.yaml
//  5. config/config.yaml
func DefaultPaths(appName string) []string {
	var paths []string
	if appName != "" {
		paths = append(paths, "."+appName+".yaml")
		if home, err := os.UserHomeDir(); err == nil {
			paths = append(paths, filepath.Join(home, "."+appName+".yaml"))
		}
		paths = append(paths, "/etc/"+appName+"/config.yaml")
	}

	return append(paths, "config.yaml", "config/config.yaml")
}

// Load 读取配置并按优先级合并。
//
// 优先级 (从低到高):
//  1. 默认值 - defaults
//  2. 配置文件 - [WithConfigPaths] / [WithAppName]
//  3. 环境变量(前缀) - [WithEnvPrefix]
//  4. CLI flags - [WithCommand]
//
// 配置文件按顺序查找,命中首个文件即停止;解析前默认做参数展开。
func Load[T any](defaults T, opts ...Option) (*T, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if len(o.configPaths) == 0 {
		o.configPaths = DefaultPaths(o.appName)
	}

	merged := defaultsToMap(defaults)

	if err := loadFirstFile(o, merged); err != nil {
		return nil, err
	}

	if o.envPrefix != "" {
		applyEnvOverrides(o.envPrefix, defaults, merged)
	}

	if o.cmd != nil {
		applyFlagOverrides(o.cmd, defaults, merged)
	}

	var cfg T
	if err := decodeInto(merged, &cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	return &cfg, nil
}

// LoadCmd 是 [Load] 的 CLI 便捷版本,自动注入 [WithCommand] 与
// [WithAppName] (appName 非空时)。
func LoadCmd[T any](cmd *cli.Command, defaults T, appName string, opts ...Option) (*T, error) {
	base := []Option{WithCommand(cmd)}
	if appName != "" {
		base = append(base, WithAppName(appName))
	}

	return Load(defaults, append(base, opts...)...)
}

// MustLoad 调用 [Load] 并在失败时 panic,适合启动阶段。
func MustLoad[T any](defaults T, opts ...Option) *T {
	cfg, err := Load(defaults, opts...)
	if err != nil {
		panic(fmt.Sprintf("cfgload: %v", err))
	}

	return cfg
}

// MustLoadCmd 调用 [LoadCmd] 并在失败时 panic,适合启动阶段。
func MustLoadCmd[T any](cmd *cli.Command, defaults T, appName string, opts ...Option) *T {
	cfg, err := LoadCmd(cmd, defaults, appName, opts...)
	if err != nil {
		panic(fmt.Sprintf("cfgload: %v", err))
	}

	return cfg
}

// loadFirstFile 按顺序查找配置文件,把首个命中的文件合并进 merged。
func loadFirstFile(o *options, merged map[string]any) error {
	for _, path := range o.configPaths {
		if o.baseDir != "" && !filepath.IsAbs(path) {
			path = filepath.Join(o.baseDir, path)
		}

		content, err := os.ReadFile(path) //nolint:gosec // path is from trusted config
		if err != nil {
			continue
		}

		if !o.noExpansion {
			eng := o.engine
			if eng == nil {
				eng = EnvEngine()
			}
			expanded, err := eng.Interpolate(string(content))
			if err != nil {
				return fmt.Errorf("expand config file %s: %w", path, err)
			}
			content = []byte(expanded)
		}

		fileMap, err := parseConfigBytes(path, content)
		if err != nil {
			return fmt.Errorf("parse config file %s: %w", path, err)
		}
		mergeMaps(merged, fileMap)
		slog.Debug("Loaded config from file", "path", path, "expansion", !o.noExpansion)

		return nil
	}

	slog.Debug("No config file found, using defaults")

	return nil
}

// EnvEngine 返回配置文件展开用的默认引擎:变量来自当前进程环境。
//
// 配置文件里只认 ${...} 语法;$VAR、转义、命令替换与单引号块
// 都不启用:YAML 中的 "$"、反斜杠不被误改写,引号风格不改变
// 展开结果,注释里的撇号也不会吞掉后续内容。
func EnvEngine() *shellexp.Engine {
	cfg := shellexp.DefaultConfig()
	cfg.Features.BareVariables = false
	cfg.Features.Escapes = false
	cfg.Features.Commands = false
	cfg.Features.BacktickCommands = false
	cfg.Features.SingleQuotes = false

	eng := shellexp.New(shellexp.WithConfig(cfg))
	for _, kv := range os.Environ() {
		if name, value, ok := strings.Cut(kv, "="); ok {
			_ = eng.AddVariable(name, value)
		}
	}

	return eng
}

// applyEnvOverrides 把 "前缀+大写 key" 形式的环境变量写入 merged。
//
// 转换规则:key 中的 "." 与 "-" 转为 "_" 后大写,再加前缀。
// 如前缀 "APP_" 时 render.max-depth → APP_RENDER_MAX_DEPTH。
func applyEnvOverrides[T any](prefix string, defaults T, merged map[string]any) {
	replacer := strings.NewReplacer(".", "_", "-", "_")
	for _, key := range configKeys(defaults) {
		envKey := prefix + strings.ToUpper(replacer.Replace(key))
		if val := os.Getenv(envKey); val != "" {
			setByPath(merged, key, val)
			slog.Debug("Loaded env override", "env", envKey, "key", key)
		}
	}
}
