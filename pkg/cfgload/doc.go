// Package cfgload 加载应用配置并按优先级合并:
//
//	默认值 < 配置文件 (YAML/JSON) < 环境变量 < CLI flags
//
// 配置 key 由结构体的 json tag 定义,YAML 与 JSON 共享同一套 key。
// 配置文件在解析前默认经过 Shell 参数展开(${VAR:-default} 等),
// 由 [github.com/lwmacct/251228-go-pkg-shellexp/pkg/shellexp] 驱动,
// 变量来自进程环境;可用 [WithEngine] 替换引擎或 [WithoutExpansion] 关闭。
//
// 快速开始:
//
//	cfg := cfgload.MustLoad(DefaultConfig(),
//	    cfgload.WithAppName("myapp"),
//	    cfgload.WithEnvPrefix("MYAPP_"),
//	)
package cfgload
