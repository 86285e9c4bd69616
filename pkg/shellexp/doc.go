// Package shellexp 提供 Shell 风格的参数展开插值引擎。
//
// 给定模板字符串与变量表,引擎替换其中的展开语法,字面文本与
// 转义序列保持确定性行为。面向配置加载器与工具链:无需拉起
// 完整 shell 即可获得可预测、防注入的变量替换。
//
// # 支持语法
//
//   - ${VAR} / $VAR - 变量替换
//   - ${VAR:-word} / ${VAR-word} - 默认值(strict / loose)
//   - ${VAR:+word} / ${VAR+word} - 替代值(strict / loose)
//   - $(cmd) / `cmd` - 命令替换(仅 [Engine.InterpolateContext])
//   - \n \t \\ \$ \` 等转义,以及 "$$" 字面量
//   - '...' 单引号块内不做任何展开(可经 [Features].SingleQuotes 关闭)
//
// # 设计参考
//
//   - Bash 参数展开: https://www.gnu.org/software/bash/manual/bash.html#Shell-Parameter-Expansion
//
// # 语义说明
//
//  1. 变量值本身可再含展开语法,递归解析受深度上限与环检测约束
//  2. 无可展开语法时返回输入本身,零分配
//  3. 命令输出不做二次展开,多个命令可并发执行但按扫描顺序拼装
//  4. 首个错误即中止整次调用,不返回部分结果
//  5. 模板按普通文本处理,不得包含 0x00/0x01 字节:这两个字节
//     被内部用作转义占位,出现在输入里会被还原成 "`" 与 "$"
//
// # 快速开始
//
//	eng := shellexp.New()
//	_ = eng.AddVariable("USER", "alice")
//	out, err := eng.Interpolate("Hello ${USER:-world}")
//
// 详见 [Engine] 文档。
package shellexp
