package shellexp

// DefaultMaxDepth 是递归展开深度的默认上限。
const DefaultMaxDepth = 10

// Features 控制各展开语法的开关。
//
// 关闭某项语法后,对应的 token 原样保留在输出中
// (修饰符语法关闭时退化为普通 "${VAR}" 引用)。
type Features struct {
	// Variables 变量替换("${VAR}")。
	Variables bool
	// BareVariables 无花括号形式("$VAR")。配置文件场景通常关闭,
	// 避免误伤 "$ref" 之类的字面文本。
	BareVariables bool
	// Defaults 默认值修饰符("${VAR:-word}" / "${VAR-word}")。
	Defaults bool
	// Alternates 替代值修饰符("${VAR:+word}" / "${VAR+word}")。
	Alternates bool
	// Escapes 反斜杠转义与 "$$" 字面量。
	Escapes bool
	// SingleQuotes 单引号块("'...'")整体视为字面量,内部不展开。
	// 配置文件场景通常关闭:YAML 的引号风格不应改变展开结果,
	// 注释里的撇号也不该被当成开引号。
	SingleQuotes bool
	// Recursion 对查到的变量值再次扫描展开。
	Recursion bool
	// Commands "$(cmd)" 命令替换。
	Commands bool
	// BacktickCommands "`cmd`" 命令替换。
	BacktickCommands bool
}

// DefaultFeatures 返回全部开启的特性集。
func DefaultFeatures() Features {
	return Features{
		Variables:        true,
		BareVariables:    true,
		Defaults:         true,
		Alternates:       true,
		Escapes:          true,
		SingleQuotes:     true,
		Recursion:        true,
		Commands:         true,
		BacktickCommands: true,
	}
}

// Config 是引擎的不可变配置,随引擎实例创建一次并存续其生命周期。
type Config struct {
	// MaxDepth 递归展开深度上限,必须 ≥ 1;非法值按 DefaultMaxDepth 处理。
	MaxDepth int
	// StrictUndefined 为 true 时,未定义且无默认值的变量报
	// UnknownVariableError,而非替换为空字符串。
	StrictUndefined bool
	// StrictEscapes 为 true 时,无法识别的转义序列报 SyntaxError,
	// 而非保留 "反斜杠+字符" 原文。
	StrictEscapes bool
	// StrictCommands 为 true 时,命令 token 在语法被关闭
	// (或执行器缺席)的情况下报 FeatureDisabledError,而非原样保留。
	StrictCommands bool
	// Features 语法开关。
	Features Features
}

// DefaultConfig 返回默认配置:深度上限 10,全部语法开启,宽松模式。
func DefaultConfig() Config {
	return Config{
		MaxDepth: DefaultMaxDepth,
		Features: DefaultFeatures(),
	}
}

// maxDepth 返回归一化后的深度上限。
func (c *Config) maxDepth() int {
	if c.MaxDepth < 1 {
		return DefaultMaxDepth
	}
	return c.MaxDepth
}
