package shellexp

import (
	"fmt"
	"strings"
)

// SyntaxError 表示展开语法不合法(如 "${}" 空变量名、非法转义)。
type SyntaxError struct {
	Offset int    // 出错位置的字节偏移
	Msg    string // 具体原因
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("shellexp: syntax error at offset %d: %s", e.Offset, e.Msg)
}

// UnterminatedError 表示表达式缺少闭合符("}"、")" 或 "`")。
type UnterminatedError struct {
	Offset int    // 表达式起始位置的字节偏移
	Delim  string // 缺失的闭合符
}

func (e *UnterminatedError) Error() string {
	return fmt.Sprintf("shellexp: unterminated expression at offset %d: missing %q", e.Offset, e.Delim)
}

// UnknownVariableError 表示严格模式下引用了未定义且无默认值的变量。
type UnknownVariableError struct {
	Name string
}

func (e *UnknownVariableError) Error() string {
	return fmt.Sprintf("shellexp: unknown variable %q", e.Name)
}

// DepthError 表示递归展开超出了配置的深度上限。
type DepthError struct {
	MaxDepth int
}

func (e *DepthError) Error() string {
	return fmt.Sprintf("shellexp: interpolation depth limit %d exceeded", e.MaxDepth)
}

// CycleError 表示变量直接或间接引用了自身。
type CycleError struct {
	// Path 是检测到环时的展开链,末尾元素即重复出现的变量。
	Path []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("shellexp: variable cycle detected: %s", strings.Join(e.Path, " -> "))
}

// FeatureDisabledError 表示遇到了被配置关闭的语法,且配置要求报错而非原样保留。
type FeatureDisabledError struct {
	Feature string
}

func (e *FeatureDisabledError) Error() string {
	return fmt.Sprintf("shellexp: feature %q is disabled", e.Feature)
}

// CommandError 表示命令替换执行失败(启动失败、非零退出、IO 错误)。
type CommandError struct {
	Cmd string
	Err error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("shellexp: command %q failed: %v", e.Cmd, e.Err)
}

func (e *CommandError) Unwrap() error { return e.Err }
