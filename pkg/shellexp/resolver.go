package shellexp

import (
	"slices"
	"strings"
)

// 转义后的 '`' 与 '$' 先写成占位字节,防止命令替换阶段把
// "\$(...)" / "\`...\`" 再次识别成命令;最终返回前统一还原。
const (
	backtickPlaceholder = "\x00"
	dollarPlaceholder   = "\x01"
)

// restorePlaceholders 把占位字节还原为真实字符。
// 无占位时原样返回,不产生拷贝。
func restorePlaceholders(s string) string {
	if !strings.ContainsAny(s, backtickPlaceholder+dollarPlaceholder) {
		return s
	}
	r := strings.NewReplacer(backtickPlaceholder, "`", dollarPlaceholder, "$")
	return r.Replace(s)
}

// unescape 查固定转义表。未收录的字符返回 false。
func unescape(ch string) (string, bool) {
	switch ch {
	case "n":
		return "\n", true
	case "r":
		return "\r", true
	case "t":
		return "\t", true
	case `\`:
		return `\`, true
	case `"`:
		return `"`, true
	case "'":
		return "'", true
	case "`":
		return backtickPlaceholder, true
	case "$":
		return dollarPlaceholder, true
	default:
		return "", false
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// 解析器
// ═══════════════════════════════════════════════════════════════════════════

// resolveState 是单次顶层展开调用的上下文,调用结束即丢弃。
//
// depth 与 active 在每次嵌套解析前检查、返回后恢复,
// 保证深度与环检测始终先于下一步递归。
type resolveState struct {
	vars Provider
	cfg  *Config

	depth  int
	active []string // 正在展开的变量名栈,用于环检测
}

// resolve 扫描 input 并逐段求值。
//
// 第二个返回值为 false 表示输出即输入本身(零分配快路径);
// 为 true 表示输出是新构建的缓冲。命令 token 在此阶段一律原样保留,
// 由引擎的命令替换阶段另行处理。
func (st *resolveState) resolve(input string) (string, bool, error) {
	sc := newScanner(input)
	sc.singleQuotes = st.cfg.Features.SingleQuotes
	var b *strings.Builder

	for {
		seg, ok, err := sc.next()
		if err != nil {
			return "", false, err
		}
		if !ok {
			break
		}

		out, changed, err := st.resolveSegment(input, seg)
		if err != nil {
			return "", false, err
		}

		if b == nil {
			if !changed {
				continue
			}
			b = &strings.Builder{}
			b.Grow(len(input) + 32)
			b.WriteString(input[:seg.Start])
		}
		b.WriteString(out)
	}

	if b == nil {
		return input, false, nil
	}
	return b.String(), true, nil
}

// resolveSegment 求值单个片段。changed 为 false 时 out 等于片段原文。
func (st *resolveState) resolveSegment(input string, seg Segment) (out string, changed bool, err error) {
	switch seg.Kind {
	case SegLiteral:
		return seg.Text, false, nil

	case SegEscape:
		return st.resolveEscape(input, seg)

	case SegVariable:
		if !st.cfg.Features.Variables || (!seg.Braced && !st.cfg.Features.BareVariables) {
			return input[seg.Start:seg.End], false, nil
		}
		out, err = st.resolveVariable(seg)
		return out, true, err

	case SegCommand:
		if !st.cfg.Features.Commands && st.cfg.StrictCommands {
			return "", false, &FeatureDisabledError{Feature: "commands"}
		}
		return input[seg.Start:seg.End], false, nil

	case SegBacktick:
		if !st.cfg.Features.BacktickCommands && st.cfg.StrictCommands {
			return "", false, &FeatureDisabledError{Feature: "backtick-commands"}
		}
		return input[seg.Start:seg.End], false, nil
	}
	return input[seg.Start:seg.End], false, nil
}

func (st *resolveState) resolveEscape(input string, seg Segment) (string, bool, error) {
	if !st.cfg.Features.Escapes {
		return input[seg.Start:seg.End], false, nil
	}
	if seg.Text == "" {
		// 行尾孤立反斜杠
		return `\`, false, nil
	}
	out, ok := unescape(seg.Text)
	if !ok {
		if st.cfg.StrictEscapes {
			return "", false, &SyntaxError{Offset: seg.Start, Msg: "unknown escape sequence " + `\` + seg.Text}
		}
		return input[seg.Start:seg.End], false, nil
	}
	return out, true, nil
}

// resolveVariable 按修饰符与查找结果决定取值来源。
func (st *resolveState) resolveVariable(seg Segment) (string, error) {
	mod := seg.Mod
	// 对应语法关闭时,修饰符退化为普通引用
	switch mod {
	case ModDefaultStrict, ModDefaultLoose:
		if !st.cfg.Features.Defaults {
			mod = ModNone
		}
	case ModAlternateStrict, ModAlternateLoose:
		if !st.cfg.Features.Alternates {
			mod = ModNone
		}
	}

	val, found := st.vars.Lookup(seg.Name)
	switch mod {
	case ModDefaultStrict:
		if !found || val == "" {
			return st.resolveWord(seg.Word)
		}
	case ModDefaultLoose:
		if !found {
			return st.resolveWord(seg.Word)
		}
	case ModAlternateStrict:
		if found && val != "" {
			return st.resolveWord(seg.Word)
		}
		return "", nil
	case ModAlternateLoose:
		if found {
			return st.resolveWord(seg.Word)
		}
		return "", nil
	}

	if !found {
		if st.cfg.StrictUndefined {
			return "", &UnknownVariableError{Name: seg.Name}
		}
		return "", nil
	}
	return st.resolveValue(seg.Name, val)
}

// resolveValue 对查到的变量值递归展开。
// 环检测先于深度检查:自引用无论 MaxDepth 取值都报 CycleError。
func (st *resolveState) resolveValue(name, val string) (string, error) {
	if !st.cfg.Features.Recursion {
		return val, nil
	}
	if slices.Contains(st.active, name) {
		return "", &CycleError{Path: append(slices.Clone(st.active), name)}
	}
	if st.depth >= st.cfg.maxDepth() {
		return "", &DepthError{MaxDepth: st.cfg.maxDepth()}
	}

	st.depth++
	st.active = append(st.active, name)
	out, _, err := st.resolve(val)
	st.active = st.active[:len(st.active)-1]
	st.depth--
	return out, err
}

// resolveWord 递归展开修饰符表达式。表达式属于模板自身的嵌套结构,
// 不入环检测栈,但仍受深度上限约束。
func (st *resolveState) resolveWord(word string) (string, error) {
	if word == "" {
		return "", nil
	}
	if st.depth >= st.cfg.maxDepth() {
		return "", &DepthError{MaxDepth: st.cfg.maxDepth()}
	}

	st.depth++
	out, _, err := st.resolve(word)
	st.depth--
	return out, err
}
