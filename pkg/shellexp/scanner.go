package shellexp

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// ═══════════════════════════════════════════════════════════════════════════
// Segment 定义
// ═══════════════════════════════════════════════════════════════════════════

// SegmentKind 标识扫描产出的片段类型。
type SegmentKind int

const (
	// SegLiteral 普通文本段(含单引号块)。
	SegLiteral SegmentKind = iota
	// SegEscape 转义序列("\x" 或 "$$")。
	SegEscape
	// SegVariable 变量引用("$NAME" 或 "${NAME...}")。
	SegVariable
	// SegCommand 命令替换("$(cmd)")。
	SegCommand
	// SegBacktick 反引号命令替换("`cmd`")。
	SegBacktick
)

// Modifier 变量引用的修饰符。
//
// strict 变体(带冒号)把空字符串视同未定义;loose 变体只看是否定义。
type Modifier int

const (
	// ModNone 无修饰符,普通引用。
	ModNone Modifier = iota
	// ModDefaultStrict "${VAR:-word}":未定义或为空时取 word。
	ModDefaultStrict
	// ModDefaultLoose "${VAR-word}":仅未定义时取 word。
	ModDefaultLoose
	// ModAlternateStrict "${VAR:+word}":已定义且非空时取 word,否则为空。
	ModAlternateStrict
	// ModAlternateLoose "${VAR+word}":已定义时取 word,否则为空。
	ModAlternateLoose
)

// Segment 是扫描输入后的一个分类片段。
//
// 片段按输入顺序产出且互不重叠;所有片段的 src[Start:End]
// 依次拼接可原样还原输入。
type Segment struct {
	Kind SegmentKind

	// Text 按 Kind 取不同含义:
	//   - SegLiteral: 字面文本
	//   - SegEscape:  反斜杠后的字符(行尾反斜杠为空;"$$" 为 "$")
	//   - SegCommand / SegBacktick: 原始命令文本
	Text string

	// Name 变量名,仅 SegVariable 有效。
	Name string
	// Mod 修饰符,仅 SegVariable 有效。
	Mod Modifier
	// Word 修饰符表达式原文(可能内嵌 ${...} / $(...)),留待解析阶段递归处理。
	Word string
	// Braced 是否为 ${...} 花括号形式。
	Braced bool

	// Start / End 为片段在输入中的字节区间。
	Start int
	End   int
}

// ═══════════════════════════════════════════════════════════════════════════
// 扫描器
// ═══════════════════════════════════════════════════════════════════════════

// triggers 是需要中断字面量扫描的触发字符集。
// 大段纯文本通过 strings.IndexAny 批量跳过,是主要的性能手段。
const triggers = "$\\'`"

// scanner 对输入做单遍扫描。无副作用,只依赖输入文本。
type scanner struct {
	src string
	pos int

	// singleQuotes 为 true 时 '...' 块整体并入字面量;
	// 为 false 时单引号只是普通字符,内部语法照常识别。
	singleQuotes bool
}

func newScanner(src string) *scanner {
	return &scanner{src: src, singleQuotes: true}
}

// next 产出下一个片段。输入耗尽时第二个返回值为 false。
func (s *scanner) next() (Segment, bool, error) {
	if s.pos >= len(s.src) {
		return Segment{}, false, nil
	}

	start := s.pos
	cur := start
	for cur < len(s.src) {
		rel := strings.IndexAny(s.src[cur:], triggers)
		if rel < 0 {
			cur = len(s.src)
			break
		}

		abs := cur + rel
		switch s.src[abs] {
		case '\'':
			if !s.singleQuotes {
				cur = abs + 1
				continue
			}
			// 单引号块整体并入字面量,内部不做任何展开
			cur = s.skipSingleQuote(abs)
		case '\\':
			if abs > start {
				return s.emitLiteral(start, abs), true, nil
			}
			return s.scanEscape(abs), true, nil
		case '$':
			if !s.isExpansionStart(abs) {
				// 孤立 '$'(行尾、"$ foo"、"$100" 等)留在字面量里
				cur = abs + 1
				continue
			}
			if abs > start {
				return s.emitLiteral(start, abs), true, nil
			}
			return s.scanDollar(abs)
		case '`':
			if abs > start {
				return s.emitLiteral(start, abs), true, nil
			}
			return s.scanBacktick(abs)
		}
	}

	s.pos = cur
	if cur == start {
		return Segment{}, false, nil
	}
	return s.emitLiteral(start, cur), true, nil
}

func (s *scanner) emitLiteral(start, end int) Segment {
	s.pos = end
	return Segment{Kind: SegLiteral, Text: s.src[start:end], Start: start, End: end}
}

// isExpansionStart 判断 abs 处的 '$' 是否开启展开语法。
func (s *scanner) isExpansionStart(abs int) bool {
	if abs+1 >= len(s.src) {
		return false
	}
	switch s.src[abs+1] {
	case '$', '{', '(':
		return true
	}
	r, _ := utf8.DecodeRuneInString(s.src[abs+1:])
	return r == '_' || unicode.IsLetter(r)
}

// skipSingleQuote 从开引号处跳到闭引号之后;未闭合则吞到输入末尾。
func (s *scanner) skipSingleQuote(abs int) int {
	i := abs + 1
	for i < len(s.src) {
		switch s.src[i] {
		case '\\':
			if i+1 >= len(s.src) {
				return len(s.src)
			}
			_, size := utf8.DecodeRuneInString(s.src[i+1:])
			i += 1 + size
		case '\'':
			return i + 1
		default:
			i++
		}
	}
	return len(s.src)
}

// scanEscape 消费 '\' 及其后一个字符。行尾反斜杠 Text 为空。
func (s *scanner) scanEscape(abs int) Segment {
	if abs+1 >= len(s.src) {
		s.pos = len(s.src)
		return Segment{Kind: SegEscape, Start: abs, End: len(s.src)}
	}
	_, size := utf8.DecodeRuneInString(s.src[abs+1:])
	end := abs + 1 + size
	s.pos = end
	return Segment{Kind: SegEscape, Text: s.src[abs+1 : end], Start: abs, End: end}
}

func (s *scanner) scanDollar(abs int) (Segment, bool, error) {
	switch s.src[abs+1] {
	case '$':
		// "$$" 等价于 "\$",产出字面 '$'
		s.pos = abs + 2
		return Segment{Kind: SegEscape, Text: "$", Start: abs, End: abs + 2}, true, nil
	case '{':
		return s.scanBraced(abs)
	case '(':
		return s.scanCommand(abs)
	default:
		return s.scanBareName(abs), true, nil
	}
}

// scanBareName 消费 "$NAME" 形式,名字为标识符字符序列。
func (s *scanner) scanBareName(abs int) Segment {
	i := abs + 1
	for i < len(s.src) {
		r, size := utf8.DecodeRuneInString(s.src[i:])
		if r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			break
		}
		i += size
	}
	s.pos = i
	return Segment{Kind: SegVariable, Name: s.src[abs+1 : i], Start: abs, End: i}
}

// scanBraced 消费 "${...}" 形式。嵌套的 "${" 会计入配对深度,
// 因此修饰符表达式里可以再出现 "${...}"。
func (s *scanner) scanBraced(abs int) (Segment, bool, error) {
	depth := 0
	end := -1
	i := abs + 2
	for i < len(s.src) {
		switch {
		case s.src[i] == '$' && i+1 < len(s.src) && s.src[i+1] == '{':
			depth++
			i += 2
		case s.src[i] == '}':
			if depth == 0 {
				end = i
			} else {
				depth--
			}
			i++
		default:
			i++
		}
		if end >= 0 {
			break
		}
	}
	if end < 0 {
		return Segment{}, false, &UnterminatedError{Offset: abs, Delim: "}"}
	}

	name, mod, word := splitModifier(s.src[abs+2 : end])
	if name == "" {
		return Segment{}, false, &SyntaxError{Offset: abs, Msg: "empty variable name"}
	}

	s.pos = end + 1
	return Segment{
		Kind:   SegVariable,
		Name:   name,
		Mod:    mod,
		Word:   word,
		Braced: true,
		Start:  abs,
		End:    end + 1,
	}, true, nil
}

// splitModifier 把花括号内容切分为变量名、修饰符和表达式原文。
func splitModifier(content string) (string, Modifier, string) {
	for i := 0; i < len(content); i++ {
		switch content[i] {
		case ':':
			if i+1 < len(content) {
				switch content[i+1] {
				case '-':
					return content[:i], ModDefaultStrict, content[i+2:]
				case '+':
					return content[:i], ModAlternateStrict, content[i+2:]
				}
			}
		case '-':
			return content[:i], ModDefaultLoose, content[i+1:]
		case '+':
			return content[:i], ModAlternateLoose, content[i+1:]
		}
	}
	return content, ModNone, ""
}

// scanCommand 消费 "$(...)" 形式。圆括号可嵌套,
// 引号内的括号与反斜杠转义不参与配对。
func (s *scanner) scanCommand(abs int) (Segment, bool, error) {
	depth := 1
	inSingle, inDouble := false, false
	i := abs + 2
	for i < len(s.src) {
		c := s.src[i]
		switch {
		case inSingle:
			if c == '\'' {
				inSingle = false
			}
			i++
		case inDouble:
			switch c {
			case '"':
				inDouble = false
				i++
			case '\\':
				i += 2
			default:
				i++
			}
		default:
			switch c {
			case '(':
				depth++
				i++
			case ')':
				depth--
				if depth == 0 {
					s.pos = i + 1
					return Segment{Kind: SegCommand, Text: s.src[abs+2 : i], Start: abs, End: i + 1}, true, nil
				}
				i++
			case '\'':
				inSingle = true
				i++
			case '"':
				inDouble = true
				i++
			case '\\':
				i += 2
			default:
				i++
			}
		}
	}
	return Segment{}, false, &UnterminatedError{Offset: abs, Delim: ")"}
}

// scanBacktick 消费 "`cmd`" 形式。"\`" 与 "\\" 不会终止命令。
func (s *scanner) scanBacktick(abs int) (Segment, bool, error) {
	i := abs + 1
	for i < len(s.src) {
		switch s.src[i] {
		case '\\':
			i += 2
		case '`':
			s.pos = i + 1
			return Segment{Kind: SegBacktick, Text: s.src[abs+1 : i], Start: abs, End: i + 1}, true, nil
		default:
			i++
		}
	}
	return Segment{}, false, &UnterminatedError{Offset: abs, Delim: "`"}
}
