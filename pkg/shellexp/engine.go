package shellexp

import (
	"context"
	"maps"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"
)

// Executor 是命令替换的执行能力,由调用方注入(见 pkg/cmdexec)。
//
// 实现须返回去除尾部空白的 stdout;ctx 取消时终止执行,不遗留子进程。
type Executor interface {
	Execute(ctx context.Context, command string) (string, error)
}

// Engine 是插值引擎实例。变量表与配置归实例所有,不存在全局状态。
//
// 并发约束:展开调用期间变量表只读;AddVariable 由调用方
// 与进行中的调用串行化。
type Engine struct {
	cfg   Config
	store *Store
	exec  Executor
}

// Option 引擎构造选项。
type Option func(*Engine)

// WithConfig 指定引擎配置,默认为 DefaultConfig()。
func WithConfig(cfg Config) Option {
	return func(e *Engine) { e.cfg = cfg }
}

// WithExecutor 注入命令替换执行器。缺席时命令 token 按
// StrictCommands 报错或原样保留。
func WithExecutor(exec Executor) Option {
	return func(e *Engine) { e.exec = exec }
}

// New 创建引擎。
func New(opts ...Option) *Engine {
	e := &Engine{
		cfg:   DefaultConfig(),
		store: NewStore(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// AddVariable 写入或覆盖变量,空名字报错。
// 值本身可以再包含展开语法(如 "Hello ${USER}")。
func (e *Engine) AddVariable(name, value string) error {
	return e.store.Set(name, value)
}

// Interpolate 同步展开 input。
//
// 无任何可展开语法时返回的就是 input 本身,不发生分配。
// 命令 token 不执行:语法开启时原样保留,关闭且 StrictCommands
// 为 true 时报 FeatureDisabledError。
func (e *Engine) Interpolate(input string) (string, error) {
	return e.interpolate(input, e.store)
}

// InterpolateWith 同 Interpolate,但在变量表之上叠加一组临时变量。
func (e *Engine) InterpolateWith(input string, extra map[string]string) (string, error) {
	return e.interpolate(input, overlayProvider{base: e.store, extra: extra})
}

func (e *Engine) interpolate(input string, vars Provider) (string, error) {
	st := &resolveState{vars: vars, cfg: &e.cfg}
	out, _, err := st.resolve(input)
	if err != nil {
		return "", err
	}
	return restorePlaceholders(out), nil
}

// InterpolateContext 展开 input 并执行其中的命令替换。
//
// 第一遍与 Interpolate 相同(变量、转义);第二遍重新扫描结果,
// 把 "$(cmd)" / "`cmd`" 的命令文本递归展开后交给执行器。
// 多个命令通过 errgroup 并发派发,输出仍按扫描顺序拼装;
// 任一失败即中止整个调用,ctx 取消会传递给尚未完成的执行。
// 命令输出不再二次扫描。
func (e *Engine) InterpolateContext(ctx context.Context, input string) (string, error) {
	st := &resolveState{vars: e.store, cfg: &e.cfg}
	pass1, _, err := st.resolve(input)
	if err != nil {
		return "", err
	}

	// 快速退出:没有命令语法就无需第二遍扫描
	if (!e.cfg.Features.Commands && !e.cfg.Features.BacktickCommands) ||
		(!strings.Contains(pass1, "$(") && !strings.Contains(pass1, "`")) {
		return restorePlaceholders(pass1), nil
	}
	return e.resolveCommands(ctx, pass1)
}

// resolveCommands 是命令替换阶段:src 为第一遍展开后的文本。
func (e *Engine) resolveCommands(ctx context.Context, src string) (string, error) {
	sc := newScanner(src)
	sc.singleQuotes = e.cfg.Features.SingleQuotes
	var segs []Segment
	for {
		seg, ok, err := sc.next()
		if err != nil {
			return "", err
		}
		if !ok {
			break
		}
		segs = append(segs, seg)
	}

	type job struct {
		idx int    // 对应 segs 下标
		cmd string // 变量展开后的命令文本
	}
	outputs := make([]string, len(segs))
	var jobs []job

	for i, seg := range segs {
		var feature string
		switch seg.Kind {
		case SegCommand:
			feature = "commands"
		case SegBacktick:
			feature = "backtick-commands"
		default:
			outputs[i] = src[seg.Start:seg.End]
			continue
		}

		enabled := (seg.Kind == SegCommand && e.cfg.Features.Commands) ||
			(seg.Kind == SegBacktick && e.cfg.Features.BacktickCommands)
		if !enabled || e.exec == nil {
			if e.cfg.StrictCommands {
				if !enabled {
					return "", &FeatureDisabledError{Feature: feature}
				}
				return "", &FeatureDisabledError{Feature: "command-executor"}
			}
			outputs[i] = src[seg.Start:seg.End]
			continue
		}

		// 命令文本自身可能引用变量,执行前先走同一条递归解析路径
		st := &resolveState{vars: e.store, cfg: &e.cfg}
		resolved, _, err := st.resolve(seg.Text)
		if err != nil {
			return "", err
		}
		jobs = append(jobs, job{idx: i, cmd: restorePlaceholders(resolved)})
	}

	if len(jobs) > 0 {
		g, gctx := errgroup.WithContext(ctx)
		for _, j := range jobs {
			g.Go(func() error {
				out, err := e.exec.Execute(gctx, j.cmd)
				if err != nil {
					return &CommandError{Cmd: j.cmd, Err: err}
				}
				outputs[j.idx] = out
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return "", err
		}
	}

	var b strings.Builder
	b.Grow(len(src))
	for i := range segs {
		b.WriteString(outputs[i])
	}
	return restorePlaceholders(b.String()), nil
}

// VariableReferences 返回 input 中引用到的变量名,去重后按字典序排列。
// 默认值/替代值 word 中的嵌套引用一并计入;命令文本与单引号块内
// 的引用不计入;扫描出错时返回已收集的部分。
func VariableReferences(input string) []string {
	seen := make(map[string]struct{})
	collectRefs(input, seen)
	return slices.Sorted(maps.Keys(seen))
}

func collectRefs(input string, seen map[string]struct{}) {
	sc := newScanner(input)
	for {
		seg, ok, err := sc.next()
		if err != nil || !ok {
			return
		}
		if seg.Kind != SegVariable {
			continue
		}
		seen[seg.Name] = struct{}{}
		if seg.Word != "" {
			collectRefs(seg.Word, seen)
		}
	}
}
