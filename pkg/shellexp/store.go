package shellexp

import "errors"

// Provider 为解析阶段提供变量取值。
//
// 第二个返回值区分 "定义为空字符串" 与 "未定义",
// strict / loose 修饰符依赖这一区别。
type Provider interface {
	Lookup(name string) (string, bool)
}

// Store 是引擎自有的变量表。
//
// 引擎不做内部加锁:Set 须由调用方与进行中的展开调用串行化。
type Store struct {
	vars map[string]string
}

// NewStore 创建空变量表。
func NewStore() *Store {
	return &Store{vars: make(map[string]string)}
}

// Set 写入或覆盖变量。空名字非法。
func (s *Store) Set(name, value string) error {
	if name == "" {
		return errors.New("shellexp: variable name must not be empty")
	}
	s.vars[name] = value
	return nil
}

// Lookup 实现 Provider。
func (s *Store) Lookup(name string) (string, bool) {
	v, ok := s.vars[name]
	return v, ok
}

// Len 返回变量个数。
func (s *Store) Len() int { return len(s.vars) }

// overlayProvider 在 base 之上叠加一组临时变量,叠加层优先。
type overlayProvider struct {
	base  Provider
	extra map[string]string
}

func (p overlayProvider) Lookup(name string) (string, bool) {
	if v, ok := p.extra[name]; ok {
		return v, true
	}
	return p.base.Lookup(name)
}
