// Package cmdexec 提供 shellexp.Executor 的两种实现:
//
//   - [Shell]: 通过宿主 shell(默认 $SHELL,回退 /bin/sh)执行命令
//   - [Interp]: 通过内嵌 POSIX 解释器执行,不依赖宿主 shell
//
// 两者都返回去除尾部空白的 stdout,并在 ctx 取消时终止子进程 /
// 解释器,满足 [github.com/lwmacct/251228-go-pkg-shellexp/pkg/shellexp.Executor] 的约定。
package cmdexec
