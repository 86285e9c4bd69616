package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251228-go-pkg-shellexp/internal/command"
	"github.com/lwmacct/251228-go-pkg-shellexp/internal/command/refs"
	"github.com/lwmacct/251228-go-pkg-shellexp/internal/command/render"
)

func main() {
	app := &cli.Command{
		Name:  command.AppName,
		Usage: "Shell 参数展开模板工具",
		Commands: []*cli.Command{
			render.Command,
			refs.Command,
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
