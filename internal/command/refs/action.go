package refs

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251228-go-pkg-shellexp/pkg/shellexp"
)

func action(_ context.Context, cmd *cli.Command) error {
	template, err := readTemplate(cmd)
	if err != nil {
		return err
	}

	for _, name := range shellexp.VariableReferences(template) {
		fmt.Println(name)
	}

	return nil
}

func readTemplate(cmd *cli.Command) (string, error) {
	if path := cmd.String("file"); path != "" {
		if path == "-" {
			content, err := io.ReadAll(os.Stdin)
			if err != nil {
				return "", fmt.Errorf("read stdin: %w", err)
			}

			return string(content), nil
		}
		content, err := os.ReadFile(path) //nolint:gosec // path is user input by design
		if err != nil {
			return "", fmt.Errorf("read template: %w", err)
		}

		return string(content), nil
	}

	return strings.Join(cmd.Args().Slice(), " "), nil
}
