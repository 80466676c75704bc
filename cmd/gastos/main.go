package main

import (
	"context"
	"fmt"
	"os"

	"gastos/internal/cli"
)

func main() {
	cli.LoadEnvFile()

	cmd := cli.NewRootCommand()
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "gastos:", err)
		os.Exit(cli.GetExitCode(err))
	}
}
