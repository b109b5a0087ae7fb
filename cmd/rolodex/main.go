package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/rolodex-cli/rolodex/internal/cli"
	"github.com/rolodex-cli/rolodex/internal/version"
)

func main() {
	cmd := cli.NewRootCommand(os.Stdin, os.Stdout, cli.BuildInfo{
		Version:   version.Version,
		Commit:    version.Commit,
		BuildTime: version.BuildTime,
	})
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "rolodex: %v\n", err)
		var withExitCode interface{ ExitCode() int }
		if errors.As(err, &withExitCode) {
			os.Exit(withExitCode.ExitCode())
		}
		os.Exit(1)
	}
}
