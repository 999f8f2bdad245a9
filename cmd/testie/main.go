// Command testie runs test plans and prints their fixed-width report.
package main

import (
	"fmt"
	"os"

	"github.com/embeardded/testie/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cli.GetExitCode(err))
	}
}
