// Command choreo simulates and inspects tween animations from the terminal.
package main

import (
	"fmt"
	"os"

	"github.com/phanxgames/choreo/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.GetExitCode(err))
	}
}
