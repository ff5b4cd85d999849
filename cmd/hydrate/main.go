package main

import (
	"fmt"
	"os"

	"github.com/Azhovan/hydrate/internal/cli"
)

// version is set via ldflags at release time.
var version = "dev"

func main() {
	if err := cli.Execute(version); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
