// Command gofst is a minimal line-oriented driver over the compose and
// determinize algorithms, for smoke-testing Fsts from the shell without
// writing Go. It is not part of the library's public API.
package main

import (
	"fmt"
	"os"

	"github.com/garvys-org/gofst/cmd/gofst/internal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
