// Command ascript runs scripts against the embeddable interpreter.
package main

import (
	"fmt"
	"os"

	"github.com/go-ascript/ascript/cmd/ascript/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
