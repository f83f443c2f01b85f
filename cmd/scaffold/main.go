package main

import (
	"fmt"
	"os"

	scaffold "github.com/kangezhang/scaffold"
)

func main() {
	if err := scaffold.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
