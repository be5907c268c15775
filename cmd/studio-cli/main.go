package main

import (
	"fmt"
	"os"

	"course-studio/internal/cli"
)

func main() {
	if err := cli.Run(os.Stdin, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
