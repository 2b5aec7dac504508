// Command nuzlocke tracks Nuzlocke runs: it serves the tracker over a
// Unix socket, edits runs from the command line, and hosts the
// interactive entry editor.
package main

import (
	"fmt"
	"io"
	"os"
)

func main() {
	os.Exit(execute(os.Args[1:], os.Stdout, os.Stderr))
}

// execute runs the command line in args and returns the process exit
// code.
func execute(args []string, stdout, stderr io.Writer) int {
	root := newRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(stderr, "nuzlocke:", err)
		return exitCode(err)
	}
	return exitSuccess
}
