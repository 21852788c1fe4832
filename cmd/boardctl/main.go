// Command boardctl drives a deployed taskboard API from the terminal: it
// prints the board, moves tasks between columns, assigns work to several
// employees and repairs task groups.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
