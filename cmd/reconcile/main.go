// Command reconcile runs a reconciliation over local files and writes the
// result table.
package main

import (
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
