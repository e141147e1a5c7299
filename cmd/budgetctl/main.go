// Command budgetctl computes budget scenario summaries offline from a TOML budget file.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
