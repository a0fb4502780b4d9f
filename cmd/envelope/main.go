// Command envelope builds rectangular building envelopes from scripts or
// YAML plans and exports plan views and meshes.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
