/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Command dynamodel encodes and decodes composite keys and rows of the
// models declared in a YAML schema file.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
