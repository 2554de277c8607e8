// Package main provides the entry point for eedis, the Emotion Engine
// disassembler and IR lifter.
package main

import "github.com/sarchlab/eelift/internal/cli"

func main() {
	cli.Execute()
}
