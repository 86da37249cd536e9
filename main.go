// Package main is the entry point for the tsquiet CLI.
package main

import "tsquiet.dev/pkg/tsquiet/cmd"

func main() {
	cmd.Execute()
}
